package shell

import (
	"fmt"
	"io"
)

// initScript is shared by every shell; %[1]s installs the prompt hook and
// %[2]s names the shell for completions.
const initScript = `# moodiary shell integration
__moodiary_prompt_hook() {
  eval "$(command moodiary status --env 2>/dev/null)"
}

# moodiary_prompt_info prints the status exported by the hook, e.g. "✓ 4🔥 3/5".
moodiary_prompt_info() {
  [ -n "$MOODIARY_TODAY" ] || return 0
  printf '%%s %%s%%s' "$MOODIARY_TODAY" "$MOODIARY_STREAK" "$MOODIARY_STREAK_ICON"
  [ -n "$MOODIARY_MOOD" ] && printf ' %%s/5' "$MOODIARY_MOOD"
  return 0
}

%[1]s

eval "$(command moodiary completion %[2]s 2>/dev/null)"
`

const bashHook = `if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__moodiary_prompt_hook"
else
  PROMPT_COMMAND="__moodiary_prompt_hook;${PROMPT_COMMAND}"
fi`

const zshHook = `autoload -Uz add-zsh-hook
add-zsh-hook precmd __moodiary_prompt_hook`

// WriteBashInit writes the bash shell integration script to the writer.
func WriteBashInit(w io.Writer) {
	fmt.Fprintf(w, initScript, bashHook, "bash")
}

// WriteZshInit writes the zsh shell integration script to the writer.
func WriteZshInit(w io.Writer) {
	fmt.Fprintf(w, initScript, zshHook, "zsh")
}
