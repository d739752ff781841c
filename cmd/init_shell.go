package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/shell"
)

var shellScripts = map[string]func(io.Writer){
	"bash": shell.WriteBashInit,
	"zsh":  shell.WriteZshInit,
}

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Print the shell prompt integration",
	Long: `Print a script that keeps MOODIARY_TODAY, MOODIARY_STREAK,
MOODIARY_STREAK_ICON and MOODIARY_MOOD current before every prompt and
defines moodiary_prompt_info for use in PS1 or PROMPT. Completions are
loaded as well.

Supported shells: bash, zsh`,
	Example: `  # ~/.bashrc
  eval "$(moodiary init bash)"
  PS1='$(moodiary_prompt_info) \w \$ '

  # ~/.zshrc
  eval "$(moodiary init zsh)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		write, ok := shellScripts[args[0]]
		if !ok {
			return usageError("unsupported shell %q (supported: bash, zsh)", args[0])
		}
		write(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
