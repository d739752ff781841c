package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chris-regnier/moodiary/internal/backup"
)

func TestBackupCreateListRestore(t *testing.T) {
	setupTestEnv(t)
	seedMarch(t)

	var res backup.Result
	decodeJSON(t, mustRun(t, "backup", "create", "--json"), &res)
	if res.Entries != 5 {
		t.Errorf("backed up %d entries, want 5", res.Entries)
	}
	if filepath.Dir(res.Path) != appConfig.BackupDir() {
		t.Errorf("backup written to %s, want dir %s", res.Path, appConfig.BackupDir())
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("backup file: %v", err)
	}

	out := mustRun(t, "backup", "list")
	if !strings.Contains(out, filepath.Base(res.Path)) {
		t.Errorf("list output missing backup:\n%s", out)
	}

	createEntry(t, "2024-02-01", 1, "written after the backup")
	out = mustRun(t, "backup", "restore", res.Path, "--force")
	if !strings.Contains(out, "Restored 5 entries.") {
		t.Errorf("unexpected restore output: %q", out)
	}
	all, _ := store.FetchAll()
	if len(all) != 5 {
		t.Errorf("entries after restore = %d, want 5", len(all))
	}
	for _, e := range all {
		if e.Content == "written after the backup" {
			t.Error("restore kept an entry missing from the backup")
		}
	}
}

func TestBackupListEmpty(t *testing.T) {
	setupTestEnv(t)

	if out := mustRun(t, "backup", "list"); !strings.Contains(out, "No backups found.") {
		t.Errorf("unexpected output: %q", out)
	}
	if out := mustRun(t, "backup", "list", "--json"); strings.TrimSpace(out) != "[]" {
		t.Errorf("json output = %q, want []", out)
	}
}

func TestBackupRestoreRepairsRecords(t *testing.T) {
	setupTestEnv(t)
	createEntry(t, "2024-03-01", 3, "replaced")

	path := filepath.Join(t.TempDir(), "import.json")
	doc := `[
  {"date": "2024-01-02T10:00:00Z", "content": "fine", "mood": 4, "tags": ["a"], "moodEmoji": "sun.max"},
  {"date": "2024-01-03T10:00:00Z", "content": "bad mood", "mood": "great", "tags": ["b"]}
]`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	var res backup.RestoreResult
	decodeJSON(t, mustRun(t, "backup", "restore", path, "--force", "--json"), &res)
	if res.Restored != 2 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Issues) != 1 || res.Issues[0].Field != "mood" {
		t.Errorf("issues = %+v", res.Issues)
	}

	all, _ := store.FetchAll()
	if len(all) != 2 || all[1].Mood != 3 {
		t.Errorf("entries = %+v", all)
	}
}

func TestBackupRestoreErrors(t *testing.T) {
	setupTestEnv(t)
	e := createEntry(t, "2024-03-01", 3, "keep me")

	_, err := runCmd(t, "backup", "restore", filepath.Join(t.TempDir(), "missing.json"), "--force")
	if !errors.Is(err, backup.ErrBackupNotFound) {
		t.Errorf("missing file: err = %v", err)
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(corrupt, []byte(`{"not": "an array"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = runCmd(t, "backup", "restore", corrupt, "--force")
	if !errors.Is(err, backup.ErrCorruptBackup) {
		t.Errorf("corrupt file: err = %v", err)
	}

	if _, err := store.Get(e.ID); err != nil {
		t.Errorf("failed restore touched the store: %v", err)
	}
}

func TestExportText(t *testing.T) {
	setupTestEnv(t)
	seedMarch(t)

	path := filepath.Join(t.TempDir(), "diary.txt")
	out := mustRun(t, "export", "text", "--month", "2024-03", "--out", path)
	if !strings.Contains(out, "Exported 4 entries to "+path) {
		t.Errorf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Count(text, "Date: ") != 4 || !strings.Contains(text, "Date: 2024-03-13") {
		t.Errorf("export text:\n%s", text)
	}
	if strings.Contains(text, "april") {
		t.Error("export ignored --month")
	}
}

func TestExportToStdout(t *testing.T) {
	setupTestEnv(t)
	seedMarch(t)

	out := mustRun(t, "export", "text", "--out", "-")
	if strings.Count(out, "Date: ") != 5 {
		t.Errorf("expected every entry exported:\n%s", out)
	}
}

func TestExportDefaultFileName(t *testing.T) {
	setupTestEnv(t)
	createEntry(t, "2024-03-10", 4, "pdf me")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	mustRun(t, "export", "pdf")

	want := filepath.Join(dir, "diary_export_1710504000.pdf")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	setupTestEnv(t)
	if _, err := runCmd(t, "export", "docx"); exitCode(err) != 1 {
		t.Errorf("err = %v, want usage error", err)
	}
}
