package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chris-regnier/moodiary/internal/entry"
	"github.com/chris-regnier/moodiary/internal/export"
	"github.com/chris-regnier/moodiary/internal/ui"
)

var (
	exportMonth string
	exportFrom  string
	exportTo    string
	exportOut   string
)

type exportResult struct {
	Format  string `json:"format"`
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

var exportCmd = &cobra.Command{
	Use:   "export <text|pdf>",
	Short: "Export entries as a text or PDF document",
	Long: `Export entries as plain text or as a PDF with one page per entry.

Without --month or --from/--to every entry is exported. The file is written
to the current directory as diary_export_<unix time>.<ext> unless --out is
given; --out - writes to stdout.`,
	Example: `  moodiary export pdf --month 2024-03
  moodiary export text --out diary.txt
  moodiary export text --out - | less`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"text", "pdf"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		var write func(io.Writer, []entry.Entry) error
		var ext string
		switch format {
		case "text":
			write = func(w io.Writer, es []entry.Entry) error { return export.Text(w, es, location()) }
			ext = "txt"
		case "pdf":
			write = func(w io.Writer, es []entry.Entry) error { return export.PDF(w, es, location()) }
			ext = "pdf"
		default:
			return usageError("unknown export format %q (supported: text, pdf)", format)
		}

		entries, err := exportEntries()
		if err != nil {
			return err
		}

		if exportOut == "-" {
			return write(cmd.OutOrStdout(), entries)
		}
		path := exportOut
		if path == "" {
			path = export.FileName(now(), ext)
		}
		if err := writeFile(path, entries, write); err != nil {
			return err
		}
		appLogger.Info("export complete", "format", format, "path", path, "entries", len(entries))

		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), exportResult{Format: format, Path: path, Entries: len(entries)})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), path)
		return nil
	},
}

func exportEntries() ([]entry.Entry, error) {
	if exportMonth == "" && exportFrom == "" && exportTo == "" {
		return store.FetchAll()
	}
	start, end, err := dateWindow(exportMonth, exportFrom, exportTo)
	if err != nil {
		return nil, err
	}
	return store.FetchRange(start, end)
}

func writeFile(path string, entries []entry.Entry, write func(io.Writer, []entry.Entry) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := write(f, entries); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing export: %w", err)
	}
	return f.Close()
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "export one month (YYYY-MM)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "first day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "last day (YYYY-MM-DD)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}
