package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scholar/internal/memory"
	"github.com/mesh-intelligence/scholar/internal/sqlite"
)

// isSnapshot reports whether path names a SQLite snapshot rather than a
// JSONL dataset.
func isSnapshot(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// loadDataset loads path into store in the format its extension names.
func loadDataset(path string, store *memory.Store) (*memory.LoadReport, error) {
	if isSnapshot(path) {
		return sqlite.LoadSnapshot(path, store)
	}
	return memory.LoadFile(path, store)
}

// saveDataset writes store to path in the format its extension names.
func saveDataset(path string, store *memory.Store) error {
	if isSnapshot(path) {
		return sqlite.WriteSnapshot(path, store)
	}
	return memory.ExportFile(path, store)
}

// writeDataset writes store to out, where "-" means w as JSONL.
func writeDataset(w io.Writer, out string, store *memory.Store) error {
	if out == "-" {
		return memory.Export(w, store)
	}
	return saveDataset(out, store)
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the loaded dataset to another file",
		Long: "Export loads the configured dataset and writes the records the store\n" +
			"accepted to path. Paths ending in .db, .sqlite or .sqlite3 are written\n" +
			"as SQLite snapshots, - writes JSONL to stdout, anything else is JSONL.",
		Args: cobra.ExactArgs(1),
		RunE: runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			out := args[0]
			if err := writeDataset(cmd.OutOrStdout(), out, s.store); err != nil {
				return sysError(fmt.Errorf("write %s: %w", out, err))
			}
			if out != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d affiliations, %d publications to %s\n",
					s.store.AffiliationCount(), len(s.store.AllPublications()), out)
			}
			return nil
		}),
	}
}
