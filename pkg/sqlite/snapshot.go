// Package sqlite provides the public API for SQLite dataset snapshots.
// This package exposes load and save functions while keeping the schema and
// row handling internal.
package sqlite

import (
	"errors"

	"github.com/mesh-intelligence/scholar/internal/sqlite"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

// Source is the read side of a store that can be saved. Every
// types.Catalog, including the one memory.NewStore returns, implements it.
type Source = sqlite.Source

var _ Source = types.Catalog(nil)

// Save replaces the snapshot at path with the records of src.
func Save(path string, src Source) error {
	return sqlite.WriteSnapshot(path, src)
}

// Load replays the snapshot at path into c and returns the number of
// applied records. Rows c refuses are joined into the returned error, each
// wrapping types.ErrRecordRejected; every accepted row stays applied.
//
// Example:
//
//	store := memory.NewStore()
//	n, err := sqlite.Load("dataset.db", store)
//	if errors.Is(err, types.ErrRecordRejected) {
//	    // some rows were refused; n rows were applied
//	}
func Load(path string, c types.Catalog) (int, error) {
	report, err := sqlite.LoadSnapshot(path, c)
	if err != nil {
		return 0, err
	}
	errs := make([]error, 0, len(report.Rejected))
	for _, r := range report.Rejected {
		errs = append(errs, r.Err)
	}
	return report.AppliedTotal(), errors.Join(errs...)
}
