// This file implements dataset loading. Records are applied in file order
// through the public Catalog operations, so a dataset can never bypass the
// store's integrity rules.
package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// Rejection describes a parseable dataset line that was not applied.
type Rejection struct {
	Line int
	Kind string
	Err  error
}

// LoadReport summarizes a dataset load.
type LoadReport struct {
	// Applied counts successfully applied records by kind.
	Applied map[string]int
	// Skipped counts lines that were not valid JSON.
	Skipped int
	// Rejected lists valid JSON lines that were malformed records or were
	// refused by the store.
	Rejected []Rejection
}

// AppliedTotal returns the number of applied records of every kind.
func (r *LoadReport) AppliedTotal() int {
	total := 0
	for _, n := range r.Applied {
		total += n
	}
	return total
}

// LoadFile opens path and loads it into c.
func LoadFile(path string, c types.Catalog) (*LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	report, err := Load(f, c)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return report, nil
}

// Load applies every record of the JSONL stream r to c. Invalid lines and
// refused records are reported, not returned as errors; only read failures
// abort the load. Records applied before a read failure stay applied.
func Load(r io.Reader, c types.Catalog) (*LoadReport, error) {
	lines, skipped, err := readJSONL(r)
	if err != nil {
		return nil, err
	}

	report := &LoadReport{
		Applied: make(map[string]int, len(types.RecordKinds)),
		Skipped: skipped,
	}
	for _, line := range lines {
		kind, err := applyRecord(c, line.Raw)
		if err != nil {
			report.Rejected = append(report.Rejected, Rejection{Line: line.Num, Kind: kind, Err: err})
			continue
		}
		report.Applied[kind]++
	}
	return report, nil
}

// applyRecord decodes one record and applies it to c, returning the record
// kind.
func applyRecord(c types.Catalog, raw json.RawMessage) (string, error) {
	var h recordHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidRecord, err)
	}

	switch h.Type {
	case types.KindAffiliation:
		var rec affiliationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return h.Type, fmt.Errorf("%w: %v", types.ErrInvalidRecord, err)
		}
		if rec.ID == "" || rec.X == nil || rec.Y == nil {
			return h.Type, fmt.Errorf("%w: affiliation needs id, x and y", types.ErrInvalidRecord)
		}
		if !c.AddAffiliation(rec.ID, rec.Name, types.Coord{X: *rec.X, Y: *rec.Y}) {
			return h.Type, fmt.Errorf("%w: affiliation %q", types.ErrRecordRejected, rec.ID)
		}

	case types.KindPublication:
		var rec publicationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return h.Type, fmt.Errorf("%w: %v", types.ErrInvalidRecord, err)
		}
		if rec.ID == nil || rec.Year == nil {
			return h.Type, fmt.Errorf("%w: publication needs id and year", types.ErrInvalidRecord)
		}
		if !c.AddPublication(*rec.ID, rec.Name, *rec.Year, rec.Affiliations) {
			return h.Type, fmt.Errorf("%w: publication %d", types.ErrRecordRejected, *rec.ID)
		}

	case types.KindReference:
		var rec referenceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return h.Type, fmt.Errorf("%w: %v", types.ErrInvalidRecord, err)
		}
		if rec.ID == nil || rec.Parent == nil {
			return h.Type, fmt.Errorf("%w: reference needs id and parent", types.ErrInvalidRecord)
		}
		if !c.AddReference(*rec.ID, *rec.Parent) {
			return h.Type, fmt.Errorf("%w: reference %d -> %d", types.ErrRecordRejected, *rec.ID, *rec.Parent)
		}

	case types.KindLink:
		var rec linkRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return h.Type, fmt.Errorf("%w: %v", types.ErrInvalidRecord, err)
		}
		if rec.Affiliation == "" || rec.Publication == nil {
			return h.Type, fmt.Errorf("%w: link needs affiliation and publication", types.ErrInvalidRecord)
		}
		if !c.AddAffiliationToPublication(rec.Affiliation, *rec.Publication) {
			return h.Type, fmt.Errorf("%w: link %q -> %d", types.ErrRecordRejected, rec.Affiliation, *rec.Publication)
		}

	default:
		return h.Type, fmt.Errorf("%w: %q", types.ErrUnknownRecordType, h.Type)
	}
	return h.Type, nil
}
