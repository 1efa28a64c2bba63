package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/scholar/internal/memory"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

// ErrSnapshotRead wraps failures to read a snapshot's rows.
var ErrSnapshotRead = errors.New("reading snapshot")

// Source is the read side of a store that can be snapshotted.
type Source = memory.LinkSource

// Publication ids are stored as the int64 with the same bits, since SQLite
// integers are signed.
func toColumn(id types.PublicationID) int64   { return int64(id) }
func fromColumn(v int64) types.PublicationID { return types.PublicationID(v) }

// WriteSnapshot replaces path with a snapshot of src. Rows are written in
// one transaction.
func WriteSnapshot(path string, src Source) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeAffiliations(tx, src); err != nil {
		return err
	}
	if err := writePublications(tx, src); err != nil {
		return err
	}
	if err := writeLinks(tx, src); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot transaction: %w", err)
	}
	return nil
}

func writeAffiliations(tx *sql.Tx, src Source) error {
	stmt, err := tx.Prepare("INSERT INTO affiliations (affiliation_id, ordinal, name, x, y) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for affiliations: %w", err)
	}
	defer stmt.Close()

	for i, id := range src.AllAffiliations() {
		a, ok := src.Affiliation(id)
		if !ok {
			continue
		}
		if _, err := stmt.Exec(string(a.ID), i, a.Name, a.Coord.X, a.Coord.Y); err != nil {
			return fmt.Errorf("inserting affiliation %s: %w", a.ID, err)
		}
	}
	return nil
}

func writePublications(tx *sql.Tx, src Source) error {
	pubStmt, err := tx.Prepare("INSERT INTO publications (publication_id, ordinal, name, year) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for publications: %w", err)
	}
	defer pubStmt.Close()

	refStmt, err := tx.Prepare("INSERT INTO publication_references (parent_id, position, child_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for publication_references: %w", err)
	}
	defer refStmt.Close()

	for i, id := range src.AllPublications() {
		p, ok := src.Publication(id)
		if !ok {
			continue
		}
		if _, err := pubStmt.Exec(toColumn(p.ID), i, p.Name, int64(p.Year)); err != nil {
			return fmt.Errorf("inserting publication %d: %w", p.ID, err)
		}
		for pos, cid := range p.References {
			if _, err := refStmt.Exec(toColumn(p.ID), pos, toColumn(cid)); err != nil {
				return fmt.Errorf("inserting reference %d -> %d: %w", cid, p.ID, err)
			}
		}
	}
	return nil
}

// writeLinks stores every link in memory.LinkOrder so replaying the table
// rebuilds each affiliation's publication list.
func writeLinks(tx *sql.Tx, src Source) error {
	stmt, err := tx.Prepare("INSERT INTO links (ordinal, affiliation_id, publication_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert for links: %w", err)
	}
	defer stmt.Close()

	for i, l := range memory.LinkOrder(src) {
		if _, err := stmt.Exec(i, string(l.Affiliation), toColumn(l.Publication)); err != nil {
			return fmt.Errorf("inserting link %s -> %d: %w", l.Affiliation, l.Publication, err)
		}
	}
	return nil
}

// LoadSnapshot replays the snapshot at path into c: affiliations, then
// publications, then references in each parent's order, then links. Rows
// the catalog refuses are reported, not returned; a rejection's Line is the
// 1-based row number within its table.
func LoadSnapshot(path string, c types.Catalog) (*memory.LoadReport, error) {
	// sql.Open would create a missing file.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer db.Close()

	report := &memory.LoadReport{Applied: make(map[string]int, len(types.RecordKinds))}
	if err := loadAffiliations(db, c, report); err != nil {
		return nil, err
	}
	if err := loadPublications(db, c, report); err != nil {
		return nil, err
	}
	if err := loadReferences(db, c, report); err != nil {
		return nil, err
	}
	if err := loadLinks(db, c, report); err != nil {
		return nil, err
	}
	return report, nil
}

func record(r *memory.LoadReport, kind string, row int, ok bool, detail string) {
	if ok {
		r.Applied[kind]++
		return
	}
	r.Rejected = append(r.Rejected, memory.Rejection{
		Line: row,
		Kind: kind,
		Err:  fmt.Errorf("%w: %s", types.ErrRecordRejected, detail),
	})
}

func loadAffiliations(db *sql.DB, c types.Catalog, report *memory.LoadReport) error {
	rows, err := db.Query("SELECT affiliation_id, name, x, y FROM affiliations ORDER BY ordinal")
	if err != nil {
		return fmt.Errorf("%w: affiliations: %v", ErrSnapshotRead, err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		var (
			id   string
			name string
			x, y int
		)
		if err := rows.Scan(&id, &name, &x, &y); err != nil {
			return fmt.Errorf("%w: affiliation row %d: %v", ErrSnapshotRead, row, err)
		}
		ok := c.AddAffiliation(types.AffiliationID(id), name, types.Coord{X: x, Y: y})
		record(report, types.KindAffiliation, row, ok, fmt.Sprintf("affiliation %q", id))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: affiliations: %v", ErrSnapshotRead, err)
	}
	return nil
}

func loadPublications(db *sql.DB, c types.Catalog, report *memory.LoadReport) error {
	rows, err := db.Query("SELECT publication_id, name, year FROM publications ORDER BY ordinal")
	if err != nil {
		return fmt.Errorf("%w: publications: %v", ErrSnapshotRead, err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		var (
			raw  int64
			name string
			year int
		)
		if err := rows.Scan(&raw, &name, &year); err != nil {
			return fmt.Errorf("%w: publication row %d: %v", ErrSnapshotRead, row, err)
		}
		id := fromColumn(raw)
		ok := c.AddPublication(id, name, types.Year(year), nil)
		record(report, types.KindPublication, row, ok, fmt.Sprintf("publication %d", id))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: publications: %v", ErrSnapshotRead, err)
	}
	return nil
}

func loadReferences(db *sql.DB, c types.Catalog, report *memory.LoadReport) error {
	rows, err := db.Query(`SELECT r.child_id, r.parent_id
FROM publication_references r
LEFT JOIN publications p ON p.publication_id = r.parent_id
ORDER BY p.ordinal, r.position`)
	if err != nil {
		return fmt.Errorf("%w: publication_references: %v", ErrSnapshotRead, err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		var child, parent int64
		if err := rows.Scan(&child, &parent); err != nil {
			return fmt.Errorf("%w: reference row %d: %v", ErrSnapshotRead, row, err)
		}
		id, parentID := fromColumn(child), fromColumn(parent)
		ok := c.AddReference(id, parentID)
		record(report, types.KindReference, row, ok, fmt.Sprintf("reference %d -> %d", id, parentID))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: publication_references: %v", ErrSnapshotRead, err)
	}
	return nil
}

func loadLinks(db *sql.DB, c types.Catalog, report *memory.LoadReport) error {
	rows, err := db.Query("SELECT affiliation_id, publication_id FROM links ORDER BY ordinal")
	if err != nil {
		return fmt.Errorf("%w: links: %v", ErrSnapshotRead, err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		var (
			aid string
			raw int64
		)
		if err := rows.Scan(&aid, &raw); err != nil {
			return fmt.Errorf("%w: link row %d: %v", ErrSnapshotRead, row, err)
		}
		id, pid := types.AffiliationID(aid), fromColumn(raw)
		ok := c.AddAffiliationToPublication(id, pid)
		record(report, types.KindLink, row, ok, fmt.Sprintf("link %q -> %d", id, pid))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: links: %v", ErrSnapshotRead, err)
	}
	return nil
}
