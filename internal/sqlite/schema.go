// Package sqlite stores scholar datasets as SQLite snapshots. A snapshot
// holds the same records as a JSONL dataset; loading one replays it into a
// types.Catalog in insertion order.
package sqlite

// Schema DDL for snapshot tables. Ordinals and positions preserve the
// insertion order of records and of every list.
const (
	createAffiliations = `CREATE TABLE affiliations (
    affiliation_id TEXT PRIMARY KEY,
    ordinal INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL,
    x INTEGER NOT NULL,
    y INTEGER NOT NULL
);`

	createPublications = `CREATE TABLE publications (
    publication_id INTEGER PRIMARY KEY,
    ordinal INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL,
    year INTEGER NOT NULL
);`

	createLinks = `CREATE TABLE links (
    ordinal INTEGER PRIMARY KEY,
    affiliation_id TEXT NOT NULL,
    publication_id INTEGER NOT NULL
);`

	createReferences = `CREATE TABLE publication_references (
    parent_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    child_id INTEGER NOT NULL,
    PRIMARY KEY (parent_id, position)
);`
)

// Index DDL.
const (
	idxReferencesChild = `CREATE UNIQUE INDEX idx_references_child ON publication_references(child_id);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createAffiliations,
	createPublications,
	createLinks,
	createReferences,
	idxReferencesChild,
}
