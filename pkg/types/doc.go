// Package types defines the Catalog interface, the affiliation and
// publication entity types, the sentinel values returned for absent
// records, and the standard error values for the scholar store.
package types
