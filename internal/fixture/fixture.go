// Package fixture synthesizes deterministic test datasets of affiliations,
// publications and reference edges. The same Config always yields the same
// Dataset, so generated data can back reproducible tests.
package fixture

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// Fixture errors.
var (
	ErrInvalidConfig = errors.New("invalid fixture config")
	ErrRejected      = errors.New("fixture record rejected by store")
)

// Config controls dataset size and value ranges.
type Config struct {
	Seed         uint64
	Affiliations int
	Publications int
	// MaxCoord bounds both coordinate components to [-MaxCoord, MaxCoord].
	MaxCoord  int
	FirstYear types.Year
	LastYear  types.Year
	// MaxAuthors caps the affiliations linked to one publication.
	MaxAuthors int
	// ReferenceRate is the probability that a publication is given a parent
	// among the publications generated before it.
	ReferenceRate float64
}

// DefaultConfig returns a small dataset configuration.
func DefaultConfig() Config {
	return Config{
		Seed:          1,
		Affiliations:  20,
		Publications:  50,
		MaxCoord:      100,
		FirstYear:     1990,
		LastYear:      2024,
		MaxAuthors:    3,
		ReferenceRate: 0.7,
	}
}

// Validate checks ranges. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Affiliations < 0 || c.Publications < 0:
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	case c.MaxCoord < 0:
		return fmt.Errorf("%w: max coord must not be negative", ErrInvalidConfig)
	case c.LastYear < c.FirstYear || c.FirstYear < 0:
		return fmt.Errorf("%w: year range [%d, %d]", ErrInvalidConfig, c.FirstYear, c.LastYear)
	case c.Publications > 0 && c.Affiliations > 0 && c.MaxAuthors < 1:
		return fmt.Errorf("%w: max authors must be at least 1", ErrInvalidConfig)
	case c.ReferenceRate < 0 || c.ReferenceRate > 1:
		return fmt.Errorf("%w: reference rate %v outside [0, 1]", ErrInvalidConfig, c.ReferenceRate)
	}
	return nil
}

// Affiliation is a generated affiliation record.
type Affiliation struct {
	ID    types.AffiliationID
	Name  types.Name
	Coord types.Coord
}

// Publication is a generated publication record.
type Publication struct {
	ID           types.PublicationID
	Name         types.Name
	Year         types.Year
	Affiliations []types.AffiliationID
}

// Reference is a generated child-to-parent edge.
type Reference struct {
	ID     types.PublicationID
	Parent types.PublicationID
}

// Dataset is a generated set of records, in application order.
type Dataset struct {
	Affiliations []Affiliation
	Publications []Publication
	References   []Reference
}

var (
	institutions = []string{"University", "Institute", "College", "Academy", "Laboratory", "Observatory"}
	places       = []string{"Tampere", "Oulu", "Turku", "Espoo", "Lahti", "Kuopio", "Vaasa", "Joensuu", "Pori", "Rauma"}
	topics       = []string{"Graphs", "Caches", "Forests", "Indexes", "Queries", "Networks", "Sorting", "Hashing"}
	qualifiers   = []string{"On", "Towards", "Revisiting", "Scalable", "Practical", "Notes on"}
)

// AffiliationID derives the id of the n-th affiliation of a seed. Ids are
// name-based UUIDs, so they are stable across runs.
func AffiliationID(seed uint64, n int) types.AffiliationID {
	name := fmt.Sprintf("scholar://fixture/%d/affiliation/%d", seed, n)
	return types.AffiliationID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String())
}

// Generate builds the dataset described by cfg.
func Generate(cfg Config) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	ds := &Dataset{
		Affiliations: make([]Affiliation, 0, cfg.Affiliations),
		Publications: make([]Publication, 0, cfg.Publications),
	}

	for i := range cfg.Affiliations {
		ds.Affiliations = append(ds.Affiliations, Affiliation{
			ID:   AffiliationID(cfg.Seed, i),
			Name: fmt.Sprintf("%s of %s", pick(rng, institutions), pick(rng, places)),
			Coord: types.Coord{
				X: inRange(rng, -cfg.MaxCoord, cfg.MaxCoord),
				Y: inRange(rng, -cfg.MaxCoord, cfg.MaxCoord),
			},
		})
	}

	for i := range cfg.Publications {
		id := types.PublicationID(i + 1)
		ds.Publications = append(ds.Publications, Publication{
			ID:           id,
			Name:         fmt.Sprintf("%s %s %d", pick(rng, qualifiers), pick(rng, topics), id),
			Year:         types.Year(inRange(rng, int(cfg.FirstYear), int(cfg.LastYear))),
			Affiliations: pickAuthors(rng, ds.Affiliations, cfg.MaxAuthors),
		})
		if i > 0 && rng.Float64() < cfg.ReferenceRate {
			ds.References = append(ds.References, Reference{
				ID:     id,
				Parent: types.PublicationID(rng.IntN(i) + 1),
			})
		}
	}
	return ds, nil
}

// Apply inserts the dataset into c in order. It stops at the first record
// the store refuses and returns an error wrapping ErrRejected.
func (d *Dataset) Apply(c types.Catalog) error {
	for _, a := range d.Affiliations {
		if !c.AddAffiliation(a.ID, a.Name, a.Coord) {
			return fmt.Errorf("%w: affiliation %s", ErrRejected, a.ID)
		}
	}
	for _, p := range d.Publications {
		if !c.AddPublication(p.ID, p.Name, p.Year, p.Affiliations) {
			return fmt.Errorf("%w: publication %d", ErrRejected, p.ID)
		}
	}
	for _, r := range d.References {
		if !c.AddReference(r.ID, r.Parent) {
			return fmt.Errorf("%w: reference %d -> %d", ErrRejected, r.ID, r.Parent)
		}
	}
	return nil
}

func pick(rng *rand.Rand, words []string) string {
	return words[rng.IntN(len(words))]
}

func inRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// pickAuthors returns between one and maxAuthors distinct affiliations.
func pickAuthors(rng *rand.Rand, affiliations []Affiliation, maxAuthors int) []types.AffiliationID {
	if len(affiliations) == 0 {
		return nil
	}
	n := 1 + rng.IntN(min(maxAuthors, len(affiliations)))
	ids := make([]types.AffiliationID, 0, n)
	for _, idx := range rng.Perm(len(affiliations))[:n] {
		ids = append(ids, affiliations[idx].ID)
	}
	return ids
}
