package memory

import "github.com/mesh-intelligence/scholar/pkg/types"

// Link is one affiliation-publication link.
type Link struct {
	Affiliation types.AffiliationID
	Publication types.PublicationID
}

// LinkSource is the read side LinkOrder walks. *Store implements it.
type LinkSource interface {
	AllAffiliations() []types.AffiliationID
	Affiliation(id types.AffiliationID) (*types.Affiliation, bool)
	AllPublications() []types.PublicationID
	Publication(id types.PublicationID) (*types.Publication, bool)
}

var _ LinkSource = (*Store)(nil)

// linkNode is the k-th link between one affiliation and one publication.
type linkNode struct {
	affiliation types.AffiliationID
	publication types.PublicationID
	k           int
}

// LinkOrder returns every link of src in an order that, replayed through
// AddAffiliationToPublication onto unlinked records, rebuilds each
// affiliation's publication list exactly. Each publication's affiliation list
// is rebuilt exactly too whenever the lists arose from appends alone. A
// PublicationsAfter call reorders an affiliation's list in place, and the
// two sides can then disagree. The affiliation side wins.
func LinkOrder(src LinkSource) []Link {
	var chains [][]linkNode
	total := 0
	for _, aid := range src.AllAffiliations() {
		a, ok := src.Affiliation(aid)
		if !ok || len(a.Publications) == 0 {
			continue
		}
		seen := make(map[types.PublicationID]int, len(a.Publications))
		chain := make([]linkNode, 0, len(a.Publications))
		for _, pid := range a.Publications {
			chain = append(chain, linkNode{affiliation: aid, publication: pid, k: seen[pid]})
			seen[pid]++
		}
		chains = append(chains, chain)
		total += len(chain)
	}

	pubChains := make(map[types.PublicationID][]linkNode)
	for _, pid := range src.AllPublications() {
		p, ok := src.Publication(pid)
		if !ok {
			continue
		}
		seen := make(map[types.AffiliationID]int, len(p.Affiliations))
		for _, aid := range p.Affiliations {
			pubChains[pid] = append(pubChains[pid], linkNode{affiliation: aid, publication: pid, k: seen[aid]})
			seen[aid]++
		}
	}

	emitted := make(map[linkNode]bool, total)
	pubHeads := make(map[types.PublicationID]int, len(pubChains))
	isPubHead := func(n linkNode) bool {
		chain := pubChains[n.publication]
		i := pubHeads[n.publication]
		for i < len(chain) && emitted[chain[i]] {
			i++
		}
		pubHeads[n.publication] = i
		return i < len(chain) && chain[i] == n
	}

	heads := make([]int, len(chains))
	out := make([]Link, 0, total)
	emit := func(ci int) {
		n := chains[ci][heads[ci]]
		heads[ci]++
		emitted[n] = true
		out = append(out, Link{Affiliation: n.affiliation, Publication: n.publication})
	}

	for len(out) < total {
		progress := false
		for ci := range chains {
			for heads[ci] < len(chains[ci]) && isPubHead(chains[ci][heads[ci]]) {
				emit(ci)
				progress = true
			}
		}
		if progress {
			continue
		}
		// The two sides disagree: take the head of the first unfinished
		// affiliation and let its publication list differ.
		for ci := range chains {
			if heads[ci] < len(chains[ci]) {
				emit(ci)
				break
			}
		}
	}
	return out
}
