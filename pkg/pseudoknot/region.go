package pseudoknot

import (
	"slices"

	"github.com/matzehuels/knotwork/pkg/bpseq"
)

// Region is a helix: a maximal run of stacked pairs (i, j), (i+1, j-1), ...
// Regions are the atomic unit of conflict analysis; a region is either kept
// or deferred as a whole.
//
// Begin and End are the outermost residues of the region. Regions produced by
// [ConflictMap.Simplify] may combine several helices, in which case Begin and
// End span all of them.
type Region struct {
	ID    int          // Position in the owning ConflictMap arena
	Begin int          // Opening residue of the outermost pair
	End   int          // Closing residue of the outermost pair
	Pairs []bpseq.Pair // Pairs ordered by opening residue
}

// Len returns the number of base pairs in the region.
func (r Region) Len() int { return len(r.Pairs) }

// Contains reports whether o lies within the span of r.
func (r Region) Contains(o Region) bool {
	return r.Begin <= o.Begin && o.End <= r.End
}

// Conflicting reports whether a and b cross: one region starts strictly
// inside the other and ends outside it.
func Conflicting(a, b Region) bool {
	return (a.Begin < b.Begin && b.Begin < a.End && a.End < b.End) ||
		(b.Begin < a.Begin && a.Begin < b.End && b.End < a.End)
}

// CreateRegions groups the pairs of s into regions ordered by Begin.
// Region IDs are their positions in the returned slice.
func CreateRegions(s *bpseq.BpSeq) []Region {
	var regions []Region
	for _, p := range s.Pairs() {
		if n := len(regions); n > 0 {
			last := &regions[n-1]
			tail := last.Pairs[len(last.Pairs)-1]
			if p.I == tail.I+1 && p.J == tail.J-1 {
				last.Pairs = append(last.Pairs, p)
				continue
			}
		}
		regions = append(regions, Region{
			ID:    len(regions),
			Begin: p.I,
			End:   p.J,
			Pairs: []bpseq.Pair{p},
		})
	}
	return regions
}

// mergeRegions combines a and b into a single region with the given ID.
func mergeRegions(id int, a, b Region) Region {
	pairs := make([]bpseq.Pair, 0, a.Len()+b.Len())
	pairs = append(pairs, a.Pairs...)
	pairs = append(pairs, b.Pairs...)
	slices.SortFunc(pairs, bpseq.ComparePairs)
	return Region{
		ID:    id,
		Begin: min(a.Begin, b.Begin),
		End:   max(a.End, b.End),
		Pairs: pairs,
	}
}

// compareRegions orders regions by Begin, then ID.
func compareRegions(a, b Region) int {
	if a.Begin != b.Begin {
		return a.Begin - b.Begin
	}
	return a.ID - b.ID
}

// collectPairs concatenates the pairs of regions.
func collectPairs(regions []Region) []bpseq.Pair {
	var pairs []bpseq.Pair
	for _, r := range regions {
		pairs = append(pairs, r.Pairs...)
	}
	return pairs
}
