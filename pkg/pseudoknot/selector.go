package pseudoknot

import (
	"slices"

	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Selector names.
const (
	SelectorEliminationGain      = "elimination-gain"
	SelectorEliminationConflicts = "elimination-conflicts"
	SelectorFewestPairs          = "fewest-pairs"
)

// Selector picks the next region to defer from a set of conflicted
// candidates. Implementations must be deterministic: the same map and
// candidates always yield the same ID.
type Selector interface {
	Name() string
	// Select returns one ID from candidates. candidates is never empty.
	Select(m *ConflictMap, candidates []int) int
}

// regionStats is what the built-in selectors rank regions by.
type regionStats struct {
	id            int
	begin         int
	pairs         int
	conflicts     int
	neighborPairs int
}

// gain is the number of pairs freed by removing the region minus the pairs
// lost with it.
func (s regionStats) gain() int { return s.neighborPairs - s.pairs }

func statsOf(m *ConflictMap, id int) regionStats {
	r := m.Region(id)
	s := regionStats{id: id, begin: r.Begin, pairs: r.Len(), conflicts: m.ConflictCount(id)}
	for _, n := range m.ConflictsWith(id) {
		s.neighborPairs += m.Region(n).Len()
	}
	return s
}

// rankedSelector selects the candidate ranked first by better.
type rankedSelector struct {
	name   string
	better func(a, b regionStats) bool
}

func (s rankedSelector) Name() string { return s.name }

func (s rankedSelector) Select(m *ConflictMap, candidates []int) int {
	best := statsOf(m, candidates[0])
	for _, id := range candidates[1:] {
		if cur := statsOf(m, id); s.better(cur, best) {
			best = cur
		}
	}
	return best.id
}

// EliminationGain defers the region whose removal frees the most pairs in
// conflicting regions relative to its own size. Ties go to the region with
// more conflicts, then fewer pairs, then the later Begin.
func EliminationGain() Selector {
	return rankedSelector{name: SelectorEliminationGain, better: func(a, b regionStats) bool {
		if a.gain() != b.gain() {
			return a.gain() > b.gain()
		}
		return moreConflicts(a, b)
	}}
}

// EliminationConflicts defers the region with the most conflicts. Ties go to
// the region with fewer pairs, then the later Begin.
func EliminationConflicts() Selector {
	return rankedSelector{name: SelectorEliminationConflicts, better: moreConflicts}
}

// FewestPairs defers the smallest conflicted region. Ties go to the region
// with more conflicts, then the later Begin.
func FewestPairs() Selector {
	return rankedSelector{name: SelectorFewestPairs, better: func(a, b regionStats) bool {
		if a.pairs != b.pairs {
			return a.pairs < b.pairs
		}
		if a.conflicts != b.conflicts {
			return a.conflicts > b.conflicts
		}
		return later(a, b)
	}}
}

func moreConflicts(a, b regionStats) bool {
	if a.conflicts != b.conflicts {
		return a.conflicts > b.conflicts
	}
	if a.pairs != b.pairs {
		return a.pairs < b.pairs
	}
	return later(a, b)
}

func later(a, b regionStats) bool {
	if a.begin != b.begin {
		return a.begin > b.begin
	}
	return a.id > b.id
}

var selectors = map[string]func() Selector{
	SelectorEliminationGain:      EliminationGain,
	SelectorEliminationConflicts: EliminationConflicts,
	SelectorFewestPairs:          FewestPairs,
}

// Selectors returns the names of the built-in selectors, sorted.
func Selectors() []string {
	names := make([]string, 0, len(selectors))
	for name := range selectors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SelectorByName returns the built-in selector with the given name.
func SelectorByName(name string) (Selector, error) {
	if err := kerrors.ValidateOneOf("selector", name, Selectors()); err != nil {
		return nil, err
	}
	return selectors[name](), nil
}
