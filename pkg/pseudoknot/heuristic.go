package pseudoknot

import "github.com/matzehuels/knotwork/pkg/bpseq"

// Resolver splits a paired sequence into a nested part that stays at the
// current bracket level and one or more alternative deferred parts.
//
// Resolve returns the deferred parts: each is a BpSeq over the same residues
// holding only the pairs removed from the current level. A result with no
// pairs means everything fits in one level. Resolvers never mutate their
// input and return at least one element.
type Resolver interface {
	Name() string
	Resolve(s *bpseq.BpSeq) []*bpseq.BpSeq
}

// Heuristic resolves conflicts greedily: it defers the region picked by its
// Selector until nothing crosses, then brings back every deferred region that
// no longer crosses a kept one.
type Heuristic struct {
	Selector Selector
}

// NewHeuristic returns a greedy resolver. A nil selector means
// [EliminationGain].
func NewHeuristic(sel Selector) *Heuristic {
	if sel == nil {
		sel = EliminationGain()
	}
	return &Heuristic{Selector: sel}
}

func (h *Heuristic) Name() string { return StrategyHeuristic }

// Resolve returns exactly one deferred sequence.
func (h *Heuristic) Resolve(s *bpseq.BpSeq) []*bpseq.BpSeq {
	m := NewConflictMap(CreateRegions(s))
	deferred := h.RemoveRegions(m)
	return []*bpseq.BpSeq{s.OnlyPairs(collectPairs(deferred))}
}

// RemoveRegions removes regions from m until no conflicts remain and returns
// the removed ones ordered by Begin. On return m holds a conflict-free set.
func (h *Heuristic) RemoveRegions(m *ConflictMap) []Region {
	var removed []int
	for m.HasAnyConflicts() {
		id := h.Selector.Select(m, m.ConflictedRegions())
		m.Remove(id)
		removed = append(removed, id)
	}

	var deferred []Region
	for _, id := range m.sortIDs(removed) {
		if !m.CrossesAny(id) {
			m.Restore(id)
			continue
		}
		deferred = append(deferred, m.Region(id))
	}
	return deferred
}
