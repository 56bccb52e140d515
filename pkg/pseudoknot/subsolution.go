package pseudoknot

import "slices"

// SubSolution is a conflict-free subset of the regions of one clique,
// identified by their positions in [Clique.Regions].
//
// The zero value is the empty solution.
type SubSolution struct {
	members []int
	score   int
	lowest  int // smallest endpoint covered, valid when members is non-empty
	highest int // largest endpoint covered, valid when members is non-empty
}

func singleton(c Clique, idx int) SubSolution {
	r := c.regions[idx]
	return SubSolution{members: []int{idx}, score: r.Len(), lowest: r.Begin, highest: r.End}
}

// Score returns the number of base pairs kept by the solution.
func (s SubSolution) Score() int { return s.score }

// Empty reports whether the solution keeps no region.
func (s SubSolution) Empty() bool { return len(s.members) == 0 }

// Members returns region positions within the clique, ascending.
func (s SubSolution) Members() []int { return slices.Clone(s.members) }

// Regions resolves the members against c.
func (s SubSolution) Regions(c Clique) []Region {
	out := make([]Region, len(s.members))
	for i, idx := range s.members {
		out[i] = c.regions[idx]
	}
	return out
}

// combine returns the union of two disjoint solutions.
func combine(a, b SubSolution) SubSolution {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	members := make([]int, 0, len(a.members)+len(b.members))
	members = append(members, a.members...)
	members = append(members, b.members...)
	slices.Sort(members)
	return SubSolution{
		members: members,
		score:   a.score + b.score,
		lowest:  min(a.lowest, b.lowest),
		highest: max(a.highest, b.highest),
	}
}

func compareSubSolutions(a, b SubSolution) int {
	return slices.Compare(a.members, b.members)
}

// canonical drops duplicate solutions and orders the rest by membership.
func canonical(sols []SubSolution) []SubSolution {
	slices.SortFunc(sols, compareSubSolutions)
	return slices.CompactFunc(sols, func(a, b SubSolution) bool {
		return compareSubSolutions(a, b) == 0
	})
}
