package pseudoknot

import (
	"github.com/andrew-torda/matrix"

	"github.com/matzehuels/knotwork/pkg/bpseq"
)

// Exact resolves each clique optimally with an interval dynamic program over
// the clique endpoints, keeping every tied optimum. Cliques with more than
// MaxCliqueSize endpoints are first thinned by removing regions chosen by
// Selector until they fit.
type Exact struct {
	Selector      Selector
	MaxCliqueSize int // Endpoint bound per clique
	MaxSolutions  int // Cap on returned alternatives; 0 means unbounded
}

// NewExact returns an exact resolver. A nil selector means [EliminationGain].
func NewExact(sel Selector, maxCliqueSize int) *Exact {
	if sel == nil {
		sel = EliminationGain()
	}
	return &Exact{Selector: sel, MaxCliqueSize: maxCliqueSize}
}

func (e *Exact) Name() string { return StrategyExact }

// Resolve returns one deferred sequence per combination of optimal clique
// solutions. Combinations are enumerated with earlier cliques varying
// slowest.
func (e *Exact) Resolve(s *bpseq.BpSeq) []*bpseq.BpSeq {
	m := NewConflictMap(CreateRegions(s))
	m.Simplify()
	e.thin(m)

	var base []bpseq.Pair
	for _, r := range m.Regions() {
		if !m.HasConflicts(r.ID) {
			base = append(base, r.Pairs...)
		}
	}

	kept := [][]bpseq.Pair{base}
	for _, c := range m.Cliques() {
		sols := e.SolveClique(c)
		next := make([][]bpseq.Pair, 0, len(kept)*len(sols))
	product:
		for _, prev := range kept {
			for _, sol := range sols {
				if e.MaxSolutions > 0 && len(next) == e.MaxSolutions {
					break product
				}
				pairs := make([]bpseq.Pair, 0, len(prev)+sol.Score())
				pairs = append(pairs, prev...)
				pairs = append(pairs, collectPairs(sol.Regions(c))...)
				next = append(next, pairs)
			}
		}
		kept = next
	}

	out := make([]*bpseq.BpSeq, len(kept))
	for i, pairs := range kept {
		out[i] = s.WithoutPairs(pairs)
	}
	return out
}

// thin removes regions from the largest oversized clique until every clique
// has at most MaxCliqueSize endpoints.
func (e *Exact) thin(m *ConflictMap) {
	for {
		var worst *Clique
		for _, c := range m.Cliques() {
			if c.EndpointCount() <= e.MaxCliqueSize {
				continue
			}
			if worst == nil || c.EndpointCount() > worst.EndpointCount() {
				worst = &c
			}
		}
		if worst == nil {
			return
		}
		ids := make([]int, worst.Size())
		for i, r := range worst.Regions() {
			ids[i] = r.ID
		}
		m.Remove(e.Selector.Select(m, ids))
	}
}

// SolveClique returns every maximum-score conflict-free subset of the
// clique's regions in canonical order. An empty clique yields the single
// empty solution.
//
// Cell (i, j) covers the regions lying within endpoints i..j. A cell is
// filled from its left and bottom neighbours, from the region spanning
// exactly (i, j) wrapped around the inner cell, and from every split point
// whose halves do not overlap.
func (e *Exact) SolveClique(c Clique) []SubSolution {
	n := c.EndpointCount()
	if n == 0 {
		return []SubSolution{{}}
	}

	// Scores are pair counts; float32 is exact for integers up to 2^24.
	best := matrix.NewFMatrix2d(n, n).Mat
	cells := make([][][]SubSolution, n)
	for i := range cells {
		cells[i] = make([][]SubSolution, n)
	}
	score := func(i, j int) int {
		if i >= j {
			return 0
		}
		return int(best[i][j])
	}
	cell := func(i, j int) []SubSolution {
		if i >= j {
			return nil
		}
		return cells[i][j]
	}

	for i := n - 2; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			target := max(score(i, j-1), score(i+1, j))
			span, spanned := c.FindRegion(c.Endpoint(i), c.Endpoint(j))
			if spanned {
				target = max(target, c.regions[span].Len()+score(i+1, j-1))
			}
			for k := i + 1; k < j-1; k++ {
				target = max(target, score(i, k)+score(k+1, j))
			}
			if target == 0 {
				continue
			}

			var cands []SubSolution
			if score(i, j-1) == target {
				cands = append(cands, cell(i, j-1)...)
			}
			if score(i+1, j) == target {
				cands = append(cands, cell(i+1, j)...)
			}
			if spanned && c.regions[span].Len()+score(i+1, j-1) == target {
				outer := singleton(c, span)
				inner := cell(i+1, j-1)
				if len(inner) == 0 {
					cands = append(cands, outer)
				}
				for _, in := range inner {
					cands = append(cands, combine(outer, in))
				}
			}
			for k := i + 1; k < j-1; k++ {
				if score(i, k) == 0 || score(k+1, j) == 0 || score(i, k)+score(k+1, j) != target {
					continue
				}
				for _, l := range cell(i, k) {
					for _, r := range cell(k+1, j) {
						if l.highest < r.lowest {
							cands = append(cands, combine(l, r))
						}
					}
				}
			}

			cells[i][j] = canonical(cands)
			best[i][j] = float32(target)
		}
	}

	if sols := cells[0][n-1]; len(sols) > 0 {
		return sols
	}
	return []SubSolution{{}}
}
