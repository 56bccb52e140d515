package pseudoknot

import (
	"slices"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	"github.com/matzehuels/knotwork/pkg/dotbracket"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Converter turns a paired sequence into multi-level dot-bracket notation by
// repeatedly resolving the pairs still waiting for a level. Each round
// expands every live state with its resolver and keeps at most
// maxStatesPerRound children.
//
// A Converter holds no per-call state and is safe for concurrent use as long
// as its resolver is.
type Converter struct {
	resolver  Resolver
	maxStates int
}

// NewConverter returns a converter using r with the given state cap.
func NewConverter(r Resolver, maxStatesPerRound int) (*Converter, error) {
	if r == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidConfig, "resolver is required")
	}
	if err := kerrors.ValidatePositive("max states per round", maxStatesPerRound); err != nil {
		return nil, err
	}
	return &Converter{resolver: r, maxStates: maxStatesPerRound}, nil
}

// Resolver returns the resolver used by c.
func (c *Converter) Resolver() Resolver { return c.resolver }

// Solution is one multi-level assignment of the input pairs.
type Solution struct {
	DotBracket dotbracket.DotBracket
	Levels     [][]bpseq.Pair // Pairs per bracket level, level 0 first
	Unassigned int            // Pairs beyond the last alphabet level, left as '.'
}

// Conversion is the outcome of [Converter.Convert].
type Conversion struct {
	Best         Solution
	Alternatives []Solution // Ranked best first; Alternatives[0] equals Best
	Rounds       int
	States       int // States created, including the initial one
}

// state is one node of the resolution tree. level is the bracket level the
// remaining pairs in seq are waiting for; score is their count.
type state struct {
	parent int
	seq    *bpseq.BpSeq
	level  int
	score  int
}

// Convert assigns every pair of s to a bracket level. Inputs without
// crossings finish in one round with a single level.
func (c *Converter) Convert(s *bpseq.BpSeq) *Conversion {
	arena := []state{{parent: -1, seq: s, score: s.PairCount()}}
	working := []int{0}
	rounds := 0
	for pending(arena, working) {
		arena, working = c.expand(arena, working)
		rounds++
	}

	ranked := slices.Clone(working)
	slices.SortStableFunc(ranked, func(a, b int) int {
		return compareStates(arena, a, b)
	})

	conv := &Conversion{Rounds: rounds, States: len(arena)}
	for _, idx := range ranked {
		conv.Alternatives = append(conv.Alternatives, traceback(arena, idx))
	}
	conv.Best = conv.Alternatives[0]
	return conv
}

func pending(arena []state, working []int) bool {
	for _, idx := range working {
		if arena[idx].score > 0 {
			return true
		}
	}
	return false
}

// expand runs one round. Finished states are carried over as they are so a
// cheap branch never loses its place to longer ones.
func (c *Converter) expand(arena []state, working []int) ([]state, []int) {
	next := make([]int, 0, c.maxStates)
	for _, idx := range working {
		if len(next) == c.maxStates {
			break
		}
		st := arena[idx]
		if st.score == 0 {
			next = append(next, idx)
			continue
		}
		for _, deferred := range c.resolver.Resolve(st.seq) {
			if len(next) == c.maxStates {
				break
			}
			arena = append(arena, state{
				parent: idx,
				seq:    deferred,
				level:  st.level + 1,
				score:  deferred.PairCount(),
			})
			next = append(next, len(arena)-1)
		}
	}
	return arena, next
}

// compareStates ranks finished states: fewer levels first, then fewer pairs
// deferred at each step walking back towards the root.
func compareStates(arena []state, a, b int) int {
	for a >= 0 && b >= 0 {
		sa, sb := arena[a], arena[b]
		if sa.level != sb.level {
			return sa.level - sb.level
		}
		if sa.score != sb.score {
			return sa.score - sb.score
		}
		a, b = sa.parent, sb.parent
	}
	return 0
}

// traceback rebuilds the level assignment ending at state idx. The pairs
// kept at level l are those of the level-l state missing from its child.
func traceback(arena []state, idx int) Solution {
	var chain []int
	for i := idx; i >= 0; i = arena[i].parent {
		chain = append(chain, i)
	}
	slices.Reverse(chain)

	root := arena[chain[0]].seq
	b := dotbracket.NewBuilder(root.Len())
	var levels [][]bpseq.Pair
	for k := 0; k+1 < len(chain); k++ {
		cur, child := arena[chain[k]], arena[chain[k+1]]
		var kept []bpseq.Pair
		for _, p := range cur.seq.Pairs() {
			if child.seq.Partner(p.I) != p.J {
				kept = append(kept, p)
			}
		}
		b.Assign(cur.level, kept)
		levels = append(levels, kept)
	}

	return Solution{
		DotBracket: dotbracket.DotBracket{Sequence: root.Sequence(), Structure: b.String()},
		Levels:     levels,
		Unassigned: b.Unassigned(),
	}
}
