package bpseq

import (
	"slices"
	"strings"

	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Unpaired is the partner value of a residue that has no base-pair partner.
const Unpaired = 0

// Entry is one residue of a paired sequence. Index and Pair are 1-based;
// Pair is [Unpaired] for residues without a partner.
type Entry struct {
	Index int
	Base  byte
	Pair  int
}

// IsPaired reports whether the residue has a partner.
func (e Entry) IsPaired() bool { return e.Pair != Unpaired }

// Pair is a base pair between residues I and J with I < J.
type Pair struct {
	I, J int
}

// NewPair returns the pair of residues a and b in canonical (I < J) order.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{I: a, J: b}
}

// ComparePairs orders pairs by opening residue, then closing residue.
func ComparePairs(a, b Pair) int {
	if a.I != b.I {
		return a.I - b.I
	}
	return a.J - b.J
}

// Crosses reports whether p and q cross, i.e. cannot be drawn as nested
// parentheses in a single bracket level.
func (p Pair) Crosses(q Pair) bool {
	return (p.I < q.I && q.I < p.J && p.J < q.J) || (q.I < p.I && p.I < q.J && q.J < p.J)
}

// BpSeq is an immutable paired sequence. Every derivation returns a new value,
// so a BpSeq can be shared freely between resolution rounds.
//
// The zero value is an empty sequence.
type BpSeq struct {
	entries []Entry
}

// New validates entries and builds a BpSeq from them. Entries must be indexed
// 1..N in order, partners must lie within 1..N, no residue may pair with
// itself, and pairing must be symmetric. Violations are reported with
// [kerrors.ErrCodeMalformedInput].
func New(entries []Entry) (*BpSeq, error) {
	n := len(entries)
	for i, e := range entries {
		if e.Index != i+1 {
			return nil, kerrors.New(kerrors.ErrCodeMalformedInput,
				"residue %d has index %d, indices must be consecutive from 1", i+1, e.Index)
		}
		if e.Pair < 0 || e.Pair > n {
			return nil, kerrors.New(kerrors.ErrCodeMalformedInput,
				"residue %d pairs with %d, outside 1..%d", e.Index, e.Pair, n)
		}
		if e.Pair == e.Index {
			return nil, kerrors.New(kerrors.ErrCodeMalformedInput,
				"residue %d pairs with itself", e.Index)
		}
	}
	for _, e := range entries {
		if e.IsPaired() && entries[e.Pair-1].Pair != e.Index {
			return nil, kerrors.New(kerrors.ErrCodeMalformedInput,
				"residue %d pairs with %d but %d pairs with %d", e.Index, e.Pair, e.Pair, entries[e.Pair-1].Pair)
		}
	}
	return &BpSeq{entries: slices.Clone(entries)}, nil
}

// FromPairs builds a BpSeq over sequence from a list of pairs. A residue may
// appear in at most one pair. If sequence is empty, n residues named 'N' are
// created instead.
func FromPairs(sequence string, n int, pairs []Pair) (*BpSeq, error) {
	if sequence != "" {
		n = len(sequence)
	}
	entries := make([]Entry, n)
	for i := range entries {
		base := byte('N')
		if sequence != "" {
			base = sequence[i]
		}
		entries[i] = Entry{Index: i + 1, Base: base}
	}
	for _, p := range pairs {
		if p.I < 1 || p.J > n || p.I >= p.J {
			return nil, kerrors.New(kerrors.ErrCodeMalformedInput, "invalid pair (%d, %d) for %d residues", p.I, p.J, n)
		}
		if entries[p.I-1].IsPaired() || entries[p.J-1].IsPaired() {
			return nil, kerrors.New(kerrors.ErrCodeMalformedInput, "pair (%d, %d) reuses an already paired residue", p.I, p.J)
		}
		entries[p.I-1].Pair = p.J
		entries[p.J-1].Pair = p.I
	}
	return &BpSeq{entries: entries}, nil
}

// Len returns the number of residues.
func (s *BpSeq) Len() int { return len(s.entries) }

// Entries returns a copy of all residues in index order.
func (s *BpSeq) Entries() []Entry { return slices.Clone(s.entries) }

// Entry returns the residue with the given 1-based index.
func (s *BpSeq) Entry(index int) Entry { return s.entries[index-1] }

// Partner returns the partner of residue index, or [Unpaired].
func (s *BpSeq) Partner(index int) int { return s.entries[index-1].Pair }

// Sequence returns the residue symbols as a string.
func (s *BpSeq) Sequence() string {
	var b strings.Builder
	b.Grow(len(s.entries))
	for _, e := range s.entries {
		b.WriteByte(e.Base)
	}
	return b.String()
}

// Pairs returns every base pair once, ordered by opening residue.
func (s *BpSeq) Pairs() []Pair {
	var pairs []Pair
	for _, e := range s.entries {
		if e.IsPaired() && e.Index < e.Pair {
			pairs = append(pairs, Pair{I: e.Index, J: e.Pair})
		}
	}
	return pairs
}

// PairCount returns the number of base pairs.
func (s *BpSeq) PairCount() int {
	count := 0
	for _, e := range s.entries {
		if e.IsPaired() && e.Index < e.Pair {
			count++
		}
	}
	return count
}

// HasPairs reports whether any residue is paired.
func (s *BpSeq) HasPairs() bool {
	for _, e := range s.entries {
		if e.IsPaired() {
			return true
		}
	}
	return false
}

// WithoutPairs returns a copy with the given pairs unpaired. Pairs that are
// not present are ignored.
func (s *BpSeq) WithoutPairs(pairs []Pair) *BpSeq {
	entries := slices.Clone(s.entries)
	for _, p := range pairs {
		if entries[p.I-1].Pair == p.J {
			entries[p.I-1].Pair = Unpaired
			entries[p.J-1].Pair = Unpaired
		}
	}
	return &BpSeq{entries: entries}
}

// OnlyPairs returns a copy in which only the given pairs remain paired.
// Pairs that are not present in s are ignored.
func (s *BpSeq) OnlyPairs(pairs []Pair) *BpSeq {
	entries := slices.Clone(s.entries)
	for i := range entries {
		entries[i].Pair = Unpaired
	}
	for _, p := range pairs {
		if s.entries[p.I-1].Pair == p.J {
			entries[p.I-1].Pair = p.J
			entries[p.J-1].Pair = p.I
		}
	}
	return &BpSeq{entries: entries}
}

// Equal reports whether both sequences have the same residues and pairing.
func (s *BpSeq) Equal(o *BpSeq) bool {
	return slices.Equal(s.entries, o.entries)
}

// HasCrossings reports whether any two pairs cross.
func (s *BpSeq) HasCrossings() bool {
	// Pairs are nested iff a stack walk closes them in order.
	var stack []int
	for _, e := range s.entries {
		if !e.IsPaired() {
			continue
		}
		if e.Index < e.Pair {
			stack = append(stack, e.Pair)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != e.Index {
			return true
		}
		stack = stack[:len(stack)-1]
	}
	return false
}
