// Package dotbracket encodes base pairs as multi-level dot-bracket strings.
//
// Each nesting level owns one opener/closer pair from a fixed 30-symbol
// alphabet: level 0 is "()", then "[]", "{}", "<>", "Aa" through "Zz".
// Unpaired residues are written as '.'. Within one level, brackets are
// balanced and never cross; pairs that would cross go to a deeper level.
package dotbracket

import (
	"strings"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Unpaired marks a residue without a partner.
const Unpaired = '.'

// MaxLevels is the number of bracket levels the alphabet can express.
const MaxLevels = 30

const (
	openers = "([{<ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	closers = ")]}>abcdefghijklmnopqrstuvwxyz"
)

// Opener returns the opening symbol of level. It panics if level is outside
// [0, MaxLevels).
func Opener(level int) byte { return openers[level] }

// Closer returns the closing symbol of level. It panics if level is outside
// [0, MaxLevels).
func Closer(level int) byte { return closers[level] }

// LevelOf classifies a structure symbol. ok is false for '.' and for symbols
// outside the alphabet.
func LevelOf(c byte) (level int, opening bool, ok bool) {
	if i := strings.IndexByte(openers, c); i >= 0 {
		return i, true, true
	}
	if i := strings.IndexByte(closers, c); i >= 0 {
		return i, false, true
	}
	return 0, false, false
}

// DotBracket is a sequence annotated with its multi-level bracket structure.
// Sequence may be empty when only the structure is known.
type DotBracket struct {
	Sequence  string `json:"sequence,omitempty"`
	Structure string `json:"structure"`
}

// New validates structure (and its length against sequence, if given).
func New(sequence, structure string) (DotBracket, error) {
	if sequence != "" && len(sequence) != len(structure) {
		return DotBracket{}, kerrors.New(kerrors.ErrCodeInvalidFormat,
			"sequence has %d residues but structure has %d", len(sequence), len(structure))
	}
	if _, err := Parse(structure); err != nil {
		return DotBracket{}, err
	}
	return DotBracket{Sequence: sequence, Structure: structure}, nil
}

// String returns the sequence and structure on separate lines.
func (d DotBracket) String() string {
	if d.Sequence == "" {
		return d.Structure
	}
	return d.Sequence + "\n" + d.Structure
}

// Levels returns the pairs of every bracket level. d is assumed valid.
func (d DotBracket) Levels() [][]bpseq.Pair {
	levels, _ := Parse(d.Structure)
	return levels
}

// ToBpSeq converts d back into a paired sequence. Residues are named 'N'
// when d has no sequence.
func (d DotBracket) ToBpSeq() (*bpseq.BpSeq, error) {
	levels, err := Parse(d.Structure)
	if err != nil {
		return nil, err
	}
	var pairs []bpseq.Pair
	for _, lvl := range levels {
		pairs = append(pairs, lvl...)
	}
	return bpseq.FromPairs(d.Sequence, len(d.Structure), pairs)
}

// Parse splits structure into its bracket levels. The returned slice is
// indexed by level and ends at the deepest level in use; pairs within a level
// are ordered by closing residue. Unbalanced brackets or unknown symbols are
// reported with the INVALID_FORMAT code.
func Parse(structure string) ([][]bpseq.Pair, error) {
	var stacks [MaxLevels][]int
	var levels [][]bpseq.Pair
	for pos := 0; pos < len(structure); pos++ {
		c := structure[pos]
		if c == Unpaired {
			continue
		}
		level, opening, ok := LevelOf(c)
		if !ok {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "unknown symbol %q at position %d", c, pos+1)
		}
		if opening {
			stacks[level] = append(stacks[level], pos+1)
			continue
		}
		st := stacks[level]
		if len(st) == 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "unmatched %q at position %d", c, pos+1)
		}
		open := st[len(st)-1]
		stacks[level] = st[:len(st)-1]
		for len(levels) <= level {
			levels = append(levels, nil)
		}
		levels[level] = append(levels[level], bpseq.Pair{I: open, J: pos + 1})
	}
	for level, st := range stacks {
		if len(st) > 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "unmatched %q at position %d", Opener(level), st[len(st)-1])
		}
	}
	return levels, nil
}
