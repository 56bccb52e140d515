package dotbracket

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

func TestAlphabet(t *testing.T) {
	if Opener(0) != '(' || Closer(0) != ')' {
		t.Errorf("level 0 = %c%c, want ()", Opener(0), Closer(0))
	}
	if Opener(4) != 'A' || Closer(4) != 'a' {
		t.Errorf("level 4 = %c%c, want Aa", Opener(4), Closer(4))
	}
	if Opener(MaxLevels-1) != 'Z' || Closer(MaxLevels-1) != 'z' {
		t.Errorf("last level = %c%c, want Zz", Opener(MaxLevels-1), Closer(MaxLevels-1))
	}

	for level := 0; level < MaxLevels; level++ {
		got, opening, ok := LevelOf(Opener(level))
		if !ok || !opening || got != level {
			t.Errorf("LevelOf(%c) = %d, %v, %v", Opener(level), got, opening, ok)
		}
		got, opening, ok = LevelOf(Closer(level))
		if !ok || opening || got != level {
			t.Errorf("LevelOf(%c) = %d, %v, %v", Closer(level), got, opening, ok)
		}
	}
	if _, _, ok := LevelOf('.'); ok {
		t.Error("LevelOf('.') should not be a bracket")
	}
}

func TestParse(t *testing.T) {
	levels, err := Parse("((..[[..))..]]")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("len(levels) = %d, want 2", len(levels))
	}
	if want := []bpseq.Pair{{I: 2, J: 9}, {I: 1, J: 10}}; !slices.Equal(levels[0], want) {
		t.Errorf("level 0 = %v, want %v", levels[0], want)
	}
	if want := []bpseq.Pair{{I: 6, J: 13}, {I: 5, J: 14}}; !slices.Equal(levels[1], want) {
		t.Errorf("level 1 = %v, want %v", levels[1], want)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name      string
		structure string
	}{
		{"unmatched closer", "..)"},
		{"unmatched opener", "((.)"},
		{"mismatched level", "(]"},
		{"unknown symbol", "(.#)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.structure)
			if !kerrors.Is(err, kerrors.ErrCodeInvalidFormat) {
				t.Errorf("Parse(%q) error = %v, want INVALID_FORMAT", tt.structure, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New("GGAACC", "((..))"); err != nil {
		t.Errorf("New() error: %v", err)
	}
	if _, err := New("GGAAC", "((..))"); err == nil {
		t.Error("New() with mismatched lengths should fail")
	}
	if _, err := New("", "(("); err == nil {
		t.Error("New() with unbalanced structure should fail")
	}
}

func TestToBpSeq(t *testing.T) {
	d := DotBracket{Sequence: "GGAAACCAUU", Structure: "((.[[))]]."}
	s, err := d.ToBpSeq()
	if err != nil {
		t.Fatalf("ToBpSeq() error: %v", err)
	}
	want := []bpseq.Pair{{I: 1, J: 7}, {I: 2, J: 6}, {I: 4, J: 9}, {I: 5, J: 8}}
	if got := s.Pairs(); !slices.Equal(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
	if s.Sequence() != d.Sequence {
		t.Errorf("Sequence() = %q", s.Sequence())
	}
	if !s.HasCrossings() {
		t.Error("two-level structure should cross")
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(12)
	b.Assign(0, []bpseq.Pair{{I: 1, J: 6}, {I: 2, J: 5}})
	b.Assign(1, []bpseq.Pair{{I: 3, J: 8}, {I: 1, J: 10}, {I: 11, J: 12}})
	if got, want := b.String(), "(([.)).]..[]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	// (1,10) loses position 1 to level 0, so position 10 stays unpaired.
	if got := b.String()[9]; got != Unpaired {
		t.Errorf("position 10 = %q, want %q", got, Unpaired)
	}

	b.Assign(MaxLevels, []bpseq.Pair{{I: 4, J: 9}})
	if b.Unassigned() != 1 {
		t.Errorf("Unassigned() = %d, want 1", b.Unassigned())
	}
}

func ExampleParse() {
	levels, _ := Parse("((..[[..))..]]")
	for level, pairs := range levels {
		fmt.Println(level, pairs)
	}
	// Output:
	// 0 [{2 9} {1 10}]
	// 1 [{6 13} {5 14}]
}
