package pseudoknot

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	"github.com/matzehuels/knotwork/pkg/dotbracket"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

func mustConverter(t *testing.T, cfg Config) *Converter {
	t.Helper()
	c, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return c
}

func bothStrategies() []Config {
	exact := DefaultConfig()
	heuristic := DefaultConfig()
	heuristic.Strategy = StrategyHeuristic
	return []Config{exact, heuristic}
}

func TestNewConverter_Invalid(t *testing.T) {
	if _, err := NewConverter(nil, 10); !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("nil resolver: expected INVALID_CONFIG, got %v", err)
	}
	if _, err := NewConverter(NewHeuristic(nil), 0); !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("zero cap: expected INVALID_CONFIG, got %v", err)
	}
}

func TestConvert_Nested(t *testing.T) {
	s, err := bpseq.ReadString("1 G 6\n2 G 5\n3 A 0\n4 A 0\n5 C 2\n6 C 1\n")
	if err != nil {
		t.Fatal(err)
	}
	for _, cfg := range bothStrategies() {
		conv := mustConverter(t, cfg).Convert(s)
		if got := conv.Best.DotBracket.Structure; got != "((..))" {
			t.Errorf("%s: structure = %q, want ((..))", cfg.Strategy, got)
		}
		if conv.Best.DotBracket.Sequence != "GGAACC" {
			t.Errorf("%s: sequence = %q", cfg.Strategy, conv.Best.DotBracket.Sequence)
		}
		if conv.Rounds != 1 || len(conv.Best.Levels) != 1 {
			t.Errorf("%s: rounds %d levels %d, want 1 and 1", cfg.Strategy, conv.Rounds, len(conv.Best.Levels))
		}
	}
}

func TestConvert_Empty(t *testing.T) {
	conv := mustConverter(t, DefaultConfig()).Convert(mustPairs(t, 7))

	if got := conv.Best.DotBracket.Structure; got != "......." {
		t.Errorf("structure = %q, want all dots", got)
	}
	if conv.Rounds != 0 || len(conv.Best.Levels) != 0 || len(conv.Alternatives) != 1 {
		t.Errorf("unexpected conversion: %+v", conv)
	}
}

func TestConvert_AlphabetExhausted(t *testing.T) {
	const n = dotbracket.MaxLevels + 2
	pairs := make([]bpseq.Pair, n)
	for i := range pairs {
		pairs[i] = bpseq.Pair{I: i + 1, J: i + 1 + n}
	}
	s := mustPairs(t, 2*n, pairs...)

	for _, cfg := range bothStrategies() {
		best := mustConverter(t, cfg).Convert(s).Best
		if len(best.Levels) != n {
			t.Fatalf("%s: expected %d levels, got %d", cfg.Strategy, n, len(best.Levels))
		}
		if best.Unassigned != 2 {
			t.Errorf("%s: unassigned = %d, want 2", cfg.Strategy, best.Unassigned)
		}
		structure := best.DotBracket.Structure
		for _, level := range best.Levels[dotbracket.MaxLevels:] {
			for _, p := range level {
				if structure[p.I-1] != dotbracket.Unpaired || structure[p.J-1] != dotbracket.Unpaired {
					t.Errorf("%s: pair %v beyond the alphabet should stay unpaired in %q", cfg.Strategy, p, structure)
				}
			}
		}
		last := dotbracket.MaxLevels - 1
		if !strings.ContainsRune(structure, rune(dotbracket.Opener(last))) ||
			!strings.ContainsRune(structure, rune(dotbracket.Closer(last))) {
			t.Errorf("%s: last alphabet level missing from %q", cfg.Strategy, structure)
		}
	}
}

func TestConvert_LevelPartition(t *testing.T) {
	for _, cfg := range bothStrategies() {
		conv := mustConverter(t, cfg).Convert(twelve(t))
		levels := conv.Best.Levels

		if len(levels) != 2 {
			t.Fatalf("%s: expected 2 levels, got %d", cfg.Strategy, len(levels))
		}
		want0 := []bpseq.Pair{{I: 1, J: 10}, {I: 2, J: 9}, {I: 3, J: 7}}
		want1 := []bpseq.Pair{{I: 4, J: 12}, {I: 5, J: 11}}
		if !slices.Equal(levels[0], want0) {
			t.Errorf("%s: level 0 = %v, want %v", cfg.Strategy, levels[0], want0)
		}
		if !slices.Equal(levels[1], want1) {
			t.Errorf("%s: level 1 = %v, want %v", cfg.Strategy, levels[1], want1)
		}
		if got := conv.Best.DotBracket.Structure; got != "((([[.).))]]" {
			t.Errorf("%s: structure = %q", cfg.Strategy, got)
		}
	}
}

func TestConvert_ThreeLevels(t *testing.T) {
	s := mustPairs(t, 8, bpseq.Pair{I: 1, J: 5}, bpseq.Pair{I: 2, J: 7}, bpseq.Pair{I: 3, J: 8})
	conv := mustConverter(t, DefaultConfig()).Convert(s)

	if got := conv.Best.DotBracket.Structure; got != "([{.).]}" {
		t.Errorf("structure = %q, want ([{.).]}", got)
	}
	if conv.Rounds != 3 {
		t.Errorf("rounds = %d, want 3", conv.Rounds)
	}
	if len(conv.Alternatives) != 6 {
		t.Errorf("expected 6 alternatives, got %d", len(conv.Alternatives))
	}
	for i, alt := range conv.Alternatives {
		if len(alt.Levels) != 3 {
			t.Errorf("alternative %d uses %d levels", i, len(alt.Levels))
		}
	}
}

func TestConvert_StateCap(t *testing.T) {
	s := mustPairs(t, 8, bpseq.Pair{I: 1, J: 5}, bpseq.Pair{I: 2, J: 7}, bpseq.Pair{I: 3, J: 8})
	for _, limit := range []int{1, 2, 4} {
		cfg := DefaultConfig()
		cfg.MaxStatesPerRound = limit
		conv := mustConverter(t, cfg).Convert(s)
		if len(conv.Alternatives) > limit {
			t.Errorf("cap %d: %d alternatives", limit, len(conv.Alternatives))
		}
		if conv.Best.DotBracket.Structure != "([{.).]}" {
			t.Errorf("cap %d: best = %q", limit, conv.Best.DotBracket.Structure)
		}
	}
}

func TestConvert_RanksFewerLevelsFirst(t *testing.T) {
	s := mustPairs(t, 12,
		bpseq.Pair{I: 1, J: 5},
		bpseq.Pair{I: 3, J: 8},
		bpseq.Pair{I: 4, J: 10},
	)
	conv := mustConverter(t, DefaultConfig()).Convert(s)
	for i := 1; i < len(conv.Alternatives); i++ {
		if len(conv.Alternatives[i].Levels) < len(conv.Alternatives[i-1].Levels) {
			t.Errorf("alternative %d has fewer levels than %d", i, i-1)
		}
	}
}

func TestConvert_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := randomBpSeq(t, rng, 40, 14)
	c := mustConverter(t, DefaultConfig())

	first := c.Convert(s)
	for i := 0; i < 5; i++ {
		again := c.Convert(s)
		if again.Best.DotBracket != first.Best.DotBracket || len(again.Alternatives) != len(first.Alternatives) {
			t.Fatalf("run %d differs: %q vs %q", i, again.Best.DotBracket.Structure, first.Best.DotBracket.Structure)
		}
	}
}

func TestConvert_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	converters := map[string]*Converter{}
	for _, cfg := range bothStrategies() {
		converters[cfg.Strategy] = mustConverter(t, cfg)
	}

	for trial := 0; trial < 100; trial++ {
		n := 20 + rng.Intn(30)
		s := randomBpSeq(t, rng, n, rng.Intn(n/2))
		for name, c := range converters {
			conv := c.Convert(s)
			if conv.Rounds > n/2 {
				t.Fatalf("trial %d %s: %d rounds for %d residues", trial, name, conv.Rounds, n)
			}
			for i, alt := range conv.Alternatives {
				checkSolution(t, s, alt)
				if t.Failed() {
					t.Fatalf("trial %d %s alternative %d:\n%s\n%s", trial, name, i, s, alt.DotBracket.Structure)
				}
			}
		}
	}
}

// checkSolution verifies that every level is crossing-free and balanced and
// that the brackets cover exactly the paired residues of s.
func checkSolution(t *testing.T, s *bpseq.BpSeq, sol Solution) {
	t.Helper()
	if sol.Unassigned != 0 {
		t.Errorf("%d pairs unassigned", sol.Unassigned)
	}
	for l, pairs := range sol.Levels {
		level, err := bpseq.FromPairs("", s.Len(), pairs)
		if err != nil {
			t.Errorf("level %d: %v", l, err)
			continue
		}
		if level.HasCrossings() {
			t.Errorf("level %d has crossings", l)
		}
	}
	parsed, err := dotbracket.Parse(sol.DotBracket.Structure)
	if err != nil {
		t.Errorf("structure does not parse: %v", err)
		return
	}
	var pairs []bpseq.Pair
	for _, lvl := range parsed {
		pairs = append(pairs, lvl...)
	}
	slices.SortFunc(pairs, bpseq.ComparePairs)
	if !slices.Equal(pairs, s.Pairs()) {
		t.Errorf("bracketed pairs %v, want %v", pairs, s.Pairs())
	}
}
