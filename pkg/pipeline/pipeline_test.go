package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	"github.com/matzehuels/knotwork/pkg/cache"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/observability"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

const hairpinKnot = `# H-type pseudoknot
1 G 8
2 G 7
3 A 11
4 C 10
5 A 0
6 A 0
7 C 2
8 C 1
9 A 0
10 G 4
11 U 3
`

func mustParse(t *testing.T, data string) *bpseq.BpSeq {
	t.Helper()
	seq, err := ParseInput([]byte(data), "")
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	return seq
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Config() != pseudoknot.DefaultConfig() {
		t.Errorf("defaults = %+v, want %+v", opts.Config(), pseudoknot.DefaultConfig())
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative clique size", Options{MaxCliqueSize: -1}},
		{"negative states", Options{MaxStatesPerRound: -5}},
		{"unknown strategy", Options{Strategy: "random"}},
		{"unknown selector", Options{Selector: "largest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 G 0\n2 C 0\n", FormatBPSEQ},
		{"# comment\n\n1 G 2\n2 C 1\n", FormatBPSEQ},
		{"((..))\n", FormatDotBracket},
		{">seq1\nGGAACC\n((..))\n", FormatDotBracket},
		{"", FormatBPSEQ},
	}

	for _, tt := range tests {
		if got := DetectFormat([]byte(tt.input)); got != tt.want {
			t.Errorf("DetectFormat(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseInput(t *testing.T) {
	seq, err := ParseInput([]byte(">example\nGGAACC\n((..))\n"), "")
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if seq.Sequence() != "GGAACC" || seq.Partner(1) != 6 || seq.Partner(2) != 5 {
		t.Errorf("unexpected sequence: %s", seq)
	}

	if _, err := ParseInput([]byte("1 G 0\n"), "fasta"); !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("unknown format: expected INVALID_CONFIG, got %v", err)
	}
	if _, err := ParseInput([]byte("a\nb\nc\n"), FormatDotBracket); !kerrors.Is(err, kerrors.ErrCodeInvalidFormat) {
		t.Errorf("three lines: expected INVALID_FORMAT, got %v", err)
	}
	if _, err := ParseInput([]byte("1 G 2\n2 C 0\n"), FormatBPSEQ); !kerrors.Is(err, kerrors.ErrCodeMalformedInput) {
		t.Errorf("asymmetric pairing: expected MALFORMED_INPUT, got %v", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), mustParse(t, hairpinKnot), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.DotBracket.Structure != "(([[..)).]]" {
		t.Errorf("structure = %q", result.DotBracket.Structure)
	}
	if result.DotBracket.Sequence != "GGACAACCAGU" {
		t.Errorf("sequence = %q", result.DotBracket.Sequence)
	}
	if result.Stats.Residues != 11 || result.Stats.Pairs != 4 || result.Stats.Levels != 2 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
	if len(result.Alternatives) == 0 || result.Alternatives[0] != result.DotBracket.Structure {
		t.Errorf("alternatives should start with the best structure: %v", result.Alternatives)
	}
	if result.ID == "" || result.CacheHit {
		t.Errorf("fresh result should have an ID and no cache hit: %+v", result)
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	seq := mustParse(t, hairpinKnot)

	first, err := r.Execute(ctx, seq, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := r.Execute(ctx, seq, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.ID == first.ID {
		t.Error("each run should get its own ID")
	}
	if second.DotBracket != first.DotBracket || second.InputHash != first.InputHash {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}

	// Different options use a different key
	third, err := r.Execute(ctx, seq, Options{Strategy: pseudoknot.StrategyHeuristic})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheHit {
		t.Error("heuristic run should not reuse the exact result")
	}

	refreshed, err := r.Execute(ctx, seq, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, mustParse(t, hairpinKnot), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), mustParse(t, hairpinKnot), Options{MaxStatesPerRound: -1})
	if !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnConvertStart(context.Context, string, int, int) { h.record("start") }
func (h *recordingHooks) OnConvertComplete(context.Context, string, int, int, time.Duration, error) {
	h.record("complete")
}
func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.record("hit") }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.record("miss") }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.record("set") }

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	seq := mustParse(t, hairpinKnot)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), seq, Options{}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	want := []string{"start", "miss", "complete", "set", "start", "hit", "complete"}
	if len(hooks.events) != len(want) {
		t.Fatalf("events = %v, want %v", hooks.events, want)
	}
	for i := range want {
		if hooks.events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, hooks.events[i], want[i])
		}
	}
}
