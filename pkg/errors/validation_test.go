package errors

import (
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 1, false},
		{"large", 1 << 20, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("max_clique_size", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	allowed := []string{"heuristic", "exact"}

	if err := ValidateOneOf("strategy", "exact", allowed); err != nil {
		t.Errorf("ValidateOneOf(exact) error = %v", err)
	}
	err := ValidateOneOf("strategy", "greedy", allowed)
	if err == nil {
		t.Fatal("ValidateOneOf(greedy) should fail")
	}
	if UserMessage(err) != `invalid strategy: "greedy" (must be one of: heuristic, exact)` {
		t.Errorf("unexpected message: %s", UserMessage(err))
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/1ehz.bpseq", false},
		{"absolute", "/tmp/1ehz.bpseq", false},
		{"stdin marker", "-", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBase(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", "G", false},
		{"lowercase", "u", false},
		{"modified", "P", false},
		{"gap", "-", false},

		{"empty", "", true},
		{"two chars", "GC", true},
		{"space", " ", true},
		{"control", "\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBase(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBase(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeMalformedInput)
			}
		})
	}
}
