package pipeline

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	"github.com/matzehuels/knotwork/pkg/dotbracket"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Input formats.
const (
	FormatBPSEQ      = "bpseq"
	FormatDotBracket = "dotbracket"
)

// ValidInputFormats is the set of supported input formats.
var ValidInputFormats = []string{FormatBPSEQ, FormatDotBracket}

// ValidateInputFormat checks that a format is supported.
func ValidateInputFormat(format string) error {
	return kerrors.ValidateOneOf("input format", format, ValidInputFormats)
}

// DetectFormat guesses the format of data from its first content line.
// Lines of the form "index base partner" mean BPSEQ; anything else is
// treated as dot-bracket.
func DetectFormat(data []byte) string {
	lines := contentLines(data)
	if len(lines) == 0 {
		return FormatBPSEQ
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 3 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			return FormatBPSEQ
		}
	}
	return FormatDotBracket
}

// ParseInput decodes data in the given format. An empty format is detected
// with [DetectFormat].
//
// Dot-bracket input is one structure line, optionally preceded by a sequence
// line. Lines starting with '>' or '#' are ignored.
func ParseInput(data []byte, format string) (*bpseq.BpSeq, error) {
	if format == "" {
		format = DetectFormat(data)
	}
	if err := ValidateInputFormat(format); err != nil {
		return nil, err
	}
	if format == FormatBPSEQ {
		return bpseq.Read(bytes.NewReader(data))
	}

	lines := contentLines(data)
	var sequence, structure string
	switch len(lines) {
	case 1:
		structure = lines[0]
	case 2:
		sequence, structure = lines[0], lines[1]
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat,
			"dot-bracket input needs a structure line and an optional sequence line, got %d lines", len(lines))
	}
	db, err := dotbracket.New(sequence, structure)
	if err != nil {
		return nil, err
	}
	return db.ToBpSeq()
}

func contentLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
