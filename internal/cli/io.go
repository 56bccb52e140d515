package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/pipeline"
)

// stdinPath selects standard input as the input file.
const stdinPath = "-"

// formatFromExt maps well-known file extensions to input formats.
// Unknown extensions return "" so the content is sniffed instead.
func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bpseq":
		return pipeline.FormatBPSEQ
	case ".db", ".dbn", ".dot":
		return pipeline.FormatDotBracket
	}
	return ""
}

// readInput loads a structure from path, or from stdin when path is empty
// or "-". BPSEQ files are read through [bpseq.ReadFile].
func readInput(stdin io.Reader, path, format string) (*bpseq.BpSeq, error) {
	if path == "" || path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "read stdin")
		}
		return pipeline.ParseInput(data, format)
	}

	if format == "" {
		format = formatFromExt(path)
	}
	if format == pipeline.FormatBPSEQ {
		return bpseq.ReadFile(path)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return pipeline.ParseInput(data, format)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
