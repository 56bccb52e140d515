package bpseq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"

	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Read decodes BPSEQ text from r. Each non-blank line holds
// "index base partner" separated by whitespace; lines starting with '#' are
// comments. The decoded entries are validated with [New].
//
// Read does not close r.
func Read(r io.Reader) (*BpSeq, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := parseLine(text)
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeMalformedInput, err, "line %d", line)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "read bpseq")
	}
	return New(entries)
}

// ReadString decodes BPSEQ text held in a string.
func ReadString(s string) (*BpSeq, error) {
	return Read(strings.NewReader(s))
}

// ReadFile decodes a BPSEQ file. The file is memory-mapped read-only, which
// keeps large multi-chain inputs out of the Go heap while they are scanned.
func ReadFile(path string) (*BpSeq, error) {
	if err := kerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "stat %s", path)
	}
	if info.Size() == 0 {
		return New(nil)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "map %s", path)
	}
	defer m.Unmap()

	return Read(bytes.NewReader(m))
}

func parseLine(text string) (Entry, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("expected 3 fields (index base partner), got %d", len(fields))
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid index %q", fields[0])
	}
	if err := kerrors.ValidateBase(fields[1]); err != nil {
		return Entry{}, err
	}
	pair, err := strconv.Atoi(fields[2])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid partner %q", fields[2])
	}
	return Entry{Index: index, Base: fields[1][0], Pair: pair}, nil
}

// Write encodes s as BPSEQ text.
func (s *BpSeq) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range s.entries {
		if _, err := fmt.Fprintf(bw, "%d %c %d\n", e.Index, e.Base, e.Pair); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the BPSEQ text of s.
func (s *BpSeq) String() string {
	var b strings.Builder
	_ = s.Write(&b)
	return b.String()
}
