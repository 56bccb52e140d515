package dotbracket

import (
	"bytes"

	"github.com/matzehuels/knotwork/pkg/bpseq"
)

// Builder writes pairs into a structure one level at a time. A position keeps
// the first symbol written to it, so outer levels written first take
// precedence over inner ones.
type Builder struct {
	buf        []byte
	unassigned int
}

// NewBuilder returns a builder for a structure of n unpaired residues.
func NewBuilder(n int) *Builder {
	return &Builder{buf: bytes.Repeat([]byte{Unpaired}, n)}
}

// Assign writes pairs with the symbols of level. Pairs at a level beyond the
// alphabet are left unpaired and counted by [Builder.Unassigned].
func (b *Builder) Assign(level int, pairs []bpseq.Pair) {
	if level >= MaxLevels {
		b.unassigned += len(pairs)
		return
	}
	for _, p := range pairs {
		if b.buf[p.I-1] != Unpaired || b.buf[p.J-1] != Unpaired {
			continue
		}
		b.buf[p.I-1] = Opener(level)
		b.buf[p.J-1] = Closer(level)
	}
}

// Unassigned returns the number of pairs dropped because the alphabet ran out.
func (b *Builder) Unassigned() int { return b.unassigned }

// String returns the structure built so far.
func (b *Builder) String() string { return string(b.buf) }
