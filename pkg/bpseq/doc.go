// Package bpseq models a paired sequence: an ordered list of residues where
// every residue has zero or one base-pair partner.
//
// # Overview
//
// A [BpSeq] is the input of pseudoknot resolution. It is built through [New],
// [FromPairs] or the BPSEQ text decoder [Read], all of which enforce the
// structural invariants (consecutive 1-based indices, symmetric pairing, no
// self pairing, at most one partner per residue) and report violations with
// the MALFORMED_INPUT error code. Code downstream of this package assumes a
// valid BpSeq and does not re-check it.
//
// # BPSEQ Format
//
// One line per residue with the residue index, its one-letter symbol and the
// partner index, 0 meaning unpaired:
//
//	1 G 7
//	2 C 0
//	3 A 0
//	...
//	7 C 1
//
// # Immutability
//
// BpSeq values are never modified after construction. [BpSeq.WithoutPairs]
// and [BpSeq.OnlyPairs] return new values, so states from different
// resolution rounds can share a BpSeq safely.
package bpseq
