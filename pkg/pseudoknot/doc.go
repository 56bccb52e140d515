// Package pseudoknot resolves crossing base pairs into multi-level
// dot-bracket notation.
//
// # Overview
//
// A secondary structure with a pseudoknot contains pairs that cross and so
// cannot be written with one kind of bracket. This package assigns every pair
// to a bracket level such that pairs within one level never cross, using as
// few levels as possible and keeping as many pairs as possible on the lower
// levels.
//
// # Regions and Conflicts
//
// Pairs are grouped into [Region] values, maximal runs of stacked pairs.
// Regions are kept or deferred as a whole. [NewConflictMap] builds the
// crossing graph over regions, and [ConflictMap.Cliques] splits its conflicted
// part into independent connected groups. [ConflictMap.Simplify] merges nested
// regions that conflict with the same neighbours, which shrinks cliques
// without changing any optimum.
//
// # Resolvers
//
// A [Resolver] decides, for one level, which pairs stay and which are
// deferred:
//
//   - [Heuristic] removes regions one by one using a [Selector] and then
//     restores those that no longer cross anything. It yields one result.
//   - [Exact] solves every clique with an interval dynamic program and returns
//     every tied optimum. Cliques with too many endpoints are thinned with the
//     selector first.
//
// Built-in selectors are available through [SelectorByName]:
// elimination-gain (default), elimination-conflicts and fewest-pairs.
//
// # Conversion
//
// [Converter.Convert] runs the resolver round by round. Each round expands
// every unfinished state into its deferred alternatives, keeping at most
// MaxStatesPerRound of them. Finished states are ranked by level count, then
// by the number of pairs deferred at each level, and traced back into
// [dotbracket] strings:
//
//	conv, err := pseudoknot.FromConfig(pseudoknot.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	result := conv.Convert(seq)
//	fmt.Println(result.Best.DotBracket.Structure)
//
// # Determinism
//
// Every enumeration is in a fixed order: regions by Begin, clique solutions
// by member positions, and candidate states by discovery order. Identical
// input and configuration always produce identical output.
//
// # Concurrency
//
// Resolvers and converters keep no state between calls and may be shared
// across goroutines. [ConflictMap] is not safe for concurrent use.
package pseudoknot
