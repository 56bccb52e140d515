// Package pkg provides the core libraries for knotwork.
//
// # Overview
//
// Knotwork turns RNA secondary structures containing pseudoknots into
// multi-level dot-bracket notation. Crossing base pairs cannot share a bracket
// type, so they are distributed over () [] {} <> Aa ... Zz with as few levels
// as possible. The pkg directory is organized into three areas:
//
//  1. Formats: [bpseq] and [dotbracket]
//  2. Domain logic: [pseudoknot] (regions, conflict graph, resolvers, converter)
//  3. Infrastructure: [pipeline], [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow through knotwork:
//
//	BPSEQ / dot-bracket input
//	         ↓
//	    [bpseq] package (residues and pairs)
//	         ↓
//	    [pseudoknot] package (regions → conflict graph → cliques → resolver)
//	         ↓
//	    [pseudoknot.Converter] (one bracket level per round)
//	         ↓
//	    [dotbracket] package (multi-level structure string)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/knotwork/pkg/bpseq"
//	    "github.com/matzehuels/knotwork/pkg/pseudoknot"
//	)
//
//	seq, _ := bpseq.ReadFile("tRNA.bpseq")
//	conv, _ := pseudoknot.FromConfig(pseudoknot.DefaultConfig())
//	result := conv.Convert(seq)
//	fmt.Println(result.Best.DotBracket.Structure)
//
// With caching and logging, use [pipeline.Runner] instead:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, seq, pipeline.Options{Strategy: "heuristic"})
//
// # Main Packages
//
// [bpseq] - The BPSEQ format: one residue per line with its pairing partner.
// Files are read through a read-only memory map.
//
// [dotbracket] - Multi-level dot-bracket strings, their parser, and the
// builder that assigns bracket levels.
//
// [pseudoknot] - Regions of stacked pairs, the crossing graph between them,
// the heuristic and exact (interval DP) resolvers, and the multi-level
// converter that keeps a bounded set of ranked alternatives per round.
//
// [pipeline] - Input detection, option defaults, caching and logging around a
// conversion, shared by the CLI and the HTTP server.
//
// [cache] - Conversion result caching with null, file and Redis backends.
//
// [observability] - Hooks for conversion, cache and HTTP events.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Version information injected at build time.
//
// [bpseq]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/bpseq
// [dotbracket]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/dotbracket
// [pseudoknot]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/pseudoknot
// [pseudoknot.Converter]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/pseudoknot#Converter
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/knotwork/pkg/buildinfo
package pkg
