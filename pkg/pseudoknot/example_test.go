package pseudoknot_test

import (
	"fmt"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

func ExampleConverter_Convert() {
	// An H-type pseudoknot: two helices whose loops pair with each other.
	seq, _ := bpseq.ReadString(`
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
`)
	conv, _ := pseudoknot.FromConfig(pseudoknot.DefaultConfig())
	result := conv.Convert(seq)

	fmt.Println(result.Best.DotBracket.Sequence)
	fmt.Println(result.Best.DotBracket.Structure)
	fmt.Println("Levels:", len(result.Best.Levels))
	// Output:
	// GGACAACCAGU
	// (([[..)).]]
	// Levels: 2
}

func ExampleConflictMap_Cliques() {
	seq, _ := bpseq.FromPairs("", 16, []bpseq.Pair{
		{I: 1, J: 5}, {I: 3, J: 8},
		{I: 9, J: 13}, {I: 11, J: 16},
	})
	m := pseudoknot.NewConflictMap(pseudoknot.CreateRegions(seq))

	for _, c := range m.Cliques() {
		fmt.Println("regions:", c.Size(), "endpoints:", c.EndpointCount())
	}
	// Output:
	// regions: 2 endpoints: 4
	// regions: 2 endpoints: 4
}
