package builder_test

import (
	"fmt"

	"github.com/katalvlaran/gnnlimit/builder"
)

// ExampleGenerator_GenerateInverse samples G(n,1/n) graphs of growing size
// from one seeded stream.
func ExampleGenerator_GenerateInverse() {
	gen := builder.NewGenerator(builder.WithSeed(1))

	for _, n := range []int{10, 100, 1000} {
		g, err := gen.GenerateInverse(n, 4)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("n=%d p=%.3f features=%dx%d\n", g.N(), g.Prob(), g.N(), g.FeatureDim())
	}

	// Output:
	// n=10 p=0.100 features=10x4
	// n=100 p=0.010 features=100x4
	// n=1000 p=0.001 features=1000x4
}
