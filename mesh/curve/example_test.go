package curve_test

import (
	"fmt"

	"github.com/cwbudde/algo-mesh/mesh/curve"
	"github.com/cwbudde/algo-mesh/mesh/intercept"
)

func ExampleBuilder_Build() {
	b, err := curve.NewBuilder()
	if err != nil {
		panic(err)
	}

	ins := []intercept.Intercept{
		{X: 0, AdjustedX: 0, Y: 0.2},
		{X: 0.4, AdjustedX: 0.4, Y: 0.5},
		{X: 0.9, AdjustedX: 0.9, Y: 0.8},
	}
	table, err := b.Build(ins, curve.PadLegacyFixed, 1)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(b.Pieces()))
	fmt.Printf("%.3f\n", table.Sample(0.4))
	// Output:
	// 5
	// 0.500
}
