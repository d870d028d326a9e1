package grid_test

import (
	"fmt"

	"github.com/matzehuels/rowgrid/pkg/grid"
)

func ExamplePartition() {
	cs := []grid.Component{
		{ID: 1, Kind: "image", Size: 9},
		{ID: 2, Kind: "text", Size: 15},
		{ID: 3, Kind: "text", Size: 15},
		{ID: 4, Kind: "image", Size: 9},
		{ID: 5, Kind: "image", Size: 9},
	}
	for _, r := range grid.Partition(cs, grid.Base) {
		fmt.Printf("[%d,%d) sum=%d\n", r.Start, r.End, r.Sum)
	}
	// Output:
	// [0,2) sum=24
	// [2,4) sum=24
	// [4,5) sum=9
}

func ExampleResizeGesture() {
	l, _ := grid.New([]grid.Component{
		{ID: 1, Kind: "image", Size: 9},
		{ID: 2, Kind: "text", Size: 15},
	})
	g, _ := grid.BeginResize(l, 1, 360, 960)
	_ = g.Move(280) // two base units to the left
	g.End()
	fmt.Println(l.Size(0), l.Size(1))
	// Output: 7 17
}

func ExampleMove() {
	l, _ := grid.New([]grid.Component{
		{ID: 1, Kind: "image", Size: 9},
		{ID: 2, Kind: "text", Size: 15},
		{ID: 3, Kind: "text", Size: 15},
		{ID: 4, Kind: "image", Size: 9},
	})
	cs, _ := grid.Move(l, 1, grid.Target{Placement: grid.PlaceRowBelow, Row: 1})
	for _, c := range cs {
		fmt.Printf("%d:%d ", c.ID, c.Size)
	}
	fmt.Println()
	// Output: 2:24 3:15 4:9 1:24
}

func ExampleReduce() {
	f, _ := grid.Reduce(15, 24)
	fmt.Println(f)
	// Output: 5/8
}
