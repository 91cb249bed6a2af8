package mosaic_test

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

func ExampleLayout() {
	items := []mosaic.Item{
		{ID: "landscape", Natural: geom.Size{W: 400, H: 300}},
		{ID: "square", Natural: geom.Size{W: 300, H: 300}},
		{ID: "panorama", Natural: geom.Size{W: 500, H: 200}},
	}

	res, err := mosaic.Layout(items, mosaic.Options{ContainerWidth: 900, MaxItemSize: 300})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, p := range res.Placements {
		r := p.Rect
		fmt.Printf("%-9s row=%d x=%.1f y=%.1f w=%.1f h=%.1f\n", p.ID, p.Row, r.X, r.Y, r.W, r.H)
	}
	fmt.Printf("height=%.1f\n", res.Height)
	// Output:
	// landscape row=0 x=0.0 y=0.0 w=237.5 h=162.5
	// square    row=0 x=237.5 y=0.0 w=162.5 h=162.5
	// panorama  row=0 x=400.0 y=0.0 w=500.0 h=162.5
	// height=162.5
}

func ExampleFlow() {
	sizes := []geom.Size{{W: 200, H: 100}, {W: 200, H: 100}, {W: 200, H: 100}, {W: 100, H: 100}}

	flow := mosaic.Flow(sizes, 500)
	for _, row := range flow.Rows {
		fmt.Printf("row %d: items=%v width=%.0f height=%.0f\n", row.Index, row.Items, row.Width, row.Height)
	}
	// Output:
	// row 0: items=[0 1 2] width=600 height=100
	// row 1: items=[3] width=100 height=100
}
