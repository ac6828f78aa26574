// Package vizmatrix arranges nodes in a square grid, for diagrams whose
// semantics are a comparison table rather than a flow.
package vizmatrix

import (
	"context"
	"math"

	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

// Layout arranges nodes in ceil(sqrt(n)) columns, each node centered in its
// cell. Cell geometry fills the canvas inside the margins.
func Layout(ctx context.Context, g *vizgraph.Graph, config vizgraph.LayoutConfig) error {
	nodes := g.OrderedNodes()
	if len(nodes) == 0 {
		return nil
	}

	cols, rows := GridDimensions(len(nodes))
	cellW := (config.CanvasWidth - 2*config.MarginX) / float64(cols)
	cellH := (config.CanvasHeight - 2*config.MarginY) / float64(rows)

	for i, n := range nodes {
		col := i % cols
		row := i / cols
		cx := config.MarginX + (float64(col)+0.5)*cellW
		cy := config.MarginY + (float64(row)+0.5)*cellH
		n.MoveTo(cx-n.Box.Width/2, cy-n.Box.Height/2)
	}

	for _, e := range g.Edges {
		e.RouteStraight()
	}
	return nil
}

// GridDimensions returns the column and row counts for n cells in a square
// grid.
func GridDimensions(n int) (cols, rows int) {
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}
