// Package layoutsvg renders a positioned graph as a plain SVG for
// eyeballing layout output during development. It draws boxes, labels
// and edge polylines only, no theming.
package layoutsvg

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

const (
	NODE_STYLE  = "fill:none;stroke:black;stroke-width:1"
	EDGE_STYLE  = "fill:none;stroke:gray;stroke-width:1"
	LABEL_STYLE = "text-anchor:middle;font-family:monospace;font-size:12px"
)

// Render writes the graph to w as a standalone SVG document sized to
// the configured canvas.
func Render(w io.Writer, g *vizgraph.Graph, config vizgraph.LayoutConfig) {
	canvas := svg.New(w)
	canvas.Start(int(config.CanvasWidth), int(config.CanvasHeight))
	defer canvas.End()

	for _, e := range g.Edges {
		if len(e.Route) < 2 {
			continue
		}
		xs := make([]int, len(e.Route))
		ys := make([]int, len(e.Route))
		for i, p := range e.Route {
			xs[i] = int(p.X)
			ys[i] = int(p.Y)
		}
		canvas.Polyline(xs, ys, EDGE_STYLE)
	}

	for _, n := range g.Nodes {
		canvas.Rect(
			int(n.Box.TopLeft.X), int(n.Box.TopLeft.Y),
			int(n.Box.Width), int(n.Box.Height),
			NODE_STYLE,
		)
		center := n.Center()
		canvas.Text(int(center.X), int(center.Y)+4, n.Label, LABEL_STYLE)
	}
}
