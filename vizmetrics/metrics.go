// Package vizmetrics scores finished layouts. Node counts are small, so the
// pairwise scans stay quadratic on purpose.
package vizmetrics

import (
	"math"

	"github.com/samber/lo"

	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

// BALANCE_NORMALIZATION divides the centroid variance when computing the
// balance score, sized so a layout spread across a full-HD canvas scores
// near zero and a tight, centered cluster scores near one.
const BALANCE_NORMALIZATION = 1e6

type Metrics struct {
	OverlapCount       int     `json:"overlapCount"`
	EdgeCrossings      int     `json:"edgeCrossings"`
	AverageNodeSpacing float64 `json:"averageNodeSpacing"`
	LayoutBalance      float64 `json:"layoutBalance"`
}

// Evaluate computes layout quality numbers for a positioned graph.
// EdgeCrossings is best effort: it counts order inversions between adjacent
// ranks, which is only meaningful while the layered rank structure matches
// the geometry.
func Evaluate(g *vizgraph.Graph) Metrics {
	return Metrics{
		OverlapCount:       OverlapCount(g),
		EdgeCrossings:      edgeCrossings(g),
		AverageNodeSpacing: averageNodeSpacing(g),
		LayoutBalance:      layoutBalance(g),
	}
}

// OverlapCount is the number of node pairs whose rectangles intersect.
// A successful layout run leaves this at zero.
func OverlapCount(g *vizgraph.Graph) int {
	count := 0
	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			if g.Nodes[i].Box.Overlaps(g.Nodes[j].Box) {
				count++
			}
		}
	}
	return count
}

func averageNodeSpacing(g *vizgraph.Graph) float64 {
	if len(g.Nodes) < 2 {
		return 0
	}
	centers := lo.Map(g.Nodes, func(n *vizgraph.Node, _ int) *geo.Point {
		return n.Center()
	})

	total := 0.
	pairs := 0
	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			total += centers[i].DistanceTo(centers[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

// layoutBalance is 1 for a perfectly centered distribution and decays
// toward 0 as centroids spread out.
func layoutBalance(g *vizgraph.Graph) float64 {
	if len(g.Nodes) == 0 {
		return 1
	}
	centers := lo.Map(g.Nodes, func(n *vizgraph.Node, _ int) *geo.Point {
		return n.Center()
	})
	meanX := lo.SumBy(centers, func(p *geo.Point) float64 { return p.X }) / float64(len(centers))
	meanY := lo.SumBy(centers, func(p *geo.Point) float64 { return p.Y }) / float64(len(centers))

	variance := lo.SumBy(centers, func(p *geo.Point) float64 {
		dx := p.X - meanX
		dy := p.Y - meanY
		return dx*dx + dy*dy
	}) / float64(len(centers))

	return math.Max(0, 1-variance/BALANCE_NORMALIZATION)
}

// edgeCrossings counts inversions between edges spanning the same pair of
// adjacent ranks.
func edgeCrossings(g *vizgraph.Graph) int {
	type span struct {
		rank    int
		hiOrder int
		loOrder int
	}
	spans := lo.FilterMap(g.Edges, func(e *vizgraph.Edge, _ int) (span, bool) {
		upper, lower := e.Src, e.Dst
		if upper.Rank > lower.Rank {
			upper, lower = lower, upper
		}
		if lower.Rank-upper.Rank != 1 {
			return span{}, false
		}
		return span{rank: upper.Rank, hiOrder: upper.Order, loOrder: lower.Order}, true
	})

	crossings := 0
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].rank != spans[j].rank {
				continue
			}
			if (spans[i].hiOrder-spans[j].hiOrder)*(spans[i].loOrder-spans[j].loOrder) < 0 {
				crossings++
			}
		}
	}
	return crossings
}
