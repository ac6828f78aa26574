// Package vizoverlap separates overlapping node rectangles with an
// iterative force-directed displacement pass. It is the step that enforces
// the engine's zero-overlap guarantee.
package vizoverlap

import (
	"context"
	"math"
	"math/rand"

	"cdr.dev/slog"

	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
	"github.com/nobu007/speech-to-visuals-sub001/lib/log"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

// PassFunc observes one resolution pass. Callers use it to trace
// convergence without the resolver owning any output.
type PassFunc func(iteration, overlapCount int)

// Result reports how resolution went. Converged false means the iteration
// budget (or the caller's context) ran out with overlaps remaining.
type Result struct {
	Iterations        int
	Converged         bool
	RemainingOverlaps int
}

// Resolve displaces g's nodes until no two padded rectangles overlap, up to
// config.MaxIterations passes. Displacements accumulate from all pairwise
// repulsions in a pass and apply simultaneously, so the outcome does not
// depend on pair order. Edge routes are recomputed once positions settle.
// onPass may be nil.
func Resolve(ctx context.Context, g *vizgraph.Graph, config vizgraph.LayoutConfig, onPass PassFunc) Result {
	nodes := g.Nodes
	if len(nodes) <= 1 {
		return Result{Converged: true}
	}

	// coincident-center tie-breaks consume this in deterministic pair order
	rng := rand.New(rand.NewSource(config.Seed))

	// settled nodes clear each other by at least the larger spacing knob
	pad := math.Max(config.SeparationDistance, config.NodeSeparation) / 2
	maxDisplacement := config.SeparationDistance * 2
	// the canvas constraint is relaxed once half the budget is spent on
	// persistent overlap
	expandAfter := config.MaxIterations / 2

	res := Result{}
	dx := make([]float64, len(nodes))
	dy := make([]float64, len(nodes))

	for iter := 1; iter <= config.MaxIterations; iter++ {
		if ctx.Err() != nil {
			log.Warn(ctx, "overlap resolution interrupted", slog.F("iteration", iter))
			break
		}

		for i := range nodes {
			dx[i], dy[i] = 0, 0
		}
		overlaps := 0

		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				a := nodes[i].Box.Expand(pad)
				b := nodes[j].Box.Expand(pad)
				if !a.Overlaps(b) {
					continue
				}
				overlaps++

				px, py := repulsion(a, b, rng)
				dx[i] -= px
				dy[i] -= py
				dx[j] += px
				dy[j] += py
			}
		}

		if overlaps == 0 {
			break
		}
		res.Iterations = iter
		if onPass != nil {
			onPass(iter, overlaps)
		}
		log.Debug(ctx, "overlap resolution pass",
			slog.F("iteration", iter),
			slog.F("overlaps", overlaps),
		)

		for i, n := range nodes {
			// clamp total displacement per pass to avoid oscillation
			length := math.Hypot(dx[i], dy[i])
			if length > maxDisplacement {
				scale := maxDisplacement / length
				dx[i] *= scale
				dy[i] *= scale
			}
			n.Move(dx[i], dy[i])

			if iter <= expandAfter {
				clampToCanvas(n, config)
			}
		}
	}

	res.RemainingOverlaps = countOverlaps(nodes, pad)
	res.Converged = res.RemainingOverlaps == 0

	vizgraph.ReattachEdges(g)
	return res
}

// repulsion computes the half-displacement pushing b away from a, along the
// line between centers, scaled by the overlap depth. Coincident centers are
// pushed apart along the boxes' longer axis with a seeded sign.
func repulsion(a, b *geo.Box, rng *rand.Rand) (px, py float64) {
	ac := a.Center()
	bc := b.Center()
	vx := bc.X - ac.X
	vy := bc.Y - ac.Y
	dist := math.Hypot(vx, vy)

	odx, ody := a.OverlapDepth(b)
	depth := math.Min(odx, ody)

	if dist == 0 {
		sign := 1.0
		if rng.Intn(2) == 0 {
			sign = -1.0
		}
		if a.Width+b.Width >= a.Height+b.Height {
			// separating along the longer axis frees the most area
			return sign * (a.Width + b.Width) / 4, 0
		}
		return 0, sign * (a.Height + b.Height) / 4
	}

	push := depth / 2
	return vx / dist * push, vy / dist * push
}

// clampToCanvas keeps n fully inside the canvas margins.
func clampToCanvas(n *vizgraph.Node, config vizgraph.LayoutConfig) {
	maxX := config.CanvasWidth - config.MarginX - n.Box.Width
	maxY := config.CanvasHeight - config.MarginY - n.Box.Height
	if maxX < config.MarginX {
		maxX = config.MarginX
	}
	if maxY < config.MarginY {
		maxY = config.MarginY
	}
	n.Box.TopLeft.X = geo.Clamp(n.Box.TopLeft.X, config.MarginX, maxX)
	n.Box.TopLeft.Y = geo.Clamp(n.Box.TopLeft.Y, config.MarginY, maxY)
}

func countOverlaps(nodes []*vizgraph.Node, pad float64) int {
	count := 0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i].Box.Expand(pad).Overlaps(nodes[j].Box.Expand(pad)) {
				count++
			}
		}
	}
	return count
}
