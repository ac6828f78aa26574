// Package vizlib is the layout engine facade: it validates a LayoutRequest,
// runs the layered, template, and overlap-resolution phases in order, and
// packages the positioned result for the renderer.
package vizlib

import (
	"context"
	"fmt"
	"time"

	"cdr.dev/slog"
	"github.com/samber/lo"

	"github.com/nobu007/speech-to-visuals-sub001/lib/env"
	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
	"github.com/nobu007/speech-to-visuals-sub001/lib/log"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
	"github.com/nobu007/speech-to-visuals-sub001/vizlayouts"
	"github.com/nobu007/speech-to-visuals-sub001/vizlayouts/vizlayered"
	"github.com/nobu007/speech-to-visuals-sub001/vizlayouts/vizoverlap"
	"github.com/nobu007/speech-to-visuals-sub001/vizmetrics"
)

// phase names the pipeline stages for tracing. Every call walks them in
// order; a malformed request short-circuits to phaseFailed.
type phase string

const (
	phaseRanking    phase = "ranking-ordering"
	phaseAdaptation phase = "type-adaptation"
	phaseResolution phase = "overlap-resolution"
	phaseMetrics    phase = "metrics-and-bounds"
	phaseFailed     phase = "failed"
)

// Options tunes a single layout call.
type Options struct {
	// OnResolvePass observes overlap resolution convergence.
	OnResolvePass vizoverlap.PassFunc
}

// Layout turns an abstract graph into a positioned one. It holds no state
// between calls and never mutates the request, so concurrent calls with
// distinct requests need no coordination.
//
// Failures are reported in the result, never panicked: an edge naming an
// unknown node or a non-positive canvas yields Success false. A resolver
// that exhausts its budget still yields Success true with the residual
// overlap count in Metrics and Converged false.
func Layout(ctx context.Context, req *LayoutRequest, opts *Options) *LayoutResult {
	start := time.Now()
	if opts == nil {
		opts = &Options{}
	}
	if seconds, has := env.Timeout(); has {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
		defer cancel()
	}

	config := vizgraph.DefaultConfig()
	req.Config.apply(&config)

	fail := func(err error) *LayoutResult {
		log.Warn(ctx, "layout failed",
			slog.F("phase", phaseFailed),
			slog.F("error", err.Error()),
		)
		return &LayoutResult{
			Success:          false,
			Error:            err.Error(),
			ProcessingTimeMs: elapsedMs(start),
		}
	}

	if err := config.Validate(); err != nil {
		return fail(err)
	}
	g, err := buildGraph(req, &config)
	if err != nil {
		return fail(err)
	}

	diagramType := vizgraph.ParseDiagramType(req.DiagramType)
	log.Debug(ctx, "layout request",
		slog.F("diagramType", diagramType),
		slog.F("nodes", len(g.Nodes)),
		slog.F("edges", len(g.Edges)),
	)

	log.Debug(ctx, "layout phase", slog.F("phase", phaseRanking))
	if err := vizlayered.Layout(ctx, g, config); err != nil {
		return fail(fmt.Errorf("layered layout: %w", err))
	}

	log.Debug(ctx, "layout phase", slog.F("phase", phaseAdaptation))
	if err := vizlayouts.Adapt(ctx, g, diagramType, config); err != nil {
		return fail(fmt.Errorf("type adaptation: %w", err))
	}

	log.Debug(ctx, "layout phase", slog.F("phase", phaseResolution))
	resolution := vizoverlap.Resolve(ctx, g, config, opts.OnResolvePass)

	log.Debug(ctx, "layout phase", slog.F("phase", phaseMetrics))
	metrics := vizmetrics.Evaluate(g)
	bounds := vizgraph.BoundingBox(g)

	return &LayoutResult{
		Success:          true,
		Layout:           positioned(g),
		Bounds:           &bounds,
		Metrics:          &metrics,
		Converged:        resolution.Converged,
		ProcessingTimeMs: elapsedMs(start),
	}
}

func buildGraph(req *LayoutRequest, config *vizgraph.LayoutConfig) (*vizgraph.Graph, error) {
	g := vizgraph.NewGraph()
	for _, n := range req.Nodes {
		if _, err := g.AddNode(n.ID, n.Label, config); err != nil {
			return nil, err
		}
	}
	for _, e := range req.Edges {
		if _, err := g.AddEdge(e.From, e.To, e.Label); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func positioned(g *vizgraph.Graph) *PositionedLayout {
	return &PositionedLayout{
		Nodes: lo.Map(g.Nodes, func(n *vizgraph.Node, _ int) PositionedNode {
			return PositionedNode{
				ID:    n.ID,
				Label: n.Label,
				X:     n.Box.TopLeft.X,
				Y:     n.Box.TopLeft.Y,
				W:     n.Box.Width,
				H:     n.Box.Height,
			}
		}),
		Edges: lo.Map(g.Edges, func(e *vizgraph.Edge, _ int) RoutedEdge {
			points := lo.Map(e.Route, func(p *geo.Point, _ int) geo.Point {
				return *p
			})
			return RoutedEdge{
				From:   e.Src.ID,
				To:     e.Dst.ID,
				Label:  e.Label,
				Points: points,
			}
		}),
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
