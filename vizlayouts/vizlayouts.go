// Package vizlayouts routes a laid-out graph through the geometric template
// matching its diagram type.
package vizlayouts

import (
	"context"

	"cdr.dev/slog"

	"github.com/nobu007/speech-to-visuals-sub001/lib/log"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
	"github.com/nobu007/speech-to-visuals-sub001/vizlayouts/vizcycle"
	"github.com/nobu007/speech-to-visuals-sub001/vizlayouts/vizmatrix"
	"github.com/nobu007/speech-to-visuals-sub001/vizlayouts/viztimeline"
)

// Adapt replaces the layered arrangement with a type-specific template when
// one applies. Flow, tree, and generic diagrams keep the layered result:
// the layered engine's longest-path ranks already express hierarchy depth.
func Adapt(ctx context.Context, g *vizgraph.Graph, diagramType vizgraph.DiagramType, config vizgraph.LayoutConfig) error {
	switch diagramType {
	case vizgraph.CycleDiagram:
		log.Debug(ctx, "adapting layout", slog.F("template", "cycle"))
		return vizcycle.Layout(ctx, g, config)
	case vizgraph.TimelineDiagram:
		log.Debug(ctx, "adapting layout", slog.F("template", "timeline"))
		return viztimeline.Layout(ctx, g, config)
	case vizgraph.MatrixDiagram:
		log.Debug(ctx, "adapting layout", slog.F("template", "matrix"))
		return vizmatrix.Layout(ctx, g, config)
	}
	return nil
}
