package vizgraph

import (
	"fmt"
)

const LABEL_PADDING = 16.

// DiagramType hints which geometric template suits the graph's semantics.
type DiagramType string

const (
	FlowDiagram     DiagramType = "flow"
	TreeDiagram     DiagramType = "tree"
	TimelineDiagram DiagramType = "timeline"
	MatrixDiagram   DiagramType = "matrix"
	CycleDiagram    DiagramType = "cycle"
	GenericDiagram  DiagramType = "generic"
)

// ParseDiagramType maps unknown hints to GenericDiagram rather than failing,
// since the hint only selects a template.
func ParseDiagramType(s string) DiagramType {
	switch DiagramType(s) {
	case FlowDiagram, TreeDiagram, TimelineDiagram, MatrixDiagram, CycleDiagram, GenericDiagram:
		return DiagramType(s)
	}
	return GenericDiagram
}

type RankDirection string

const (
	RankTopToBottom RankDirection = "tb"
	RankLeftToRight RankDirection = "lr"
)

// LayoutConfig is passed by value through the pipeline; a layout call never
// mutates it, so concurrent callers with different configs cannot interfere.
type LayoutConfig struct {
	CanvasWidth  float64
	CanvasHeight float64

	NodeWidth  float64
	NodeHeight float64
	// CharWidth is the per-character estimate used to widen labeled nodes.
	CharWidth float64

	MarginX float64
	MarginY float64

	NodeSeparation float64
	EdgeSeparation float64
	RankSeparation float64

	RankDirection RankDirection

	// Overlap resolution tunables.
	MaxIterations      int
	SeparationDistance float64

	// Seed drives the deterministic tie-break used when two nodes share an
	// exact center during overlap resolution.
	Seed int64
}

func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		CanvasWidth:  1920,
		CanvasHeight: 1080,

		NodeWidth:  160,
		NodeHeight: 64,
		CharWidth:  9,

		MarginX: 60,
		MarginY: 60,

		NodeSeparation: 48,
		EdgeSeparation: 24,
		RankSeparation: 120,

		RankDirection: RankTopToBottom,

		MaxIterations:      300,
		SeparationDistance: 40,
	}
}

func (c LayoutConfig) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %vx%v", c.CanvasWidth, c.CanvasHeight)
	}
	if c.NodeWidth <= 0 || c.NodeHeight <= 0 {
		return fmt.Errorf("node dimensions must be positive, got %vx%v", c.NodeWidth, c.NodeHeight)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}
