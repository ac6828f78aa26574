package vizlib

import (
	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
	"github.com/nobu007/speech-to-visuals-sub001/vizmetrics"
)

// LayoutRequest is the boundary contract with the content-analysis stage:
// an abstract graph plus a diagram type hint and optional config overrides.
type LayoutRequest struct {
	DiagramType string        `json:"diagramType"`
	Nodes       []RequestNode `json:"nodes"`
	Edges       []RequestEdge `json:"edges"`
	Config      *ConfigParams `json:"config,omitempty"`
}

type RequestNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type RequestEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// ConfigParams carries per-request overrides of the layout defaults.
// Zero-valued fields keep the default; there is no option-bag merging
// beyond this.
type ConfigParams struct {
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	NodeWidth      float64 `json:"nodeWidth,omitempty"`
	NodeHeight     float64 `json:"nodeHeight,omitempty"`
	MarginX        float64 `json:"marginX,omitempty"`
	MarginY        float64 `json:"marginY,omitempty"`
	NodeSeparation float64 `json:"nodeSeparation,omitempty"`
	EdgeSeparation float64 `json:"edgeSeparation,omitempty"`
	RankSeparation float64 `json:"rankSeparation,omitempty"`
	RankDirection  string  `json:"rankDirection,omitempty"`
	Seed           int64   `json:"seed,omitempty"`
}

func (p *ConfigParams) apply(config *vizgraph.LayoutConfig) {
	if p == nil {
		return
	}
	if p.Width != 0 {
		config.CanvasWidth = p.Width
	}
	if p.Height != 0 {
		config.CanvasHeight = p.Height
	}
	if p.NodeWidth != 0 {
		config.NodeWidth = p.NodeWidth
	}
	if p.NodeHeight != 0 {
		config.NodeHeight = p.NodeHeight
	}
	if p.MarginX != 0 {
		config.MarginX = p.MarginX
	}
	if p.MarginY != 0 {
		config.MarginY = p.MarginY
	}
	if p.NodeSeparation != 0 {
		config.NodeSeparation = p.NodeSeparation
	}
	if p.EdgeSeparation != 0 {
		config.EdgeSeparation = p.EdgeSeparation
	}
	if p.RankSeparation != 0 {
		config.RankSeparation = p.RankSeparation
	}
	if p.RankDirection != "" {
		config.RankDirection = vizgraph.RankDirection(p.RankDirection)
	}
	config.Seed = p.Seed
}

// LayoutResult is the boundary contract with the video-renderer stage.
type LayoutResult struct {
	Success          bool                `json:"success"`
	Layout           *PositionedLayout   `json:"layout,omitempty"`
	Bounds           *vizgraph.Bounds    `json:"bounds,omitempty"`
	Metrics          *vizmetrics.Metrics `json:"metrics,omitempty"`
	Converged        bool                `json:"converged"`
	ProcessingTimeMs float64             `json:"processingTimeMs"`
	Error            string              `json:"error,omitempty"`
}

type PositionedLayout struct {
	Nodes []PositionedNode `json:"nodes"`
	Edges []RoutedEdge     `json:"edges"`
}

type PositionedNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

type RoutedEdge struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Label  string      `json:"label,omitempty"`
	Points []geo.Point `json:"points"`
}
