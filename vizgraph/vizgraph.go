package vizgraph

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
)

// Node is a single diagram element to be positioned.
// Box holds the top-left anchored rectangle; TopLeft is nil until layout runs.
type Node struct {
	ID    string
	Label string

	Box *geo.Box

	// Rank is the layer assigned by the layered engine, -1 before layout.
	Rank int
	// Order is the stable position within the rank.
	Order int
}

func (n *Node) Center() *geo.Point {
	return n.Box.Center()
}

func (n *Node) Move(dx, dy float64) {
	n.Box.TopLeft.X += dx
	n.Box.TopLeft.Y += dy
}

func (n *Node) MoveTo(x, y float64) {
	n.Box.TopLeft.X = x
	n.Box.TopLeft.Y = y
}

type Edge struct {
	Src *Node
	Dst *Node

	Label string
	Route []*geo.Point
}

// Graph is the mutable layout document. Node iteration order is insertion
// order, which every layout phase relies on for deterministic tie-breaking.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	byID map[string]*Node
}

func NewGraph() *Graph {
	return &Graph{
		byID: make(map[string]*Node),
	}
}

func (g *Graph) AddNode(id, label string, config *LayoutConfig) (*Node, error) {
	if id == "" {
		return nil, fmt.Errorf("node id must not be empty")
	}
	if _, ok := g.byID[id]; ok {
		return nil, fmt.Errorf("duplicate node id %q", id)
	}
	w, h := config.NodeSize(label)
	n := &Node{
		ID:    id,
		Label: label,
		Box:   geo.NewBox(geo.NewPoint(0, 0), w, h),
		Rank:  -1,
	}
	g.Nodes = append(g.Nodes, n)
	g.byID[id] = n
	return n, nil
}

func (g *Graph) AddEdge(srcID, dstID, label string) (*Edge, error) {
	src, ok := g.byID[srcID]
	if !ok {
		return nil, fmt.Errorf("edge references unknown node %q", srcID)
	}
	dst, ok := g.byID[dstID]
	if !ok {
		return nil, fmt.Errorf("edge references unknown node %q", dstID)
	}
	e := &Edge{Src: src, Dst: dst, Label: label}
	g.Edges = append(g.Edges, e)
	return e, nil
}

func (g *Graph) GetNode(id string) *Node {
	return g.byID[id]
}

// OrderedNodes returns nodes sorted by (Rank, Order), with insertion order
// breaking ties. Geometric templates consume this so their output is stable
// across calls.
func (g *Graph) OrderedNodes() []*Node {
	out := make([]*Node, len(g.Nodes))
	copy(out, g.Nodes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// NodeSize derives a node's rectangle from its label using the character
// width heuristic, clamped to [NodeWidth, 2*NodeWidth].
func (c *LayoutConfig) NodeSize(label string) (w, h float64) {
	w = float64(utf8.RuneCountInString(label))*c.CharWidth + 2*LABEL_PADDING
	w = geo.Clamp(w, c.NodeWidth, 2*c.NodeWidth)
	return w, c.NodeHeight
}
