// Package vizlayered implements a native Sugiyama-style layered layout:
// rank assignment over a cycle-broken graph, barycenter crossing reduction,
// and coordinate assignment along a configurable rank direction.
package vizlayered

import (
	"context"
	"math"
	"sort"

	"cdr.dev/slog"
	"oss.terrastruct.com/util-go/go2"

	"github.com/nobu007/speech-to-visuals-sub001/lib/geo"
	"github.com/nobu007/speech-to-visuals-sub001/lib/log"
	"github.com/nobu007/speech-to-visuals-sub001/vizgraph"
)

const (
	// max barycenter down+up sweeps before giving up on improvement
	ORDERING_PASSES = 4

	// gap between bounding boxes of disconnected components
	COMPONENT_GAP = 80.

	// size of the loop drawn for self-referencing edges
	SELF_LOOP_SIZE = 40.
)

// Layout positions g's nodes in place. It never fails on a well-formed
// graph; an empty node set is a no-op.
func Layout(ctx context.Context, g *vizgraph.Graph, config vizgraph.LayoutConfig) error {
	if len(g.Nodes) == 0 {
		return nil
	}

	components := splitComponents(g)
	log.Debug(ctx, "layered layout",
		slog.F("nodes", len(g.Nodes)),
		slog.F("edges", len(g.Edges)),
		slog.F("components", len(components)),
	)

	crossOffset := 0.
	for _, comp := range components {
		comp.breakCycles()
		comp.assignRanks()
		comp.orderRanks()
		comp.assignCoordinates(config)

		// stack components along the cross axis with a fixed gap
		bounds := comp.bounds()
		for _, n := range comp.nodes {
			if config.RankDirection == vizgraph.RankLeftToRight {
				n.Move(-bounds.MinX, crossOffset-bounds.MinY)
			} else {
				n.Move(crossOffset-bounds.MinX, -bounds.MinY)
			}
		}
		if config.RankDirection == vizgraph.RankLeftToRight {
			crossOffset += bounds.Height + COMPONENT_GAP
		} else {
			crossOffset += bounds.Width + COMPONENT_GAP
		}
	}

	routeEdges(g, components, config)
	centerOnCanvas(g, config)
	return nil
}

// centerOnCanvas translates the finished arrangement, routes included, so
// its bounding box centers on the canvas. Layouts larger than the canvas
// keep their size; the overlap resolver treats them as grown bounds.
func centerOnCanvas(g *vizgraph.Graph, config vizgraph.LayoutConfig) {
	bounds := vizgraph.BoundingBox(g)
	dx := (config.CanvasWidth-bounds.Width)/2 - bounds.MinX
	dy := (config.CanvasHeight-bounds.Height)/2 - bounds.MinY
	for _, n := range g.Nodes {
		n.Move(dx, dy)
	}
	for _, e := range g.Edges {
		for _, p := range e.Route {
			p.X += dx
			p.Y += dy
		}
	}
}

// component is one weakly connected piece of the graph, with its own
// cycle-broken adjacency and rank structure.
type component struct {
	nodes []*vizgraph.Node
	edges []*vizgraph.Edge

	// succ/pred reflect edge direction after cycle breaking
	succ map[*vizgraph.Node][]*vizgraph.Node
	pred map[*vizgraph.Node][]*vizgraph.Node

	ranks [][]*vizgraph.Node

	// main-axis start and extent of each rank band, in component-local
	// coordinates
	rankOffset []float64
	rankExtent []float64
}

// splitComponents groups nodes into weakly connected components, preserving
// insertion order both across and within components.
func splitComponents(g *vizgraph.Graph) []*component {
	neighbors := make(map[*vizgraph.Node][]*vizgraph.Node)
	for _, e := range g.Edges {
		if e.Src == e.Dst {
			continue
		}
		neighbors[e.Src] = append(neighbors[e.Src], e.Dst)
		neighbors[e.Dst] = append(neighbors[e.Dst], e.Src)
	}

	compIndex := make(map[*vizgraph.Node]int)
	var members [][]*vizgraph.Node
	for _, n := range g.Nodes {
		if _, seen := compIndex[n]; seen {
			continue
		}
		idx := len(members)
		queue := []*vizgraph.Node{n}
		compIndex[n] = idx
		var found []*vizgraph.Node
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			found = append(found, curr)
			for _, next := range neighbors[curr] {
				if _, seen := compIndex[next]; !seen {
					compIndex[next] = idx
					queue = append(queue, next)
				}
			}
		}
		members = append(members, found)
	}

	// membership discovery order is BFS; re-collect in insertion order so
	// the rank tie-break stays tied to the caller's node order
	collected := make([][]*vizgraph.Node, len(members))
	for _, n := range g.Nodes {
		idx := compIndex[n]
		collected[idx] = append(collected[idx], n)
	}

	comps := make([]*component, 0, len(collected))
	for idx, nodes := range collected {
		comp := &component{
			nodes: nodes,
			succ:  make(map[*vizgraph.Node][]*vizgraph.Node),
			pred:  make(map[*vizgraph.Node][]*vizgraph.Node),
		}
		for _, e := range g.Edges {
			if e.Src != e.Dst && compIndex[e.Src] == idx {
				comp.edges = append(comp.edges, e)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// breakCycles reverses the adjacency of any edge that closes a cycle, found
// by DFS in insertion order. Only the rank structure sees the reversal; the
// edge itself keeps its direction.
func (c *component) breakCycles() {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make(map[*vizgraph.Node]int)
	reversed := make(map[*vizgraph.Edge]bool)

	fwd := make(map[*vizgraph.Node][]*vizgraph.Edge)
	for _, e := range c.edges {
		fwd[e.Src] = append(fwd[e.Src], e)
	}

	var visit func(n *vizgraph.Node)
	visit = func(n *vizgraph.Node) {
		state[n] = gray
		for _, e := range fwd[n] {
			switch state[e.Dst] {
			case white:
				visit(e.Dst)
			case gray:
				// back edge: closes a cycle
				reversed[e] = true
			}
		}
		state[n] = black
	}
	for _, n := range c.nodes {
		if state[n] == white {
			visit(n)
		}
	}

	for _, e := range c.edges {
		src, dst := e.Src, e.Dst
		if reversed[e] {
			src, dst = dst, src
		}
		c.succ[src] = append(c.succ[src], dst)
		c.pred[dst] = append(c.pred[dst], src)
	}
}

// assignRanks sets each node's rank to the longest path from a source of the
// acyclic graph, processing in topological order.
func (c *component) assignRanks() {
	indegree := make(map[*vizgraph.Node]int)
	for _, n := range c.nodes {
		indegree[n] = len(c.pred[n])
	}

	var queue []*vizgraph.Node
	for _, n := range c.nodes {
		n.Rank = 0
		if indegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range c.succ[curr] {
			next.Rank = go2.Max(next.Rank, curr.Rank+1)
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	maxRank := 0
	for _, n := range c.nodes {
		maxRank = go2.Max(maxRank, n.Rank)
	}
	c.ranks = make([][]*vizgraph.Node, maxRank+1)
	for _, n := range c.nodes {
		c.ranks[n.Rank] = append(c.ranks[n.Rank], n)
	}
	c.syncOrder()
}

func (c *component) syncOrder() {
	for _, rank := range c.ranks {
		for i, n := range rank {
			n.Order = i
		}
	}
}

// orderRanks reduces crossings between adjacent ranks with barycenter
// sweeps: a fixed number of down then up passes, stopping early once a full
// pass leaves every rank unchanged.
func (c *component) orderRanks() {
	if len(c.ranks) <= 1 {
		return
	}
	for pass := 0; pass < ORDERING_PASSES; pass++ {
		changed := false
		for r := 1; r < len(c.ranks); r++ {
			if c.sortByBarycenter(r, c.pred) {
				changed = true
			}
		}
		for r := len(c.ranks) - 2; r >= 0; r-- {
			if c.sortByBarycenter(r, c.succ) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// sortByBarycenter reorders rank r by the average Order of each node's
// neighbors in the adjacent rank. Nodes without neighbors keep their
// current position as their barycenter. Returns whether the order changed.
func (c *component) sortByBarycenter(r int, adjacent map[*vizgraph.Node][]*vizgraph.Node) bool {
	rank := c.ranks[r]
	bary := make(map[*vizgraph.Node]float64, len(rank))
	for _, n := range rank {
		sum := 0.
		count := 0
		for _, other := range adjacent[n] {
			if other.Rank == r-1 || other.Rank == r+1 {
				sum += float64(other.Order)
				count++
			}
		}
		if count > 0 {
			bary[n] = sum / float64(count)
		} else {
			bary[n] = float64(n.Order)
		}
	}

	sort.SliceStable(rank, func(i, j int) bool {
		return bary[rank[i]] < bary[rank[j]]
	})

	changed := false
	for i, n := range rank {
		if n.Order != i {
			n.Order = i
			changed = true
		}
	}
	return changed
}

// assignCoordinates lays ranks along the main axis and nodes along the
// cross axis, each rank centered against the widest one.
func (c *component) assignCoordinates(config vizgraph.LayoutConfig) {
	horizontal := config.RankDirection == vizgraph.RankLeftToRight

	mainSize := func(n *vizgraph.Node) float64 {
		if horizontal {
			return n.Box.Width
		}
		return n.Box.Height
	}
	crossSize := func(n *vizgraph.Node) float64 {
		if horizontal {
			return n.Box.Height
		}
		return n.Box.Width
	}

	c.rankOffset = make([]float64, len(c.ranks))
	c.rankExtent = make([]float64, len(c.ranks))
	mainOffset := 0.
	for r, rank := range c.ranks {
		extent := 0.
		for _, n := range rank {
			extent = math.Max(extent, mainSize(n))
		}
		c.rankOffset[r] = mainOffset
		c.rankExtent[r] = extent
		mainOffset += extent + config.RankSeparation
	}

	widest := 0.
	rankSpan := make([]float64, len(c.ranks))
	for r, rank := range c.ranks {
		span := 0.
		for i, n := range rank {
			span += crossSize(n)
			if i > 0 {
				span += config.NodeSeparation
			}
		}
		rankSpan[r] = span
		widest = math.Max(widest, span)
	}

	for r, rank := range c.ranks {
		cross := (widest - rankSpan[r]) / 2
		for _, n := range rank {
			main := c.rankOffset[r] + (c.rankExtent[r]-mainSize(n))/2
			if horizontal {
				n.MoveTo(main, cross)
			} else {
				n.MoveTo(cross, main)
			}
			cross += crossSize(n) + config.NodeSeparation
		}
	}
}

func (c *component) bounds() vizgraph.Bounds {
	sub := &vizgraph.Graph{Nodes: c.nodes}
	return vizgraph.BoundingBox(sub)
}

// routeEdges connects all edges. Adjacent-rank edges are straight lines
// between border midpoints; rank-skipping edges bend once per skipped rank
// so they do not pass through intervening nodes.
func routeEdges(g *vizgraph.Graph, components []*component, config vizgraph.LayoutConfig) {
	compOf := make(map[*vizgraph.Node]*component)
	for _, comp := range components {
		for _, n := range comp.nodes {
			compOf[n] = comp
		}
	}

	for _, e := range g.Edges {
		if e.Src == e.Dst {
			routeSelfLoop(e)
			continue
		}
		comp := compOf[e.Src]
		lo, hi := e.Src.Rank, e.Dst.Rank
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo <= 1 {
			e.RouteStraight()
			continue
		}

		bends := make([]*geo.Point, 0, hi-lo-1)
		for r := lo + 1; r < hi; r++ {
			bends = append(bends, comp.bendAt(e, r, config))
		}
		if e.Src.Rank > e.Dst.Rank {
			// keep the route ordered source to destination
			for i, j := 0, len(bends)-1; i < j; i, j = i+1, j-1 {
				bends[i], bends[j] = bends[j], bends[i]
			}
		}
		e.RouteWithBends(bends)
	}
}

// bendAt picks the bend point for edge e at skipped rank r: the straight
// interpolation between the endpoint centers, nudged off any node of rank r
// it would pass through.
func (c *component) bendAt(e *vizgraph.Edge, r int, config vizgraph.LayoutConfig) *geo.Point {
	horizontal := config.RankDirection == vizgraph.RankLeftToRight

	srcC := e.Src.Center()
	dstC := e.Dst.Center()
	lo, hi := e.Src.Rank, e.Dst.Rank
	if lo > hi {
		lo, hi = hi, lo
		srcC, dstC = dstC, srcC
	}
	t := float64(r-lo) / float64(hi-lo)
	main := c.rankOffset[r] + c.rankExtent[r]/2

	var cross float64
	if horizontal {
		cross = srcC.Y + t*(dstC.Y-srcC.Y)
	} else {
		cross = srcC.X + t*(dstC.X-srcC.X)
	}

	// push the bend clear of intervening nodes in this rank
	for _, n := range c.ranks[r] {
		var lowEdge, highEdge, center float64
		if horizontal {
			lowEdge = n.Box.TopLeft.Y
			highEdge = n.Box.TopLeft.Y + n.Box.Height
			center = n.Center().Y
		} else {
			lowEdge = n.Box.TopLeft.X
			highEdge = n.Box.TopLeft.X + n.Box.Width
			center = n.Center().X
		}
		if cross > lowEdge-config.EdgeSeparation && cross < highEdge+config.EdgeSeparation {
			if cross < center {
				cross = lowEdge - config.EdgeSeparation
			} else {
				cross = highEdge + config.EdgeSeparation
			}
		}
	}

	if horizontal {
		return geo.NewPoint(main, cross)
	}
	return geo.NewPoint(cross, main)
}

// routeSelfLoop draws a small rectangular loop off the node's right side.
func routeSelfLoop(e *vizgraph.Edge) {
	box := e.Src.Box
	right := box.TopLeft.X + box.Width
	cy := box.TopLeft.Y + box.Height/2
	e.Route = []*geo.Point{
		geo.NewPoint(right, cy-box.Height/4),
		geo.NewPoint(right+SELF_LOOP_SIZE, cy-box.Height/4),
		geo.NewPoint(right+SELF_LOOP_SIZE, cy+box.Height/4),
		geo.NewPoint(right, cy+box.Height/4),
	}
}
