package geo

import (
	"fmt"
	"math"
)

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

// Contains reports whether p lies strictly inside b (boundary excluded).
func (b *Box) Contains(p *Point) bool {
	return p.X > b.TopLeft.X &&
		p.X < b.TopLeft.X+b.Width &&
		p.Y > b.TopLeft.Y &&
		p.Y < b.TopLeft.Y+b.Height
}

// Overlaps reports whether both axis projections of b and other intersect.
// Boxes that merely touch along an edge do not overlap.
func (b *Box) Overlaps(other *Box) bool {
	if b.TopLeft.X+b.Width <= other.TopLeft.X || other.TopLeft.X+other.Width <= b.TopLeft.X {
		return false
	}
	if b.TopLeft.Y+b.Height <= other.TopLeft.Y || other.TopLeft.Y+other.Height <= b.TopLeft.Y {
		return false
	}
	return true
}

// OverlapDepth returns the per-axis penetration of other into b.
// Both components are positive iff the boxes overlap.
func (b *Box) OverlapDepth(other *Box) (dx, dy float64) {
	dx = math.Min(b.TopLeft.X+b.Width, other.TopLeft.X+other.Width) - math.Max(b.TopLeft.X, other.TopLeft.X)
	dy = math.Min(b.TopLeft.Y+b.Height, other.TopLeft.Y+other.Height) - math.Max(b.TopLeft.Y, other.TopLeft.Y)
	return dx, dy
}

// Expand grows the box by pad on every side.
func (b *Box) Expand(pad float64) *Box {
	return NewBox(NewPoint(b.TopLeft.X-pad, b.TopLeft.Y-pad), b.Width+2*pad, b.Height+2*pad)
}

func (b *Box) Corners() []*Point {
	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)
	return []*Point{tl, tr, br, bl}
}

func (b *Box) Intersections(s Segment) []*Point {
	pts := []*Point{}

	corners := b.Corners()
	tl, tr, br, bl := corners[0], corners[1], corners[2], corners[3]

	if p := IntersectionPoint(s.Start, s.End, tl, tr); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, tr, br); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, br, bl); p != nil {
		pts = append(pts, p)
	}
	if p := IntersectionPoint(s.Start, s.End, bl, tl); p != nil {
		pts = append(pts, p)
	}
	return pts
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
