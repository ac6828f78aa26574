package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxOverlaps(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 100, 50)

	// full overlap
	assert.True(t, a.Overlaps(NewBox(NewPoint(0, 0), 100, 50)))
	// partial overlap
	assert.True(t, a.Overlaps(NewBox(NewPoint(50, 25), 100, 50)))
	// contained
	assert.True(t, a.Overlaps(NewBox(NewPoint(10, 10), 10, 10)))
	// touching edges do not count
	assert.False(t, a.Overlaps(NewBox(NewPoint(100, 0), 100, 50)))
	assert.False(t, a.Overlaps(NewBox(NewPoint(0, 50), 100, 50)))
	// disjoint
	assert.False(t, a.Overlaps(NewBox(NewPoint(500, 500), 10, 10)))

	// overlap is symmetric
	b := NewBox(NewPoint(90, 40), 30, 30)
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestBoxOverlapDepth(t *testing.T) {
	a := NewBox(NewPoint(0, 0), 100, 100)
	b := NewBox(NewPoint(80, 90), 100, 100)

	dx, dy := a.OverlapDepth(b)
	assert.Equal(t, 20.0, dx)
	assert.Equal(t, 10.0, dy)

	// negative depth when disjoint on an axis
	c := NewBox(NewPoint(200, 0), 50, 50)
	dx, _ = a.OverlapDepth(c)
	assert.True(t, dx < 0)
}

func TestBoxContains(t *testing.T) {
	b := NewBox(NewPoint(10, 10), 20, 20)

	assert.True(t, b.Contains(NewPoint(20, 20)))
	// boundary is excluded
	assert.False(t, b.Contains(NewPoint(10, 20)))
	assert.False(t, b.Contains(NewPoint(30, 30)))
	assert.False(t, b.Contains(NewPoint(0, 0)))
}

func TestBoxExpand(t *testing.T) {
	b := NewBox(NewPoint(10, 10), 20, 20).Expand(5)

	assert.True(t, b.TopLeft.Equals(NewPoint(5, 5)))
	assert.Equal(t, 30.0, b.Width)
	assert.Equal(t, 30.0, b.Height)
}

func TestBoxIntersections(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 10, 10)

	// segment passing through two sides
	pts := b.Intersections(*NewSegment(NewPoint(-5, 5), NewPoint(15, 5)))
	assert.Equal(t, 2, len(pts))

	// segment from center to outside crosses one side
	pts = b.Intersections(*NewSegment(NewPoint(5, 5), NewPoint(5, 20)))
	assert.Equal(t, 1, len(pts))
	assert.True(t, pts[0].Equals(NewPoint(5, 10)))

	// segment fully outside
	pts = b.Intersections(*NewSegment(NewPoint(20, 20), NewPoint(30, 30)))
	assert.Equal(t, 0, len(pts))
}
