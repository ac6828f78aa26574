package geo

// A 2-dimensional Vector with components based on the origin
type Vector []float64

func NewVector(components ...float64) Vector {
	return components
}

func (a Vector) Add(b Vector) Vector {
	c := make(Vector, 0, len(a))
	for i := 0; i < len(a); i++ {
		c = append(c, a[i]+b[i])
	}
	return c
}

func (a Vector) ToPoint() *Point {
	return &Point{a[0], a[1]}
}
