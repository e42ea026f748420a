package components

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ShapeKind is the outline of a segment.
type ShapeKind uint8

const (
	ShapeBall ShapeKind = iota
	ShapeBox
	ShapeStar
	ShapePoly
	ShapeTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBall:
		return "ball"
	case ShapeBox:
		return "box"
	case ShapeStar:
		return "star"
	case ShapePoly:
		return "poly"
	case ShapeTriangle:
		return "triangle"
	}
	return "unknown"
}

// Winding is the order of a mesh's outline vertices.
type Winding uint8

const (
	CCW Winding = iota
	CW
)

// BallVertices is the number of ring vertices on a ball mesh.
const BallVertices = 8

// Shape describes a segment outline in unit space.
// Radius scales the unit mesh into world units.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Ratio  float64 // Box aspect (half-width/half-height) or star valley depth
	N      int     // Star/poly point count
}

// Ball returns a circle shape.
func Ball(radius float64) Shape { return Shape{Kind: ShapeBall, Radius: radius} }

// Box returns a rectangle with half-height radius and half-width radius*ratio.
func Box(radius, ratio float64) Shape { return Shape{Kind: ShapeBox, Radius: radius, Ratio: ratio} }

// Star returns an n-pointed star with valleys at ratio of the tip length.
func Star(radius, ratio float64, n int) Shape {
	return Shape{Kind: ShapeStar, Radius: radius, Ratio: ratio, N: n}
}

// Poly returns a regular n-gon.
func Poly(radius float64, n int) Shape {
	return Shape{Kind: ShapePoly, Radius: radius, Ratio: math.Cos(math.Pi / float64(n)), N: n}
}

// Triangle returns an equilateral triangle.
func Triangle(radius float64) Shape { return Shape{Kind: ShapeTriangle, Radius: radius} }

// Mesh is a shape with its unit-space outline.
// Star and poly meshes alternate tips (even indices) and valleys (odd indices).
// Vertex 0 is where a child limb attaches to its parent.
type Mesh struct {
	Shape    Shape
	Vertices []r2.Vec
	Winding  Winding
}

// NewMesh builds the outline for shape in the given winding.
func NewMesh(shape Shape, winding Winding) Mesh {
	dir := 1.0
	if winding == CW {
		dir = -1
	}
	var verts []r2.Vec
	switch shape.Kind {
	case ShapeBall:
		verts = ring(BallVertices, dir, func(int) float64 { return 1 })
	case ShapeBox:
		// Corners of a (2*ratio x 2) rectangle, starting on the +x side
		r := shape.Ratio
		verts = []r2.Vec{{X: r, Y: -1}, {X: r, Y: 1}, {X: -r, Y: 1}, {X: -r, Y: -1}}
		if winding == CW {
			verts[1], verts[3] = verts[3], verts[1]
		}
	case ShapeStar, ShapePoly:
		ratio := shape.Ratio
		verts = ring(2*shape.N, dir, func(i int) float64 {
			if i%2 == 1 {
				return ratio
			}
			return 1
		})
	case ShapeTriangle:
		verts = ring(3, dir, func(int) float64 { return 1 })
	}
	return Mesh{Shape: shape, Vertices: verts, Winding: winding}
}

func ring(n int, dir float64, length func(i int) float64) []r2.Vec {
	verts := make([]r2.Vec, n)
	for i := range verts {
		a := dir * 2 * math.Pi * float64(i) / float64(n)
		l := length(i)
		verts[i] = r2.Vec{X: l * math.Cos(a), Y: l * math.Sin(a)}
	}
	return verts
}

// Vertex returns vertex i scaled into segment-local world units.
func (m *Mesh) Vertex(i int) r2.Vec {
	return r2.Scale(m.Shape.Radius, m.Vertices[i])
}

// SignedArea returns the shoelace area of the outline; positive for CCW.
func (m *Mesh) SignedArea() float64 {
	return SignedArea(m.Vertices)
}

// SignedArea returns the shoelace area of a closed polygon.
func SignedArea(pts []r2.Vec) float64 {
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// Validate reports a mesh that cannot be turned into physics fixtures.
func (m *Mesh) Validate() error {
	if m.Shape.Radius <= 0 {
		return fmt.Errorf("%s mesh: non-positive radius %v", m.Shape.Kind, m.Shape.Radius)
	}
	want := 0
	switch m.Shape.Kind {
	case ShapeBall:
		want = BallVertices
	case ShapeBox:
		if m.Shape.Ratio <= 0 {
			return fmt.Errorf("box mesh: non-positive ratio %v", m.Shape.Ratio)
		}
		want = 4
	case ShapeStar, ShapePoly:
		if m.Shape.N < 3 {
			return fmt.Errorf("%s mesh: need at least 3 points, got %d", m.Shape.Kind, m.Shape.N)
		}
		if m.Shape.Ratio <= 0 || m.Shape.Ratio > 1 {
			return fmt.Errorf("%s mesh: valley ratio %v outside (0, 1]", m.Shape.Kind, m.Shape.Ratio)
		}
		want = 2 * m.Shape.N
	case ShapeTriangle:
		want = 3
	default:
		return fmt.Errorf("unknown shape kind %d", m.Shape.Kind)
	}
	if len(m.Vertices) != want {
		return fmt.Errorf("%s mesh: %d vertices, want %d", m.Shape.Kind, len(m.Vertices), want)
	}
	area := m.SignedArea()
	if (m.Winding == CCW && area <= 0) || (m.Winding == CW && area >= 0) {
		return fmt.Errorf("%s mesh: outline area %v does not match winding", m.Shape.Kind, area)
	}
	return nil
}
