package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestBox2DBodiesAndFixtures(t *testing.T) {
	e := NewBox2D(r2.Vec{})
	b := e.CreateBody(BodyDef{Position: r2.Vec{X: 1, Y: 2}, Angle: 0.5, Tag: "root"})
	b.CreateFixture(FixtureDef{Shape: Circle{Radius: 1}, Density: 1, Tag: "circle"})
	b.CreateFixture(FixtureDef{Shape: Box{HalfWidth: 0.5, HalfHeight: 1}, Density: 1, Tag: "box"})
	b.CreateFixture(FixtureDef{
		Shape:   Polygon{Vertices: []r2.Vec{{}, {X: 1}, {X: 1, Y: 1}}},
		Density: 1,
		Tag:     "tri",
	})

	if e.BodyCount() != 1 {
		t.Fatalf("BodyCount = %d, want 1", e.BodyCount())
	}
	if got := len(b.FixtureTags()); got != 3 {
		t.Errorf("fixture count = %d, want 3", got)
	}
	if b.Tag() != "root" {
		t.Errorf("Tag() = %v, want root", b.Tag())
	}
	if p := b.Position(); p != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("Position() = %v, want (1,2)", p)
	}
	if math.Abs(b.Angle()-0.5) > 1e-12 {
		t.Errorf("Angle() = %v, want 0.5", b.Angle())
	}

	bodies := e.Bodies()
	if len(bodies) != 1 || bodies[0].Tag() != "root" {
		t.Errorf("Bodies() = %v", bodies)
	}

	e.DestroyBody(b)
	if e.BodyCount() != 0 {
		t.Errorf("BodyCount after destroy = %d, want 0", e.BodyCount())
	}
}

func TestBox2DJointAndDestroy(t *testing.T) {
	e := NewBox2D(r2.Vec{})
	a := e.CreateBody(BodyDef{})
	a.CreateFixture(FixtureDef{Shape: Circle{Radius: 1}, Density: 1})
	b := e.CreateBody(BodyDef{Position: r2.Vec{X: 2}})
	b.CreateFixture(FixtureDef{Shape: Circle{Radius: 1}, Density: 1})

	e.CreateRevoluteJoint(RevoluteJointDef{
		BodyA: a, BodyB: b,
		LocalAnchorA:     r2.Vec{X: 1},
		LocalAnchorB:     r2.Vec{X: -1},
		CollideConnected: true,
	})
	if e.JointCount() != 1 {
		t.Fatalf("JointCount = %d, want 1", e.JointCount())
	}
	e.DestroyBody(a)
	if e.JointCount() != 0 {
		t.Errorf("JointCount after destroying a body = %d, want 0", e.JointCount())
	}
}

func TestBox2DForceMovesBody(t *testing.T) {
	e := NewBox2D(r2.Vec{})
	b := e.CreateBody(BodyDef{})
	b.CreateFixture(FixtureDef{Shape: Circle{Radius: 1}, Density: 1})

	for i := 0; i < 30; i++ {
		b.ApplyForce(r2.Vec{X: 10}, b.WorldCenter())
		e.Step(1.0/60, 8, 3)
	}
	if b.Position().X <= 0 {
		t.Errorf("body did not move along the force: %v", b.Position())
	}
	if math.Abs(b.Position().Y) > 1e-9 {
		t.Errorf("body drifted off axis: %v", b.Position())
	}
}

func TestBox2DWorldPoint(t *testing.T) {
	e := NewBox2D(r2.Vec{})
	b := e.CreateBody(BodyDef{Position: r2.Vec{X: 3}, Angle: math.Pi / 2})
	p := b.WorldPoint(r2.Vec{X: 1})
	if math.Abs(p.X-3) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Errorf("WorldPoint = %v, want (3,1)", p)
	}
}

func TestBox2DReportsContacts(t *testing.T) {
	e := NewBox2D(r2.Vec{})
	var pairs [][2]any
	e.OnContact(func(a, b any) { pairs = append(pairs, [2]any{a, b}) })

	a := e.CreateBody(BodyDef{})
	a.CreateFixture(FixtureDef{Shape: Circle{Radius: 1}, Density: 1, Tag: "a"})
	b := e.CreateBody(BodyDef{Position: r2.Vec{X: 1.5}})
	b.CreateFixture(FixtureDef{Shape: Circle{Radius: 1}, Density: 1, Tag: "b"})

	e.Step(1.0/60, 8, 3)
	e.Step(1.0/60, 8, 3)

	if len(pairs) == 0 {
		t.Fatal("no contact reported for overlapping circles")
	}
	got := pairs[0]
	if !(got[0] == "a" && got[1] == "b") && !(got[0] == "b" && got[1] == "a") {
		t.Errorf("contact pair = %v, want a/b", got)
	}
}
