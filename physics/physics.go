// Package physics defines the rigid-body capability used by the rig system
// and implements it on top of Box2D.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Shape is a fixture outline in body-local coordinates.
type Shape interface {
	isShape()
}

// Circle is a circle centered on the body origin.
type Circle struct {
	Radius float64
}

// Polygon is a convex polygon with counter-clockwise vertices.
type Polygon struct {
	Vertices []r2.Vec
}

// Box is an axis-aligned rectangle centered on the body origin.
type Box struct {
	HalfWidth, HalfHeight float64
}

func (Circle) isShape()  {}
func (Polygon) isShape() {}
func (Box) isShape()     {}

// FixtureDef attaches a shape with contact properties and an opaque tag.
type FixtureDef struct {
	Shape       Shape
	Density     float64
	Friction    float64
	Restitution float64
	Tag         any
}

// BodyDef places a dynamic body.
type BodyDef struct {
	Position r2.Vec
	Angle    float64
	Tag      any
}

// RevoluteJointDef pins two bodies together at local anchors.
type RevoluteJointDef struct {
	BodyA, BodyB     Body
	LocalAnchorA     r2.Vec
	LocalAnchorB     r2.Vec
	CollideConnected bool
}

// Body is a rigid body owned by an Engine.
type Body interface {
	CreateFixture(def FixtureDef)
	FixtureTags() []any
	ApplyForce(force, point r2.Vec)
	Position() r2.Vec
	Angle() float64
	WorldCenter() r2.Vec
	WorldPoint(local r2.Vec) r2.Vec
	Tag() any
}

// ContactFunc receives the fixture tags of two shapes that started touching.
type ContactFunc func(a, b any)

// Engine is a rigid-body world.
type Engine interface {
	CreateBody(def BodyDef) Body
	DestroyBody(b Body)
	CreateRevoluteJoint(def RevoluteJointDef)
	Step(dt float64, velocityIterations, positionIterations int)
	Bodies() []Body
	BodyCount() int
	JointCount() int
	OnContact(fn ContactFunc)
}
