package physics

import (
	"github.com/ByteArena/box2d"
	"gonum.org/v1/gonum/spatial/r2"
)

// Box2D implements Engine with github.com/ByteArena/box2d.
type Box2D struct {
	world     *box2d.B2World
	onContact ContactFunc
}

// NewBox2D creates an empty world with the given gravity.
func NewBox2D(gravity r2.Vec) *Box2D {
	w := box2d.MakeB2World(toB2(gravity))
	e := &Box2D{world: &w}
	e.world.SetContactListener(&contactListener{engine: e})
	return e
}

func toB2(v r2.Vec) box2d.B2Vec2 { return box2d.MakeB2Vec2(v.X, v.Y) }

func fromB2(v box2d.B2Vec2) r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// CreateBody adds a dynamic body.
func (e *Box2D) CreateBody(def BodyDef) Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = toB2(def.Position)
	bd.Angle = def.Angle
	b := e.world.CreateBody(&bd)
	b.SetUserData(def.Tag)
	return box2dBody{b: b}
}

// DestroyBody removes a body and its fixtures and joints.
func (e *Box2D) DestroyBody(b Body) {
	if bb, ok := b.(box2dBody); ok {
		e.world.DestroyBody(bb.b)
	}
}

// CreateRevoluteJoint joins two bodies created by this engine.
func (e *Box2D) CreateRevoluteJoint(def RevoluteJointDef) {
	a, okA := def.BodyA.(box2dBody)
	b, okB := def.BodyB.(box2dBody)
	if !okA || !okB {
		return
	}
	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyA = a.b
	jd.BodyB = b.b
	jd.LocalAnchorA = toB2(def.LocalAnchorA)
	jd.LocalAnchorB = toB2(def.LocalAnchorB)
	jd.CollideConnected = def.CollideConnected
	e.world.CreateJoint(&jd)
}

// Step advances the simulation.
func (e *Box2D) Step(dt float64, velocityIterations, positionIterations int) {
	e.world.Step(dt, velocityIterations, positionIterations)
}

// Bodies returns every body in the world.
func (e *Box2D) Bodies() []Body {
	out := make([]Body, 0, e.world.GetBodyCount())
	for b := e.world.GetBodyList(); b != nil; b = b.GetNext() {
		out = append(out, box2dBody{b: b})
	}
	return out
}

// BodyCount returns the number of bodies.
func (e *Box2D) BodyCount() int { return e.world.GetBodyCount() }

// JointCount returns the number of joints.
func (e *Box2D) JointCount() int { return e.world.GetJointCount() }

// OnContact sets the begin-contact callback.
func (e *Box2D) OnContact(fn ContactFunc) { e.onContact = fn }

type contactListener struct {
	engine *Box2D
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	if l.engine.onContact == nil {
		return
	}
	a, b := contact.GetFixtureA(), contact.GetFixtureB()
	if a == nil || b == nil {
		return
	}
	l.engine.onContact(a.GetUserData(), b.GetUserData())
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}

type box2dBody struct {
	b *box2d.B2Body
}

func (b box2dBody) CreateFixture(def FixtureDef) {
	fd := box2d.MakeB2FixtureDef()
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.Restitution = def.Restitution
	fd.UserData = def.Tag

	switch s := def.Shape.(type) {
	case Circle:
		shape := box2d.MakeB2CircleShape()
		shape.M_radius = s.Radius
		fd.Shape = &shape
	case Box:
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(s.HalfWidth, s.HalfHeight)
		fd.Shape = &shape
	case Polygon:
		verts := make([]box2d.B2Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			verts[i] = toB2(v)
		}
		shape := box2d.MakeB2PolygonShape()
		shape.Set(verts, len(verts))
		fd.Shape = &shape
	default:
		return
	}
	b.b.CreateFixtureFromDef(&fd)
}

func (b box2dBody) FixtureTags() []any {
	var tags []any
	for f := b.b.GetFixtureList(); f != nil; f = f.GetNext() {
		tags = append(tags, f.GetUserData())
	}
	return tags
}

func (b box2dBody) ApplyForce(force, point r2.Vec) {
	b.b.ApplyForce(toB2(force), toB2(point), true)
}

func (b box2dBody) Position() r2.Vec    { return fromB2(b.b.GetPosition()) }
func (b box2dBody) Angle() float64      { return b.b.GetAngle() }
func (b box2dBody) WorldCenter() r2.Vec { return fromB2(b.b.GetWorldCenter()) }
func (b box2dBody) Tag() any            { return b.b.GetUserData() }

func (b box2dBody) WorldPoint(local r2.Vec) r2.Vec {
	return fromB2(b.b.GetWorldPoint(toB2(local)))
}
