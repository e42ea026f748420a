package systems

import (
	"math"

	"github.com/pthm-cable/minions/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// fakeEngine records what the rig system asks of it. Step moves nothing.
type fakeEngine struct {
	bodies    []*fakeBody
	joints    []physics.RevoluteJointDef
	destroyed int
	steps     int
	onContact physics.ContactFunc
}

func newFakeEngine() *fakeEngine { return &fakeEngine{} }

func (e *fakeEngine) CreateBody(def physics.BodyDef) physics.Body {
	b := &fakeBody{pos: def.Position, angle: def.Angle, tag: def.Tag}
	e.bodies = append(e.bodies, b)
	return b
}

func (e *fakeEngine) DestroyBody(body physics.Body) {
	for i, b := range e.bodies {
		if b == body {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			e.destroyed++
			break
		}
	}
	live := e.joints[:0]
	for _, j := range e.joints {
		if j.BodyA != body && j.BodyB != body {
			live = append(live, j)
		}
	}
	e.joints = live
}

func (e *fakeEngine) CreateRevoluteJoint(def physics.RevoluteJointDef) {
	e.joints = append(e.joints, def)
}

func (e *fakeEngine) Step(float64, int, int) { e.steps++ }

func (e *fakeEngine) Bodies() []physics.Body {
	out := make([]physics.Body, len(e.bodies))
	for i, b := range e.bodies {
		out[i] = b
	}
	return out
}

func (e *fakeEngine) BodyCount() int  { return len(e.bodies) }
func (e *fakeEngine) JointCount() int { return len(e.joints) }

func (e *fakeEngine) OnContact(fn physics.ContactFunc) { e.onContact = fn }

func (e *fakeEngine) touch(a, b any) {
	if e.onContact != nil {
		e.onContact(a, b)
	}
}

type fakeBody struct {
	pos      r2.Vec
	angle    float64
	tag      any
	fixtures []physics.FixtureDef
	forces   []r2.Vec
}

func (b *fakeBody) CreateFixture(def physics.FixtureDef) { b.fixtures = append(b.fixtures, def) }

func (b *fakeBody) FixtureTags() []any {
	tags := make([]any, len(b.fixtures))
	for i, f := range b.fixtures {
		tags[i] = f.Tag
	}
	return tags
}

func (b *fakeBody) ApplyForce(force, _ r2.Vec) { b.forces = append(b.forces, force) }
func (b *fakeBody) Position() r2.Vec          { return b.pos }
func (b *fakeBody) Angle() float64            { return b.angle }
func (b *fakeBody) WorldCenter() r2.Vec       { return b.pos }
func (b *fakeBody) Tag() any                  { return b.tag }

func (b *fakeBody) WorldPoint(local r2.Vec) r2.Vec {
	sin, cos := math.Sincos(b.angle)
	return r2.Add(b.pos, r2.Vec{X: local.X*cos - local.Y*sin, Y: local.X*sin + local.Y*cos})
}
