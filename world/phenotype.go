package world

import (
	"math"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/config"
	"github.com/pthm-cable/minions/genetics"
	"github.com/pthm-cable/minions/traits"
	"gonum.org/v1/gonum/spatial/r2"
)

// limbPlan is one limb decoded from Dna, before placement.
type limbPlan struct {
	parent int
	point  int // -1 picks the vertex opposite the parent's vertex 0
	shape  components.Shape
	flags  traits.Flag
}

// BuildMinion decodes a minion body from dna, rooted at pos.
// Segment 0 is a star torso; 1 is the head, 2 an arm, 3 and 4 legs,
// and an optional tail hangs off the first leg.
func BuildMinion(pos r2.Vec, angle float64, dna genetics.Dna, cfg *config.Config) []components.Segment {
	r := genetics.NewReader(dna)

	winding := components.CCW
	if r.Bool() {
		winding = components.CW
	}
	n := 3 + r.Int(4)
	torsoRadius := cfg.Minion.TorsoRadius * r.Range(0.8, 1.2)
	torso := components.Star(torsoRadius, r.Range(0.4, 0.9), n)

	limbRadius := func() float64 { return cfg.Minion.LimbRadius * r.Range(0.7, 1.3) }
	plans := []limbPlan{
		{parent: 0, point: 0, shape: components.Triangle(limbRadius()), flags: traits.Head | traits.Mouth},
		{parent: 0, point: 2, shape: components.Box(limbRadius(), r.Range(0.3, 0.6)), flags: traits.Arm},
		{parent: 0, point: 2 * (n - 1), shape: limbShape(r, limbRadius()), flags: traits.Leg},
		{parent: 0, point: 2*n - 3, shape: limbShape(r, limbRadius()), flags: traits.Leg},
	}
	if r.Bool() {
		plans = append(plans, limbPlan{parent: 3, point: -1, shape: components.Ball(limbRadius() * 0.6), flags: traits.Tail})
	}

	segments := make([]components.Segment, 0, 1+len(plans))
	segments = append(segments, newSegment(
		components.NewTransform(pos, angle),
		components.NewMesh(torso, winding),
		traits.Torso|traits.Storage|traits.Tracker,
		nil, r, cfg,
	))
	for _, p := range plans {
		mesh := components.NewMesh(p.shape, winding)
		parent := &segments[p.parent]
		if p.point < 0 {
			// Far side of the parent from its own attachment
			p.point = len(parent.Mesh.Vertices) / 2
		}
		t := placeChild(parent, p.point, &mesh)
		att := &components.Attachment{Index: uint8(p.parent), Point: uint8(p.point)}
		segments = append(segments, newSegment(t, mesh, p.flags, att, r, cfg))
	}
	return segments
}

func limbShape(r *genetics.Reader, radius float64) components.Shape {
	switch r.Int(3) {
	case 0:
		return components.Ball(radius)
	case 1:
		return components.Poly(radius, 3+r.Int(3))
	default:
		return components.Box(radius, r.Range(0.3, 0.8))
	}
}

func newSegment(t components.Transform, mesh components.Mesh, flags traits.Flag, att *components.Attachment,
	r *genetics.Reader, cfg *config.Config) components.Segment {
	return components.Segment{
		Transform: t,
		Mesh:      mesh,
		Material: components.Material{
			Density:     cfg.Physics.Density * r.Range(0.5, 1.5),
			Friction:    cfg.Physics.Friction,
			Restitution: cfg.Physics.Restitution,
		},
		Flags:      flags,
		Attachment: att,
		State:      components.NewSegmentState(cfg.Charge.Initial, cfg.Charge.Target, cfg.Charge.Tau),
	}
}

// placeChild positions a child so that its vertex 0 sits on the parent's
// attachment vertex, with the child pointing away from the parent.
func placeChild(parent *components.Segment, point int, child *components.Mesh) components.Transform {
	anchor := parent.WorldVertex(point)
	dir := r2.Sub(anchor, parent.Transform.Position)
	angle := parent.Transform.Angle
	if r2.Norm(dir) > 0 {
		angle = math.Atan2(dir.Y, dir.X)
	}
	// Child vertex 0 lies on its local +x axis, so turn it back toward the parent.
	angle += math.Pi

	v0 := child.Vertex(0)
	sin, cos := math.Sincos(angle)
	offset := r2.Vec{X: v0.X*cos - v0.Y*sin, Y: v0.X*sin + v0.Y*cos}
	return components.NewTransform(r2.Sub(anchor, offset), angle)
}

// BuildBall returns the single ball segment used by resources and spores.
func BuildBall(t components.Transform, radius float64, cfg *config.Config) []components.Segment {
	mesh := components.NewMesh(components.Ball(radius), components.CCW)
	return []components.Segment{{
		Transform: t,
		Mesh:      mesh,
		Material: components.Material{
			Density:     cfg.Physics.Density,
			Friction:    cfg.Physics.Friction,
			Restitution: cfg.Physics.Restitution,
		},
		State: components.NewSegmentState(cfg.Charge.Initial, cfg.Charge.Target, cfg.Charge.Tau),
	}}
}
