package components

const (
	// UnsetAgent marks a CreatureRefs without an agent.
	UnsetAgent Id = 0xdeadbeef
	// UnsetIndex marks an unset segment or sub-shape index.
	UnsetIndex uint8 = 0xff
)

// CreatureRefs points a physics handle back at an agent, segment and sub-shape.
// It is stored by value and resolved through the world on demand.
type CreatureRefs struct {
	AgentID       Id
	SegmentIndex  uint8
	SubShapeIndex uint8
}

// DefaultRefs returns the unset reference.
func DefaultRefs() CreatureRefs {
	return CreatureRefs{AgentID: UnsetAgent, SegmentIndex: UnsetIndex, SubShapeIndex: UnsetIndex}
}

// WithAgent references a whole agent.
func WithAgent(id Id) CreatureRefs {
	r := DefaultRefs()
	r.AgentID = id
	return r
}

// WithSegment references one segment of an agent.
func WithSegment(id Id, segment uint8) CreatureRefs {
	r := WithAgent(id)
	r.SegmentIndex = segment
	return r
}

// WithSubShape references one sub-shape of a segment.
func WithSubShape(id Id, segment, sub uint8) CreatureRefs {
	r := WithSegment(id, segment)
	r.SubShapeIndex = sub
	return r
}

// HasAgent reports whether the agent id is set. Ids start at 1, so the
// zero value is unset as well.
func (r CreatureRefs) HasAgent() bool {
	return r.AgentID != UnsetAgent && r.AgentID != 0
}

// HasSegment reports whether the segment index is set.
func (r CreatureRefs) HasSegment() bool {
	return r.HasAgent() && r.SegmentIndex != UnsetIndex
}

// HasSubShape reports whether the sub-shape index is set.
func (r CreatureRefs) HasSubShape() bool {
	return r.HasSegment() && r.SubShapeIndex != UnsetIndex
}

// Segment drops the sub-shape index.
func (r CreatureRefs) Segment() CreatureRefs {
	r.SubShapeIndex = UnsetIndex
	return r
}
