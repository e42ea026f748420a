package ui

import (
	"fmt"

	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/traits"
)

func agentOf(data any) *components.Agent {
	a, _ := data.(*components.Agent)
	return a
}

// minionSections describes the inspector layout for a minion.
func minionSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			Title: "Minion",
			Fields: []FieldDescriptor{
				{Label: "Id", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", agentOf(d).Id)
				}},
				{Label: "Gender", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", agentOf(d).Gender())
				}},
				{Label: "Age", Widget: WidgetText, Format: "%.1fs", Getter: func(d any) float32 {
					return float32(agentOf(d).State.Lifecycle.Elapsed)
				}},
				{Label: "Energy", Widget: WidgetBar, Getter: func(d any) float32 {
					return float32(agentOf(d).State.EnergyRatio())
				}},
				{Label: "Segments", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", len(agentOf(d).Segments))
				}},
			},
		},
		{
			Title: "Target",
			Visible: func(d any) bool {
				return agentOf(d).State.HasTarget
			},
			Fields: []FieldDescriptor{
				{Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
					p := agentOf(d).State.TargetPosition
					return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
				}},
				{Label: "Intent", Widget: WidgetText, TextGetter: func(d any) string {
					a := agentOf(d)
					if h := a.Segment(a.FirstSegment(traits.Head)); h != nil {
						return h.State.Intent.Kind.String()
					}
					return "-"
				}},
			},
		},
		{
			Title: "Genome",
			Fields: []FieldDescriptor{
				{Label: "Dna", Widget: WidgetText, TextGetter: func(d any) string {
					s := agentOf(d).Dna.String()
					if len(s) > 24 {
						s = s[:24] + "..."
					}
					return s
				}},
			},
		},
	}
}

// segmentSection lists each segment's roles and charge.
func segmentSection(a *components.Agent) SectionDescriptor {
	sd := SectionDescriptor{Title: "Charge"}
	for i := range a.Segments {
		i := i
		sd.Fields = append(sd.Fields, FieldDescriptor{
			Label:  fmt.Sprintf("%d %s", i, a.Segments[i].Mesh.Shape.Kind),
			Widget: WidgetBar,
			Range:  FieldRange{Min: 0, Max: 1},
			Getter: func(d any) float32 {
				if seg := agentOf(d).Segment(i); seg != nil {
					return float32(seg.State.Charge)
				}
				return 0
			},
		})
	}
	return sd
}

// Inspector renders the minion inspection panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: minionSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for a minion. Nil draws nothing.
func (ins *Inspector) Draw(a *components.Agent) {
	if a == nil {
		return
	}
	r := ins.renderer
	padding := r.Theme.Padding

	sections := append(ins.sections[:len(ins.sections):len(ins.sections)], segmentSection(a))

	height := padding * 2
	for _, sd := range sections {
		height += r.SectionHeight(sd, a)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	content := ins.width - padding*2
	for _, sd := range sections {
		y = r.DrawSection(ins.x+padding, y, sd, a, content)
	}
}
