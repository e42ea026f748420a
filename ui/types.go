// Package ui provides a descriptor-driven UI system for the simulation.
// Panels are defined through field descriptors over the inspected value,
// so new agent state only needs a new descriptor.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar within Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for numeric text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
