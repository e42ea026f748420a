// Package traits defines segment roles.
package traits

import "strings"

// Flag is a set of segment role bits.
type Flag uint32

const (
	// Structure
	Torso Flag = 1 << iota // Root body part
	Head                   // Carries the senses, steers toward targets
	Arm                    // Steering limb
	Leg                    // Thrust limb
	Tail                   // Thrust limb at the back

	// Function
	Mouth   // Absorbs touched resources
	Storage // Becomes a corpse resource on starvation
	Tracker // Position recorded into the trajectory
)

// None is the empty role set.
const None Flag = 0

// Has checks if a flag set contains any of the given flags.
func (f Flag) Has(other Flag) bool {
	return f&other != 0
}

// Add adds flags to the set.
func (f Flag) Add(other Flag) Flag {
	return f | other
}

// Remove removes flags from the set.
func (f Flag) Remove(other Flag) Flag {
	return f &^ other
}

// Limb reports whether the set contains any limb role.
func (f Flag) Limb() bool {
	return f.Has(Arm | Leg | Tail)
}

var flagNames = []struct {
	flag Flag
	name string
}{
	{Torso, "Torso"},
	{Head, "Head"},
	{Arm, "Arm"},
	{Leg, "Leg"},
	{Tail, "Tail"},
	{Mouth, "Mouth"},
	{Storage, "Storage"},
	{Tracker, "Tracker"},
}

// Names returns human-readable names for the flags in the set.
func Names(f Flag) []string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

func (f Flag) String() string {
	if f == None {
		return "None"
	}
	return strings.Join(Names(f), "|")
}

// Color returns an RGB tint for a segment with these roles.
func Color(f Flag) (r, g, b uint8) {
	switch {
	case f.Has(Mouth):
		return 220, 90, 70 // Red
	case f.Has(Head):
		return 230, 180, 80 // Amber
	case f.Has(Storage):
		return 110, 170, 220 // Blue
	case f.Limb():
		return 120, 200, 140 // Green
	}
	return 150, 150, 150 // Gray default
}
