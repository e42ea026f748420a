// Package systems contains the simulation systems driven by the game loop.
//
// Every system follows the same three-phase tick: FromWorld reads what it
// needs from the world, Update advances private state by dt without touching
// the world, and ToWorld writes results back.
package systems

import (
	"github.com/pthm-cable/minions/components"
	"github.com/pthm-cable/minions/world"
)

// System is one stage of the simulation tick.
type System interface {
	// Init is called once before the first tick.
	Init(w *world.World)
	// Register tells the system about a new agent.
	Register(agent *components.Agent) error
	// Unregister drops everything the system holds for an agent.
	Unregister(id components.Id)
	FromWorld(w *world.World)
	Update(dt float64)
	ToWorld(w *world.World)
}

// Base provides no-op implementations of System.
type Base struct{}

func (Base) Init(*world.World) {}
func (Base) Register(*components.Agent) error { return nil }
func (Base) Unregister(components.Id) {}
func (Base) FromWorld(*world.World) {}
func (Base) Update(float64) {}
func (Base) ToWorld(*world.World) {}
