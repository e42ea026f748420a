package game

import "github.com/pthm-cable/minions/telemetry"

// Step advances the simulation by one tick of dt seconds.
//
// Every system runs FromWorld, Update and ToWorld in turn, in the order
// given by Systems.Ordered. Dead agents are then swept and forgotten by
// every system, and agents created during the tick get their rigs.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()

	for i, s := range g.systems.Ordered() {
		g.perfCollector.StartPhase(stepPhases[i])
		s.FromWorld(g.world)
		s.Update(dt)
		s.ToWorld(g.world)
	}

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanup()

	g.perfCollector.StartPhase(telemetry.PhaseRegister)
	g.registerAll()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordAlife(g.systems.Alife.Events())
	g.collector.RecordDropped(g.systems.Physics.Dropped())
	g.collector.RecordReseeded(g.systems.Game.Reseeded())
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
