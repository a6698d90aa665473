package sim

import "github.com/vovakirdan/sky-battle/internal/core"

// Event is a notification from the simulation to the presentation layer.
type Event interface {
	simEvent()
}

// LevelStarted is emitted once when a level is built, before anything spawns.
type LevelStarted struct {
	Level LevelID
	View  View
}

// EntitySpawned is emitted when an entity joins a collection.
type EntitySpawned struct {
	ID     EntityID
	Kind   Kind
	Bounds core.Rect
}

// EntityRemoved is emitted when a destroyed entity is purged.
// Bounds is where the entity was when it died.
type EntityRemoved struct {
	ID     EntityID
	Kind   Kind
	Bounds core.Rect
}

// HealthChanged carries the player's new health.
type HealthChanged struct {
	Health int
}

// KillsChanged carries the level's new kill count.
type KillsChanged struct {
	Kills int
}

// ShieldChanged reports the boss shield going up or down.
type ShieldChanged struct {
	Shielded bool
}

// LevelWon ends the campaign in victory.
type LevelWon struct {
	Level LevelID
}

// LevelLost ends the campaign in defeat.
type LevelLost struct {
	Level LevelID
}

// AdvanceToLevel asks the host to build and start the next level.
type AdvanceToLevel struct {
	From LevelID
	Next LevelID
}

func (LevelStarted) simEvent()   {}
func (EntitySpawned) simEvent()  {}
func (EntityRemoved) simEvent()  {}
func (HealthChanged) simEvent()  {}
func (KillsChanged) simEvent()   {}
func (ShieldChanged) simEvent()  {}
func (LevelWon) simEvent()       {}
func (LevelLost) simEvent()      {}
func (AdvanceToLevel) simEvent() {}

// Listener receives simulation events synchronously from inside Tick.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }

// Listeners fans events out to every non-nil listener in order.
func Listeners(ls ...Listener) Listener {
	out := make(multiListener, 0, len(ls))
	for _, l := range ls {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type multiListener []Listener

func (m multiListener) OnEvent(ev Event) {
	for _, l := range m {
		l.OnEvent(ev)
	}
}
