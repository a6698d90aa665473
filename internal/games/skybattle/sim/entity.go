// Package sim is the Sky Battle simulation core: entities, fighters,
// projectiles, the boss behavior, collision resolution and the level loop.
//
// The package has no notion of drawing. A presentation layer subscribes to
// events through a Listener and reads entity bounds between ticks.
package sim

import (
	"fmt"

	"github.com/vovakirdan/sky-battle/internal/core"
)

// Rand is the random source threaded through a level into every behavior
// that draws. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// EntityID identifies an entity within one level.
type EntityID uint64

// Kind is the closed set of entity variants.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBoss
	KindPlayerShot
	KindEnemyShot
	KindBossShot
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBoss:
		return "boss"
	case KindPlayerShot:
		return "player-shot"
	case KindEnemyShot:
		return "enemy-shot"
	case KindBossShot:
		return "boss-shot"
	default:
		return "unknown"
	}
}

// IsProjectile reports whether entities of this kind are projectiles.
func (k Kind) IsProjectile() bool {
	return k == KindPlayerShot || k == KindEnemyShot || k == KindBossShot
}

// Actor is the capability shared by every entity the level loop drives.
type Actor interface {
	ID() EntityID
	Kind() Kind
	// Bounds returns the absolute bounding box (position plus translation).
	Bounds() core.Rect
	// Offset returns the accumulated translation from the spawn position.
	Offset() (dx, dy float64)
	// Update advances the entity by one tick.
	Update()
	// TakeDamage applies one hit. It may destroy the entity.
	TakeDamage()
	// Destroy marks the entity destroyed unconditionally.
	Destroy()
	Destroyed() bool
}

// Entity is the movable, destructible base embedded by every variant.
type Entity struct {
	id        EntityID
	kind      Kind
	x, y      float64 // Spawn position
	dx, dy    float64 // Translation since spawn
	w, h      float64
	destroyed bool
}

func newEntity(id EntityID, kind Kind, x, y, w, h float64) Entity {
	return Entity{id: id, kind: kind, x: x, y: y, w: w, h: h}
}

// ID returns the identifier assigned at spawn.
func (e *Entity) ID() EntityID { return e.id }

// Kind returns the variant of the entity.
func (e *Entity) Kind() Kind { return e.kind }

// X returns the absolute horizontal position.
func (e *Entity) X() float64 { return e.x + e.dx }

// Y returns the absolute vertical position.
func (e *Entity) Y() float64 { return e.y + e.dy }

// Offset returns the displacement from the spawn position.
func (e *Entity) Offset() (float64, float64) { return e.dx, e.dy }

// Bounds returns the hitbox at the current position.
func (e *Entity) Bounds() core.Rect {
	return core.NewRect(e.X(), e.Y(), e.w, e.h)
}

// Destroy marks the entity for removal at the end of the tick.
func (e *Entity) Destroy() { e.destroyed = true }

// Destroyed reports whether the entity has been destroyed.
func (e *Entity) Destroyed() bool { return e.destroyed }

// mustBeAlive panics when a destroyed entity is driven again.
func (e *Entity) mustBeAlive(op string) {
	if e.destroyed {
		panic(fmt.Sprintf("sim: %s on destroyed %s %d", op, e.kind, e.id))
	}
}

// moveVertical applies step to the translation and rolls it back when the
// absolute position would leave [minY, maxY].
func (e *Entity) moveVertical(step, minY, maxY float64) {
	e.dy += step
	if y := e.Y(); y < minY || y > maxY {
		e.dy -= step
	}
}
