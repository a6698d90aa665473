package sim

import (
	"github.com/vovakirdan/sky-battle/internal/config"
)

// Fighter is a destructible actor with health and a fire policy.
type Fighter interface {
	Actor
	Health() int
	// Fire returns a new projectile, or nil when the fire policy declines.
	// The level assigns the projectile its identifier.
	Fire() *Projectile
}

// fighter holds the health shared by every craft. Health is only ever
// changed through TakeDamage.
type fighter struct {
	Entity
	health int
}

// Health returns the remaining hit points.
func (f *fighter) Health() int { return f.health }

// TakeDamage removes one hit point and destroys the fighter at zero.
func (f *fighter) TakeDamage() {
	f.mustBeAlive("damage")
	f.health--
	if f.health <= 0 {
		f.health = 0
		f.Destroy()
	}
}

// Intent is the discrete vertical input of the player.
type Intent int

const (
	IntentStop Intent = iota
	IntentUp
	IntentDown
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	default:
		return "stop"
	}
}

// Player is the user-controlled craft.
type Player struct {
	fighter
	intent Intent
	cfg    config.PlayerConfig
	shot   config.ProjectileConfig
}

// NewPlayer creates the player craft at its configured spawn position.
func NewPlayer(id EntityID, health int, cfg config.PlayerConfig, shot config.ProjectileConfig) *Player {
	return &Player{
		fighter: fighter{
			Entity: newEntity(id, KindPlayer, cfg.X, cfg.Y, cfg.Size.Width, cfg.Size.Height),
			health: health,
		},
		cfg:  cfg,
		shot: shot,
	}
}

// SetIntent sets the vertical intent used by subsequent updates.
func (p *Player) SetIntent(i Intent) { p.intent = i }

// Intent returns the current vertical intent.
func (p *Player) Intent() Intent { return p.intent }

// Update moves the player one step in the direction of its intent.
func (p *Player) Update() {
	p.mustBeAlive("update")

	var step float64
	switch p.intent {
	case IntentUp:
		step = -p.cfg.Speed
	case IntentDown:
		step = p.cfg.Speed
	}
	p.moveVertical(step, p.cfg.MinY, p.cfg.MaxY)
}

// Fire always yields a projectile; the player has no cooldown.
func (p *Player) Fire() *Projectile {
	return NewProjectile(KindPlayerShot, p.cfg.ProjectileX, p.Y()+p.cfg.ProjectileYOffset, p.shot)
}

// Enemy is an ordinary enemy craft flying left at constant speed.
type Enemy struct {
	fighter
	rng  Rand
	cfg  config.EnemyConfig
	shot config.ProjectileConfig
}

// NewEnemy creates an enemy at (x, y).
func NewEnemy(id EntityID, x, y float64, rng Rand, cfg config.EnemyConfig, shot config.ProjectileConfig) *Enemy {
	return &Enemy{
		fighter: fighter{
			Entity: newEntity(id, KindEnemy, x, y, cfg.Size.Width, cfg.Size.Height),
			health: cfg.Health,
		},
		rng:  rng,
		cfg:  cfg,
		shot: shot,
	}
}

// Update flies the enemy one step toward the player.
func (e *Enemy) Update() {
	e.mustBeAlive("update")
	e.dx += e.cfg.Velocity
}

// Fire yields a projectile with probability cfg.FireRate.
func (e *Enemy) Fire() *Projectile {
	if e.rng.Float64() >= e.cfg.FireRate {
		return nil
	}
	return NewProjectile(KindEnemyShot, e.X()+e.cfg.ProjectileXOffset, e.Y()+e.cfg.ProjectileYOffset, e.shot)
}

// Projectile flies horizontally and dies on its first hit.
type Projectile struct {
	Entity
	velocity float64
}

// NewProjectile creates a projectile of the given kind at (x, y). It has no
// identifier until a level adds it.
func NewProjectile(kind Kind, x, y float64, cfg config.ProjectileConfig) *Projectile {
	return &Projectile{
		Entity:   newEntity(0, kind, x, y, cfg.Size.Width, cfg.Size.Height),
		velocity: cfg.Velocity,
	}
}

// Update moves the projectile by its velocity.
func (p *Projectile) Update() {
	p.mustBeAlive("update")
	p.dx += p.velocity
}

// TakeDamage destroys the projectile.
func (p *Projectile) TakeDamage() {
	p.mustBeAlive("damage")
	p.Destroy()
}
