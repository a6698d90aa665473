package sim

import (
	"fmt"

	"github.com/vovakirdan/sky-battle/internal/config"
)

// Boss is a fighter with a shuffled vertical move pattern and a shield.
//
// The pattern holds MoveRepeats copies of {+speed, -speed, 0}. Each entry is
// applied for FramesPerMove ticks; then the pattern is reshuffled and the
// index advances by one, wrapping at the end. While shielded the boss drops
// all damage. The shield lasts exactly ShieldFrames ticks.
type Boss struct {
	fighter
	rng  Rand
	cfg  config.BossConfig
	shot config.ProjectileConfig

	pattern      []float64
	moveIndex    int
	repeats      int
	shielded     bool
	shieldFrames int
}

// NewBoss creates the boss at its configured position. health overrides the
// configured health when positive.
func NewBoss(id EntityID, health int, rng Rand, cfg config.BossConfig, shot config.ProjectileConfig) *Boss {
	if health <= 0 {
		health = cfg.Health
	}
	b := &Boss{
		fighter: fighter{
			Entity: newEntity(id, KindBoss, cfg.X, cfg.Y, cfg.Size.Width, cfg.Size.Height),
			health: health,
		},
		rng:  rng,
		cfg:  cfg,
		shot: shot,
	}

	b.pattern = make([]float64, 0, cfg.MoveRepeats*3)
	for i := 0; i < cfg.MoveRepeats; i++ {
		b.pattern = append(b.pattern, cfg.Speed, -cfg.Speed, 0)
	}
	b.shuffle()

	return b
}

// Update moves the boss and advances the shield timer.
func (b *Boss) Update() {
	b.mustBeAlive("update")
	b.moveVertical(b.nextMove(), b.cfg.MinY, b.cfg.MaxY)
	b.updateShield()
}

// nextMove returns the step for this tick and advances the pattern cursor.
func (b *Boss) nextMove() float64 {
	if b.moveIndex < 0 || b.moveIndex >= len(b.pattern) {
		panic(fmt.Sprintf("sim: boss move index %d out of range [0, %d)", b.moveIndex, len(b.pattern)))
	}

	step := b.pattern[b.moveIndex]
	b.repeats++
	if b.repeats == b.cfg.FramesPerMove {
		b.shuffle()
		b.repeats = 0
		b.moveIndex++
	}
	if b.moveIndex == len(b.pattern) {
		b.moveIndex = 0
	}
	return step
}

func (b *Boss) shuffle() {
	b.rng.Shuffle(len(b.pattern), func(i, j int) {
		b.pattern[i], b.pattern[j] = b.pattern[j], b.pattern[i]
	})
}

func (b *Boss) updateShield() {
	if b.shielded {
		b.shieldFrames++
	} else if b.rng.Float64() < b.cfg.ShieldProbability {
		b.shielded = true
		b.shieldFrames = 0
	}

	if b.shieldFrames == b.cfg.ShieldFrames {
		b.shielded = false
		b.shieldFrames = 0
	}
}

// TakeDamage drops the hit while shielded.
func (b *Boss) TakeDamage() {
	b.mustBeAlive("damage")
	if b.shielded {
		return
	}
	b.fighter.TakeDamage()
}

// Fire yields a projectile with probability cfg.FireRate at a fixed x.
func (b *Boss) Fire() *Projectile {
	if b.rng.Float64() >= b.cfg.FireRate {
		return nil
	}
	return NewProjectile(KindBossShot, b.cfg.ProjectileX, b.Y()+b.cfg.ProjectileYOffset, b.shot)
}

// Shielded reports whether the shield is up.
func (b *Boss) Shielded() bool { return b.shielded }

// ShieldFrames returns how many ticks the current shield has been up.
func (b *Boss) ShieldFrames() int { return b.shieldFrames }

// MoveIndex returns the current position in the move pattern.
func (b *Boss) MoveIndex() int { return b.moveIndex }

// Pattern returns a copy of the current move pattern.
func (b *Boss) Pattern() []float64 {
	return append([]float64(nil), b.pattern...)
}
