package sim

import (
	"math"

	"github.com/vovakirdan/sky-battle/internal/core"
)

// Autopilot is a deterministic bot that plays a level: it dodges enemy
// projectiles heading for the player, otherwise lines its shots up with the
// nearest enemy and fires every FireEvery ticks while aligned.
type Autopilot struct {
	FireEvery int // Ticks between shots; values below 1 fire every tick

	ticks int
}

// DefaultFireEvery is the default shot interval of the autopilot, in ticks.
const DefaultFireEvery = 3

// NewAutopilot returns an autopilot firing every fireEvery ticks.
func NewAutopilot(fireEvery int) *Autopilot {
	return &Autopilot{FireEvery: fireEvery}
}

// Control sets the player intent and requests fire for the next tick.
func (a *Autopilot) Control(l *Level) {
	p := l.Player()
	if p.Destroyed() {
		return
	}
	a.ticks++

	cfg := l.Config()
	pb := p.Bounds()
	_, pcy := pb.Center()

	// Dodge the closest threat first.
	if shot := closestThreat(l, pb); shot != nil {
		_, scy := shot.Bounds().Center()
		switch {
		case scy >= pcy && pb.Y-cfg.Player.Speed >= cfg.Player.MinY:
			l.SetVerticalIntent(IntentUp)
		case pb.Y+cfg.Player.Speed <= cfg.Player.MaxY:
			l.SetVerticalIntent(IntentDown)
		default:
			l.SetVerticalIntent(IntentUp)
		}
		return
	}

	target := nearestEnemy(l)
	if target == nil {
		l.SetVerticalIntent(IntentStop)
		return
	}

	tb := target.Bounds()
	_, tcy := tb.Center()
	shotY := p.Y() + cfg.Player.ProjectileYOffset + cfg.Projectiles.Player.Size.Height/2
	gap := tcy - shotY

	switch {
	case gap > cfg.Player.Speed:
		l.SetVerticalIntent(IntentDown)
	case gap < -cfg.Player.Speed:
		l.SetVerticalIntent(IntentUp)
	default:
		l.SetVerticalIntent(IntentStop)
	}

	every := max(a.FireEvery, 1)
	if math.Abs(gap) < tb.H/2 && a.ticks%every == 0 {
		l.RequestFire()
	}
}

// closestThreat returns the nearest enemy projectile that will reach the
// player's rows soon, or nil.
func closestThreat(l *Level, pb core.Rect) *Projectile {
	const lookahead = 260.0
	const margin = 10.0

	var best *Projectile
	bestDist := math.Inf(1)
	for _, s := range l.enemyShots {
		if s.Destroyed() {
			continue
		}
		b := s.Bounds()
		dist := b.X - pb.Right()
		if dist < -pb.W || dist > lookahead {
			continue
		}
		if b.Bottom() < pb.Y-margin || b.Y > pb.Bottom()+margin {
			continue
		}
		if dist < bestDist {
			best, bestDist = s, dist
		}
	}
	return best
}

func nearestEnemy(l *Level) Fighter {
	var best Fighter
	bestX := math.Inf(1)
	for _, e := range l.enemies {
		if e.Destroyed() {
			continue
		}
		if x := e.Bounds().X; x < bestX {
			best, bestX = e, x
		}
	}
	return best
}
