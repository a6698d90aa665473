package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sky-battle/internal/config"
	"github.com/vovakirdan/sky-battle/internal/core"
)

// Outcome is the terminal state of a level.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Level still running
	OutcomeAdvance                // Target met, next level follows
	OutcomeWon                    // Target met on the final level
	OutcomeLost                   // Player destroyed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAdvance:
		return "advance"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// Verdict is a policy's answer to "is this level over?".
type Verdict struct {
	Outcome Outcome
	Next    LevelID // Set when Outcome is OutcomeAdvance
}

// Params configures a new level.
type Params struct {
	ID           LevelID
	Config       config.SkyBattleConfig
	Policy       Policy
	PlayerHealth int
	Rand         Rand
	Listener     Listener // May be nil
}

// Level owns every entity of one level and runs the per-tick loop.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Level struct {
	id       LevelID
	cfg      config.SkyBattleConfig
	policy   Policy
	rng      Rand
	listener Listener

	player      *Player
	friendly    []Fighter
	enemies     []Fighter
	playerShots []*Projectile
	enemyShots  []*Projectile
	live        map[EntityID]Kind

	kills       int
	prevEnemies int
	ticks       int
	nextID      EntityID

	intent       Intent
	fireRequests int

	lastHealth int
	lastKills  int
	lastShield bool

	verdict Verdict
	halted  bool
}

// NewLevel creates a level with the player spawned. It emits LevelStarted,
// EntitySpawned for the player and the initial HealthChanged.
func NewLevel(p Params) *Level {
	if p.Policy == nil || p.Rand == nil {
		panic("sim: level needs a policy and a random source")
	}

	l := &Level{
		id:       p.ID,
		cfg:      p.Config,
		policy:   p.Policy,
		rng:      p.Rand,
		listener: p.Listener,
		live:     make(map[EntityID]Kind),
	}

	l.emit(LevelStarted{Level: l.id, View: l.policy.View()})

	l.player = NewPlayer(l.NextID(), p.PlayerHealth, p.Config.Player, p.Config.Projectiles.Player)
	l.friendly = append(l.friendly, l.player)
	l.track(l.player)

	l.lastHealth = l.player.Health()
	l.emit(HealthChanged{Health: l.lastHealth})

	return l
}

// SetVerticalIntent buffers the player's vertical intent for the next tick.
func (l *Level) SetVerticalIntent(i Intent) { l.intent = i }

// RequestFire buffers one player shot for the next tick.
func (l *Level) RequestFire() { l.fireRequests++ }

// Tick advances the level by one step. It returns false once the level has
// halted; further calls do nothing.
func (l *Level) Tick() bool {
	if l.halted {
		return false
	}
	l.ticks++

	l.policy.SpawnEnemies(l)
	l.applyInput()
	l.updateActors()
	l.generateEnemyFire()

	l.prevEnemies = len(l.enemies)
	l.handleEnemyPenetration()
	l.cullProjectiles()

	Resolve(l.friendly, l.enemies)
	Resolve(l.playerShots, l.enemies)
	Resolve(l.enemyShots, l.friendly)

	l.friendly = purge(l, l.friendly)
	l.enemies = purge(l, l.enemies)
	l.playerShots = purge(l, l.playerShots)
	l.enemyShots = purge(l, l.enemyShots)

	l.kills += l.prevEnemies - len(l.enemies)

	l.notify()
	l.checkVerdict()

	return !l.halted
}

func (l *Level) applyInput() {
	l.player.SetIntent(l.intent)

	requests := l.fireRequests
	l.fireRequests = 0
	if l.player.Destroyed() {
		return
	}
	for i := 0; i < requests; i++ {
		l.playerShots = l.addShot(l.playerShots, l.player.Fire())
	}
}

func (l *Level) updateActors() {
	update(l.friendly)
	update(l.enemies)
	update(l.playerShots)
	update(l.enemyShots)
}

func update[T Actor](group []T) {
	for _, a := range group {
		if !a.Destroyed() {
			a.Update()
		}
	}
}

func (l *Level) generateEnemyFire() {
	for _, e := range l.enemies {
		if e.Destroyed() {
			continue
		}
		if shot := e.Fire(); shot != nil {
			l.enemyShots = l.addShot(l.enemyShots, shot)
		}
	}
}

func (l *Level) addShot(group []*Projectile, shot *Projectile) []*Projectile {
	shot.id = l.NextID()
	l.track(shot)
	return append(group, shot)
}

// handleEnemyPenetration destroys every enemy that crossed the playfield and
// charges the player one health for each.
func (l *Level) handleEnemyPenetration() {
	for _, e := range l.enemies {
		if e.Destroyed() {
			continue
		}
		dx, _ := e.Offset()
		if math.Abs(dx) > l.cfg.Playfield.Width {
			if !l.player.Destroyed() {
				l.player.TakeDamage()
			}
			e.Destroy()
		}
	}
}

// cullProjectiles destroys projectiles that flew past the playfield edges.
func (l *Level) cullProjectiles() {
	minX := -l.cfg.Playfield.CullMargin
	maxX := l.cfg.Playfield.Width + l.cfg.Playfield.CullMargin
	for _, group := range [][]*Projectile{l.playerShots, l.enemyShots} {
		for _, p := range group {
			if p.Destroyed() {
				continue
			}
			b := p.Bounds()
			if b.Right() < minX || b.X > maxX {
				p.Destroy()
			}
		}
	}
}

// purge drops destroyed entities from group, keeping order.
func purge[T Actor](l *Level, group []T) []T {
	kept := group[:0]
	for _, a := range group {
		if !a.Destroyed() {
			kept = append(kept, a)
			continue
		}
		l.untrack(a)
		l.emit(EntityRemoved{ID: a.ID(), Kind: a.Kind(), Bounds: a.Bounds()})
	}
	clear(group[len(kept):])
	return kept
}

func (l *Level) notify() {
	if h := l.player.Health(); h != l.lastHealth {
		l.lastHealth = h
		l.emit(HealthChanged{Health: h})
	}
	if l.kills != l.lastKills {
		l.lastKills = l.kills
		l.emit(KillsChanged{Kills: l.kills})
	}
	shielded := false
	if b := l.Boss(); b != nil {
		shielded = b.Shielded()
	}
	if shielded != l.lastShield {
		l.lastShield = shielded
		l.emit(ShieldChanged{Shielded: shielded})
	}
}

func (l *Level) checkVerdict() {
	v := l.policy.Verdict(l)
	if v.Outcome == OutcomeNone {
		return
	}

	l.verdict = v
	l.halted = true

	switch v.Outcome {
	case OutcomeWon:
		l.emit(LevelWon{Level: l.id})
	case OutcomeLost:
		l.emit(LevelLost{Level: l.id})
	case OutcomeAdvance:
		l.emit(AdvanceToLevel{From: l.id, Next: v.Next})
	}
}

func (l *Level) track(a Actor) {
	if _, exists := l.live[a.ID()]; exists {
		panic(fmt.Sprintf("sim: entity %d added twice", a.ID()))
	}
	l.live[a.ID()] = a.Kind()
	l.emit(EntitySpawned{ID: a.ID(), Kind: a.Kind(), Bounds: a.Bounds()})
}

func (l *Level) untrack(a Actor) {
	if _, exists := l.live[a.ID()]; !exists {
		panic(fmt.Sprintf("sim: purging untracked entity %d", a.ID()))
	}
	delete(l.live, a.ID())
}

func (l *Level) emit(ev Event) {
	if l.listener != nil {
		l.listener.OnEvent(ev)
	}
}

// AddEnemy puts an enemy fighter into the enemy collection.
// Policies call it from SpawnEnemies.
func (l *Level) AddEnemy(f Fighter) {
	l.enemies = append(l.enemies, f)
	l.track(f)
}

// NextID reserves a fresh entity identifier.
func (l *Level) NextID() EntityID {
	l.nextID++
	return l.nextID
}

// ID returns the level identifier.
func (l *Level) ID() LevelID { return l.id }

// View returns presentation hints for this level.
func (l *Level) View() View { return l.policy.View() }

// Config returns the configuration the level was built with.
func (l *Level) Config() config.SkyBattleConfig { return l.cfg }

// Rand returns the level's random source.
func (l *Level) Rand() Rand { return l.rng }

// Player returns the player craft.
func (l *Level) Player() *Player { return l.player }

// Kills returns the number of enemies removed during this level.
func (l *Level) Kills() int { return l.kills }

// EnemyCount returns the size of the enemy collection.
func (l *Level) EnemyCount() int { return len(l.enemies) }

// Ticks returns how many ticks have run.
func (l *Level) Ticks() int { return l.ticks }

// Halted reports whether a terminal verdict has been reached.
func (l *Level) Halted() bool { return l.halted }

// Verdict returns the terminal verdict, or OutcomeNone while running.
func (l *Level) Verdict() Verdict { return l.verdict }

// Boss returns the live boss in the enemy collection, or nil.
func (l *Level) Boss() *Boss {
	for _, e := range l.enemies {
		if b, ok := e.(*Boss); ok && !b.Destroyed() {
			return b
		}
	}
	return nil
}

// Actors returns every entity in draw order: friendly units, enemy units,
// player projectiles, enemy projectiles.
func (l *Level) Actors() []Actor {
	out := make([]Actor, 0, len(l.friendly)+len(l.enemies)+len(l.playerShots)+len(l.enemyShots))
	for _, a := range l.friendly {
		out = append(out, a)
	}
	for _, a := range l.enemies {
		out = append(out, a)
	}
	for _, a := range l.playerShots {
		out = append(out, a)
	}
	for _, a := range l.enemyShots {
		out = append(out, a)
	}
	return out
}

// Enemies returns the enemy collection.
func (l *Level) Enemies() []Fighter { return append([]Fighter(nil), l.enemies...) }

// EnemyShots returns the enemy projectile collection.
func (l *Level) EnemyShots() []*Projectile { return append([]*Projectile(nil), l.enemyShots...) }

// PlayerShots returns the player projectile collection.
func (l *Level) PlayerShots() []*Projectile { return append([]*Projectile(nil), l.playerShots...) }

// Bounds returns the playfield rectangle.
func (l *Level) Bounds() core.Rect {
	return core.NewRect(0, 0, l.cfg.Playfield.Width, l.cfg.Playfield.Height)
}
