package sim

import (
	"math/rand"

	"github.com/vovakirdan/sky-battle/internal/config"
)

// fixedRand always draws the same value and leaves shuffles as identity.
type fixedRand struct {
	value    float64
	shuffles int
}

func (r *fixedRand) Float64() float64 { return r.value }

func (r *fixedRand) Shuffle(n int, swap func(i, j int)) { r.shuffles++ }

// countingRand wraps a real source and counts shuffles.
type countingRand struct {
	*rand.Rand
	shuffles int
}

func (r *countingRand) Shuffle(n int, swap func(i, j int)) {
	r.shuffles++
	r.Rand.Shuffle(n, swap)
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testConfig() config.SkyBattleConfig {
	return config.DefaultSkyBattleConfig()
}

// scriptPolicy lets a test decide spawns and verdicts.
type scriptPolicy struct {
	spawn   func(l *Level)
	verdict func(l *Level) Verdict
}

func (p *scriptPolicy) SpawnEnemies(l *Level) {
	if p.spawn != nil {
		p.spawn(l)
	}
}

func (p *scriptPolicy) Verdict(l *Level) Verdict {
	if p.verdict != nil {
		return p.verdict(l)
	}
	return Verdict{}
}

func (p *scriptPolicy) View() View { return View{Title: "script"} }

// spawnOnce adds each fighter returned by builders on the first tick only.
func spawnOnce(builders ...func(l *Level) Fighter) func(l *Level) {
	done := false
	return func(l *Level) {
		if done {
			return
		}
		done = true
		for _, build := range builders {
			l.AddEnemy(build(l))
		}
	}
}

// recorder collects events.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func newScriptLevel(cfg config.SkyBattleConfig, policy Policy, health int, rng Rand, l Listener) *Level {
	return NewLevel(Params{
		ID:           "test",
		Config:       cfg,
		Policy:       policy,
		PlayerHealth: health,
		Rand:         rng,
		Listener:     l,
	})
}
