package sim

// View carries presentation hints for a level.
type View struct {
	Title      string
	ShowShield bool // Level has a boss whose shield should be displayed
}

// Policy supplies the per-level rules to the loop: which enemies to spawn
// and when the level is over.
type Policy interface {
	// SpawnEnemies is called at the start of every tick.
	SpawnEnemies(l *Level)
	// Verdict is called at the end of every tick.
	Verdict(l *Level) Verdict
	View() View
}

// RosterPolicy keeps up to Roster ordinary enemies on the field, spawning
// each missing one with SpawnProbability per tick, until KillTarget kills.
type RosterPolicy struct {
	Title            string
	Roster           int
	SpawnProbability float64
	KillTarget       int
	Next             LevelID // Empty when this is the final level
}

func (p *RosterPolicy) SpawnEnemies(l *Level) {
	cfg := l.Config()
	rng := l.Rand()

	missing := p.Roster - l.EnemyCount()
	for i := 0; i < missing; i++ {
		if rng.Float64() < p.SpawnProbability {
			y := rng.Float64() * cfg.EnemyMaxY()
			l.AddEnemy(NewEnemy(l.NextID(), cfg.Playfield.Width, y, rng, cfg.Enemy, cfg.Projectiles.Enemy))
		}
	}
}

func (p *RosterPolicy) Verdict(l *Level) Verdict {
	switch {
	case l.Player().Destroyed():
		return Verdict{Outcome: OutcomeLost}
	case l.Kills() >= p.KillTarget:
		return advance(p.Next)
	default:
		return Verdict{}
	}
}

func (p *RosterPolicy) View() View {
	return View{Title: p.Title}
}

// BossPolicy adds a single boss whenever the enemy collection is empty and
// ends the level when the boss is destroyed.
type BossPolicy struct {
	Title      string
	BossHealth int     // 0 uses the configured boss health
	Next       LevelID // Empty when this is the final level

	boss *Boss
}

func (p *BossPolicy) SpawnEnemies(l *Level) {
	if l.EnemyCount() != 0 {
		return
	}
	if p.boss == nil {
		cfg := l.Config()
		p.boss = NewBoss(l.NextID(), p.BossHealth, l.Rand(), cfg.Boss, cfg.Projectiles.Boss)
	}
	if !p.boss.Destroyed() {
		l.AddEnemy(p.boss)
	}
}

func (p *BossPolicy) Verdict(l *Level) Verdict {
	switch {
	case l.Player().Destroyed():
		return Verdict{Outcome: OutcomeLost}
	case p.boss != nil && p.boss.Destroyed():
		return advance(p.Next)
	default:
		return Verdict{}
	}
}

func (p *BossPolicy) View() View {
	return View{Title: p.Title, ShowShield: true}
}

// advance returns a winning verdict, final when there is no next level.
func advance(next LevelID) Verdict {
	if next == "" {
		return Verdict{Outcome: OutcomeWon}
	}
	return Verdict{Outcome: OutcomeAdvance, Next: next}
}
