package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFighterTakeDamage(t *testing.T) {
	cfg := testConfig()
	cfg.Enemy.Health = 3
	e := NewEnemy(1, 500, 100, &fixedRand{value: 1}, cfg.Enemy, cfg.Projectiles.Enemy)

	e.TakeDamage()
	e.TakeDamage()
	assert.Equal(t, 1, e.Health())
	assert.False(t, e.Destroyed())

	e.TakeDamage()
	assert.Equal(t, 0, e.Health())
	assert.True(t, e.Destroyed())
}

func TestDestroyedEntityRejectsDamageAndUpdates(t *testing.T) {
	cfg := testConfig()
	e := NewEnemy(1, 500, 100, &fixedRand{value: 1}, cfg.Enemy, cfg.Projectiles.Enemy)
	e.Destroy()

	assert.Panics(t, func() { e.TakeDamage() })
	assert.Panics(t, func() { e.Update() })

	shot := NewProjectile(KindPlayerShot, 0, 0, cfg.Projectiles.Player)
	shot.TakeDamage()
	assert.True(t, shot.Destroyed())
	assert.Panics(t, func() { shot.TakeDamage() })
}

func TestProjectileMoves(t *testing.T) {
	cfg := testConfig()
	shot := NewProjectile(KindEnemyShot, 100, 50, cfg.Projectiles.Enemy)

	shot.Update()
	shot.Update()

	b := shot.Bounds()
	assert.Equal(t, 80.0, b.X)
	assert.Equal(t, 50.0, b.Y)
	assert.Equal(t, cfg.Projectiles.Enemy.Size.Width, b.W)
}

func TestPlayerMovement(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(1, 5, cfg.Player, cfg.Projectiles.Player)

	tests := []struct {
		intent Intent
		wantY  float64
	}{
		{IntentDown, 308},
		{IntentDown, 316},
		{IntentStop, 316},
		{IntentUp, 308},
	}

	for _, tt := range tests {
		p.SetIntent(tt.intent)
		p.Update()
		assert.Equal(t, tt.wantY, p.Y(), "after %s", tt.intent)
	}
}

func TestPlayerBandRollsBack(t *testing.T) {
	cfg := testConfig()
	cfg.Player.MinY = 295
	p := NewPlayer(1, 5, cfg.Player, cfg.Projectiles.Player)

	// 300 - 8 leaves the band, so the whole step is undone.
	p.SetIntent(IntentUp)
	p.Update()
	assert.Equal(t, 300.0, p.Y())

	_, dy := p.Offset()
	assert.Equal(t, 0.0, dy)
}

func TestPlayerFire(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(1, 5, cfg.Player, cfg.Projectiles.Player)
	p.SetIntent(IntentDown)
	p.Update()

	shot := p.Fire()
	require.NotNil(t, shot)
	assert.Equal(t, KindPlayerShot, shot.Kind())
	assert.Equal(t, cfg.Player.ProjectileX, shot.Bounds().X)
	assert.Equal(t, p.Y()+cfg.Player.ProjectileYOffset, shot.Bounds().Y)
}

func TestEnemyUpdateAndFire(t *testing.T) {
	cfg := testConfig()
	rng := &fixedRand{value: 0}
	e := NewEnemy(1, 1300, 200, rng, cfg.Enemy, cfg.Projectiles.Enemy)

	e.Update()
	assert.Equal(t, 1294.0, e.X())

	shot := e.Fire()
	require.NotNil(t, shot)
	assert.Equal(t, KindEnemyShot, shot.Kind())
	assert.Equal(t, 1294.0-100, shot.Bounds().X)
	assert.Equal(t, 250.0, shot.Bounds().Y)

	rng.value = cfg.Enemy.FireRate
	assert.Nil(t, e.Fire(), "draw equal to the fire rate must not fire")
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
		shot bool
	}{
		{KindPlayer, "player", false},
		{KindEnemy, "enemy", false},
		{KindBoss, "boss", false},
		{KindPlayerShot, "player-shot", true},
		{KindEnemyShot, "enemy-shot", true},
		{KindBossShot, "boss-shot", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
		assert.Equal(t, tt.shot, tt.kind.IsProjectile(), tt.want)
	}
}
