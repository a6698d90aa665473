package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-battle/internal/config"
)

func TestResolveDamagesBothMembers(t *testing.T) {
	cfg := testConfig()
	never := &fixedRand{value: 1}

	enemy := NewEnemy(1, 200, 300, never, cfg.Enemy, cfg.Projectiles.Enemy)
	shot := NewProjectile(KindPlayerShot, 210, 310, cfg.Projectiles.Player)
	shot.id = 2
	miss := NewProjectile(KindPlayerShot, 600, 310, cfg.Projectiles.Player)
	miss.id = 3

	pairs := Resolve([]*Projectile{shot, miss}, []Fighter{enemy})

	assert.Equal(t, 1, pairs)
	assert.True(t, shot.Destroyed())
	assert.True(t, enemy.Destroyed())
	assert.False(t, miss.Destroyed())
}

func TestResolveTouchingEdgesCollide(t *testing.T) {
	cfg := testConfig()
	enemy := NewEnemy(1, 200, 300, &fixedRand{value: 1}, cfg.Enemy, cfg.Projectiles.Enemy)
	shot := NewProjectile(KindPlayerShot, 200-cfg.Projectiles.Player.Size.Width, 310, cfg.Projectiles.Player)
	require.Equal(t, enemy.Bounds().X, shot.Bounds().Right())

	assert.Equal(t, 1, Resolve([]*Projectile{shot}, []Fighter{enemy}))
	assert.True(t, enemy.Destroyed())
	assert.True(t, shot.Destroyed())

	// One unit short of contact is a miss.
	enemy = NewEnemy(3, 200, 300, &fixedRand{value: 1}, cfg.Enemy, cfg.Projectiles.Enemy)
	shot = NewProjectile(KindPlayerShot, 199-cfg.Projectiles.Player.Size.Width, 310, cfg.Projectiles.Player)
	assert.Equal(t, 0, Resolve([]*Projectile{shot}, []Fighter{enemy}))
	assert.False(t, enemy.Destroyed())
}

func TestResolveSkipsDestroyed(t *testing.T) {
	cfg := testConfig()
	enemy := NewEnemy(1, 200, 300, &fixedRand{value: 1}, cfg.Enemy, cfg.Projectiles.Enemy)
	enemy.Destroy()
	shot := NewProjectile(KindPlayerShot, 210, 310, cfg.Projectiles.Player)

	assert.NotPanics(t, func() {
		assert.Equal(t, 0, Resolve([]*Projectile{shot}, []Fighter{enemy}))
	})
	assert.False(t, shot.Destroyed())
}

func TestResolveProjectileAcrossTwoEnemies(t *testing.T) {
	cfg := testConfig()
	never := &fixedRand{value: 1}
	upper := NewEnemy(1, 200, 270, never, cfg.Enemy, cfg.Projectiles.Enemy)
	lower := NewEnemy(2, 200, 330, never, cfg.Enemy, cfg.Projectiles.Enemy)
	shot := NewProjectile(KindPlayerShot, 220, 320, cfg.Projectiles.Player)

	assert.NotPanics(t, func() {
		assert.Equal(t, 2, Resolve([]*Projectile{shot}, []Fighter{upper, lower}))
	})
	assert.True(t, shot.Destroyed())
	assert.True(t, upper.Destroyed())
	assert.True(t, lower.Destroyed())
}

type actorState struct {
	health    int
	destroyed bool
}

func snapshot(fs []Fighter, ps []*Projectile) map[EntityID]actorState {
	out := map[EntityID]actorState{}
	for _, f := range fs {
		out[f.ID()] = actorState{health: f.Health(), destroyed: f.Destroyed()}
	}
	for _, p := range ps {
		out[p.ID()] = actorState{destroyed: p.Destroyed()}
	}
	return out
}

// buildWorld creates the same random cluster of enemies and projectiles for
// a given seed. Enemies get several hit points so damage counts matter.
func buildWorld(seed int64, cfg config.SkyBattleConfig) ([]Fighter, []*Projectile) {
	rng := seeded(seed)
	never := &fixedRand{value: 1}
	ecfg := cfg.Enemy
	ecfg.Health = 1 + rng.Intn(3)

	var id EntityID
	enemies := make([]Fighter, 2+rng.Intn(5))
	for i := range enemies {
		id++
		enemies[i] = NewEnemy(id, rng.Float64()*300, rng.Float64()*200, never, ecfg, cfg.Projectiles.Enemy)
	}
	shots := make([]*Projectile, 2+rng.Intn(10))
	for i := range shots {
		id++
		shots[i] = NewProjectile(KindPlayerShot, rng.Float64()*350, rng.Float64()*250, cfg.Projectiles.Player)
		shots[i].id = id
	}
	return enemies, shots
}

func TestResolveOrderIndependent(t *testing.T) {
	cfg := testConfig()

	for seed := int64(1); seed <= 300; seed++ {
		enemiesA, shotsA := buildWorld(seed, cfg)
		Resolve(shotsA, enemiesA)
		want := snapshot(enemiesA, shotsA)

		enemiesB, shotsB := buildWorld(seed, cfg)
		perm := seeded(seed * 31)
		perm.Shuffle(len(enemiesB), func(i, j int) { enemiesB[i], enemiesB[j] = enemiesB[j], enemiesB[i] })
		perm.Shuffle(len(shotsB), func(i, j int) { shotsB[i], shotsB[j] = shotsB[j], shotsB[i] })
		Resolve(shotsB, enemiesB)

		// Swapping the group roles must not matter either.
		enemiesC, shotsC := buildWorld(seed, cfg)
		Resolve(enemiesC, shotsC)

		if !assert.Equal(t, want, snapshot(enemiesB, shotsB), "seed %d permuted", seed) {
			return
		}
		if !assert.Equal(t, want, snapshot(enemiesC, shotsC), "seed %d swapped", seed) {
			return
		}
	}
}
