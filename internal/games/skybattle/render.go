package skybattle

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/sky-battle/internal/core"
	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
)

// Visual characters for rendering
const (
	HeartChar     = '♥'
	EmptyHeart    = '♡'
	PlayerBody    = '='
	PlayerNose    = '▶'
	EnemyBody     = '≡'
	EnemyNose     = '◀'
	BossBody      = '█'
	BossShield    = '░'
	PlayerShot    = '-'
	EnemyShotChar = '•'
	BossShotChar  = '●'
	ExplosionChar = '*'
	GroundChar    = '▔'
)

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// viewport maps playfield coordinates to screen cells.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(dst *core.Screen, width, height float64) viewport {
	rows := dst.Height() - hudRows - 1 // Ground line at the bottom
	if rows < 1 {
		rows = 1
	}
	return viewport{
		sx:  float64(dst.Width()) / width,
		sy:  float64(rows) / height,
		top: hudRows,
	}
}

// cells returns the cell span covered by r. Every visible rectangle covers
// at least one cell.
func (v viewport) cells(r core.Rect) (x0, y0, w, h int) {
	x0 = int(math.Floor(r.X * v.sx))
	y0 = int(math.Floor(r.Y*v.sy)) + v.top
	x1 := int(math.Ceil(r.Right() * v.sx))
	y1 := int(math.Ceil(r.Bottom()*v.sy)) + v.top
	return x0, y0, max(x1-x0, 1), max(y1-y0, 1)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.campaign == nil {
		g.drawCenteredMessage(dst, "CANNOT START", errorText(g.err))
		return
	}

	level := g.campaign.Level()
	vp := newViewport(dst, g.cfg.Playfield.Width, g.cfg.Playfield.Height)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar)

	for _, a := range level.Actors() {
		g.drawActor(dst, vp, a)
	}
	for _, e := range g.explosions {
		x, y, w, h := vp.cells(e.bounds)
		dst.FillRect(x, y, w, h, ExplosionChar, core.ColorBrightYellow)
	}

	g.drawHUD(dst, level)

	switch {
	case g.err != nil:
		g.drawCenteredMessage(dst, "CAMPAIGN STOPPED", errorText(g.err))
	case g.hud.outcome == sim.OutcomeWon:
		g.drawCenteredMessage(dst, "VICTORY", fmt.Sprintf("Kills: %d  |  Press R to play again", g.State().Score))
	case g.hud.outcome == sim.OutcomeLost:
		g.drawCenteredMessage(dst, "SHOT DOWN", fmt.Sprintf("Kills: %d  |  Press R to restart", g.State().Score))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawActor(dst *core.Screen, vp viewport, a sim.Actor) {
	x, y, w, h := vp.cells(a.Bounds())

	switch a.Kind() {
	case sim.KindPlayer:
		dst.FillRect(x, y, w, h, PlayerBody, core.ColorBrightCyan)
		dst.SetColored(x+w-1, y+h/2, PlayerNose, core.ColorBrightCyan)
	case sim.KindEnemy:
		dst.FillRect(x, y, w, h, EnemyBody, core.ColorRed)
		dst.SetColored(x, y+h/2, EnemyNose, core.ColorBrightRed)
	case sim.KindBoss:
		color := core.ColorBrightMagenta
		if g.hud.shielded {
			dst.FillRect(x-1, y-1, w+2, h+2, BossShield, core.ColorBrightCyan)
		}
		dst.FillRect(x, y, w, h, BossBody, color)
		dst.SetColored(x, y+h/2, EnemyNose, core.ColorBrightWhite)
	case sim.KindPlayerShot:
		dst.FillRect(x, y, w, 1, PlayerShot, core.ColorBrightYellow)
	case sim.KindEnemyShot:
		dst.SetColored(x, y, EnemyShotChar, core.ColorOrange)
	case sim.KindBossShot:
		dst.FillRect(x, y, w, 1, BossShotChar, core.ColorBrightRed)
	}
}

// drawHUD renders hearts, kills, the level title and boss status on row 0.
func (g *Game) drawHUD(dst *core.Screen, level *sim.Level) {
	var hearts strings.Builder
	for i := 0; i < g.hud.health; i++ {
		hearts.WriteRune(HeartChar)
	}
	lost := g.startHealth(level) - g.hud.health
	for i := 0; i < lost; i++ {
		hearts.WriteRune(EmptyHeart)
	}
	dst.DrawTextColored(1, 0, hearts.String(), core.ColorBrightRed)

	x := 2 + len([]rune(hearts.String()))
	info := fmt.Sprintf("Kills %d", g.State().Score)
	if !g.hud.view.ShowShield {
		info = fmt.Sprintf("Kills %d/%d", g.hud.levelKills, g.cfg.Levels.One.KillTarget)
	}
	dst.DrawTextColored(x, 0, info, core.ColorBrightWhite)
	x += len(info) + 2

	if boss := level.Boss(); boss != nil {
		status := fmt.Sprintf("Boss %d", boss.Health())
		dst.DrawTextColored(x, 0, status, core.ColorBrightMagenta)
		x += len(status) + 2
	}
	if g.hud.view.ShowShield && g.hud.shielded {
		dst.DrawTextColored(x, 0, "SHIELD", core.ColorBrightCyan)
	}

	title := g.hud.view.Title
	if g.pilot != nil {
		title += " [demo]"
	}
	dst.DrawTextColored(dst.Width()-len([]rune(title))-1, 0, title, core.ColorGray)
}

// startHealth returns the player health the current level started with.
func (g *Game) startHealth(level *sim.Level) int {
	switch level.ID() {
	case sim.LevelOne:
		return g.cfg.Levels.One.PlayerHealth
	case sim.LevelTwo:
		return g.cfg.Levels.Two.PlayerHealth
	case sim.LevelThree:
		return g.cfg.Levels.Three.PlayerHealth
	case sim.LevelFour:
		return g.cfg.Levels.Four.PlayerHealth
	}
	return g.hud.health
}

// drawCenteredMessage draws a boxed message in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 6
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
