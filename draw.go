package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/prefabs"
	"golang.org/x/image/colornames"
)

var groundColors = map[level.Ground]color.Color{
	level.GroundTraversable:  colornames.Darkolivegreen,
	level.GroundWall:         colornames.Dimgray,
	level.GroundLowWall:      colornames.Gray,
	level.GroundShallowWater: colornames.Lightskyblue,
	level.GroundDeepWater:    colornames.Royalblue,
	level.GroundGrass:        colornames.Forestgreen,
	level.GroundHole:         colornames.Black,
	level.GroundIce:          colornames.Lightcyan,
	level.GroundLadder:       colornames.Saddlebrown,
	level.GroundPrickles:     colornames.Darkred,
	level.GroundLava:         colornames.Orangered,
}

var entityColors = map[level.Kind]color.Color{
	level.KindStream:          colornames.Aqua,
	level.KindStairs:          colornames.Burlywood,
	level.KindJumper:          colornames.Yellow,
	level.KindSensor:          colornames.Violet,
	level.KindSeparator:       colornames.White,
	level.KindTeletransporter: colornames.Magenta,
	level.KindSwitch:          colornames.Gold,
	level.KindBlock:           colornames.Peru,
	level.KindEnemy:           colornames.Red,
	level.KindExplosion:       colornames.Orange,
	level.KindHookable:        colornames.Silver,
}

func fillRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, c, false)
}

func orDefault(c *prefabs.YAMLColor, def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

func (g *Game) drawMap(screen *ebiten.Image) {
	m := g.level
	cols, rows := m.Width()/common.TileSize, m.Height()/common.TileSize
	for layer := level.LayerLow; layer < level.LayerCount; layer++ {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				c, ok := groundColors[m.Tile(layer, col, row)]
				if !ok {
					continue
				}
				fillRect(screen, common.NewRect(col*common.TileSize, row*common.TileSize, common.TileSize, common.TileSize), c)
			}
		}
	}
	for _, e := range m.Entities() {
		if e.IsRemoved() {
			continue
		}
		c, ok := entityColors[e.Kind()]
		if !ok {
			continue
		}
		strokeRect(screen, e.Bounds(), c)
	}
}

// drawWorld draws the world objects: liftables, thrown items and
// projectiles. Z lifts an object on screen.
func (g *Game) drawWorld(screen *ebiten.Image) {
	ecs.ForEach(g.world, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if ecs.Has(g.world, e, component.HeroTagComponent.Kind()) {
			return
		}
		box := common.NewRect(common.Round(t.X), common.Round(t.Y-t.Z), t.Width, t.Height)
		switch {
		case ecs.Has(g.world, e, component.BrokenComponent.Kind()):
			strokeRect(screen, box, colornames.Lightgray)
		case ecs.Has(g.world, e, component.ProjectileComponent.Kind()):
			fillRect(screen, box, colornames.Gold)
		case ecs.Has(g.world, e, component.LiftableComponent.Kind()):
			fillRect(screen, box, colornames.Sandybrown)
		}
	})
}

func (g *Game) drawHero(screen *ebiten.Image) {
	box := g.hero.Bounds()
	if g.hero.Height() > 0 {
		fillRect(screen, box, orDefault(g.spec.Sprite.ShadowColor, color.NRGBA{A: 128}))
	}
	if !g.hero.State().IsHeroVisible() || !g.sprites.Visible() {
		return
	}
	body := box.Translate(0, -g.hero.Height())
	fillRect(screen, body, orDefault(g.spec.Sprite.Color, colornames.Mediumseagreen))

	// Facing marker.
	dx, dy := common.Direction4Step(g.sprites.Direction())
	cx, cy := body.Center()
	vector.StrokeLine(screen, float32(cx), float32(cy), float32(cx+dx*8), float32(cy+dy*8), 2, colornames.White, false)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	h := g.hero
	st := h.State()
	x, y := h.Position()
	lines := []string{
		fmt.Sprintf("FPS %.1f  t=%v", ebiten.ActualFPS(), g.clock.Now()),
		fmt.Sprintf("state %s  anim %s/%d", h.StateName(), g.sprites.Animation(), g.sprites.Frame()),
		fmt.Sprintf("pos %d,%d  layer %s  ground %s", x, y, h.Layer(), h.Ground()),
		fmt.Sprintf("life %d  action %s  pause ok %v", g.inv.Life(), h.Effects().Action, h.Effects().PauseAllowed),
		fmt.Sprintf("control %v  sword %v  hurt %v", st.CanControlMovement(), st.CanStartSword(), st.CanBeHurt(nil)),
		"sounds " + strings.Join(g.sounds.Recent(), " "),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 2, 2+i*12)
	}
}
