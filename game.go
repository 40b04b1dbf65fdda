package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/system"
	"github.com/milk9111/hero/hero"
	"github.com/milk9111/hero/level"
	"github.com/milk9111/hero/levels"
	"github.com/milk9111/hero/prefabs"
	"github.com/milk9111/hero/script"
	"github.com/sirupsen/logrus"
)

const (
	screenWidth  = 320
	screenHeight = 240
)

type Game struct {
	cfg Config
	log *logrus.Entry

	spec    *prefabs.HeroSpec
	clock   *common.StepClock
	world   *ecs.World
	level   *level.Map
	hero    *hero.Hero
	script  *script.Runtime
	sprites *animator
	sounds  *soundLog
	inv     *hero.Inventory
	input   *Input

	pause       *ebitenui.UI
	pauseStatus func()
	paused      bool
	quit        bool
	watcher     *prefabs.Watcher

	acc    time.Duration
	frames int
}

func NewGame(cfg Config, logger *logrus.Logger) (*Game, error) {
	log := logrus.NewEntry(logger)

	spec, err := prefabs.LoadHeroSpec()
	if err != nil {
		return nil, err
	}
	data, m, err := loadLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		log:   log,
		spec:  spec,
		clock: common.NewStepClock(cfg.Step),
		world: ecs.NewWorld(),
		level: m,
		input: NewInput(),
	}

	maps := func() system.Obstacles { return g.level }
	g.world.AddSystem(system.NewThrownSystem(maps))
	g.world.AddSystem(system.NewProjectileSystem(maps))
	g.world.AddSystem(system.NewTTLSystem())
	if _, err := level.SpawnLiftables(g.world, data); err != nil {
		return nil, err
	}

	g.sprites = newAnimator(g.clock, spec.Animations, log.WithField("component", "sprites"))
	g.sounds = newSoundLog(spec, log.WithField("component", "sounds"))
	g.inv = hero.NewInventory(spec.Life, spec.HeroAbilities()...)

	x, y, layer := m.Spawn()
	g.hero = hero.New(hero.Context{
		Clock:     g.clock,
		Map:       m,
		World:     g.world,
		Sprites:   g.sprites,
		Sounds:    g.sounds,
		Equipment: g.inv,
		Log:       log.WithField("component", "hero"),
		Tuning:    spec.Tuning,
	}, x, y, layer)
	g.hero.OnPauseRequested = func() { g.setPaused(true) }

	if spec.Script != "" {
		rt, err := script.LoadRuntime(g.hero, spec.Script)
		if err != nil {
			return nil, err
		}
		g.script = rt
	}
	if err := g.loadItems(); err != nil {
		return nil, err
	}

	g.pause = NewPauseUI(g)

	if cfg.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.WithError(err).Warn("prefab watcher disabled")
		} else {
			g.watcher = w
		}
	}

	log.WithFields(logrus.Fields{"level": m.Name(), "x": x, "y": y, "state": g.hero.StateName()}).Info("sandbox started")
	return g, nil
}

// loadLevel reads a level file from disk when name is an existing path,
// from the embedded levels otherwise.
func loadLevel(name string) (*levels.Level, *level.Map, error) {
	var data *levels.Level
	var err error
	if _, statErr := os.Stat(name); statErr == nil {
		data, err = levels.LoadLevel(name)
	} else {
		if !strings.HasSuffix(name, ".json") {
			name += ".json"
		}
		data, err = levels.LoadLevelFromFS(filepath.Base(name))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("level %s: %w", name, err)
	}
	m, err := level.FromLevel(data)
	if err != nil {
		return nil, nil, err
	}
	return data, m, nil
}

func (g *Game) loadItems() error {
	for _, is := range g.spec.Items {
		item, err := script.LoadItem(g.hero, is)
		if err != nil {
			return err
		}
		if is.Slot > 0 {
			g.inv.Assign(is.Slot, item)
		}
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.hero.SetSuspended(paused)
	g.log.WithField("paused", paused).Debug("pause toggled")
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.reload()

	frame := time.Second / time.Duration(ebiten.TPS())
	g.acc += frame
	steps := 0
	for g.acc >= g.cfg.Step {
		g.acc -= g.cfg.Step
		steps++
	}

	if g.paused {
		// The clock keeps running; suspended objects shift their dates on
		// resume.
		for i := 0; i < steps; i++ {
			g.clock.Step()
		}
		g.pauseStatus()
		g.pause.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.setPaused(false)
		}
		return nil
	}

	g.input.Update(g.hero)
	for i := 0; i < steps && !g.paused; i++ {
		g.step()
	}
	return nil
}

func (g *Game) step() {
	g.clock.Step()
	g.world.Update()
	g.playWorldEvents()
	g.hero.Update()
	if g.script != nil {
		if err := g.script.Tick(); err != nil {
			g.log.WithError(err).Warn("hero script tick failed")
		}
	}
}

// playWorldEvents reacts to what the world systems did this step. The next
// world update drops whatever is left in the queue.
func (g *Game) playWorldEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventBroken:
			if sound, ok := evt.Data.(string); ok && sound != "" {
				g.sounds.Play(sound)
			}
		case ecs.EventReturned:
			g.log.WithField("entity", evt.Entity.String()).Debug("projectile caught")
		}
	}
}

// reload applies pending prefab changes from the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(c)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(c prefabs.Change) {
	log := g.log.WithFields(logrus.Fields{"path": c.Path, "kind": c.Kind})
	switch c.Kind {
	case prefabs.ChangeSpec:
		if filepath.Base(c.Path) != prefabs.HeroSpecFile {
			return
		}
		spec, err := prefabs.LoadHeroSpec()
		if err != nil {
			log.WithError(err).Warn("hero spec reload failed")
			return
		}
		g.spec = spec
		g.hero.Context().Tuning = spec.Tuning
		g.sprites.SetDefs(spec.Animations)
		g.sounds.SetSpec(spec)
		log.Info("hero spec reloaded")
	case prefabs.ChangeScript:
		name := filepath.Base(c.Path)
		if g.script != nil && filepath.Base(g.script.Path()) == name {
			if err := g.script.ReloadFromPrefabs(); err != nil {
				log.WithError(err).Warn("hero script reload failed")
			}
			return
		}
		for _, is := range g.spec.Items {
			if filepath.Base(is.Script) != name {
				continue
			}
			item, err := script.LoadItem(g.hero, is)
			if err != nil {
				log.WithError(err).Warn("item reload failed")
				return
			}
			if is.Slot > 0 {
				g.inv.Assign(is.Slot, item)
			}
			log.WithField("item", is.Name).Info("item reloaded")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawMap(screen)
	g.drawWorld(screen)
	g.drawHero(screen)
	if g.cfg.Debug {
		g.drawPanel(screen)
	}
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
