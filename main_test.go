package main

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/ecs/system"
	"github.com/milk9111/hero/hero"
	"github.com/milk9111/hero/prefabs"
	"github.com/sirupsen/logrus"
)

// setEnv leaves only the given HERO_ variables set.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{"HERO_LEVEL", "HERO_LOG_LEVEL", "HERO_STEP", "HERO_WATCH", "HERO_DEBUG"} {
		t.Setenv(k, "")
		if v, ok := env[k]; ok {
			t.Setenv(k, v)
		} else {
			os.Unsetenv(k)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want Config
	}{
		{
			name: "defaults",
			want: Config{Level: "sandbox.json", LogLevel: "info", Step: 10 * time.Millisecond},
		},
		{
			name: "env",
			env:  map[string]string{"HERO_LEVEL": "cave", "HERO_STEP": "5ms", "HERO_WATCH": "true"},
			want: Config{Level: "cave", LogLevel: "info", Step: 5 * time.Millisecond, Watch: true},
		},
		{
			name: "flags override env",
			env:  map[string]string{"HERO_LEVEL": "cave", "HERO_LOG_LEVEL": "warn"},
			args: []string{"--level", "levels/dungeon.json", "--log-level", "debug", "-d"},
			want: Config{Level: "levels/dungeon.json", LogLevel: "debug", Step: 10 * time.Millisecond, Debug: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			got, err := loadConfig(tt.args)
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if got != tt.want {
				t.Fatalf("config = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	setEnv(t, map[string]string{"HERO_LOG_LEVEL": "loud"})
	if _, err := loadConfig(nil); err == nil {
		t.Fatalf("expected an error for an unknown log level")
	}
	setEnv(t, nil)
	if _, err := loadConfig([]string{"--no-such-flag"}); err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
	if _, err := loadConfig([]string{"--help"}); !errors.Is(err, errHelp) {
		t.Fatalf("err = %v, want errHelp", err)
	}
}

type edgeRecorder struct{ edges []string }

func (r *edgeRecorder) NotifyCommandPressed(c hero.Command) {
	r.edges = append(r.edges, "+"+c.String())
}

func (r *edgeRecorder) NotifyCommandReleased(c hero.Command) {
	r.edges = append(r.edges, "-"+c.String())
}

func TestInputEdges(t *testing.T) {
	in := NewInput()
	rec := &edgeRecorder{}

	in.apply(map[hero.Command]bool{hero.CommandRight: true}, rec)
	in.apply(map[hero.Command]bool{hero.CommandRight: true}, rec)
	in.apply(map[hero.Command]bool{hero.CommandUp: true, hero.CommandAttack: true}, rec)
	in.apply(map[hero.Command]bool{}, rec)

	want := []string{"+right", "-right", "+attack", "+up", "-attack", "-up"}
	if len(rec.edges) != len(want) {
		t.Fatalf("edges = %v, want %v", rec.edges, want)
	}
	for i := range want {
		if rec.edges[i] != want[i] {
			t.Fatalf("edges = %v, want %v", rec.edges, want)
		}
	}
}

func TestAnimatorFinishesAcrossSuspension(t *testing.T) {
	clock := common.NewStepClock(10 * time.Millisecond)
	defs := map[string]prefabs.AnimationDefSpec{
		"sword":   {FrameCount: 4, FPS: 20},
		"walking": {FrameCount: 8, FPS: 10, Loop: true},
	}
	log := logrus.NewEntry(logrus.New())
	a := newAnimator(clock, defs, log)

	a.SetAnimation("sword")
	for i := 0; i < 10; i++ {
		clock.Step()
	}
	a.SetSuspended(true)
	clock.Advance(time.Second)
	if a.IsAnimationFinished() {
		t.Fatalf("animation finished while suspended")
	}
	a.SetSuspended(false)
	if a.IsAnimationFinished() {
		t.Fatalf("animation finished right after resume")
	}
	if got := a.Frame(); got != 2 {
		t.Fatalf("frame = %d, want 2", got)
	}
	for i := 0; i < 10; i++ {
		clock.Step()
	}
	if !a.IsAnimationFinished() {
		t.Fatalf("animation not finished after its length")
	}

	a.SetAnimation("walking")
	clock.Advance(5 * time.Second)
	if a.IsAnimationFinished() {
		t.Fatalf("looping animation finished")
	}
	if a.HasAnimation("treasure") {
		t.Fatalf("unexpected treasure animation")
	}
	a.SetAnimation("treasure")
	if !a.IsAnimationFinished() {
		t.Fatalf("unknown animation should count as finished")
	}
}

func TestThrownItemBreaksWithSound(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	log := logrus.NewEntry(logger)

	g := &Game{
		log:    log,
		world:  ecs.NewWorld(),
		sounds: newSoundLog(&prefabs.HeroSpec{}, log),
	}
	g.world.AddSystem(system.NewThrownSystem(nil))

	pot := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, pot, component.TransformComponent.Kind(), &component.Transform{Width: 16, Height: 16})
	_ = ecs.Add(g.world, pot, component.LiftableComponent.Kind(), &component.Liftable{Name: "pot", DestructionSound: "stone"})
	_ = ecs.Add(g.world, pot, component.ThrownComponent.Kind(), &component.Thrown{Speed: 3, Distance: 6})

	g.world.Update()
	g.playWorldEvents()
	if len(g.sounds.Recent()) != 0 {
		t.Fatalf("the pot is still flying, played %v", g.sounds.Recent())
	}

	g.world.Update()
	g.playWorldEvents()
	if got := g.sounds.Recent(); len(got) != 1 || got[0] != "stone" {
		t.Fatalf("expected the destruction sound on landing, got %v", got)
	}

	g.world.Update()
	g.playWorldEvents()
	if len(g.sounds.Recent()) != 1 {
		t.Fatalf("a landed pot breaks once, played %v", g.sounds.Recent())
	}
}
