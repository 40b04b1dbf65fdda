package hero

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/milk9111/hero/ecs/component"
	"github.com/milk9111/hero/level"
)

type fakeSprites struct {
	animation string
	finished  bool
	direction int
	lifted    *CarriedItem
	blinking  bool
	suspended bool
	missing   map[string]bool
}

func (s *fakeSprites) SetAnimation(name string)        { s.animation = name }
func (s *fakeSprites) Animation() string               { return s.animation }
func (s *fakeSprites) HasAnimation(name string) bool   { return !s.missing[name] }
func (s *fakeSprites) IsAnimationFinished() bool       { return s.finished }
func (s *fakeSprites) Direction() int                  { return s.direction }
func (s *fakeSprites) SetDirection(direction4 int)     { s.direction = direction4 }
func (s *fakeSprites) SetLiftedItem(item *CarriedItem) { s.lifted = item }
func (s *fakeSprites) SetBlinking(blinking bool)       { s.blinking = blinking }
func (s *fakeSprites) SetSuspended(suspended bool)     { s.suspended = suspended }

type soundRecorder struct {
	played []string
}

func (r *soundRecorder) Play(id string) { r.played = append(r.played, id) }

func (r *soundRecorder) count(id string) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

type fixture struct {
	hero    *Hero
	clock   *common.StepClock
	world   *ecs.World
	level   *level.Map
	sprites *fakeSprites
	sounds  *soundRecorder
	inv     *Inventory
}

func openMap(t *testing.T) *level.Map {
	t.Helper()
	m, err := level.NewMap("test", 40, 40)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func newFixture(t *testing.T, m *level.Map, abilities ...Ability) *fixture {
	t.Helper()
	if m == nil {
		m = openMap(t)
	}
	f := &fixture{
		clock:   common.NewStepClock(10 * time.Millisecond),
		world:   ecs.NewWorld(),
		level:   m,
		sprites: &fakeSprites{missing: map[string]bool{}},
		sounds:  &soundRecorder{},
		inv:     NewInventory(12, abilities...),
	}
	tuning := DefaultTuning()
	tuning.HookshotSoundPeriod = 200 * time.Millisecond
	f.hero = New(Context{
		Clock:     f.clock,
		Map:       m,
		World:     f.world,
		Sprites:   f.sprites,
		Sounds:    f.sounds,
		Equipment: f.inv,
		Tuning:    tuning,
	}, 16, 16, level.LayerLow)
	return f
}

// tick advances the clock by one step and updates the hero.
func (f *fixture) tick() {
	f.clock.Step()
	f.hero.Update()
}

// runUntil ticks until the hero is in the named state.
func (f *fixture) runUntil(t *testing.T, name string, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if f.hero.StateName() == name {
			return
		}
		f.tick()
	}
	if f.hero.StateName() != name {
		t.Fatalf("expected state %q after %d ticks, got %q", name, maxTicks, f.hero.StateName())
	}
}

func (f *fixture) addLiftable(t *testing.T, x, y int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(f.world)
	if err := ecs.Add(f.world, e, component.TransformComponent.Kind(), &component.Transform{
		X: float64(x), Y: float64(y), Width: 16, Height: 16,
	}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(f.world, e, component.LiftableComponent.Kind(), &component.Liftable{
		Name: "pot", DestructionSound: "stone",
	}); err != nil {
		t.Fatalf("add liftable: %v", err)
	}
	return e
}

func expectPanic(t *testing.T, sentinel error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic wrapping %v", sentinel)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, sentinel) {
			t.Fatalf("expected panic wrapping %v, got %v", sentinel, r)
		}
	}()
	fn()
}

// recordingState records its lifecycle calls into a shared log.
type recordingState struct {
	BaseState
	log     *[]string
	onStart func()
	onStop  func()
}

func newRecording(h *Hero, name string, log *[]string) *recordingState {
	return &recordingState{BaseState: newBaseState(h, name), log: log}
}

func (p *recordingState) Start(previous State) {
	from := "none"
	if previous != nil {
		from = previous.Name()
	}
	*p.log = append(*p.log, p.name+".start("+from+")")
	if p.onStart != nil {
		p.onStart()
	}
}

func (p *recordingState) Stop(next State) {
	*p.log = append(*p.log, p.name+".stop("+next.Name()+")")
	if p.onStop != nil {
		p.onStop()
	}
}

// keepingState claims the carried item of the previous state without taking
// a reference on it.
type keepingState struct {
	BaseState
}

func (k *keepingState) PreviousCarriedItemBehavior() CarriedBehavior { return CarriedKeep }

func TestNewStartsFromGround(t *testing.T) {
	cases := []struct {
		name      string
		ground    level.Ground
		abilities []Ability
		want      string
	}{
		{"traversable", level.GroundTraversable, nil, "free"},
		{"shallow_water", level.GroundShallowWater, nil, "wading"},
		{"deep_water_swimmer", level.GroundDeepWater, []Ability{AbilitySwim}, "swimming"},
		{"deep_water_no_swim", level.GroundDeepWater, nil, "plunging"},
		{"hole", level.GroundHole, nil, "falling"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := openMap(t)
			m.Fill(level.LayerLow, common.NewRect(0, 0, 64, 64), c.ground)
			f := newFixture(t, m, c.abilities...)
			if got := f.hero.StateName(); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestSetStateStopsBeforeStart(t *testing.T) {
	f := newFixture(t, nil)
	var log []string
	a := newRecording(f.hero, "a", &log)
	b := newRecording(f.hero, "b", &log)

	f.hero.SetState(a)
	f.hero.SetState(b)

	want := []string{"a.start(free)", "a.stop(b)", "b.start(a)"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
	if f.hero.State() != b {
		t.Fatalf("expected b to be current, got %s", f.hero.StateName())
	}
	if a.phase != phaseDestroyed {
		t.Fatalf("expected a destroyed after the transition, phase %d", a.phase)
	}
	if a.IsCurrent() || !b.IsCurrent() {
		t.Fatalf("exactly one state should be current")
	}
}

func TestSetStateSameInstanceIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	var log []string
	a := newRecording(f.hero, "a", &log)
	f.hero.SetState(a)
	f.hero.SetState(a)
	if len(log) != 1 {
		t.Fatalf("expected a single start, got %v", log)
	}
}

func TestSetStateInvariants(t *testing.T) {
	t.Run("reused_instance", func(t *testing.T) {
		f := newFixture(t, nil)
		var log []string
		a := newRecording(f.hero, "a", &log)
		f.hero.SetState(a)
		f.hero.StartFree()
		expectPanic(t, ErrStateReused, func() { f.hero.SetState(a) })
	})
	t.Run("transition_in_stop", func(t *testing.T) {
		f := newFixture(t, nil)
		var log []string
		a := newRecording(f.hero, "a", &log)
		a.onStop = func() { f.hero.StartFree() }
		f.hero.SetState(a)
		expectPanic(t, ErrTransitionInStop, func() { f.hero.SetState(newRecording(f.hero, "b", &log)) })
	})
	t.Run("nil_state", func(t *testing.T) {
		f := newFixture(t, nil)
		expectPanic(t, ErrNilState, func() { f.hero.SetState(nil) })
	})
	t.Run("lifting_nothing", func(t *testing.T) {
		f := newFixture(t, nil)
		expectPanic(t, ErrMissingCarriedItem, func() { NewLiftingState(f.hero, nil) })
	})
}

func TestStartMayReplaceItself(t *testing.T) {
	f := newFixture(t, nil)
	var seen []string
	f.hero.OnStateChanged(func(_ *Hero, previous, current string) {
		seen = append(seen, previous+"->"+current)
	})
	var log []string
	a := newRecording(f.hero, "a", &log)
	a.onStart = func() { f.hero.StartFree() }
	f.hero.SetState(a)

	if f.hero.StateName() != "free" {
		t.Fatalf("expected free, got %s", f.hero.StateName())
	}
	if len(seen) != 1 || seen[0] != "a->free" {
		t.Fatalf("expected only the final transition to be observed, got %v", seen)
	}
	if a.phase != phaseDestroyed {
		t.Fatalf("expected the replaced state destroyed, phase %d", a.phase)
	}
}

type bareState struct {
	BaseState
}

func predicateAnswers(h *Hero) []bool {
	st := h.State()
	stream := &level.Stream{Base: level.NewBase("stream", common.NewRect(0, 0, 16, 16), level.LayerLow)}
	stairs := &level.Stairs{Base: level.NewBase("stairs", common.NewRect(0, 0, 16, 16), level.LayerLow)}
	jumper := &level.Jumper{Base: level.NewBase("jumper", common.NewRect(200, 200, 8, 8), level.LayerLow)}
	sensor := &level.Sensor{Base: level.NewBase("sensor", common.NewRect(0, 0, 16, 16), level.LayerLow)}
	separator := &level.Separator{Base: level.NewBase("separator", common.NewRect(0, 0, 16, 16), level.LayerLow)}
	tele := &level.Teletransporter{Base: level.NewBase("tele", common.NewRect(0, 0, 16, 16), level.LayerLow)}

	answers := []bool{
		st.IsTouchingGround(),
		st.CanAvoidDeepWater(),
		st.CanAvoidHole(),
		st.CanAvoidIce(),
		st.CanAvoidLava(),
		st.CanAvoidPrickle(),
		st.CanAvoidTeletransporter(),
		st.CanAvoidStream(stream),
		st.CanAvoidSensor(),
		st.CanAvoidSwitch(),
		st.CanAvoidExplosion(),
		st.IsStairsObstacle(stairs),
		st.IsJumperObstacle(jumper, common.NewRect(196, 196, 16, 16)),
		st.IsSeparatorObstacle(separator),
		st.IsSensorObstacle(sensor),
		st.IsTeletransporterObstacle(tele),
		st.IsStreamObstacle(stream),
		st.CanTakeStairs(),
		st.CanTakeJumper(),
		st.CanStartSword(),
		st.CanBeHurt(nil),
		st.CanPickTreasure("rupee"),
		st.IsHeroVisible(),
		st.AreCollisionsIgnored(),
		st.CanControlMovement(),
		st.IsCuttingWithSword(),
		st.IsGrabbingOrPulling(),
		st.IsUsingItem(),
		st.CarriedItem() == nil,
		st.PreviousCarriedItemBehavior() == CarriedThrow,
		st.WantedMovementDirection8() == h.commands.WantedDirection8(),
	}
	for g := level.GroundEmpty; g <= level.GroundLava; g++ {
		answers = append(answers, st.IsGroundObstacle(g))
	}
	return answers
}

func TestBareStateAnswersLikeFree(t *testing.T) {
	f := newFixture(t, nil)
	free := predicateAnswers(f.hero)

	f.hero.SetState(&bareState{BaseState: newBaseState(f.hero, "bare")})
	bare := predicateAnswers(f.hero)

	if len(free) != len(bare) {
		t.Fatalf("answer count differs: %d vs %d", len(free), len(bare))
	}
	for i := range free {
		if free[i] != bare[i] {
			t.Fatalf("predicate %d: free answers %v, bare state answers %v", i, free[i], bare[i])
		}
	}
}

func TestStateByName(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.hero.SetStateByName("frozen"); err != nil {
		t.Fatalf("SetStateByName: %v", err)
	}
	if f.hero.StateName() != "frozen" {
		t.Fatalf("expected frozen, got %s", f.hero.StateName())
	}
	err := f.hero.SetStateByName("dancing")
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
	if f.hero.StateName() != "frozen" {
		t.Fatalf("an unknown name must not change the state, got %s", f.hero.StateName())
	}

	names := StateNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	for _, name := range names {
		g := newFixture(t, nil)
		if err := g.hero.SetStateByName(name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestSimulatedCommands(t *testing.T) {
	f := newFixture(t, nil, AbilitySword)
	f.hero.SimulateCommandPressed(CommandAttack)
	if f.hero.StateName() != "sword swinging" {
		t.Fatalf("expected sword swinging, got %s", f.hero.StateName())
	}
	f.hero.SimulateCommandReleased(CommandAttack)
	f.sprites.finished = true
	f.tick()
	if f.hero.StateName() != "free" {
		t.Fatalf("expected free after the swing, got %s", f.hero.StateName())
	}
}

func TestPauseRequest(t *testing.T) {
	f := newFixture(t, nil)
	requests := 0
	f.hero.OnPauseRequested = func() { requests++ }

	f.hero.NotifyCommandPressed(CommandPause)
	f.hero.NotifyCommandReleased(CommandPause)
	if requests != 1 {
		t.Fatalf("expected one pause request, got %d", requests)
	}

	f.hero.StartTreasure("sword", 1)
	f.hero.NotifyCommandPressed(CommandPause)
	if requests != 1 {
		t.Fatalf("pause must be refused while showing a treasure")
	}
}
