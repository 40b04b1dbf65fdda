package hero

import (
	"io"
	"time"

	"github.com/milk9111/hero/common"
	"github.com/milk9111/hero/ecs"
	"github.com/sirupsen/logrus"
)

// Context holds the collaborators passed to the hero and, through it, to
// every state at construction.
type Context struct {
	Clock     common.Clock
	Map       Map
	World     *ecs.World
	Sprites   Sprites
	Sounds    Sounds
	Equipment Equipment
	Log       *logrus.Entry
	Tuning    Tuning
}

// Tuning holds the numeric parameters of the hero states.
type Tuning struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	WalkingSpeed  float64 `yaml:"walking_speed"`
	WadingSpeed   float64 `yaml:"wading_speed"`
	SwimmingSpeed float64 `yaml:"swimming_speed"`
	CarryingSpeed float64 `yaml:"carrying_speed"`

	RunningSpeed       float64       `yaml:"running_speed"`
	RunningPrepare     time.Duration `yaml:"running_prepare"`
	RunningSoundPeriod time.Duration `yaml:"running_sound_period"`
	BounceDistance     int           `yaml:"bounce_distance"`

	JumpDelay   time.Duration `yaml:"jump_delay"`
	JumperDelay time.Duration `yaml:"jumper_delay"`

	HookshotSpeed       float64       `yaml:"hookshot_speed"`
	HookshotLength      int           `yaml:"hookshot_length"`
	HookshotSoundPeriod time.Duration `yaml:"hookshot_sound_period"`
	HookshotPullSpeed   float64       `yaml:"hookshot_pull_speed"`

	BoomerangSpeed    float64 `yaml:"boomerang_speed"`
	BoomerangDistance float64 `yaml:"boomerang_distance"`
	ArrowSpeed        float64 `yaml:"arrow_speed"`

	LiftDuration  time.Duration `yaml:"lift_duration"`
	ThrowDistance float64       `yaml:"throw_distance"`
	ThrowSpeed    float64       `yaml:"throw_speed"`
	CarryHeight   float64       `yaml:"carry_height"`

	HurtSpeed              float64       `yaml:"hurt_speed"`
	HurtDistance           int           `yaml:"hurt_distance"`
	HurtDuration           time.Duration `yaml:"hurt_duration"`
	InvincibilityDuration  time.Duration `yaml:"invincibility_duration"`
	BackToSolidGroundSpeed float64       `yaml:"back_to_solid_ground_speed"`
	BackToSolidGroundDelay time.Duration `yaml:"back_to_solid_ground_delay"`

	TreasureDuration time.Duration `yaml:"treasure_duration"`
	PushDelay        time.Duration `yaml:"push_delay"`
	PushSpeed        float64       `yaml:"push_speed"`
	StairsSpeed      float64       `yaml:"stairs_speed"`
	ForcedWalkSpeed  float64       `yaml:"forced_walk_speed"`
}

// DefaultTuning returns the built-in parameters.
func DefaultTuning() Tuning {
	return Tuning{
		Width:  16,
		Height: 16,

		WalkingSpeed:  88,
		WadingSpeed:   64,
		SwimmingSpeed: 48,
		CarryingSpeed: 88,

		RunningSpeed:       300,
		RunningPrepare:     500 * time.Millisecond,
		RunningSoundPeriod: 300 * time.Millisecond,
		BounceDistance:     16,

		JumpDelay:   10 * time.Millisecond,
		JumperDelay: 200 * time.Millisecond,

		HookshotSpeed:       192,
		HookshotLength:      120,
		HookshotSoundPeriod: 150 * time.Millisecond,
		HookshotPullSpeed:   192,

		BoomerangSpeed:    160,
		BoomerangDistance: 96,
		ArrowSpeed:        192,

		LiftDuration:  300 * time.Millisecond,
		ThrowDistance: 48,
		ThrowSpeed:    3,
		CarryHeight:   12,

		HurtSpeed:              120,
		HurtDistance:           24,
		HurtDuration:           200 * time.Millisecond,
		InvincibilityDuration:  time.Second,
		BackToSolidGroundSpeed: 144,
		BackToSolidGroundDelay: 0,

		TreasureDuration: 2 * time.Second,
		PushDelay:        800 * time.Millisecond,
		PushSpeed:        32,
		StairsSpeed:      40,
		ForcedWalkSpeed:  88,
	}
}

func (c *Context) fillDefaults() {
	if c.Clock == nil {
		c.Clock = common.NewStepClock(common.DefaultStep)
	}
	if c.World == nil {
		c.World = ecs.NewWorld()
	}
	if c.Sprites == nil {
		c.Sprites = &nopSprites{}
	}
	if c.Sounds == nil {
		c.Sounds = nopSounds{}
	}
	if c.Equipment == nil {
		c.Equipment = NewInventory(12)
	}
	if c.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Log = logrus.NewEntry(l)
	}
	if c.Tuning.Width == 0 {
		c.Tuning = DefaultTuning()
	}
}

type nopSounds struct{}

func (nopSounds) Play(string) {}

// nopSprites tracks the animation name and direction only. Animations
// never finish.
type nopSprites struct {
	animation string
	direction int
}

func (s *nopSprites) SetAnimation(name string)    { s.animation = name }
func (s *nopSprites) Animation() string           { return s.animation }
func (s *nopSprites) HasAnimation(string) bool    { return true }
func (s *nopSprites) IsAnimationFinished() bool   { return false }
func (s *nopSprites) Direction() int              { return s.direction }
func (s *nopSprites) SetDirection(direction4 int) { s.direction = direction4 }
func (s *nopSprites) SetLiftedItem(*CarriedItem)  {}
func (s *nopSprites) SetBlinking(bool)            {}
func (s *nopSprites) SetSuspended(bool)           {}
