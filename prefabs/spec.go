package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/hero/hero"
	"gopkg.in/yaml.v3"
)

const HeroSpecFile = "hero.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := decodeSpec(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

func decodeSpec(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// HeroSpec describes the hero: state tuning, sprite animations, sounds,
// its script and the scripted items it starts with.
type HeroSpec struct {
	Name       string                      `yaml:"name"`
	Tuning     hero.Tuning                 `yaml:"tuning"`
	Life       int                         `yaml:"life"`
	Abilities  []string                    `yaml:"abilities"`
	Sprite     SpriteSpec                  `yaml:"sprite"`
	Animations map[string]AnimationDefSpec `yaml:"animations"`
	Audio      []AudioSpec                 `yaml:"audio"`
	Script     string                      `yaml:"script"`
	Items      []ItemSpec                  `yaml:"items"`
}

// LoadHeroSpec reads hero.yaml. Tuning values missing from the file keep
// their defaults.
func LoadHeroSpec() (*HeroSpec, error) {
	spec := HeroSpec{Tuning: hero.DefaultTuning(), Life: 12}
	if err := decodeSpec(HeroSpecFile, &spec); err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *HeroSpec) validate() error {
	if s.Tuning.Width <= 0 || s.Tuning.Height <= 0 {
		return fmt.Errorf("prefabs: %s: hero size must be positive", HeroSpecFile)
	}
	for name, def := range s.Animations {
		if def.FrameCount <= 0 {
			return fmt.Errorf("prefabs: %s: animation %q has no frames", HeroSpecFile, name)
		}
		if def.FPS <= 0 {
			return fmt.Errorf("prefabs: %s: animation %q needs a positive fps", HeroSpecFile, name)
		}
	}
	for _, item := range s.Items {
		if item.Slot < 0 || item.Slot > 2 {
			return fmt.Errorf("prefabs: %s: item %q has invalid slot %d", HeroSpecFile, item.Name, item.Slot)
		}
	}
	return nil
}

// HeroAbilities converts the ability names of the spec.
func (s *HeroSpec) HeroAbilities() []hero.Ability {
	out := make([]hero.Ability, 0, len(s.Abilities))
	for _, a := range s.Abilities {
		out = append(out, hero.Ability(strings.ToLower(strings.TrimSpace(a))))
	}
	return out
}

// Sound returns the audio entry with the given name.
func (s *HeroSpec) Sound(name string) (AudioSpec, bool) {
	for _, a := range s.Audio {
		if a.Name == name {
			return a, true
		}
	}
	return AudioSpec{}, false
}

// ItemSpec is a scripted equipment item. Slot is the item command it is
// assigned to, 0 for none.
type ItemSpec struct {
	Name       string `yaml:"name"`
	Script     string `yaml:"script"`
	Slot       int    `yaml:"slot"`
	Variant    int    `yaml:"variant"`
	Assignable bool   `yaml:"assignable"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type SpriteSpec struct {
	Color       *YAMLColor `yaml:"color"`
	ShadowColor *YAMLColor `yaml:"shadow_color"`
	OriginX     float64    `yaml:"origin_x"`
	OriginY     float64    `yaml:"origin_y"`
}

type AnimationDefSpec struct {
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
	Directions int     `yaml:"directions"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
