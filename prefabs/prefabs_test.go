package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/hero/hero"
)

func TestLoadHeroSpecEmbedded(t *testing.T) {
	spec, err := LoadHeroSpec()
	if err != nil {
		t.Fatalf("LoadHeroSpec: %v", err)
	}
	if spec.Tuning != hero.DefaultTuning() {
		t.Fatalf("embedded tuning differs from defaults: %+v", spec.Tuning)
	}
	if spec.Life != 12 {
		t.Fatalf("life = %d, want 12", spec.Life)
	}
	if def, ok := spec.Animations["sword"]; !ok || def.Loop || def.FrameCount != 9 {
		t.Fatalf("sword animation = %+v, %v", def, ok)
	}
	if len(spec.HeroAbilities()) != 7 {
		t.Fatalf("abilities = %v", spec.HeroAbilities())
	}
	if spec.Sprite.Color == nil {
		t.Fatalf("sprite color not parsed")
	}
	if _, ok := spec.Sound("sword1"); !ok {
		t.Fatalf("missing sword1 sound")
	}
	for _, item := range spec.Items {
		if _, err := LoadScript(item.Script); err != nil {
			t.Fatalf("item %s script: %v", item.Name, err)
		}
	}
}

func TestDiskOverlayKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	src := "tuning:\n  walking_speed: 120\n  treasure_duration: 500ms\n"
	if err := os.WriteFile(filepath.Join(dir, HeroSpecFile), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadHeroSpec()
	if err != nil {
		t.Fatalf("LoadHeroSpec: %v", err)
	}
	if spec.Tuning.WalkingSpeed != 120 {
		t.Fatalf("walking speed = %v, want 120", spec.Tuning.WalkingSpeed)
	}
	if spec.Tuning.TreasureDuration != 500*time.Millisecond {
		t.Fatalf("treasure duration = %v", spec.Tuning.TreasureDuration)
	}
	if spec.Tuning.RunningSpeed != hero.DefaultTuning().RunningSpeed {
		t.Fatalf("running speed lost its default: %v", spec.Tuning.RunningSpeed)
	}
}

func TestLoadHeroSpecRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero size", "tuning:\n  width: 0\n  height: 0\n"},
		{"no frames", "animations:\n  walking: {frame_count: 0, fps: 8}\n"},
		{"no fps", "animations:\n  walking: {frame_count: 2}\n"},
		{"bad slot", "items:\n  - {name: lamp, script: lamp.tengo, slot: 3}\n"},
		{"bad color", "sprite:\n  color: \"#12\"\n"},
		{"bad duration", "tuning:\n  hurt_duration: soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			old := Dir
			Dir = dir
			t.Cleanup(func() { Dir = old })
			if err := os.WriteFile(filepath.Join(dir, HeroSpecFile), []byte(tt.src), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := LoadHeroSpec(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lamp.tengo", "scripts/lamp.tengo"},
		{"scripts/lamp.tengo", "scripts/lamp.tengo"},
		{"prefabs/scripts/lamp.tengo", "scripts/lamp.tengo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanScriptPath(tt.in); got != tt.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScriptNames(t *testing.T) {
	names := ScriptNames()
	want := map[string]bool{"feather.tengo": true, "hero.tengo": true, "lamp.tengo": true}
	for _, n := range names {
		delete(want, n)
	}
	if len(want) != 0 {
		t.Fatalf("missing embedded scripts %v in %v", want, names)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lamp.tengo"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case c := <-w.Changes:
		if c.Kind != ChangeScript || filepath.Base(c.Path) != "lamp.tengo" {
			t.Fatalf("change = %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}
