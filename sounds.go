package main

import (
	"github.com/milk9111/hero/prefabs"
	"github.com/sirupsen/logrus"
)

const recentSounds = 6

// soundLog stands in for an audio mixer: it resolves sound ids against
// hero.yaml, logs them and keeps the last few for the debug panel.
type soundLog struct {
	spec   *prefabs.HeroSpec
	log    *logrus.Entry
	recent []string
}

func newSoundLog(spec *prefabs.HeroSpec, log *logrus.Entry) *soundLog {
	return &soundLog{spec: spec, log: log}
}

func (s *soundLog) SetSpec(spec *prefabs.HeroSpec) { s.spec = spec }

func (s *soundLog) Play(id string) {
	fields := logrus.Fields{"sound": id}
	if a, ok := s.spec.Sound(id); ok {
		fields["file"] = a.File
		fields["volume"] = a.Volume
	}
	s.log.WithFields(fields).Debug("play sound")

	s.recent = append(s.recent, id)
	if len(s.recent) > recentSounds {
		s.recent = s.recent[len(s.recent)-recentSounds:]
	}
}

func (s *soundLog) Recent() []string { return s.recent }
