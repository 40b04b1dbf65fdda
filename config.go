package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

// Config is the sandbox configuration. Command line options override the
// environment.
type Config struct {
	Level    string        `env:"HERO_LEVEL"     envDefault:"sandbox.json"`
	LogLevel string        `env:"HERO_LOG_LEVEL" envDefault:"info"`
	Step     time.Duration `env:"HERO_STEP"      envDefault:"10ms"`
	Watch    bool          `env:"HERO_WATCH"`
	Debug    bool          `env:"HERO_DEBUG"`
}

type options struct {
	Level    string        `short:"l" long:"level"     description:"embedded level name or path to a level file"`
	LogLevel string        `long:"log-level"           description:"log level (trace, debug, info, warn, error)"`
	Step     time.Duration `long:"step"                description:"simulated time of one update"`
	Watch    bool          `short:"w" long:"watch"     description:"reload prefabs and scripts when they change on disk"`
	Debug    bool          `short:"d" long:"debug"     description:"draw entity boxes and the state panel"`
}

var errHelp = errors.New("help requested")

func loadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return Config{}, errHelp
		}
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if opts.Level != "" {
		cfg.Level = opts.Level
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Step > 0 {
		cfg.Step = opts.Step
	}
	cfg.Watch = cfg.Watch || opts.Watch
	cfg.Debug = cfg.Debug || opts.Debug

	if cfg.Step <= 0 {
		return Config{}, fmt.Errorf("step must be positive, got %v", cfg.Step)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
