package internal

import (
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config controls process-wide runtime settings.
type Config struct {
	// FrameInterval is the tick of the animation driver.
	FrameInterval time.Duration `env:"SIGVAR_FRAME_INTERVAL" envDefault:"16ms"`

	// MaxUpdateRounds caps how many commit rounds one update cycle may run
	// before the remaining queued writes are dropped.
	MaxUpdateRounds int `env:"SIGVAR_MAX_UPDATE_ROUNDS" envDefault:"1024"`

	LogLevel string `env:"SIGVAR_LOG_LEVEL" envDefault:"warn"`
}

func DefaultConfig() Config {
	return Config{
		FrameInterval:   16 * time.Millisecond,
		MaxUpdateRounds: 1024,
		LogLevel:        "warn",
	}
}

// ParseConfigEnv loads the configuration from environment variables.
func ParseConfigEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), errors.Wrap(err, "parse env")
	}

	return cfg, nil
}

// LoadConfigFromEnv returns the environment configuration, falling back
// to defaults for anything missing or invalid.
func LoadConfigFromEnv() Config {
	cfg, err := ParseConfigEnv()
	if err != nil {
		logger().WithError(err).Warn("using default runtime config")
		return DefaultConfig()
	}

	def := DefaultConfig()
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.MaxUpdateRounds <= 0 {
		cfg.MaxUpdateRounds = def.MaxUpdateRounds
	}
	return cfg
}

var config atomic.Pointer[Config]

func init() {
	cfg := DefaultConfig()
	config.Store(&cfg)
}

func currentConfig() Config {
	return *config.Load()
}

// Configure applies cfg process-wide. Zero fields keep their defaults.
func Configure(cfg Config) {
	def := DefaultConfig()
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.MaxUpdateRounds <= 0 {
		cfg.MaxUpdateRounds = def.MaxUpdateRounds
	}

	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger().WithError(err).WithField("level", cfg.LogLevel).Warn("ignoring invalid log level")
		} else {
			logger().SetLevel(level)
		}
	}

	config.Store(&cfg)
}
