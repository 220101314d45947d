package internal

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	defer Configure(DefaultConfig())

	t.Run("zero fields keep defaults", func(t *testing.T) {
		Configure(Config{})

		cfg := currentConfig()
		assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval)
		assert.Equal(t, 1024, cfg.MaxUpdateRounds)
	})

	t.Run("log level", func(t *testing.T) {
		Configure(Config{LogLevel: "debug"})
		assert.Equal(t, logrus.DebugLevel, logger().GetLevel())

		Configure(Config{LogLevel: "chatty"})
		assert.Equal(t, logrus.DebugLevel, logger().GetLevel())
	})

	t.Run("frame interval", func(t *testing.T) {
		Configure(Config{FrameInterval: 5 * time.Millisecond})

		a := NewAnimator(nil)
		assert.Equal(t, 5*time.Millisecond, a.interval)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Setenv("SIGVAR_MAX_UPDATE_ROUNDS", "many")

		_, err := ParseConfigEnv()

		assert.ErrorContains(t, err, "parse env")
	})
}
