package sigvar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/AnatoleLucet/sigvar/internal"
)

// Config controls process-wide runtime settings. See LoadConfigFromEnv
// for the environment variables.
type Config = internal.Config

func DefaultConfig() Config { return internal.DefaultConfig() }

// LoadConfigFromEnv reads SIGVAR_FRAME_INTERVAL, SIGVAR_MAX_UPDATE_ROUNDS
// and SIGVAR_LOG_LEVEL, falling back to defaults.
func LoadConfigFromEnv() Config { return internal.LoadConfigFromEnv() }

// Configure applies cfg process-wide.
func Configure(cfg Config) { internal.Configure(cfg) }

// SetLogger replaces the runtime logger.
func SetLogger(l *logrus.Logger) { internal.SetLogger(l) }

// RegisterMetrics registers the runtime counters with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	return internal.RegisterMetrics(reg)
}
