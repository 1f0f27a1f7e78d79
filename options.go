package asyncmap

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/asyncmap/metrics"
)

// defaultBufferMultiplier is applied when WithBufferMultiplier is not given.
const defaultBufferMultiplier = 2

// config holds per-call engine configuration.
type config struct {
	// bufferMultiplier scales the ordering channel used in streaming mode:
	// capacity = limit * bufferMultiplier, clamped on overflow. Minimum 1.
	bufferMultiplier int

	// metrics provides the instruments the engine records into.
	metrics metrics.Provider
}

func defaultConfig() config {
	return config{
		bufferMultiplier: defaultBufferMultiplier,
		metrics:          metrics.NewNoopProvider(),
	}
}

// Option configures a single Map/MapStream call.
type Option func(*config) error

// WithBufferMultiplier sets how far, in multiples of the concurrency limit,
// streaming dispatch may run ahead of consumption (must be >= 1).
// It bounds scheduled-but-undelivered work; the concurrency limit itself only
// bounds executing work. Eager mode ignores this option.
func WithBufferMultiplier(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return errorc.With(ErrInvalidOption, errorc.String("", "WithBufferMultiplier requires n >= 1"))
		}
		cfg.bufferMultiplier = n
		return nil
	}
}

// WithMetrics installs a metrics provider. The default discards all measurements.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidOption, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.metrics = p
		return nil
	}
}

func buildConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
