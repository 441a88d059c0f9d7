package fftw

import (
	"log/slog"

	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/plan"
)

// BuildConfig holds the builder settings an Option can change.
type BuildConfig struct {
	Backend     plan.Backend
	BackendName string
	Allocator   aligned.Allocator
	Logger      *slog.Logger
}

// Option mutates a BuildConfig.
type Option func(*BuildConfig)

// WithBackend builds plans on b instead of the registry default.
func WithBackend(b plan.Backend) Option {
	return func(cfg *BuildConfig) {
		if b != nil {
			cfg.Backend = b
			cfg.BackendName = ""
		}
	}
}

// WithBackendName looks the backend up in plan.Global. An unknown name makes
// the builder fail with ErrUnknownBackend.
func WithBackendName(name string) Option {
	return func(cfg *BuildConfig) {
		cfg.BackendName = name
		cfg.Backend = nil
	}
}

// WithAllocator overrides the backend allocator for both buffers.
func WithAllocator(a aligned.Allocator) Option {
	return func(cfg *BuildConfig) {
		if a != nil {
			cfg.Allocator = a
		}
	}
}

// WithLogger sets the logger used for plan construction events.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *BuildConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies opts to an empty config. Unset fields are resolved by
// the builder: the registry default backend, its allocator and slog.Default.
func ApplyOptions(opts ...Option) BuildConfig {
	var cfg BuildConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// resolve fills in defaults and looks up a named backend.
func (cfg BuildConfig) resolve() (BuildConfig, error) {
	switch {
	case cfg.Backend != nil:
	case cfg.BackendName != "":
		b, ok := plan.Global.Lookup(cfg.BackendName)
		if !ok {
			return cfg, ErrUnknownBackend
		}
		cfg.Backend = b
	default:
		cfg.Backend = plan.Global.Default()
		if cfg.Backend == nil {
			return cfg, ErrUnknownBackend
		}
	}

	if cfg.Allocator == nil {
		cfg.Allocator = cfg.Backend.Allocator()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg, nil
}
