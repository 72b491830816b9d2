package ccvi

import (
	"log/slog"

	"github.com/hupe1980/ccvi/codec"
	"github.com/hupe1980/ccvi/container"
)

type options struct {
	codec            codec.Codec
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
	container        bool
	compression      container.CompressionType
}

// Option configures Converter behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. codec-specific constructor variants).
type Option func(*options)

// WithCodec configures the codec used to render and parse documents.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithWorkers configures per-plane sampling concurrency.
//
// Encoding stays deterministic regardless of the worker count: planes are
// sampled into fixed slots so the output order never changes. The default
// of 1 keeps the encoder strictly single-threaded; higher values help on
// images with many distinct colors.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithContainer makes SaveDocument write the framed container form with
// the given compression instead of plain document text. Loading sniffs
// the file header, so both forms are always readable.
func WithContainer(c container.CompressionType) Option {
	return func(o *options) {
		o.container = true
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ccvi.BasicMetricsCollector{}
//	conv := ccvi.New(ccvi.WithMetricsCollector(metrics))
//	// ... use conv ...
//	stats := metrics.GetStats()
//	fmt.Printf("Encodes: %d, Avg latency: %dns\n", stats.EncodeCount, stats.EncodeAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ccvi.NewJSONLogger(slog.LevelInfo)
//	conv := ccvi.New(ccvi.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            nil,
		workers:          1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      container.CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
