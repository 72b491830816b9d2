package ccvi

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    encodeCounter   prometheus.Counter
//	    decodeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEncode(planes, vectors int, duration time.Duration, err error) {
//	    p.encodeCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordEncode is called after each raster-to-document encode.
	// planes and vectors describe the produced document; err is nil on success.
	RecordEncode(planes, vectors int, duration time.Duration, err error)

	// RecordDecode is called after each document-to-raster decode.
	RecordDecode(duration time.Duration, err error)

	// RecordMarshal is called after each document serialization.
	// bytes is the serialized size (0 on failure).
	RecordMarshal(bytes int, duration time.Duration, err error)

	// RecordUnmarshal is called after each document deserialization.
	RecordUnmarshal(bytes int, duration time.Duration, err error)

	// RecordSave is called after each document write to storage.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each document read from storage.
	RecordLoad(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDecode(time.Duration, error)           {}
func (NoopMetricsCollector) RecordMarshal(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordUnmarshal(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeTotalNanos atomic.Int64
	EncodedPlanes    atomic.Int64
	EncodedVectors   atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeTotalNanos atomic.Int64
	MarshalCount     atomic.Int64
	MarshalErrors    atomic.Int64
	MarshalBytes     atomic.Int64
	UnmarshalCount   atomic.Int64
	UnmarshalErrors  atomic.Int64
	UnmarshalBytes   atomic.Int64
	SaveCount        atomic.Int64
	SaveErrors       atomic.Int64
	SaveBytes        atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadBytes        atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(planes, vectors int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
		return
	}
	b.EncodedPlanes.Add(int64(planes))
	b.EncodedVectors.Add(int64(vectors))
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// RecordMarshal implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMarshal(bytes int, duration time.Duration, err error) {
	b.MarshalCount.Add(1)
	b.MarshalBytes.Add(int64(bytes))
	if err != nil {
		b.MarshalErrors.Add(1)
	}
}

// RecordUnmarshal implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnmarshal(bytes int, duration time.Duration, err error) {
	b.UnmarshalCount.Add(1)
	b.UnmarshalBytes.Add(int64(bytes))
	if err != nil {
		b.UnmarshalErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveBytes.Add(int64(bytes))
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadBytes.Add(int64(bytes))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:     b.EncodeCount.Load(),
		EncodeErrors:    b.EncodeErrors.Load(),
		EncodeAvgNanos:  b.getAvgEncodeNanos(),
		EncodedPlanes:   b.EncodedPlanes.Load(),
		EncodedVectors:  b.EncodedVectors.Load(),
		DecodeCount:     b.DecodeCount.Load(),
		DecodeErrors:    b.DecodeErrors.Load(),
		DecodeAvgNanos:  b.getAvgDecodeNanos(),
		MarshalCount:    b.MarshalCount.Load(),
		MarshalErrors:   b.MarshalErrors.Load(),
		MarshalBytes:    b.MarshalBytes.Load(),
		UnmarshalCount:  b.UnmarshalCount.Load(),
		UnmarshalErrors: b.UnmarshalErrors.Load(),
		UnmarshalBytes:  b.UnmarshalBytes.Load(),
		SaveCount:       b.SaveCount.Load(),
		SaveErrors:      b.SaveErrors.Load(),
		SaveBytes:       b.SaveBytes.Load(),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEncodeNanos() int64 {
	count := b.EncodeCount.Load()
	if count == 0 {
		return 0
	}
	return b.EncodeTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgDecodeNanos() int64 {
	count := b.DecodeCount.Load()
	if count == 0 {
		return 0
	}
	return b.DecodeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount     int64
	EncodeErrors    int64
	EncodeAvgNanos  int64
	EncodedPlanes   int64
	EncodedVectors  int64
	DecodeCount     int64
	DecodeErrors    int64
	DecodeAvgNanos  int64
	MarshalCount    int64
	MarshalErrors   int64
	MarshalBytes    int64
	UnmarshalCount  int64
	UnmarshalErrors int64
	UnmarshalBytes  int64
	SaveCount       int64
	SaveErrors      int64
	SaveBytes       int64
	LoadCount       int64
	LoadErrors      int64
	LoadBytes       int64
}
