// Package somos implements generalized Somos sequence evaluation.
// This file contains concrete observer implementations for progress
// reporting during scans.
package somos

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressObserver receives normalized progress updates for a running scan.
// Implementations must tolerate concurrent calls when scans run in parallel.
type ProgressObserver interface {
	// Update reports progress for the given sequence order.
	//
	// Parameters:
	//   - order: The sequence order being scanned.
	//   - progress: The normalized progress value (0.0 to 1.0).
	Update(order int, progress float64)
}

// ProgressUpdate is the message emitted by a ChannelObserver.
type ProgressUpdate struct {
	// OrderIndex is the zero-based position of the order within the scan
	// range (order minus the range's first order).
	OrderIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ChannelObserver adapts the observer interface to channel-based
// communication, the form the CLI progress display consumes.
type ChannelObserver struct {
	channel   chan<- ProgressUpdate
	baseOrder int
}

// NewChannelObserver creates an observer that sends updates to a channel.
// The channel should have sufficient buffer capacity; when it is full,
// updates are dropped rather than blocking the scan loop.
//
// Parameters:
//   - ch: The channel to send progress updates to. If nil, updates are discarded.
//   - baseOrder: The first order of the scan range, used to derive OrderIndex.
//
// Returns:
//   - *ChannelObserver: A new observer that forwards to the channel.
func NewChannelObserver(ch chan<- ProgressUpdate, baseOrder int) *ChannelObserver {
	return &ChannelObserver{channel: ch, baseOrder: baseOrder}
}

// Update implements ProgressObserver by sending to the channel.
func (o *ChannelObserver) Update(order int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}

	update := ProgressUpdate{OrderIndex: order - o.baseOrder, Value: progress}

	// Non-blocking send: the UI catches up on the next update.
	select {
	case o.channel <- update:
	default:
	}
}

// LoggingObserver logs progress updates using zerolog, throttled so that a
// 65536-step scan does not flood the log.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates an observer that logs progress. It only logs
// when an order's progress advances by at least threshold (default 0.1).
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver by logging significant progress changes.
func (o *LoggingObserver) Update(order int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last := o.lastLog[order]
	shouldLog := progress >= 1.0 ||
		(last == 0 && progress > 0) ||
		progress-last >= o.threshold

	if shouldLog {
		o.logger.Debug().
			Int("order", order).
			Float64("progress", progress).
			Msg("scan progress")
		o.lastLog[order] = progress
	}
}

var (
	// scanProgressGauge tracks per-order scan progress. Registered once
	// globally to avoid duplicate registration errors.
	scanProgressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "somoscan_scan_progress",
			Help: "Current progress of sequence scans per order (0.0 to 1.0)",
		},
		[]string{"order"},
	)
)

// MetricsObserver exports scan progress to Prometheus.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: scanProgressGauge}
}

// Update implements ProgressObserver by updating the Prometheus gauge.
func (o *MetricsObserver) Update(order int, progress float64) {
	o.gauge.WithLabelValues(strconv.Itoa(order)).Set(progress)
}

// ResetMetrics clears the per-order progress series. Call it at the start
// of a new scan batch.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}

// NoOpObserver discards all progress updates. Used when progress tracking
// is not needed, so the scan loop never has to nil-check its observer.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(order int, progress float64) {}

// MultiObserver fans updates out to several observers, letting a scan feed
// the UI channel and the metrics gauge at the same time.
type MultiObserver struct {
	observers []ProgressObserver
}

// NewMultiObserver creates an observer that forwards to each of obs in order.
func NewMultiObserver(obs ...ProgressObserver) *MultiObserver {
	return &MultiObserver{observers: obs}
}

// Update implements ProgressObserver by forwarding to every child observer.
func (o *MultiObserver) Update(order int, progress float64) {
	for _, child := range o.observers {
		child.Update(order, progress)
	}
}
