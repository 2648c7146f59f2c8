package clock

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/retrotone/lcd-alarm-clock/internal/logger"
)

var (
	// metricCycles counts control-loop cycles.
	metricCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alarm_clock_cycles_total",
		Help: "count of control loop cycles executed",
	})

	// metricTransitions counts state transitions by trigger.
	metricTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alarm_clock_transitions_total",
		Help: "count of state machine transitions by trigger",
	}, []string{"trigger"})

	// metricMissedDeadlines counts cycles whose state action alone
	// overran the cycle deadline, leaving no time to poll the keypad.
	metricMissedDeadlines = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alarm_clock_missed_deadlines_total",
		Help: "count of cycles whose action overran the cycle period",
	})

	// metricRTCReadFailures counts cycles that kept a stale snapshot.
	metricRTCReadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alarm_clock_rtc_read_failures_total",
		Help: "count of RTC reads that failed and kept the previous snapshot",
	})
)

// metricsShutdownTimeout bounds the drain on shutdown.
const metricsShutdownTimeout = time.Second

// serveMetrics exposes the Prometheus endpoint until the context is
// canceled. It blocks; the caller runs it in a goroutine.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	// net/http reports scrape failures through ErrorLog; route them to
	// zap at warn level regardless of the configured global level.
	zapHTTP := logger.Logger().Desugar().
		Named("metrics-http").
		WithOptions(logger.WithLevel(zapcore.WarnLevel))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if httpLog, err := zap.NewStdLogAt(zapHTTP, zapcore.WarnLevel); err == nil {
		server.ErrorLog = httpLog
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	logger.InfoKV(ctx, "Metrics server listening", "address", addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorKV(ctx, "Metrics server failed", "error", err)
	}
}
