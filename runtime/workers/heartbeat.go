package workers

import (
	"chat-live/observability"
	"context"
	"log/slog"
	"time"
)

// HeartbeatWorker periodically logs the server's health snapshot.
type HeartbeatWorker struct {
	log        *slog.Logger
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, monitoring *observability.MonitoringManager, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, monitoring: monitoring, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			stats := w.monitoring.GetLatest()
			w.log.Info("Heartbeat",
				"online", stats.Online,
				"open_connections", stats.OpenConnections,
				"messages_sent", stats.MessagesSent,
				"messages_per_second", stats.MessagesPerSecond,
				"ram_bytes", stats.RamBytes,
				"cpu_percent", stats.CpuPercent,
				"pid_status", stats.PidStatus)
		}
	}
}

// MonitoringWorker keeps the monitoring snapshot fresh.
type MonitoringWorker struct {
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewMonitoringWorker(monitoring *observability.MonitoringManager, interval time.Duration) *MonitoringWorker {
	return &MonitoringWorker{monitoring: monitoring, interval: interval}
}

func (w *MonitoringWorker) Run(ctx context.Context) error {
	w.monitoring.Listen(ctx, w.interval)
	return ctx.Err()
}
