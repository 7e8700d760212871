package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// MonitoringStats is the snapshot served by the status endpoint.
type MonitoringStats struct {
	StartedAt         time.Time `json:"startedAt"`
	UptimeSeconds     int64     `json:"uptimeSeconds"`
	Online            int       `json:"online"`
	OpenConnections   int64     `json:"openConnections"`
	MessagesSent      uint64    `json:"messagesSent"`
	MessagesPerSecond float64   `json:"messagesPerSecond"`
	RejectedSends     uint64    `json:"rejectedSends"`

	// --- PROCESS METRICS ---
	Pid        int32   `json:"pid"`
	PidStatus  string  `json:"pidStatus"`
	CpuPercent float64 `json:"cpuPercent"`
	RamBytes   uint64  `json:"ramBytes"`
	AllocMemMb uint64  `json:"allocMemMb"`
	NumGC      uint32  `json:"numGc"`
}

// MonitoringManager aggregates live counters and refreshes process metrics on a ticker.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	online      func() int
	process     *process.Process

	// Cumulative counters, updated atomically by the transports
	messagesSent    uint64
	rejectedSends   uint64
	openConnections int64
	sentAtLastCheck uint64
	lastCheck       time.Time
}

// NewMonitoringManager needs a way to read the current online count.
// Process metrics are skipped if the current process cannot be inspected.
func NewMonitoringManager(log *slog.Logger, online func() int) *MonitoringManager {
	now := time.Now()
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process metrics unavailable", "error", err)
		p = nil
	}
	return &MonitoringManager{
		log:       log,
		online:    online,
		process:   p,
		lastCheck: now,
		latestStats: MonitoringStats{
			StartedAt: now.UTC(),
			Pid:       int32(os.Getpid()),
		},
	}
}

func (mm *MonitoringManager) IncrMessagesSent() {
	atomic.AddUint64(&mm.messagesSent, 1)
}

func (mm *MonitoringManager) IncrRejectedSends() {
	atomic.AddUint64(&mm.rejectedSends, 1)
}

func (mm *MonitoringManager) ConnectionOpened() {
	atomic.AddInt64(&mm.openConnections, 1)
}

func (mm *MonitoringManager) ConnectionClosed() {
	atomic.AddInt64(&mm.openConnections, -1)
}

// Listen refreshes the snapshot every interval until ctx is done.
func (mm *MonitoringManager) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	mm.Refresh()
	for {
		select {
		case <-ctx.Done():
			mm.log.Info("Monitoring manager stopped")
			return
		case <-ticker.C:
			mm.Refresh()
		}
	}
}

// Refresh recomputes the snapshot from the counters and the process.
func (mm *MonitoringManager) Refresh() {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	sent := atomic.LoadUint64(&mm.messagesSent)
	if elapsed := now.Sub(mm.lastCheck).Seconds(); elapsed > 0 {
		mm.latestStats.MessagesPerSecond = float64(sent-mm.sentAtLastCheck) / elapsed
	}
	mm.sentAtLastCheck = sent
	mm.lastCheck = now

	mm.latestStats.UptimeSeconds = int64(now.Sub(mm.latestStats.StartedAt).Seconds())
	mm.latestStats.MessagesSent = sent
	mm.latestStats.RejectedSends = atomic.LoadUint64(&mm.rejectedSends)
	mm.latestStats.OpenConnections = atomic.LoadInt64(&mm.openConnections)
	if mm.online != nil {
		mm.latestStats.Online = mm.online()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC

	if mm.process != nil {
		rss, cpu, status, err := selfStats(mm.process)
		if err != nil {
			mm.log.Debug("Failed to collect self stats", "error", err)
		} else {
			mm.latestStats.RamBytes = rss
			mm.latestStats.CpuPercent = cpu
			mm.latestStats.PidStatus = status
		}
	}
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}

// selfStats retrieves memory, CPU and OS status for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
