package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_Refresh_Reads_Counters(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(slog.Default(), func() int { return 2 })

	// Given some traffic
	mm.IncrMessagesSent()
	mm.IncrMessagesSent()
	mm.IncrRejectedSends()
	mm.ConnectionOpened()
	mm.ConnectionOpened()
	mm.ConnectionClosed()

	// When the snapshot is refreshed
	mm.Refresh()
	stats := mm.GetLatest()

	// Then it reflects the counters
	req.Equal(uint64(2), stats.MessagesSent)
	req.Equal(uint64(1), stats.RejectedSends)
	req.Equal(int64(1), stats.OpenConnections)
	req.Equal(2, stats.Online)
	req.NotZero(stats.Pid)
}
