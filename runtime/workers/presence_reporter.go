package workers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Presence is a point-in-time view of the server load.
type Presence struct {
	Rooms             int       `json:"rooms"`
	PlayerConnections int       `json:"player_connections"`
	AdminConnections  int       `json:"admin_connections"`
	PendingWrites     int       `json:"pending_writes"`
	RSS               uint64    `json:"rss"`
	CPUPercent        float64   `json:"cpu_percent"`
	At                time.Time `json:"at"`
}

// PresenceSource reports room and connection counts.
type PresenceSource interface {
	Stats() (rooms, connections int)
}

type AdminCounter interface {
	Count() int
}

// PendingCounter reports buffered writes not yet persisted.
type PendingCounter interface {
	Len() int
}

// PresenceReporter samples occupancy and process usage on every tick,
// logs it and keeps the last sample for the health endpoint.
type PresenceReporter struct {
	mu       sync.RWMutex
	log      *slog.Logger
	players  PresenceSource
	admins   AdminCounter
	pending  PendingCounter
	interval time.Duration
	latest   Presence
	proc     *process.Process
}

func NewPresenceReporter(
	log *slog.Logger,
	players PresenceSource,
	admins AdminCounter,
	pending PendingCounter,
	interval time.Duration,
) *PresenceReporter {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debug("Process stats unavailable", "pid", os.Getpid(), "error", err)
	}
	return &PresenceReporter{
		log:      log,
		players:  players,
		admins:   admins,
		pending:  pending,
		interval: interval,
		proc:     proc,
	}
}

// Run samples right away, then logs a fresh sample on every tick.
func (w *PresenceReporter) Run(ctx context.Context) error {
	w.Sample()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping presence report")
			return nil
		case <-ticker.C:
			p := w.Sample()
			w.log.Info("Presence",
				"rooms", p.Rooms,
				"player_connections", p.PlayerConnections,
				"admin_connections", p.AdminConnections,
				"pending_writes", p.PendingWrites,
				"rss", p.RSS,
				"cpu_percent", p.CPUPercent)
		}
	}
}

// Sample takes a fresh reading and stores it as the latest.
func (w *PresenceReporter) Sample() Presence {
	p := Presence{At: time.Now().UTC()}
	p.Rooms, p.PlayerConnections = w.players.Stats()
	p.AdminConnections = w.admins.Count()
	p.PendingWrites = w.pending.Len()
	if w.proc != nil {
		if mem, err := w.proc.MemoryInfo(); err == nil {
			p.RSS = mem.RSS
		} else {
			w.log.Debug("Error while finding process ram usage", "err", err)
		}
		if cpu, err := w.proc.CPUPercent(); err == nil {
			p.CPUPercent = cpu
		} else {
			w.log.Debug("Error while finding process cpu usage", "err", err)
		}
	}

	w.mu.Lock()
	w.latest = p
	w.mu.Unlock()
	return p
}

// Latest returns the last sample, the zero value before the first one.
func (w *PresenceReporter) Latest() Presence {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}
