package server

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Janitor removes processed files once they outlive the retention window.
// Retention is the caller's concern, not the core's, so it lives here as an
// explicit scheduled task keyed by file age.
type Janitor struct {
	dir      string
	ttl      time.Duration
	interval time.Duration
	log      *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewJanitor builds a janitor for dir with the given time-to-live. The
// sweep interval is a quarter of the TTL, at least one minute.
func NewJanitor(dir string, ttl time.Duration, log *zap.Logger) *Janitor {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Janitor{
		dir:      dir,
		ttl:      ttl,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop in the background until Stop is called.
func (j *Janitor) Start() {
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := j.sweep(); removed > 0 {
					j.log.Info("janitor removed expired files",
						zap.String("dir", j.dir),
						zap.Int("removed", removed))
				}
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop ends the sweep loop and waits for it to exit.
func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}

// sweep removes regular files older than the TTL and reports how many went.
func (j *Janitor) sweep() int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.log.Warn("janitor cannot read directory", zap.String("dir", j.dir), zap.Error(err))
		return 0
	}

	cutoff := time.Now().Add(-j.ttl)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.log.Warn("janitor cannot remove file", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	return removed
}
