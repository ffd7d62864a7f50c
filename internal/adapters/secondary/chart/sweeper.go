package chart

import (
	"context"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Sweeper deletes charts older than a retention period. Without it chart files
// accumulate for the lifetime of the chart directory.
type Sweeper struct {
	fs     afero.Fs
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

func NewSweeper(fs afero.Fs, dir string, maxAge time.Duration) *Sweeper {
	return &Sweeper{fs: fs, dir: dir, maxAge: maxAge, now: time.Now}
}

// Sweep removes expired charts and returns how many were deleted.
func (s *Sweeper) Sweep() (int, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !IsChartFile(e.Name()) || !e.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Warn("failed to remove expired chart")
			continue
		}
		removed++
	}
	return removed, nil
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep()
			if err != nil {
				log.WithError(err).Error("chart sweep failed")
				continue
			}
			if n > 0 {
				log.WithFields(log.Fields{"removed": n, "max_age": s.maxAge}).Info("expired charts removed")
			}
		}
	}
}
