// Package worker holds the background jobs started with the server.
package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/utility"
)

// UploadSweeper removes upload temp files left behind by interrupted requests.
// Requests clean up their own files; this only catches crashes and aborted connections.
type UploadSweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewUploadSweeper returns a sweeper for dir. Files older than maxAge are removed every interval.
func NewUploadSweeper(dir string, maxAge, interval time.Duration) *UploadSweeper {
	if maxAge < time.Minute {
		maxAge = time.Hour
	}
	if interval < time.Minute {
		interval = 10 * time.Minute
	}
	return &UploadSweeper{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
	}
}

// Start sweeps every interval until ctx is cancelled.
func (w *UploadSweeper) Start(ctx context.Context) {
	log := logger.WithModule("upload_sweeper")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"dir":      w.dir,
		"interval": w.interval.String(),
		"maxAge":   w.maxAge.String(),
	}).Info("Upload sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Upload sweeper stopped")
			return
		case <-ticker.C:
			utility.GoProtect(func() {
				removed, freed, err := w.SweepOnce()
				if err != nil {
					log.WithError(err).Error("Failed to sweep upload dir")
					return
				}
				if removed > 0 {
					log.WithField("removed", removed).Infof("Removed stale uploads (%s)", utility.FormatBytes(freed))
				}
			})
		}
	}
}

// SweepOnce removes the regular files of dir older than maxAge. A missing dir is not an error.
func (w *UploadSweeper) SweepOnce() (removed int, freed uint64, err error) {
	entries, err := os.ReadDir(w.dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	cutoff := w.now().Add(-w.maxAge)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, entry.Name())); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.WithModule("upload_sweeper").WithError(err).WithField("file", entry.Name()).Warn("Failed to remove stale upload")
			}
			continue
		}
		removed++
		freed += uint64(info.Size())
	}
	return removed, freed, nil
}
