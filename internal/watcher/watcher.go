// Package watcher monitors a directory for new or changed image files and
// runs each one through a configured preset, writing the optimized output
// to a destination directory. Event storms (editors and sync clients fire
// many writes per file) are throttled by a token-bucket limiter.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"pixelmill/internal/config"
	"pixelmill/pkg/logger"
	"pixelmill/pkg/variants"
)

// Watcher ties an fsnotify watch to the variant service.
type Watcher struct {
	cfg     config.WatchConfig
	svc     *variants.Service
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
}

// New creates a watcher for cfg.Dir. The service must know cfg.Preset.
func New(cfg config.WatchConfig, svc *variants.Service) (*Watcher, error) {
	if _, ok := svc.Options(cfg.Preset); !ok {
		return nil, fmt.Errorf("watch: unknown preset %q", cfg.Preset)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	eps := cfg.EventsPerSecond
	if eps <= 0 {
		eps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 4
	}

	return &Watcher{
		cfg:     cfg,
		svc:     svc,
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Limit(eps), burst),
	}, nil
}

// Start blocks, processing events until ctx is cancelled. Per-file
// failures are logged and watching continues.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.cfg.Out, 0755); err != nil {
		return fmt.Errorf("watch: create output dir %q: %w", w.cfg.Out, err)
	}
	if err := w.fsw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch: add %q: %w", w.cfg.Dir, err)
	}

	logger.LogWatchStart(w.cfg.Dir, w.cfg.Out, w.cfg.Preset)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isImagePath(event.Name) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.process(ctx, event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.LogError("watch: %v", err)
		}
	}
}

// Close releases the underlying filesystem watch.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) process(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.LogWarn("watch: read %s: %v", path, err)
		return
	}

	out, err := w.svc.Process(ctx, data, w.cfg.Preset)
	if err != nil {
		logger.LogWarn("watch: %s: %v", filepath.Base(path), err)
		return
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dst := filepath.Join(w.cfg.Out, base+out.Format.Ext())
	if err := os.WriteFile(dst, out.Data, 0644); err != nil {
		logger.LogError("watch: write %s: %v", dst, err)
		return
	}

	logger.LogSuccess("watch: %s -> %s (%dx%d, %s)",
		filepath.Base(path), filepath.Base(dst), out.Width, out.Height,
		out.Format)
}

// isImagePath filters events down to extensions the loader can decode.
func isImagePath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}
