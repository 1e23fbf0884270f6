package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/witgen/config"
	"github.com/teranos/witgen/discover"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
)

// DefaultDebounce is the quiet period after the last change before a run
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one full generation
type RunFunc func(ctx context.Context) error

// Watcher re-runs generation when project sources change. Runs never
// overlap: they execute one after another on the goroutine calling Watch.
type Watcher struct {
	cfg     *config.Config
	run     RunFunc
	watcher *fsnotify.Watcher
	log     *zap.SugaredLogger

	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	pending        chan struct{}
}

// NewWatcher creates a watcher over the root and project source directories of cfg
func NewWatcher(cfg *config.Config, run RunFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		cfg:            cfg,
		run:            run,
		watcher:        fw,
		log:            logger.ComponentLogger("witgen.watch"),
		debouncePeriod: DefaultDebounce,
		pending:        make(chan struct{}, 1),
	}, nil
}

// Watch blocks until ctx is cancelled, running generation after every burst
// of relevant changes. Run failures are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.stopTimer()

	if err := w.addDirectories(); err != nil {
		return err
	}
	w.log.Infow("Watching for changes", logger.FieldPath, w.cfg.Root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Detected change", logger.FieldFile, event.Name, logger.FieldOp, event.Op.String())
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)

		case <-w.pending:
			w.log.Infow("Regenerating")
			if err := w.run(ctx); err != nil {
				w.log.Errorw("Generation failed", logger.FieldError, err.Error())
			}
			// New projects may have appeared
			if err := w.addDirectories(); err != nil {
				w.log.Warnw("Failed to refresh watched directories", logger.FieldError, err)
			}
		}
	}
}

// Close releases the underlying fsnotify watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// addDirectories watches the root and the source directory of every project.
// Adding an already watched path is a no-op.
func (w *Watcher) addDirectories() error {
	if err := w.watcher.Add(w.cfg.Root); err != nil {
		return errors.Wrapf(err, "failed to watch %s", w.cfg.Root)
	}

	projects, err := discover.Projects(w.cfg.Root, discover.Options{
		ManifestFile: w.cfg.Manifest.File,
		Marker:       w.cfg.Manifest.Marker,
	})
	if err != nil {
		return err
	}

	for _, p := range projects {
		for _, dir := range []string{p.Path, w.cfg.SourcePath(p.Path)} {
			if err := w.watcher.Add(dir); err != nil {
				w.log.Warnw("Failed to watch directory", logger.FieldPath, dir, logger.FieldError, err)
			}
		}
	}
	return nil
}

// relevant reports whether event can change the generated output
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	// Our own output
	if isWithin(w.cfg.APIPath(), event.Name) {
		return false
	}

	base := filepath.Base(event.Name)
	switch {
	case strings.HasSuffix(base, "_test.go"):
		return false
	case strings.HasSuffix(base, ".go"):
		return true
	case base == w.cfg.Manifest.File || base == config.FileName:
		return true
	}

	// A new directory may be a new project
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// schedule debounces rapid changes into one pending run
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		select {
		case w.pending <- struct{}{}:
		default:
			// A run is already pending
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

func isWithin(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
