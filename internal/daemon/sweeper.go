package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syncsweep/internal/config"
	"syncsweep/internal/conflict"
	"syncsweep/internal/logger"
	"syncsweep/internal/model"
	"syncsweep/internal/pipeline"
	"syncsweep/internal/repository"
	"syncsweep/internal/watcher"
	"time"

	"go.uber.org/zap"
)

// Sweeper watches a tree and runs a scan/resolve/apply cycle whenever a
// conflict-looking file shows up. Sweeps are serialized; a trigger arriving
// mid-sweep coalesces into at most one follow-up sweep.
type Sweeper struct {
	root string
	cfg  *config.Config

	scanner  *conflict.Scanner
	resolver *conflict.Resolver
	executor *conflict.Executor
	repo     *repository.ResolutionRepository
	watcher  *watcher.Watcher

	sweepCh chan struct{}
	doneCh  chan struct{}

	mu        sync.RWMutex
	startedAt time.Time
	sweeps    int64
	applied   int64
	skipped   int64
	failed    int64
	lastSweep *time.Time
}

type Snapshot struct {
	Root      string     `json:"root"`
	BackupDir string     `json:"backup_dir,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	Sweeps    int64      `json:"sweeps"`
	Applied   int64      `json:"applied"`
	Skipped   int64      `json:"skipped"`
	Failed    int64      `json:"failed"`
	LastSweep *time.Time `json:"last_sweep,omitempty"`
}

func NewSweeper(root string, cfg *config.Config) (*Sweeper, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Sweeper{
		root:     absRoot,
		cfg:      cfg,
		scanner:  conflict.NewScanner(cfg.IgnoreList, cfg.BackupDir),
		resolver: conflict.NewResolver(cfg.BackupDir),
		executor: conflict.NewExecutor(false, cfg.BackupDir),
		repo:     repository.NewResolutionRepository(),
		sweepCh:  make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}, nil
}

func (s *Sweeper) Start() error {
	w, err := watcher.New(s.cfg.BufferSize)
	if err != nil {
		return err
	}

	if err := w.Watch(s.root); err != nil {
		w.Stop()
		return err
	}

	s.watcher = w
	s.startedAt = time.Now()

	go s.watchLoop(w)
	go s.sweepLoop()

	// Pick up conflicts that predate the daemon.
	s.Trigger()

	logger.Log.Info("sweeper started",
		zap.String("root", s.root),
		zap.String("backup_dir", s.cfg.BackupDir))

	return nil
}

func (s *Sweeper) watchLoop(w *watcher.Watcher) {
	filtered := pipeline.Filter(w.Events(), s.cfg.IgnoreList)
	debounced := pipeline.Debounce(filtered, time.Duration(s.cfg.DebounceMs)*time.Millisecond)

	for event := range debounced {
		if event.Type == model.EventRemove {
			continue
		}

		if _, ok := conflict.ParseName(filepath.Base(event.Path)); !ok {
			continue
		}

		logger.Log.Debug("conflict file event",
			zap.String("path", event.Path),
			zap.String("type", string(event.Type)))

		s.Trigger()
	}
}

func (s *Sweeper) sweepLoop() {
	for {
		select {
		case <-s.doneCh:
			return
		case <-s.sweepCh:
			s.sweep()
		}
	}
}

// Trigger requests a sweep. Never blocks; a pending request is enough.
func (s *Sweeper) Trigger() {
	select {
	case s.sweepCh <- struct{}{}:
	default:
	}
}

func (s *Sweeper) sweep() {
	records, err := s.scanner.Scan(s.root)
	if err != nil {
		logger.Log.Error("sweep failed",
			zap.String("root", s.root),
			zap.Error(err))
		return
	}

	groups, plans := s.resolver.Resolve(records)
	results := s.executor.Apply(plans)

	var applied, skipped, failed int64
	for _, result := range results {
		if err := s.repo.Save(result); err != nil {
			logger.Log.Warn("failed to save history",
				zap.Error(err))
		}

		switch {
		case result.Err != nil:
			failed++
		case result.Skipped:
			skipped++
		default:
			applied++
		}
	}

	now := time.Now()

	s.mu.Lock()
	s.sweeps++
	s.applied += applied
	s.skipped += skipped
	s.failed += failed
	s.lastSweep = &now
	s.mu.Unlock()

	if len(plans) > 0 {
		logger.Log.Info("sweep finished",
			zap.Int("groups", len(groups)),
			zap.Int64("applied", applied),
			zap.Int64("skipped", skipped),
			zap.Int64("failed", failed))
	}
}

func (s *Sweeper) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Root:      s.root,
		BackupDir: s.cfg.BackupDir,
		StartedAt: s.startedAt,
		Sweeps:    s.sweeps,
		Applied:   s.applied,
		Skipped:   s.skipped,
		Failed:    s.failed,
		LastSweep: s.lastSweep,
	}
}

func (s *Sweeper) Stop() {
	close(s.doneCh)
	if s.watcher != nil {
		s.watcher.Stop()
	}
}
