package conflict

import (
	"fmt"
	"os"
	"path/filepath"
	"syncsweep/internal/logger"
	"syncsweep/internal/model"
	"syncsweep/internal/util"

	"go.uber.org/zap"
)

type Executor struct {
	dryRun    bool
	backupDir string
}

func NewExecutor(dryRun bool, backupDir string) *Executor {
	return &Executor{dryRun: dryRun, backupDir: backupDir}
}

// Apply carries out every plan in order and returns one result per plan.
// KEEP renames the conflict file onto the original path, permanently
// discarding whatever was there; there is no undo. A conflict file that
// vanished since the scan is skipped without error, and a failed action does
// not stop the rest of the batch. In dry-run mode nothing is touched.
func (e *Executor) Apply(plans []model.ActionPlan) []model.ActionResult {
	results := make([]model.ActionResult, 0, len(plans))
	for _, plan := range plans {
		results = append(results, e.apply(plan))
	}
	return results
}

func (e *Executor) apply(plan model.ActionPlan) model.ActionResult {
	result := model.ActionResult{Plan: plan}

	if e.dryRun {
		return result
	}

	if _, err := os.Stat(plan.Record.ConflictPath); err != nil {
		if os.IsNotExist(err) {
			// Another process got there first.
			logger.Log.Debug("conflict file vanished, skipping",
				zap.String("path", plan.Record.ConflictPath))
			result.Skipped = true
			return result
		}
		result.Err = fmt.Errorf("failed to stat %s: %w", plan.Record.ConflictPath, err)
		return result
	}

	switch plan.Disposition {
	case model.DispositionKeep:
		result.Err = util.MoveFile(plan.Record.ConflictPath, plan.Record.OriginalPath)

	case model.DispositionDelete:
		result.Err = util.RemoveIfExists(plan.Record.ConflictPath)

	case model.DispositionBackup:
		result.Err = e.backup(plan.Record)

	default:
		result.Err = fmt.Errorf("unknown disposition: %s", plan.Disposition)
	}

	if result.Err != nil {
		logger.Log.Error("action failed",
			zap.String("disposition", string(plan.Disposition)),
			zap.String("path", plan.Record.ConflictPath),
			zap.Error(result.Err))
	} else {
		logger.Log.Info("action applied",
			zap.String("disposition", string(plan.Disposition)),
			zap.String("conflict", plan.Record.ConflictPath),
			zap.String("original", plan.Record.OriginalPath))
	}

	return result
}

// backup moves the conflict file into the backup directory under its full
// conflict-marker name. Keeping the marker name avoids collisions when
// losers from different groups land in the same directory.
func (e *Executor) backup(rec model.ConflictRecord) error {
	if err := os.MkdirAll(e.backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup dir %s: %w", e.backupDir, err)
	}

	dst := filepath.Join(e.backupDir, filepath.Base(rec.ConflictPath))
	return util.MoveFile(rec.ConflictPath, dst)
}
