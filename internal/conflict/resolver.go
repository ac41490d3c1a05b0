package conflict

import (
	"os"
	"sort"
	"syncsweep/internal/logger"
	"syncsweep/internal/model"
	"time"

	"go.uber.org/zap"
)

type Resolver struct {
	backupDir string
}

// NewResolver returns a resolver that marks losing records for backup when
// backupDir is non-empty, otherwise for deletion.
func NewResolver(backupDir string) *Resolver {
	return &Resolver{backupDir: backupDir}
}

// Resolve partitions records by original path and assigns a disposition to
// every record exactly once. Groups keep first-seen order and members are
// sorted newest first with discovery order breaking ties, so repeated runs
// over the same records always produce the same plan.
func (r *Resolver) Resolve(records []model.ConflictRecord) ([]model.ConflictGroup, []model.ActionPlan) {
	byOriginal := make(map[string][]model.ConflictRecord)
	var order []string

	for _, rec := range records {
		if _, seen := byOriginal[rec.OriginalPath]; !seen {
			order = append(order, rec.OriginalPath)
		}
		byOriginal[rec.OriginalPath] = append(byOriginal[rec.OriginalPath], rec)
	}

	loser := model.DispositionDelete
	if r.backupDir != "" {
		loser = model.DispositionBackup
	}

	groups := make([]model.ConflictGroup, 0, len(order))
	plans := make([]model.ActionPlan, 0, len(records))

	for _, original := range order {
		members := byOriginal[original]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Timestamp.After(members[j].Timestamp)
		})

		// Informational only: shown in the report, never used for ranking.
		modTime := originalModTime(original)

		for i, rec := range members {
			disposition := model.DispositionKeep
			if i > 0 {
				disposition = loser
			}
			plans = append(plans, model.ActionPlan{
				Record:          rec,
				Disposition:     disposition,
				OriginalModTime: modTime,
			})
		}

		groups = append(groups, model.ConflictGroup{
			OriginalPath: original,
			Members:      members,
		})

		logger.Log.Debug("conflict group resolved",
			zap.String("original", original),
			zap.Int("members", len(members)),
			zap.Time("winner", members[0].Timestamp))
	}

	return groups, plans
}

func originalModTime(path string) *time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	t := info.ModTime()
	return &t
}
