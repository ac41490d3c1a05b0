package conflict

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"syncsweep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listTree(t *testing.T, root string) []string {
	t.Helper()

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func runCycle(t *testing.T, root string, dryRun bool, backupDir string) []model.ActionResult {
	t.Helper()

	records, err := NewScanner(nil, backupDir).Scan(root)
	require.NoError(t, err)

	_, plans := NewResolver(backupDir).Resolve(records)
	return NewExecutor(dryRun, backupDir).Apply(plans)
}

func TestApplyKeepAndDelete(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.txt"), "original")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240101-120000-ABC123"), "older")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240105-090000-XYZ789"), "newest")

	results := runCycle(t, root, false, "")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.False(t, r.Skipped)
	}

	// The winner overwrote the original; the loser is gone.
	content, err := os.ReadFile(filepath.Join(root, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "newest", string(content))
	assert.Equal(t, []string{"report.txt"}, listTree(t, root))
}

func TestApplyBackupKeepsMarkerName(t *testing.T) {
	root := t.TempDir()
	backup := filepath.Join(root, "archive")
	writeFile(t, filepath.Join(root, "report.txt"), "original")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240101-120000-ABC123"), "older")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240105-090000-XYZ789"), "newest")

	results := runCycle(t, root, false, backup)
	for _, r := range results {
		require.NoError(t, r.Err)
	}

	content, err := os.ReadFile(filepath.Join(root, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "newest", string(content))

	// Loser moved, not deleted, under its full conflict-marker name.
	archived, err := os.ReadFile(filepath.Join(backup, "report.txt.sync-conflict-20240101-120000-ABC123"))
	require.NoError(t, err)
	assert.Equal(t, "older", string(archived))
}

func TestApplyDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.txt"), "original")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240101-120000-ABC123"), "older")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240105-090000-XYZ789"), "newest")

	before := listTree(t, root)

	results := runCycle(t, root, true, "")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.False(t, r.Skipped)
	}

	assert.Equal(t, before, listTree(t, root))

	content, err := os.ReadFile(filepath.Join(root, "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestApplyVanishedFileSkipped(t *testing.T) {
	root := t.TempDir()

	plan := model.ActionPlan{
		Record: model.ConflictRecord{
			ConflictPath: filepath.Join(root, "gone.txt.sync-conflict-20240101-120000-ABC123"),
			OriginalPath: filepath.Join(root, "gone.txt"),
			Timestamp:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local),
		},
		Disposition: model.DispositionKeep,
	}

	results := NewExecutor(false, "").Apply([]model.ActionPlan{plan})
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].Skipped)
}

func TestApplyPromotesWithoutExistingOriginal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "solo.txt.sync-conflict-20240101-120000-ABC123"), "content")

	results := runCycle(t, root, false, "")
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	content, err := os.ReadFile(filepath.Join(root, "solo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestSecondRunWithBackupInsideRootIsIdempotent(t *testing.T) {
	root := t.TempDir()
	backup := filepath.Join(root, "archive")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240101-120000-ABC123"), "older")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240105-090000-XYZ789"), "newest")

	runCycle(t, root, false, backup)

	// The archived loser must not resurface as a fresh conflict.
	records, err := NewScanner(nil, backup).Scan(root)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSecondRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "report.txt"), "original")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240101-120000-ABC123"), "older")
	writeFile(t, filepath.Join(root, "report.txt.sync-conflict-20240105-090000-XYZ789"), "newest")

	runCycle(t, root, false, "")

	records, err := NewScanner(nil).Scan(root)
	require.NoError(t, err)
	assert.Empty(t, records)

	results := runCycle(t, root, false, "")
	assert.Empty(t, results)
}
