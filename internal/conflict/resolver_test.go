package conflict

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"syncsweep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(original, conflict string, ts time.Time) model.ConflictRecord {
	return model.ConflictRecord{
		ConflictPath: conflict,
		OriginalPath: original,
		Timestamp:    ts,
	}
}

func TestResolveNewestWins(t *testing.T) {
	older := record("/x/report.txt", "/x/report.txt.sync-conflict-20240101-120000-ABC123",
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))
	newer := record("/x/report.txt", "/x/report.txt.sync-conflict-20240105-090000-XYZ789",
		time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local))

	resolver := NewResolver("")
	groups, plans := resolver.Resolve([]model.ConflictRecord{older, newer})

	require.Len(t, groups, 1)
	require.Len(t, plans, 2)
	assert.Equal(t, newer.ConflictPath, groups[0].Winner().ConflictPath)

	assert.Equal(t, model.DispositionKeep, plans[0].Disposition)
	assert.Equal(t, newer.ConflictPath, plans[0].Record.ConflictPath)
	assert.Equal(t, model.DispositionDelete, plans[1].Disposition)
	assert.Equal(t, older.ConflictPath, plans[1].Record.ConflictPath)
}

func TestResolveOrderIndependent(t *testing.T) {
	a := record("/x/f", "/x/a", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	b := record("/x/f", "/x/b", time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local))
	c := record("/x/f", "/x/c", time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local))

	resolver := NewResolver("")

	permutations := [][]model.ConflictRecord{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}

	for _, perm := range permutations {
		_, plans := resolver.Resolve(perm)

		dispositions := make(map[string]model.Disposition)
		for _, plan := range plans {
			dispositions[plan.Record.ConflictPath] = plan.Disposition
		}

		assert.Equal(t, model.DispositionKeep, dispositions["/x/c"])
		assert.Equal(t, model.DispositionDelete, dispositions["/x/a"])
		assert.Equal(t, model.DispositionDelete, dispositions["/x/b"])
	}
}

func TestResolveEqualTimestampsKeepDiscoveryOrder(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	first := record("/x/f", "/x/first", ts)
	second := record("/x/f", "/x/second", ts)

	resolver := NewResolver("")
	groups, _ := resolver.Resolve([]model.ConflictRecord{first, second})

	require.Len(t, groups, 1)
	assert.Equal(t, "/x/first", groups[0].Winner().ConflictPath)
}

func TestResolveBackupDispositionWhenConfigured(t *testing.T) {
	older := record("/x/f", "/x/old", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	newer := record("/x/f", "/x/new", time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local))

	resolver := NewResolver("/backup")
	_, plans := resolver.Resolve([]model.ConflictRecord{older, newer})

	require.Len(t, plans, 2)
	assert.Equal(t, model.DispositionKeep, plans[0].Disposition)
	assert.Equal(t, model.DispositionBackup, plans[1].Disposition)
}

func TestResolveGroupsByOriginalPath(t *testing.T) {
	r1 := record("/x/a.txt", "/x/a1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	r2 := record("/x/b.txt", "/x/b1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local))
	r3 := record("/x/a.txt", "/x/a2", time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local))

	resolver := NewResolver("")
	groups, plans := resolver.Resolve([]model.ConflictRecord{r1, r2, r3})

	require.Len(t, groups, 2)
	require.Len(t, plans, 3)

	// First-seen key order, not map order.
	assert.Equal(t, "/x/a.txt", groups[0].OriginalPath)
	assert.Equal(t, "/x/b.txt", groups[1].OriginalPath)
	assert.Len(t, groups[0].Members, 2)
	assert.Len(t, groups[1].Members, 1)

	// A lone record is still the winner of its own group.
	assert.Equal(t, "/x/b1", groups[1].Winner().ConflictPath)
}

func TestResolveOriginalModTime(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "here.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	recs := []model.ConflictRecord{
		record(existing, existing+".sync-conflict-20240101-120000-AAA111",
			time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)),
		record(filepath.Join(root, "gone.txt"), filepath.Join(root, "gone.txt.sync-conflict-20240101-120000-AAA111"),
			time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)),
	}

	resolver := NewResolver("")
	_, plans := resolver.Resolve(recs)

	require.Len(t, plans, 2)
	assert.NotNil(t, plans[0].OriginalModTime)
	assert.Nil(t, plans[1].OriginalModTime)
}
