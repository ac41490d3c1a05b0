package model

import "time"

type Disposition string

const (
	DispositionKeep   Disposition = "KEEP"
	DispositionDelete Disposition = "DELETE"
	DispositionBackup Disposition = "BACKUP"
)

// ConflictRecord is a single sync-conflict file found on disk. Timestamp is
// the instant embedded in the filename, never filesystem metadata.
type ConflictRecord struct {
	ConflictPath string
	OriginalPath string
	Timestamp    time.Time
}

// ConflictGroup holds every record competing for the same original path,
// ordered newest first.
type ConflictGroup struct {
	OriginalPath string
	Members      []ConflictRecord
}

// Winner is the member promoted onto the original path.
func (g ConflictGroup) Winner() ConflictRecord {
	return g.Members[0]
}

// ActionPlan pairs a record with its resolved fate. OriginalModTime is the
// original file's mtime at scan time, nil when the original does not exist.
// It is informational only and plays no part in ranking.
type ActionPlan struct {
	Record          ConflictRecord
	Disposition     Disposition
	OriginalModTime *time.Time
}

type ActionResult struct {
	Plan    ActionPlan
	Skipped bool // conflict file vanished between scan and execution
	Err     error
}
