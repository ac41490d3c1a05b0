package conflict

import (
	"path/filepath"
	"regexp"
	"time"
)

// Syncthing names divergent copies <base>.sync-conflict-YYYYMMDD-HHMMSS-ID,
// optionally followed by the original extension. Earlier versions of the
// naming scheme omitted pieces; this single rule accepts the final form.
var markerRe = regexp.MustCompile(`^(.+)\.sync-conflict-(\d{8})-(\d{6})-([A-Z0-9]+)(\.[^.]+)?$`)

const timestampLayout = "20060102-150405"

type ParsedName struct {
	// Original is the filename the conflict file would replace if promoted.
	Original string
	// Timestamp is the instant the sync tool recorded the divergence,
	// second resolution.
	Timestamp time.Time
}

// ParseName reports whether name is a sync-conflict marker and, if so,
// yields the reconstructed original filename and the embedded timestamp.
// Malformed markers are not an error: a sync mid-write can leave transient
// garbage names, and those must not abort a scan.
func ParseName(name string) (ParsedName, bool) {
	m := markerRe.FindStringSubmatch(name)
	if m == nil {
		return ParsedName{}, false
	}

	ts, err := time.ParseInLocation(timestampLayout, m[2]+"-"+m[3], time.Local)
	if err != nil {
		return ParsedName{}, false
	}

	original := m[1]
	if ext := m[5]; ext != "" && filepath.Ext(original) != ext {
		// The marker carries the original extension; keep it unless the
		// base already ends with it (notes.v2.txt stays notes.v2.txt,
		// not notes.v2.txt.txt).
		original += ext
	}

	return ParsedName{Original: original, Timestamp: ts}, true
}
