package conflict

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syncsweep/internal/logger"
	"syncsweep/internal/model"

	"go.uber.org/zap"
)

type Scanner struct {
	ignore   []string
	skipDirs map[string]bool
}

// NewScanner returns a scanner that prunes directories matching the ignore
// patterns. skipDirs are pruned by absolute path; the backup directory goes
// here so archived losers are never picked up as fresh conflicts.
func NewScanner(ignore []string, skipDirs ...string) *Scanner {
	skip := make(map[string]bool)
	for _, dir := range skipDirs {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			skip[abs] = true
		}
	}

	return &Scanner{ignore: ignore, skipDirs: skip}
}

// Scan walks the tree under root and returns a record for every non-empty
// conflict file. Unreadable subtrees are skipped; only an unusable root is
// fatal. Record order follows traversal order and carries no guarantee.
func (s *Scanner) Scan(root string) ([]model.ConflictRecord, error) {
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

	var records []model.ConflictRecord

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			logger.Log.Warn("skipping unreadable entry",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}

		if d.IsDir() {
			if path != absRoot && (s.ignored(d.Name()) || s.skipDirs[path]) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		parsed, ok := ParseName(d.Name())
		if !ok {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			logger.Log.Warn("skipping unreadable file",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}

		// Zero-byte conflict files are failed syncs, never promotion
		// candidates.
		if fi.Size() == 0 {
			logger.Log.Debug("skipping empty conflict file",
				zap.String("path", path))
			return nil
		}

		records = append(records, model.ConflictRecord{
			ConflictPath: path,
			OriginalPath: filepath.Join(filepath.Dir(path), parsed.Original),
			Timestamp:    parsed.Timestamp,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, walkErr)
	}

	logger.Log.Debug("scan finished",
		zap.String("root", absRoot),
		zap.Int("conflicts", len(records)))

	return records, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, pattern := range s.ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
