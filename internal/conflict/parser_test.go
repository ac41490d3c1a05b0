package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		original string
		ts       time.Time
	}{
		{
			name:     "plain marker without trailing extension",
			filename: "report.txt.sync-conflict-20240105-090000-XYZ789",
			original: "report.txt",
			ts:       time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local),
		},
		{
			name:     "trailing extension restored on the original",
			filename: "photo.sync-conflict-20230615-221530-DEVICE1.jpg",
			original: "photo.jpg",
			ts:       time.Date(2023, 6, 15, 22, 15, 30, 0, time.Local),
		},
		{
			name:     "duplicate trailing extension collapses",
			filename: "notes.v2.txt.sync-conflict-20240101-120000-AB1.txt",
			original: "notes.v2.txt",
			ts:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local),
		},
		{
			name:     "multi-dot base survives intact",
			filename: "archive.tar.gz.sync-conflict-20240301-000000-AAA111.gz",
			original: "archive.tar.gz",
			ts:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseName(tt.filename)
			require.True(t, ok)
			assert.Equal(t, tt.original, parsed.Original)
			assert.True(t, tt.ts.Equal(parsed.Timestamp), "timestamp %v != %v", parsed.Timestamp, tt.ts)
		})
	}
}

func TestParseNameRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"no marker", "report.txt"},
		{"marker without base", ".sync-conflict-20240101-120000-ABC123"},
		{"marker not after a dot", "sync-conflict-20240101-120000-ABC123"},
		{"short date", "report.txt.sync-conflict-2024015-090000-XYZ789"},
		{"short time", "report.txt.sync-conflict-20240105-0900-XYZ789"},
		{"impossible month", "report.txt.sync-conflict-20241301-120000-XYZ789"},
		{"impossible minute", "report.txt.sync-conflict-20240101-126000-XYZ789"},
		{"lowercase instance id", "report.txt.sync-conflict-20240101-120000-xyz789"},
		{"missing instance id", "report.txt.sync-conflict-20240101-120000-"},
		{"missing timestamp", "report.txt.sync-conflict-ABC123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseName(tt.filename)
			assert.False(t, ok)
		})
	}
}

func TestParseNameLastMarkerWins(t *testing.T) {
	// A base can itself contain the marker token; only the final
	// occurrence carries the timestamp.
	parsed, ok := ParseName("a.sync-conflict-x.sync-conflict-20240101-120000-ABC123")
	require.True(t, ok)
	assert.Equal(t, "a.sync-conflict-x", parsed.Original)
}
