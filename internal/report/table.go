package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syncsweep/internal/model"

	"golang.org/x/term"
)

const (
	timeLayout    = "2006-01-02 15:04:05"
	fallbackWidth = 80
	minNameWidth  = 20
	// action + two timestamp columns plus separators
	fixedWidth = 50
)

// Table renders the action plan as a fixed-column table, one row per record.
// The filename column adapts to the terminal width; everything else is fixed.
type Table struct {
	w     io.Writer
	width int
}

func NewTable(w io.Writer) *Table {
	width := fallbackWidth
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	return &Table{w: w, width: width}
}

// Print writes the header and one row per plan, in plan order. KEEP rows show
// the reconstructed original path, loser rows show the conflict file itself.
func (t *Table) Print(plans []model.ActionPlan) {
	nameWidth := t.width - fixedWidth
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}

	header := fmt.Sprintf("%-*s | %-6s | %-19s | %-19s",
		nameWidth, "Filename", "Action", "Old Timestamp", "New Timestamp")
	fmt.Fprintln(t.w, header)
	fmt.Fprintln(t.w, strings.Repeat("-", len(header)))

	for _, plan := range plans {
		old := "N/A"
		if plan.OriginalModTime != nil {
			old = plan.OriginalModTime.Format(timeLayout)
		}

		fmt.Fprintf(t.w, "%-*s | %-6s | %-19s | %-19s\n",
			nameWidth, truncateLeft(displayName(plan), nameWidth),
			plan.Disposition,
			old,
			plan.Record.Timestamp.Format(timeLayout))
	}
}

func displayName(plan model.ActionPlan) string {
	if plan.Disposition == model.DispositionKeep {
		return plan.Record.OriginalPath
	}
	return plan.Record.ConflictPath
}

// truncateLeft keeps the tail of s, which is the interesting part of a path,
// and marks the cut with a leading ellipsis.
func truncateLeft(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-(max-3):]
}
