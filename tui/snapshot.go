package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskview/view"

	"github.com/pkg/errors"
)

// writeSnapshot saves rows as a markdown file in dir and returns its path.
func writeSnapshot(dir string, kind view.Kind, cols []view.Column, rows [][]string, now time.Time) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# taskview snapshot - %s\n\n", now.Format(time.RFC1123))
	fmt.Fprintf(&buf, "## %s (%d rows)\n\n", kind.Title(), len(rows))
	view.Render(&buf, cols, rows, true)

	name := fmt.Sprintf("taskview_%s_%s.md", kind, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "saving snapshot")
	}
	return path, nil
}
