package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskview/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	path, err := writeSnapshot(dir, view.Services, view.Columns(view.Services),
		[][]string{{"cron", "Cron daemon", "running", "auto"}}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "taskview_services_20261018_093000.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Services (1 rows)")
	assert.Contains(t, string(data), "| cron")
}

func TestWriteSnapshotBadDir(t *testing.T) {
	_, err := writeSnapshot(filepath.Join(t.TempDir(), "missing"), view.Processes, view.Columns(view.Processes), nil, time.Now())
	assert.Error(t, err)
}
