package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taskview.log")

	closer, err := Init(path, "debug")
	require.NoError(t, err)

	WithComponent("test").WithField("pid", 42).Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "component=test")
	assert.Contains(t, string(data), "pid=42")
}

func TestInitFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskview.log")
	closer, err := Init(path, "chatty")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, "info", Get().GetLevel().String())
}
