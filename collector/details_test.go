package collector

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniquePaths(t *testing.T) {
	paths := []string{"/lib/a.so", " ", "[stack]", "/lib/b.so", "/lib/a.so"}
	assert.Equal(t, []string{"/lib/a.so", "/lib/b.so"}, uniquePaths(paths))
	assert.Empty(t, uniquePaths(nil))
}

func TestRegularFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	got := regularFiles([]string{
		file,
		dir,
		filepath.Join(dir, "missing"),
		"pipe:[37834]",
		"socket:[37845]",
		"anon_inode:[eventpoll]",
	})
	assert.Equal(t, []string{file}, got)
}

func TestDetailsOwnProcess(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "held")
	require.NoError(t, err)
	defer f.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	pid := int32(os.Getpid())
	d, err := New(WithDocker(false)).Details(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, pid, d.PID)
	assert.NotEmpty(t, d.Name)
	assert.False(t, d.Started.IsZero())
	if d.FilesErr == nil {
		assert.Contains(t, d.Files, f.Name())
		for _, path := range d.Files {
			assert.True(t, filepath.IsAbs(path), path)
			assert.False(t, strings.HasPrefix(path, "pipe:"), path)
			assert.False(t, strings.HasPrefix(path, "socket:"), path)
			assert.NotEqual(t, os.DevNull, path)
		}
	}
}

func TestDetailsMissingProcess(t *testing.T) {
	_, err := New(WithDocker(false)).Details(context.Background(), 1<<30)
	assert.Error(t, err)
}
