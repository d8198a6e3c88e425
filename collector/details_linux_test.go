package collector

import (
	"testing"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
)

func TestLibraryPaths(t *testing.T) {
	maps := []process.MemoryMapsStat{
		{Path: "/usr/lib/libc.so.6"},
		{Path: "[heap]"},
		{Path: ""},
		{Path: "/usr/lib/libc.so.6"},
		{Path: "/usr/lib/ld-linux.so.2"},
		{Path: "[vdso]"},
	}
	assert.Equal(t, []string{"/usr/lib/libc.so.6", "/usr/lib/ld-linux.so.2"}, libraryPaths(maps))
}
