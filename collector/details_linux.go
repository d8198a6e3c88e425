package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/process"
)

// processLibraries reads the file-backed mappings of p.
func processLibraries(ctx context.Context, p *process.Process) ([]string, error) {
	maps, err := p.MemoryMapsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if maps == nil {
		return nil, nil
	}
	return libraryPaths(*maps), nil
}

func libraryPaths(maps []process.MemoryMapsStat) []string {
	paths := make([]string, 0, len(maps))
	for _, m := range maps {
		paths = append(paths, m.Path)
	}
	return uniquePaths(paths)
}
