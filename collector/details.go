package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskview/models"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// Details lists the open files and mapped libraries of pid. A failure on
// one list is recorded on the result and does not hide the other.
func (c *Collector) Details(ctx context.Context, pid int32) (models.ProcessDetails, error) {
	details := models.ProcessDetails{PID: pid}

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return details, errors.Wrapf(err, "process %d", pid)
	}

	details.Name, _ = p.NameWithContext(ctx)
	if ms, err := p.CreateTimeWithContext(ctx); err == nil {
		details.Started = time.UnixMilli(ms)
	}

	files, err := p.OpenFilesWithContext(ctx)
	if err != nil {
		details.FilesErr = errors.Wrapf(err, "open files of %d", pid)
		log().WithError(err).WithField("pid", pid).Debug("open files unavailable")
	} else {
		paths := make([]string, 0, len(files))
		for _, f := range files {
			paths = append(paths, f.Path)
		}
		details.Files = regularFiles(paths)
	}

	libs, err := processLibraries(ctx, p)
	if err != nil {
		details.LibsErr = errors.Wrapf(err, "libraries of %d", pid)
		log().WithError(err).WithField("pid", pid).Debug("libraries unavailable")
	} else {
		details.Libraries = libs
	}

	return details, nil
}

// regularFiles keeps the absolute paths that name regular files. Pipes,
// sockets, anonymous inodes and devices are dropped.
func regularFiles(paths []string) []string {
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files
}

// uniquePaths returns the distinct paths in order of first appearance.
// Empty entries and pseudo mappings such as [heap] are skipped.
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || strings.HasPrefix(path, "[") {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		result = append(result, path)
	}
	return result
}
