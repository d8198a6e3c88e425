//go:build !linux && !windows

package collector

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

func processLibraries(context.Context, *process.Process) ([]string, error) {
	return nil, errors.Wrap(ErrUnsupported, "loaded libraries")
}
