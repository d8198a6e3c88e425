package collector

import (
	"context"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/windows"
)

// processLibraries lists the modules loaded into p.
func processLibraries(ctx context.Context, p *process.Process) ([]string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, uint32(p.Pid))
	if err != nil {
		return nil, errors.Wrap(err, "open process")
	}
	defer windows.CloseHandle(h)

	size := uint32(unsafe.Sizeof(windows.Handle(0)))
	modules := make([]windows.Handle, 256)
	for {
		var needed uint32
		if err := windows.EnumProcessModules(h, &modules[0], uint32(len(modules))*size, &needed); err != nil {
			return nil, errors.Wrap(err, "enum process modules")
		}
		n := int(needed / size)
		if n <= len(modules) {
			modules = modules[:n]
			break
		}
		modules = make([]windows.Handle, n)
	}

	paths := make([]string, 0, len(modules))
	buf := make([]uint16, windows.MAX_PATH)
	for _, mod := range modules {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := windows.GetModuleFileNameEx(h, mod, &buf[0], uint32(len(buf))); err != nil {
			continue
		}
		paths = append(paths, windows.UTF16ToString(buf))
	}
	return uniquePaths(paths), nil
}
