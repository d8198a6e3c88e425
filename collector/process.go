package collector

import (
	"context"
	"sync"

	"taskview/models"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// processSampler keeps one gopsutil handle per live process so that
// Percent(0) measures cpu time since the previous refresh.
type processSampler struct {
	mu      sync.Mutex
	handles map[int32]*sampledProcess
}

type sampledProcess struct {
	proc    *process.Process
	created int64
}

func newProcessSampler() *processSampler {
	return &processSampler{handles: make(map[int32]*sampledProcess)}
}

func (s *processSampler) sample(ctx context.Context, endpoints map[int32]models.Endpoint) ([]models.ProcessInfo, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list processes")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int32]struct{}, len(pids))
	result := make([]models.ProcessInfo, 0, len(pids))

	for _, pid := range pids {
		h := s.handle(ctx, pid)

		name, err := h.proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		seen[pid] = struct{}{}

		info := models.ProcessInfo{
			PID:  pid,
			Name: name,
			Conn: endpoints[pid],
		}
		if mem, err := h.proc.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			info.RSS = mem.RSS
		}
		if cpu, err := h.proc.PercentWithContext(ctx, 0); err == nil {
			info.CPU = cpu
		}
		result = append(result, info)
	}

	for pid := range s.handles {
		if _, ok := seen[pid]; !ok {
			delete(s.handles, pid)
		}
	}
	return result, nil
}

// handle returns the cached handle for pid, or a fresh one when the pid
// is new or has been reused by another process.
func (s *processSampler) handle(ctx context.Context, pid int32) *sampledProcess {
	p := &process.Process{Pid: pid}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		created = 0
	}
	if h, ok := s.handles[pid]; ok && h.created == created {
		return h
	}
	h := &sampledProcess{proc: p, created: created}
	s.handles[pid] = h
	return h
}

func (s *processSampler) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}
