package collector

import (
	"context"
	"os"
	"testing"

	"taskview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findPID(procs []models.ProcessInfo, pid int32) (models.ProcessInfo, bool) {
	for _, p := range procs {
		if p.PID == pid {
			return p, true
		}
	}
	return models.ProcessInfo{}, false
}

func TestSamplerIncludesSelf(t *testing.T) {
	s := newProcessSampler()
	self := int32(os.Getpid())

	procs, err := s.sample(context.Background(), map[int32]models.Endpoint{
		self: {LocalIP: "127.0.0.1", LocalPort: 1, RemoteIP: "127.0.0.1", RemotePort: 2},
	})
	require.NoError(t, err)

	p, ok := findPID(procs, self)
	require.True(t, ok)
	assert.NotEmpty(t, p.Name)
	assert.NotZero(t, p.RSS)
	// first sample has no previous cpu time to compare with
	assert.Zero(t, p.CPU)
	assert.Equal(t, uint32(2), p.Conn.RemotePort)
}

func TestSamplerReusesAndPrunesHandles(t *testing.T) {
	s := newProcessSampler()
	self := int32(os.Getpid())

	s.handles[1<<30] = &sampledProcess{}

	_, err := s.sample(context.Background(), nil)
	require.NoError(t, err)
	_, stale := s.handles[1<<30]
	assert.False(t, stale)

	first := s.handles[self]
	require.NotNil(t, first)

	_, err = s.sample(context.Background(), nil)
	require.NoError(t, err)
	assert.Same(t, first, s.handles[self])
	assert.Positive(t, s.size())
}

func TestSamplerReplacesHandleOnPIDReuse(t *testing.T) {
	s := newProcessSampler()
	self := int32(os.Getpid())

	stale := &sampledProcess{created: 1}
	s.handles[self] = stale

	procs, err := s.sample(context.Background(), nil)
	require.NoError(t, err)

	fresh := s.handles[self]
	require.NotNil(t, fresh)
	assert.NotSame(t, stale, fresh)
	assert.NotEqual(t, int64(1), fresh.created)

	p, ok := findPID(procs, self)
	require.True(t, ok)
	assert.Zero(t, p.CPU)
}
