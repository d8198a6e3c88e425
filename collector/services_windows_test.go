//go:build windows

package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectWindowsServices(t *testing.T) {
	services, err := collectWindowsServices(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, services)
	for _, s := range services {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.DisplayName)
	}
}

func TestDescribeMissingWindowsService(t *testing.T) {
	m, err := connectReadOnly()
	require.NoError(t, err)
	defer m.Disconnect()

	info := describeWindowsService(m, "taskview-no-such-service")
	assert.Equal(t, "unknown", info.Status)
	assert.Equal(t, "unknown", info.StartType)
	assert.Equal(t, "taskview-no-such-service", info.DisplayName)
}
