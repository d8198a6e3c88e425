package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TASKVIEW_REFRESH_SECONDS", "")
	t.Setenv("TASKVIEW_AUTO_REFRESH", "")
	t.Setenv("TASKVIEW_VIEW", "")
	t.Setenv("TASKVIEW_DOCKER", "")

	cfg := Load()
	assert.Equal(t, 1, cfg.RefreshSeconds)
	assert.False(t, cfg.AutoRefresh)
	assert.Equal(t, ViewProcesses, cfg.View)
	assert.True(t, cfg.Docker)
	assert.NotEmpty(t, cfg.LogFile)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TASKVIEW_REFRESH_SECONDS", "7")
	t.Setenv("TASKVIEW_AUTO_REFRESH", "true")
	t.Setenv("TASKVIEW_VIEW", "services")
	t.Setenv("TASKVIEW_DOCKER", "0")
	t.Setenv("TASKVIEW_LOG_FILE", "/tmp/tv.log")

	cfg := Load()
	assert.Equal(t, 7, cfg.RefreshSeconds)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, ViewServices, cfg.View)
	assert.False(t, cfg.Docker)
	assert.Equal(t, "/tmp/tv.log", cfg.LogFile)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	for _, v := range []string{"0", "-3", "soon"} {
		t.Setenv("TASKVIEW_REFRESH_SECONDS", v)
		assert.Equal(t, 1, Load().RefreshSeconds, v)
	}
}

func TestNormalize(t *testing.T) {
	cfg := &Config{RefreshSeconds: 0, View: "Containers"}
	cfg.Normalize()
	assert.Equal(t, 1, cfg.RefreshSeconds)
	assert.Equal(t, ViewContainers, cfg.View)

	cfg = &Config{RefreshSeconds: 3, View: "bogus"}
	cfg.Normalize()
	assert.Equal(t, 3, cfg.RefreshSeconds)
	assert.Equal(t, ViewProcesses, cfg.View)
}
