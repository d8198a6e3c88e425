package collector

import (
	"context"
	"testing"

	"taskview/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listUnits = `cron.service                 loaded active   running Regular background program processing daemon
● nginx.service              loaded failed   failed  A high performance web server
getty@tty1.service           loaded active   running Getty on tty1
systemd-fsck-root.service    loaded inactive dead    File System Check on Root Device
ssh.service                  loaded active   start-pre
short
`

const listUnitFiles = `cron.service                 enabled  enabled
nginx.service                disabled enabled
getty@.service               enabled  enabled
systemd-fsck-root.service    static   -
`

func TestParseSystemdUnits(t *testing.T) {
	services := parseSystemdUnits(listUnits, parseUnitFiles(listUnitFiles))
	require.Len(t, services, 5)

	assert.Equal(t, models.ServiceInfo{
		Name:        "cron",
		DisplayName: "Regular background program processing daemon",
		Status:      "running",
		StartType:   "auto",
	}, services[0])

	assert.Equal(t, "nginx", services[1].Name)
	assert.Equal(t, "failed", services[1].Status)
	assert.Equal(t, "disabled", services[1].StartType)

	// instance resolved through its template
	assert.Equal(t, "getty@tty1", services[2].Name)
	assert.Equal(t, "auto", services[2].StartType)

	assert.Equal(t, "stopped", services[3].Status)
	assert.Equal(t, "manual", services[3].StartType)

	// no description: the unit doubles as display name
	assert.Equal(t, "ssh.service", services[4].DisplayName)
	assert.Equal(t, "starting", services[4].Status)
	assert.Equal(t, "unknown", services[4].StartType)
}

func TestParseUnitFilesEmpty(t *testing.T) {
	assert.Empty(t, parseUnitFiles(""))
	assert.Equal(t, "unknown", lookupStartType(parseUnitFiles(""), "cron.service"))
}

func TestParseLaunchctlList(t *testing.T) {
	out := "PID\tStatus\tLabel\n" +
		"412\t0\tcom.apple.Finder\n" +
		"-\t0\tcom.apple.idle\n" +
		"-\t78\tcom.example.broken\n" +
		"garbage\n"

	services := parseLaunchctlList(out)
	require.Len(t, services, 3)
	assert.Equal(t, "running", services[0].Status)
	assert.Equal(t, "stopped", services[1].Status)
	assert.Equal(t, "failed", services[2].Status)
	assert.Equal(t, "com.example.broken", services[2].DisplayName)
}

func TestNormalizeWindows(t *testing.T) {
	cases := map[string]string{
		"Running": "running",
		"4":       "running",
		"1":       "stopped",
		"7":       "paused",
		"2":       "starting",
		"3":       "stopping",
		"42":      "unknown",
	}
	for raw, want := range cases {
		assert.Equal(t, want, normalizeWindowsStatus(raw), raw)
	}

	assert.Equal(t, "auto", normalizeWindowsStartType("2"))
	assert.Equal(t, "auto", normalizeWindowsStartType("Automatic"))
	assert.Equal(t, "manual", normalizeWindowsStartType("3"))
	assert.Equal(t, "disabled", normalizeWindowsStartType("4"))
	assert.Equal(t, "unknown", normalizeWindowsStartType(""))
}

func TestNormalizeLinux(t *testing.T) {
	assert.Equal(t, "stopping", normalizeLinuxStatus("stop-sigterm"))
	assert.Equal(t, "starting", normalizeLinuxStatus("auto-restart"))
	assert.Equal(t, "mounted", normalizeLinuxStatus("mounted"))
	assert.Equal(t, "disabled", normalizeStartType("masked"))
	assert.Equal(t, "unknown", normalizeStartType("bad"))
}

func TestCollectServicesUnsupported(t *testing.T) {
	_, err := collectServices(context.Background(), "plan9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}
