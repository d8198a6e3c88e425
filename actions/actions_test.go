package actions

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocker struct {
	stopped []string
	err     error
}

func (f *fakeDocker) ContainerStop(_ context.Context, id string, _ container.StopOptions) error {
	if f.err != nil {
		return f.err
	}
	f.stopped = append(f.stopped, id)
	return nil
}

type recorder struct {
	argv []string
	out  string
	err  error
}

func (r *recorder) run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.argv = append([]string{name}, args...)
	return []byte(r.out), r.err
}

func TestServiceStopCommand(t *testing.T) {
	argv, err := serviceStopCommand("linux", true, "nginx")
	require.NoError(t, err)
	assert.Equal(t, []string{"systemctl", "stop", "nginx.service"}, argv)

	argv, err = serviceStopCommand("linux", true, "getty@tty1.service")
	require.NoError(t, err)
	assert.Equal(t, []string{"systemctl", "stop", "getty@tty1.service"}, argv)

	argv, err = serviceStopCommand("linux", false, "nginx")
	require.NoError(t, err)
	assert.Equal(t, []string{"service", "nginx", "stop"}, argv)

	argv, err = serviceStopCommand("darwin", false, "com.example.agent")
	require.NoError(t, err)
	assert.Equal(t, []string{"launchctl", "stop", "com.example.agent"}, argv)

	_, err = serviceStopCommand("plan9", false, "x")
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestStopServiceRunsCommand(t *testing.T) {
	rec := &recorder{}
	c := &Controller{goos: "linux", systemd: true, run: rec.run}

	require.NoError(t, c.StopService(context.Background(), "cron"))
	assert.Equal(t, []string{"systemctl", "stop", "cron.service"}, rec.argv)
}

func TestStopServiceReportsOutput(t *testing.T) {
	rec := &recorder{out: "Access denied\n", err: errors.New("exit status 1")}
	c := &Controller{goos: "linux", systemd: true, run: rec.run}

	err := c.StopService(context.Background(), "cron")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Access denied")
}

func TestStopServiceEmptyName(t *testing.T) {
	c := &Controller{goos: "linux", run: (&recorder{}).run}
	assert.Error(t, c.StopService(context.Background(), ""))
}

func TestStopContainer(t *testing.T) {
	d := &fakeDocker{}
	c := NewController(false, d)
	require.NoError(t, c.StopContainer(context.Background(), "abc123"))
	assert.Equal(t, []string{"abc123"}, d.stopped)

	d.err = errors.New("no such container")
	assert.Error(t, c.StopContainer(context.Background(), "zzz"))

	assert.ErrorIs(t, NewController(false, nil).StopContainer(context.Background(), "abc"), ErrNoDocker)
}

func TestTerminateMissingProcess(t *testing.T) {
	c := NewController(false, nil)
	assert.Error(t, c.TerminateProcess(context.Background(), 1<<30))
}

func TestTerminateChild(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	cmd := exec.Command(sleep, "30")
	require.NoError(t, cmd.Start())

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	c := NewController(false, nil)
	require.NoError(t, c.TerminateProcess(context.Background(), int32(cmd.Process.Pid)))

	select {
	case err := <-done:
		assert.Error(t, err, "sleep should exit on a signal")
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process did not terminate")
	}
}
