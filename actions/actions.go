// Package actions ends processes, services and containers.
package actions

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"taskview/logging"

	"github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupported = errors.New("not supported on this platform")
	ErrNoDocker    = errors.New("docker is not available")
)

// ContainerStopper is the part of the docker client used here.
type ContainerStopper interface {
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
}

// runFunc runs a command and returns its combined output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Controller is the write side of taskview.
type Controller struct {
	goos    string
	systemd bool
	docker  ContainerStopper
	run     runFunc
}

// NewController returns a controller for the running OS. docker may be nil.
func NewController(systemd bool, docker ContainerStopper) *Controller {
	return &Controller{
		goos:    runtime.GOOS,
		systemd: systemd,
		docker:  docker,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// TerminateProcess asks pid to exit: SIGTERM on unix, TerminateProcess on Windows.
func (c *Controller) TerminateProcess(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return errors.Wrapf(err, "process %d", pid)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		log().WithError(err).WithField("pid", pid).Warn("terminate failed")
		return errors.Wrapf(err, "terminate %d", pid)
	}
	log().WithField("pid", pid).Info("terminated process")
	return nil
}

// StopService stops the named service through the platform's manager.
func (c *Controller) StopService(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("empty service name")
	}

	var err error
	if c.goos == "windows" {
		err = stopWindowsService(ctx, name)
	} else {
		err = c.stopWithCommand(ctx, name)
	}

	entry := log().WithField("service", name)
	if err != nil {
		entry.WithError(err).Warn("stop service failed")
		return err
	}
	entry.Info("stopped service")
	return nil
}

func (c *Controller) stopWithCommand(ctx context.Context, name string) error {
	argv, err := serviceStopCommand(c.goos, c.systemd, name)
	if err != nil {
		return err
	}
	out, err := c.run(ctx, argv[0], argv[1:]...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return errors.Wrapf(err, "stop %s", name)
		}
		return errors.Wrapf(err, "stop %s: %s", name, msg)
	}
	return nil
}

// serviceStopCommand picks the stop command line for non-Windows hosts.
func serviceStopCommand(goos string, systemd bool, name string) ([]string, error) {
	switch goos {
	case "linux":
		if systemd {
			unit := name
			if !strings.Contains(unit, ".") {
				unit += ".service"
			}
			return []string{"systemctl", "stop", unit}, nil
		}
		return []string{"service", name, "stop"}, nil
	case "darwin":
		return []string{"launchctl", "stop", name}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupported, "stop service on %s", goos)
	}
}

// StopContainer stops a docker container by id or name.
func (c *Controller) StopContainer(ctx context.Context, id string) error {
	if c.docker == nil {
		return ErrNoDocker
	}
	if err := c.docker.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		log().WithError(err).WithField("container", id).Warn("stop container failed")
		return errors.Wrapf(err, "stop container %s", id)
	}
	log().WithField("container", id).Info("stopped container")
	return nil
}

func log() *logrus.Entry {
	return logging.WithComponent("actions")
}
