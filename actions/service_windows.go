//go:build windows

package actions

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

const (
	stopTimeout  = 10 * time.Second
	pollInterval = 300 * time.Millisecond
)

func stopWindowsService(ctx context.Context, name string) error {
	return controlService(ctx, name, svc.Stop, svc.Stopped)
}

func controlService(ctx context.Context, name string, c svc.Cmd, to svc.State) error {
	m, err := mgr.Connect()
	if err != nil {
		return errors.Wrap(err, "connect to service manager")
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return errors.Wrapf(err, "could not access service %s", name)
	}
	defer s.Close()

	status, err := s.Control(c)
	if err != nil {
		return errors.Wrapf(err, "could not send control=%d", c)
	}

	deadline := time.Now().Add(stopTimeout)
	for status.State != to {
		if time.Now().After(deadline) {
			return errors.Errorf("timeout waiting for service to go to state=%d", to)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
		status, err = s.Query()
		if err != nil {
			return errors.Wrap(err, "could not retrieve service status")
		}
	}
	return nil
}
