//go:build windows

package collector

import (
	"context"
	"strconv"

	"taskview/models"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc/mgr"
)

// connectReadOnly opens the service control manager with enumerate rights
// only, so listing works without administrator privileges.
func connectReadOnly() (*mgr.Mgr, error) {
	h, err := windows.OpenSCManager(nil, nil, windows.SC_MANAGER_CONNECT|windows.SC_MANAGER_ENUMERATE_SERVICE)
	if err != nil {
		return nil, err
	}
	return &mgr.Mgr{Handle: h}, nil
}

func openServiceReadOnly(m *mgr.Mgr, name string) (*mgr.Service, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	h, err := windows.OpenService(m.Handle, p, windows.SERVICE_QUERY_CONFIG|windows.SERVICE_QUERY_STATUS)
	if err != nil {
		return nil, err
	}
	return &mgr.Service{Name: name, Handle: h}, nil
}

// collectWindowsServices asks the service control manager for every service.
func collectWindowsServices(ctx context.Context) ([]models.ServiceInfo, error) {
	m, err := connectReadOnly()
	if err != nil {
		return nil, errors.Wrap(err, "connect to service manager")
	}
	defer m.Disconnect()

	names, err := m.ListServices()
	if err != nil {
		return nil, errors.Wrap(err, "list services")
	}

	services := make([]models.ServiceInfo, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		services = append(services, describeWindowsService(m, name))
	}
	return services, nil
}

func describeWindowsService(m *mgr.Mgr, name string) models.ServiceInfo {
	info := models.ServiceInfo{
		Name:        name,
		DisplayName: name,
		Status:      "unknown",
		StartType:   "unknown",
	}

	s, err := openServiceReadOnly(m, name)
	if err != nil {
		log().WithError(err).WithField("service", name).Debug("open service failed")
		return info
	}
	defer s.Close()

	if cfg, err := s.Config(); err == nil {
		if cfg.DisplayName != "" {
			info.DisplayName = cfg.DisplayName
		}
		info.StartType = normalizeWindowsStartType(strconv.Itoa(int(cfg.StartType)))
	} else {
		log().WithError(err).WithField("service", name).Debug("service config unavailable")
	}

	if status, err := s.Query(); err == nil {
		info.Status = normalizeWindowsStatus(strconv.Itoa(int(status.State)))
	} else {
		log().WithError(err).WithField("service", name).Debug("service status unavailable")
	}
	return info
}
