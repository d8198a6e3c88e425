//go:build !windows

package collector

import (
	"context"

	"taskview/models"

	"github.com/pkg/errors"
)

func collectWindowsServices(context.Context) ([]models.ServiceInfo, error) {
	return nil, errors.Wrap(ErrUnsupported, "windows services")
}
