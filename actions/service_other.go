//go:build !windows

package actions

import (
	"context"

	"github.com/pkg/errors"
)

func stopWindowsService(context.Context, string) error {
	return errors.Wrap(ErrUnsupported, "windows service manager")
}
