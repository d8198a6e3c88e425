package collector

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Executes a command and returns stdout. Stderr is folded into the error.
func runCmdWithErr(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return string(out), errors.Wrapf(err, "%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return string(out), errors.Wrap(err, name)
	}
	return string(out), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
