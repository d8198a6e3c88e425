package collector

import (
	"os/exec"
	"sync"

	"taskview/logging"
)

type Capabilities struct {
	HasDockerSocket bool
	HasSystemd      bool
	HasInitD        bool
	HasLaunchctl    bool
}

var (
	caps     Capabilities
	capsOnce sync.Once
)

// DetectCapabilities checks the host once and logs what it found.
func DetectCapabilities() Capabilities {
	capsOnce.Do(func() {
		caps = Capabilities{
			HasDockerSocket: fileExists(dockerSocket),
			HasSystemd:      fileExists("/run/systemd/system"),
			HasInitD:        fileExists("/etc/init.d"),
			HasLaunchctl:    hasBinary("launchctl"),
		}

		l := logging.Get()
		l.Info("╭─ Capabilities ─────────────────────────────────────────────╮")
		logCap("Docker", caps.HasDockerSocket, "(containers view)")
		logCap("systemd", caps.HasSystemd, "(services via systemctl)")
		logCap("init.d", caps.HasInitD, "(services fallback)")
		logCap("launchctl", caps.HasLaunchctl, "(services on macOS)")
		l.Info("╰────────────────────────────────────────────────────────────╯")
	})
	return caps
}

func logCap(name string, available bool, desc string) {
	icon := "✗"
	status := "unavailable"
	if available {
		icon = "✓"
		status = "enabled"
	}
	logging.Get().Infof("│ %s %-10s │ %-11s │ %-28s │", icon, name, status, desc)
}

func hasBinary(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
