package collector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"

	"taskview/models"

	"github.com/pkg/errors"
)

// collectServices detects system services based on the OS.
func collectServices(ctx context.Context, currentOS string) ([]models.ServiceInfo, error) {
	switch currentOS {
	case "linux":
		return collectLinuxServices(ctx)
	case "darwin":
		return collectDarwinServices(ctx)
	case "windows":
		return collectWindowsServices(ctx)
	default:
		return nil, errors.Wrapf(ErrUnsupported, "services on %s", currentOS)
	}
}

// collectLinuxServices uses systemctl to list services.
// Falls back to /etc/init.d/ scanning for non-systemd systems.
func collectLinuxServices(ctx context.Context) ([]models.ServiceInfo, error) {
	if DetectCapabilities().HasSystemd {
		return collectSystemdServices(ctx)
	}
	return collectInitDServices(ctx)
}

func collectSystemdServices(ctx context.Context) ([]models.ServiceInfo, error) {
	units, err := runCmdWithErr(ctx, "systemctl", "list-units", "--type=service", "--all", "--no-pager", "--plain", "--no-legend")
	if err != nil {
		return nil, errors.Wrap(err, "systemctl list-units")
	}

	// One call for every start type instead of is-enabled per unit.
	files, err := runCmdWithErr(ctx, "systemctl", "list-unit-files", "--type=service", "--no-pager", "--plain", "--no-legend")
	if err != nil {
		log().WithError(err).Warn("systemctl list-unit-files failed, start types unknown")
	}

	return parseSystemdUnits(units, parseUnitFiles(files)), nil
}

// parseSystemdUnits reads `systemctl list-units` output.
// Format: UNIT LOAD ACTIVE SUB DESCRIPTION...
func parseSystemdUnits(output string, startTypes map[string]string) []models.ServiceInfo {
	var services []models.ServiceInfo
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		// failed units are prefixed with a bullet on some versions
		if len(fields) > 0 && fields[0] == "●" {
			fields = fields[1:]
		}
		if len(fields) < 4 {
			continue
		}

		unit := fields[0]
		sub := fields[3] // running, exited, dead, waiting, etc.

		displayName := unit
		if len(fields) > 4 {
			displayName = strings.Join(fields[4:], " ")
		}

		services = append(services, models.ServiceInfo{
			Name:        strings.TrimSuffix(unit, ".service"),
			DisplayName: displayName,
			Status:      normalizeLinuxStatus(sub),
			StartType:   lookupStartType(startTypes, unit),
		})
	}

	return services
}

// parseUnitFiles reads `systemctl list-unit-files` output into unit -> start type.
// Format: UNIT STATE [PRESET]
func parseUnitFiles(output string) map[string]string {
	types := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		types[fields[0]] = normalizeStartType(fields[1])
	}
	return types
}

// lookupStartType resolves template instances (foo@bar.service) through
// their template unit (foo@.service).
func lookupStartType(types map[string]string, unit string) string {
	if t, ok := types[unit]; ok {
		return t
	}
	if at := strings.Index(unit, "@"); at >= 0 {
		if t, ok := types[unit[:at+1]+".service"]; ok {
			return t
		}
	}
	return "unknown"
}

func normalizeStartType(raw string) string {
	switch raw {
	case "enabled", "enabled-runtime":
		return "auto"
	case "disabled":
		return "disabled"
	case "masked", "masked-runtime":
		return "disabled"
	case "static", "indirect", "generated", "alias":
		return "manual"
	default:
		return "unknown"
	}
}

func normalizeLinuxStatus(sub string) string {
	switch sub {
	case "running":
		return "running"
	case "exited":
		return "stopped"
	case "dead":
		return "stopped"
	case "waiting", "start-pre", "start", "start-post", "activating", "auto-restart":
		return "starting"
	case "stop", "stop-sigterm", "stop-sigkill", "stop-post", "final-sigterm", "final-sigkill":
		return "stopping"
	case "failed":
		return "failed"
	default:
		return sub
	}
}

func collectInitDServices(ctx context.Context) ([]models.ServiceInfo, error) {
	entries, err := os.ReadDir("/etc/init.d")
	if err != nil {
		return nil, errors.Wrap(err, "list /etc/init.d")
	}

	var services []models.ServiceInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "README" || name == "skeleton" || strings.HasPrefix(name, ".") {
			continue
		}

		// `service NAME status` exits 0 only while the service runs
		status := "stopped"
		if _, err := runCmdWithErr(ctx, "service", name, "status"); err == nil {
			status = "running"
		}

		services = append(services, models.ServiceInfo{
			Name:        name,
			DisplayName: name,
			Status:      status,
			StartType:   "unknown",
		})
	}

	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

// collectDarwinServices uses launchctl to list services on macOS.
func collectDarwinServices(ctx context.Context) ([]models.ServiceInfo, error) {
	output, err := runCmdWithErr(ctx, "launchctl", "list")
	if err != nil {
		return nil, errors.Wrap(err, "launchctl list")
	}
	return parseLaunchctlList(output), nil
}

// parseLaunchctlList reads `launchctl list` output.
// Format: PID Status Label, with a header line.
func parseLaunchctlList(output string) []models.ServiceInfo {
	var services []models.ServiceInfo
	scanner := bufio.NewScanner(strings.NewReader(output))

	// Skip header line
	scanner.Scan()

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		pid := fields[0]
		exit := fields[1]
		label := fields[2]

		status := "stopped"
		switch {
		case pid != "-":
			status = "running"
		case exit != "0" && exit != "-":
			status = "failed"
		}

		services = append(services, models.ServiceInfo{
			Name:        label,
			DisplayName: label,
			Status:      status,
			StartType:   "auto", // launchd services are typically auto
		})
	}

	return services
}

// normalizeWindowsStatus accepts both the names and the numeric
// SERVICE_* state codes.
func normalizeWindowsStatus(raw string) string {
	switch strings.ToLower(raw) {
	case "running", "4":
		return "running"
	case "stopped", "1":
		return "stopped"
	case "paused", "7":
		return "paused"
	case "startpending", "continuepending", "2", "5":
		return "starting"
	case "stoppending", "pausepending", "3", "6":
		return "stopping"
	default:
		return "unknown"
	}
}

func normalizeWindowsStartType(raw string) string {
	switch strings.ToLower(raw) {
	case "automatic", "boot", "system", "0", "1", "2":
		return "auto"
	case "manual", "3":
		return "manual"
	case "disabled", "4":
		return "disabled"
	default:
		return "unknown"
	}
}
