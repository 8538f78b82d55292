// Package preflight runs the startup checks that do not belong to the
// settings themselves: privileges and files the scanner's collaborators need.
package preflight

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
)

// CheckPrivileges warns if the process cannot open the raw sockets masscan
// transmits on. It reports whether the privileges look sufficient.
func CheckPrivileges(logger *slog.Logger) bool {
	if isPrivileged() {
		return true
	}
	logger.Warn("Running without root privileges. masscan needs raw socket access and will fail to transmit.",
		"os", runtime.GOOS,
		"euid", effectiveUID(),
	)
	return false
}

// CheckMasscanConfig verifies that the masscan configuration file exists and is
// a regular file.
func CheckMasscanConfig(path string) error {
	if path == "" {
		return fmt.Errorf("masscan config_file is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("masscan config %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("masscan config %s is not a regular file", path)
	}
	return nil
}
