//go:build unix

package preflight

import "golang.org/x/sys/unix"

// geteuid is replaced in tests.
var geteuid = unix.Geteuid

func isPrivileged() bool { return geteuid() == 0 }

func effectiveUID() int { return geteuid() }
