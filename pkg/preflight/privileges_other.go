//go:build !unix

package preflight

// Raw socket access on other platforms depends on the capture driver, not on a
// user id, so it is not checked here.
func isPrivileged() bool { return true }

func effectiveUID() int { return -1 }
