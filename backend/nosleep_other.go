//go:build !windows

package backend

// SetSystemSleepDisabled is a no-op on this platform.
func SetSystemSleepDisabled(bool) {}
