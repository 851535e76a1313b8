//go:build !windows

package power

// setKeepAwake no tiene implementación fuera de Windows.
func setKeepAwake(bool) bool { return false }
