//go:build windows

package power

import "golang.org/x/sys/windows"

// Flags de SetThreadExecutionState (winbase.h).
const (
	esContinuous     = 0x80000000
	esSystemRequired = 0x00000001
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32.NewProc("SetThreadExecutionState")
)

// setKeepAwake fija o limpia ES_SYSTEM_REQUIRED en el thread actual.
// Retorna false si la llamada a la API falla.
func setKeepAwake(keep bool) bool {
	flags := uintptr(esContinuous)
	if keep {
		flags |= esSystemRequired
	}
	r, _, _ := procSetThreadExecutionState.Call(flags)
	return r != 0
}
