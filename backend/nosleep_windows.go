//go:build windows

package backend

import (
	"sync/atomic"

	"golang.org/x/sys/windows"
)

const (
	ES_CONTINUOUS       uint = 0x80000000
	ES_SYSTEM_REQUIRED  uint = 0x00000001
	ES_DISPLAY_REQUIRED uint = 0x00000002
)

var (
	sleepDisabled  atomic.Bool
	executionState = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadExecutionState")
)

// SetSystemSleepDisabled keeps the system and display awake while a video plays.
func SetSystemSleepDisabled(disable bool) {
	if old := sleepDisabled.Swap(disable); old == disable {
		return
	}

	uType := ES_CONTINUOUS
	if disable {
		uType |= ES_SYSTEM_REQUIRED | ES_DISPLAY_REQUIRED
	}

	executionState.Call(uintptr(uType))
}
