package platform

import "time"

// Platform abstracts the window and the OS message pump.
type Platform interface {
	Startup(applicationName string, x, y, width, height uint32) error
	Shutdown() error
	// PumpMessages processes pending OS events. Returns false once the
	// platform wants the application to quit.
	PumpMessages() bool
	Sleep(ms float64)
}

var startTime = time.Now()

// GetAbsoluteTime returns the seconds elapsed since the process started.
func GetAbsoluteTime() float64 {
	return time.Since(startTime).Seconds()
}

// SleepMS gives ms milliseconds back to the OS.
func SleepMS(ms float64) {
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}
