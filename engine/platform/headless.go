package platform

import "github.com/spaghettifunk/lumen/engine/core"

// HeadlessPlatform runs the engine without a window. It stops after
// maxFrames pumps, or never when maxFrames is 0.
type HeadlessPlatform struct {
	maxFrames uint64
	frames    uint64
}

func NewHeadlessPlatform(maxFrames uint64) *HeadlessPlatform {
	return &HeadlessPlatform{
		maxFrames: maxFrames,
	}
}

func (p *HeadlessPlatform) Startup(applicationName string, x, y, width, height uint32) error {
	core.LogInfo("starting '%s' without a window (%dx%d)", applicationName, width, height)
	return nil
}

func (p *HeadlessPlatform) Shutdown() error {
	return nil
}

func (p *HeadlessPlatform) PumpMessages() bool {
	if p.maxFrames > 0 && p.frames >= p.maxFrames {
		return false
	}
	p.frames++
	return true
}

func (p *HeadlessPlatform) Sleep(ms float64) {
	SleepMS(ms)
}
