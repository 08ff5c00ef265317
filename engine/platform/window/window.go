package window

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// WindowPlatform opens a desktop window through GLFW and turns its input
// callbacks into high priority messages.
type WindowPlatform struct {
	Window *glfw.Window
	bus    *core.MessageBus
}

func NewWindowPlatform(bus *core.MessageBus) *WindowPlatform {
	return &WindowPlatform{
		bus: bus,
	}
}

func (p *WindowPlatform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *WindowPlatform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

func (p *WindowPlatform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *WindowPlatform) Sleep(ms float64) {
	platform.SleepMS(ms)
}

func (p *WindowPlatform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	ke := &core.KeyEvent{KeyCode: int(key)}
	switch action {
	case glfw.Press:
		p.bus.SendPriority(core.MESSAGE_CODE_KEY_PRESSED, p, ke)
	case glfw.Release:
		p.bus.SendPriority(core.MESSAGE_CODE_KEY_RELEASED, p, ke)
	}
}

func (p *WindowPlatform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.bus.SendPriority(core.MESSAGE_CODE_RESIZED, p, &core.ResizeEvent{
		WindowWidth:  uint32(width),
		WindowHeight: uint32(height),
	})
}

func (p *WindowPlatform) closeCallback(w *glfw.Window) {
	p.bus.SendPriority(core.MESSAGE_CODE_APPLICATION_QUIT, p, nil)
}
