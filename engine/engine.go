package engine

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/platform"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Longest delta handed to the game, in seconds. Keeps a debugger pause or a
// stalled window from turning into one giant step.
const MAX_DELTA_TIME float64 = 0.25

// PlatformFactory builds the platform once the message bus exists, so window
// callbacks can publish into it.
type PlatformFactory func(bus *core.MessageBus) platform.Platform

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      platform.Platform
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
}

// New boots an engine for g. A nil factory runs the engine headless.
func New(g *Game, newPlatform PlatformFactory, backend renderer.RendererBackend) (*Engine, error) {
	if g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game has no application config: %w", core.ErrInvalidConfig)
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		renderer:     renderer.New(backend),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		MessagesPerUpdate: g.ApplicationConfig.Messages.PerUpdate,
		JobWorkers:        g.ApplicationConfig.Jobs.Workers,
		JobQueueSize:      g.ApplicationConfig.Jobs.QueueSize,
		MaxTextureCount:   g.ApplicationConfig.Textures.MaxTextureCount,
	}, backend)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.systemManager = sm

	if newPlatform == nil || g.ApplicationConfig.Headless {
		e.platform = platform.NewHeadlessPlatform(g.ApplicationConfig.MaxFrames)
	} else {
		e.platform = newPlatform(sm.MessageBus)
	}

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine cannot be initialized from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	level, err := core.ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	bus := e.systemManager.MessageBus
	bus.Subscribe(core.MESSAGE_CODE_APPLICATION_QUIT, e)
	bus.Subscribe(core.MESSAGE_CODE_KEY_PRESSED, e)
	bus.Subscribe(core.MESSAGE_CODE_RESIZED, e)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	if err := e.renderer.Initialize(config.Name, e.width, e.height); err != nil {
		return err
	}

	if err := systems.RegisterResourceLoaders(systems.ResourceSystemConfig{
		AssetBasePath: config.Assets.Directory,
		FlipY:         config.Assets.FlipY,
		HotReload:     config.Assets.HotReload,
	}, e.systemManager.AssetManager); err != nil {
		return err
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.systemManager); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the main loop until the platform or an APPLICATION_QUIT message
// stops it, or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64
	if fps := e.gameInstance.ApplicationConfig.TargetFPS; fps > 0 {
		targetFrameSeconds = 1.0 / fps
	}

	for e.isRunning {
		if ctx.Err() != nil {
			core.LogInfo("context cancelled, leaving main loop.")
			e.isRunning = false
			break
		}
		if !e.platform.PumpMessages() {
			e.isRunning = false
			break
		}

		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := math.Clamp(currentTime-e.lastTime, 0, MAX_DELTA_TIME)
		frameStartTime := platform.GetAbsoluteTime()

		if err := e.Frame(delta); err != nil {
			core.LogError("frame failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		// Figure out how long the frame took and, if below the target, give
		// the rest back to the OS.
		frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		if remainingSeconds := targetFrameSeconds - frameElapsedTime; remainingSeconds > 0 {
			e.platform.Sleep(remainingSeconds * 1000)
		}

		e.lastTime = currentTime
	}

	fps, frameTime := e.metrics.Frame()
	core.LogInfo("main loop stopped (%.1f fps, %.3f ms/frame)", fps, frameTime)
	return nil
}

// Frame runs one update and render cycle. Systems are updated first, so
// assets loaded since the previous frame are on the GPU before drawing.
func (e *Engine) Frame(deltaTime float64) error {
	e.systemManager.Update(deltaTime)

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(deltaTime); err != nil {
			return fmt.Errorf("game update failed: %w", err)
		}
	}

	packet := &metadata.RenderPacket{
		DeltaTime:  deltaTime,
		Projection: e.renderer.Projection(),
	}
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet, deltaTime); err != nil {
			return fmt.Errorf("game render failed: %w", err)
		}
	}

	return e.renderer.DrawFrame(packet)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}

	bus := e.systemManager.MessageBus
	bus.Unsubscribe(core.MESSAGE_CODE_APPLICATION_QUIT, e)
	bus.Unsubscribe(core.MESSAGE_CODE_KEY_PRESSED, e)
	bus.Unsubscribe(core.MESSAGE_CODE_RESIZED, e)

	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// Stop asks the main loop to exit after the current frame. Must be called
// from the frame goroutine.
func (e *Engine) Stop() {
	e.isRunning = false
}

func (e *Engine) IsRunning() bool {
	return e.isRunning
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) OnMessage(message core.Message) {
	switch message.Code() {
	case core.MESSAGE_CODE_APPLICATION_QUIT:
		core.LogInfo("MESSAGE_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
	case core.MESSAGE_CODE_KEY_PRESSED:
		ke, ok := message.Context().(*core.KeyEvent)
		if !ok {
			return
		}
		if ke.KeyCode == core.KEY_ESCAPE {
			// NOTE: Technically firing an event to itself, but there may be other listeners.
			e.systemManager.MessageBus.SendPriority(core.MESSAGE_CODE_APPLICATION_QUIT, e, nil)
		}
	case core.MESSAGE_CODE_RESIZED:
		re, ok := message.Context().(*core.ResizeEvent)
		if !ok {
			return
		}
		e.onResized(re.WindowWidth, re.WindowHeight)
	}
}

func (e *Engine) onResized(width, height uint32) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application.")
		e.isSuspended = false
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
