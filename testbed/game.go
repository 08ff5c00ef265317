package testbed

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/lumen/engine"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/components"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
	"github.com/spaghettifunk/lumen/engine/systems"
)

const (
	CRATE_TEXTURE = "textures/crate.png"
	SPRITE_SIZE   = 64
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	sprites []*components.Sprite
	sm      *systems.SystemManager

	width  uint32
	height uint32
	time   float64
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

// Initialize puts three sprites on screen, all sharing the crate texture.
func (g *TestGame) Initialize(sm *systems.SystemManager) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.state()
	state.sm = sm

	for i, name := range []string{"crate_left", "crate_middle", "crate_right"} {
		s := components.NewSprite(name, CRATE_TEXTURE, SPRITE_SIZE, SPRITE_SIZE)
		s.Position = mgl32.Vec3{float32(100 + i*(SPRITE_SIZE+16)), 100, 0}
		if err := s.Load(sm.TextureSystem); err != nil {
			return err
		}
		state.sprites = append(state.sprites, s)
	}

	if count, ok := sm.TextureSystem.ReferenceCount(CRATE_TEXTURE); ok {
		core.LogDebug("texture '%s' shared by %d sprites", CRATE_TEXTURE, count)
	}
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()
	state.time += deltaTime

	// Bob the sprites up and down.
	for i, s := range state.sprites {
		s.Position[1] = 100 + float32(20*gomath.Sin(state.time*2+float64(i)))
	}
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	for _, s := range g.state().sprites {
		if rd := s.RenderData(); rd != nil {
			packet.Sprites = append(packet.Sprites, rd)
		}
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	for _, s := range state.sprites {
		s.Unload()
	}
	state.sprites = nil
	return nil
}
