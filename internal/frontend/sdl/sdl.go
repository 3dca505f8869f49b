// Package sdl is a windowed SDL2 frontend for the engine, grounded on the
// teacher's internal/ui/ui.go (window/renderer setup, polling loop,
// keyboard-state-to-input-bitset mapping) and its own
// github.com/veandco/go-sdl2 dependency. Unlike the teacher's pixel-buffer
// PPU output, the field is block-addressed, so frames are drawn as filled
// rectangles per cell rather than an uploaded texture.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/piece"
)

const cellSize = 24

// pieceRGB gives each locked/falling piece kind a distinct fill color,
// keyed by the field's stored cell byte (piece.Color).
var pieceRGB = map[uint8][3]uint8{
	piece.Color[piece.I]: {0, 240, 240},
	piece.Color[piece.J]: {0, 0, 240},
	piece.Color[piece.L]: {240, 160, 0},
	piece.Color[piece.O]: {240, 240, 0},
	piece.Color[piece.S]: {0, 240, 0},
	piece.Color[piece.T]: {160, 0, 240},
	piece.Color[piece.Z]: {240, 0, 0},
}

// UI owns the SDL window/renderer and polls input for one engine.Game.
type UI struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	game     *engine.Game
	running  bool

	onTick    func(tick uint64, keys control.Key)
	keySource func(tick uint64) control.Key
}

// SetTickHook installs fn to be called with each tick's resolved keystate
// immediately before it is fed to the engine.
func (u *UI) SetTickHook(fn func(tick uint64, keys control.Key)) {
	u.onTick = fn
}

// SetKeySource installs fn as the source of each tick's keystate in place
// of live keyboard polling, for deterministic replay playback.
func (u *UI) SetKeySource(fn func(tick uint64) control.Key) {
	u.keySource = fn
}

// New creates a window sized to the game's field at cellSize pixels per
// cell, plus a fixed-width HUD strip to the right.
func New(game *engine.Game) (*UI, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}

	f := game.Field()
	hudWidth := int32(160)
	width := int32(f.Width*cellSize) + hudWidth
	height := int32(f.Height * cellSize)

	window, err := sdl.CreateWindow(
		"faststack",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		width,
		height,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}

	return &UI{window: window, renderer: renderer, game: game, running: true}, nil
}

// Cleanup releases the renderer, window and SDL subsystem.
func (u *UI) Cleanup() {
	if u.renderer != nil {
		u.renderer.Destroy()
	}
	if u.window != nil {
		u.window.Destroy()
	}
	sdl.Quit()
}

// Run polls events and ticks the engine once per configured tick rate
// until the window is closed or the game ends.
func (u *UI) Run(ticksPerSecond int) error {
	defer u.Cleanup()

	frameDelay := uint32(1000 / ticksPerSecond)

	for u.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if u.handleEvent(event) {
				u.running = false
			}
		}

		if !u.running {
			break
		}

		var keys control.Key
		if u.keySource != nil {
			keys = u.keySource(u.game.TotalTicks())
		} else {
			keys = u.pollKeys()
		}
		if u.onTick != nil {
			u.onTick(u.game.TotalTicks(), keys)
		}
		se, err := u.game.Tick(keys)
		if err != nil {
			return fmt.Errorf("sdl: tick: %w", err)
		}
		_ = se

		if u.game.State() == engine.StateGameOver || u.game.State() == engine.StateQuit {
			u.running = false
		}

		if err := u.render(); err != nil {
			return err
		}
		u.renderer.Present()
		sdl.Delay(frameDelay)
	}
	return nil
}

func (u *UI) handleEvent(event sdl.Event) (quit bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			return true
		}
	}
	return false
}

// pollKeys reads the live keyboard state and maps it onto the engine's
// virtual-key bitset, following the teacher's SDL keyboard-state polling
// pattern in updateInput.
func (u *UI) pollKeys() control.Key {
	keys := sdl.GetKeyboardState()
	var k control.Key

	if keys[sdl.SCANCODE_UP] != 0 {
		k |= control.KeyUp
	}
	if keys[sdl.SCANCODE_DOWN] != 0 {
		k |= control.KeyDown
	}
	if keys[sdl.SCANCODE_LEFT] != 0 {
		k |= control.KeyLeft
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		k |= control.KeyRight
	}
	if keys[sdl.SCANCODE_Z] != 0 {
		k |= control.KeyRotL
	}
	if keys[sdl.SCANCODE_X] != 0 {
		k |= control.KeyRotR
	}
	if keys[sdl.SCANCODE_A] != 0 {
		k |= control.KeyRotH
	}
	if keys[sdl.SCANCODE_C] != 0 {
		k |= control.KeyHold
	}
	if keys[sdl.SCANCODE_RETURN] != 0 {
		k |= control.KeyStart
	}
	return k
}

func (u *UI) render() error {
	u.renderer.SetDrawColor(16, 16, 16, 255)
	u.renderer.Clear()

	f := u.game.Field()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if v := f.Cell(x, y); v != 0 {
				u.fillCell(x, y, v)
			}
		}
	}

	if p, _, _, _ := u.game.CurrentPiece(); p != piece.None {
		for _, blk := range u.game.CurrentBlocks() {
			bx, by := int(blk.X), int(blk.Y)
			if bx >= 0 && bx < f.Width && by >= 0 && by < f.Height {
				u.fillCell(bx, by, piece.Color[p])
			}
		}
	}
	return nil
}

func (u *UI) fillCell(x, y int, colorKey uint8) {
	rgb, ok := pieceRGB[colorKey]
	if !ok {
		rgb = [3]uint8{200, 200, 200}
	}
	u.renderer.SetDrawColor(rgb[0], rgb[1], rgb[2], 255)
	rect := sdl.Rect{
		X: int32(x * cellSize), Y: int32(y * cellSize),
		W: int32(cellSize - 1), H: int32(cellSize - 1),
	}
	u.renderer.FillRect(&rect)
}
