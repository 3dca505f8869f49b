// Package headless drives the engine from raw, unbuffered stdin with no
// drawing at all — the kernel/freestanding frontend's closest idiomatic Go
// analogue (no freestanding OS code is idiomatic Go; see SPEC_FULL.md).
// Grounded on IntuitionAmiga-IntuitionEngine/terminal_host.go's raw-mode,
// non-blocking stdin reader built on golang.org/x/term.
package headless

import (
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/logx"
)

// keyHoldWindow is how long a raw keypress is treated as "still held"
// after its most recent byte arrived. A real terminal sends no key-up
// event, only repeated bytes while a key is down (OS auto-repeat) or
// nothing once released, so a key is considered released once this
// window elapses without a fresh byte.
const keyHoldWindow = 120 * time.Millisecond

// byteBindings maps a raw input byte to the virtual key it presses.
var byteBindings = map[byte]control.Key{
	'w': control.KeyUp,
	's': control.KeyDown,
	'a': control.KeyLeft,
	'd': control.KeyRight,
	'j': control.KeyRotL,
	'k': control.KeyRotR,
	'l': control.KeyRotH,
	' ': control.KeyHold,
	'\n': control.KeyStart,
}

// Runner drives one engine.Game from raw stdin bytes at a fixed tick rate,
// with no rendering — suitable for scripted/CI driving or a genuinely
// headless deployment.
type Runner struct {
	game    *engine.Game
	log     *logx.Logger
	tickDur time.Duration

	mu       sync.Mutex
	lastSeen map[control.Key]time.Time

	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh chan struct{}
	done   chan struct{}
	stop   sync.Once

	onTick func(tick uint64, keys control.Key)

	// keySource, when set, replaces live stdin polling with a scripted
	// keystate per tick — used to deterministically drive a recorded
	// replay through the same rendering loop as live play.
	keySource func(tick uint64) control.Key
}

// SetKeySource installs fn as the source of each tick's keystate in place
// of live stdin, for deterministic replay playback.
func (r *Runner) SetKeySource(fn func(tick uint64) control.Key) {
	r.keySource = fn
}

// NewRunner constructs a headless runner over game, ticking every tickDur.
// log may be nil; passing a Logger with ComponentFrontend enabled traces
// every tick's resolved keystate.
func NewRunner(game *engine.Game, tickDur time.Duration, log *logx.Logger) *Runner {
	return &Runner{
		game:     game,
		log:      log,
		tickDur:  tickDur,
		lastSeen: make(map[control.Key]time.Time),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SetTickHook installs fn to be called with each tick's resolved keystate
// immediately before it is fed to the engine, letting a caller (e.g. a
// replay.Recorder) observe every tick without the engine or frontend
// knowing about recording at all.
func (r *Runner) SetTickHook(fn func(tick uint64, keys control.Key)) {
	r.onTick = fn
}

// Run drives the engine until it reaches GAMEOVER/QUIT or Stop is called.
// With no KeySource installed it puts stdin into raw, non-blocking mode
// and reads live keypresses; with one installed (deterministic replay
// playback) it never touches stdin at all.
func (r *Runner) Run() error {
	defer close(r.done)

	if r.keySource == nil {
		r.fd = int(os.Stdin.Fd())

		oldState, err := term.MakeRaw(r.fd)
		if err != nil {
			return fmt.Errorf("headless: set raw mode: %w", err)
		}
		r.oldTermState = oldState
		defer r.restoreTerm()

		if err := syscall.SetNonblock(r.fd, true); err != nil {
			return fmt.Errorf("headless: set nonblocking stdin: %w", err)
		}
		r.nonblockSet = true

		go r.readLoop()
	}

	ticker := time.NewTicker(r.tickDur)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return nil
		case <-ticker.C:
			var keys control.Key
			if r.keySource != nil {
				keys = r.keySource(r.game.TotalTicks())
			} else {
				keys = r.currentKeys()
			}
			if r.onTick != nil {
				r.onTick(r.game.TotalTicks(), keys)
			}
			se, err := r.game.Tick(keys)
			if err != nil {
				return nil
			}
			if r.log != nil {
				r.log.Logf(logx.ComponentFrontend, logx.LevelDebug, "tick=%d keys=%04x se=%04x", r.game.TotalTicks(), keys, se)
			}
			if r.game.State() == engine.StateGameOver || r.game.State() == engine.StateQuit {
				return nil
			}
		}
	}
}

// Stop signals Run to exit and waits for stdin to be restored.
func (r *Runner) Stop() {
	r.stop.Do(func() { close(r.stopCh) })
	<-r.done
}

func (r *Runner) restoreTerm() {
	if r.nonblockSet {
		_ = syscall.SetNonblock(r.fd, false)
		r.nonblockSet = false
	}
	if r.oldTermState != nil {
		_ = term.Restore(r.fd, r.oldTermState)
		r.oldTermState = nil
	}
}

func (r *Runner) readLoop() {
	buf := make([]byte, 1)
	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		n, err := syscall.Read(r.fd, buf)
		if n > 0 {
			if k, ok := byteBindings[buf[0]]; ok {
				r.mu.Lock()
				r.lastSeen[k] = time.Now()
				r.mu.Unlock()
			}
			if buf[0] == 0x03 { // Ctrl-C
				r.game.Quit()
			}
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err == io.EOF || err != nil {
			return
		}
	}
}

// currentKeys folds lastSeen into a bitset of keys still within their
// hold window.
func (r *Runner) currentKeys() control.Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var keys control.Key
	for k, t := range r.lastSeen {
		if now.Sub(t) <= keyHoldWindow {
			keys |= k
		}
	}
	return keys
}
