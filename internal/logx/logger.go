// Package logx is a ring-buffered, component-filterable log sink fed by a
// buffered channel and drained by one goroutine. Disabled by default —
// logging here is opt-in. Unlike a plain wall-clock log, every entry is
// additionally stamped with the game tick it was recorded under, so a
// frontend or a post-mortem tool can correlate log lines back to an exact,
// replayable position in a deterministic run rather than just an instant
// in real time.
package logx

import (
	"fmt"
	"sync"
	"time"
)

// Logger is a component-filterable, level-filterable log sink backed by a
// circular buffer of the most recent entries.
type Logger struct {
	entries    []Entry
	entriesMu  sync.RWMutex
	maxEntries int
	writeIndex int
	entryCount int

	componentEnabled map[Component]bool
	componentMu      sync.RWMutex

	minLevel Level
	levelMu  sync.RWMutex

	// tick is the game tick new entries are stamped with, advanced once per
	// Game.Tick by whatever is driving the game loop. It never regresses the
	// buffer: entries already recorded keep the tick they were logged at.
	tick   uint64
	tickMu sync.RWMutex

	logChan  chan Entry
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// New creates a Logger with a ring buffer of at least 100 entries. Every
// component starts disabled; call SetComponentEnabled to opt one in.
func New(maxEntries int) *Logger {
	if maxEntries < 100 {
		maxEntries = 100
	}

	l := &Logger{
		entries:          make([]Entry, maxEntries),
		maxEntries:       maxEntries,
		componentEnabled: make(map[Component]bool),
		minLevel:         LevelInfo,
		logChan:          make(chan Entry, 1000),
		shutdown:         make(chan struct{}),
	}

	for _, c := range []Component{
		ComponentEngine, ComponentRandomizer, ComponentRotation,
		ComponentReplay, ComponentStorage, ComponentFrontend,
	} {
		l.componentEnabled[c] = false
	}

	l.wg.Add(1)
	go l.processEntries()

	return l
}

func (l *Logger) processEntries() {
	defer l.wg.Done()
	for {
		select {
		case e := <-l.logChan:
			l.addEntry(e)
		case <-l.shutdown:
			for {
				select {
				case e := <-l.logChan:
					l.addEntry(e)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) addEntry(e Entry) {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()

	l.entries[l.writeIndex] = e
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
}

// Log records a message for component at level, dropping it if the
// component is disabled, the level is less severe than the configured
// minimum (later in the LevelError..LevelTrace order), or the internal
// channel is momentarily full.
func (l *Logger) Log(component Component, level Level, message string, data map[string]any) {
	l.componentMu.RLock()
	enabled := l.componentEnabled[component]
	l.componentMu.RUnlock()
	if !enabled {
		return
	}

	l.levelMu.RLock()
	minLevel := l.minLevel
	l.levelMu.RUnlock()
	if level > minLevel {
		return
	}

	entry := Entry{
		Timestamp: time.Now(),
		Tick:      l.currentTick(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}

	select {
	case l.logChan <- entry:
	default:
	}
}

// Logf is Log with fmt.Sprintf-style formatting.
func (l *Logger) Logf(component Component, level Level, format string, args ...any) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

// SetTick records the current game tick; every entry logged afterward is
// stamped with it until the next call. The caller is expected to call this
// once per Game.Tick, before dispatching any logging for that tick.
func (l *Logger) SetTick(tick uint64) {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()
	l.tick = tick
}

func (l *Logger) currentTick() uint64 {
	l.tickMu.RLock()
	defer l.tickMu.RUnlock()
	return l.tick
}

// EntriesSince returns every buffered entry stamped at or after tick,
// oldest first. Used to pull the slice of log activity belonging to a
// specific stretch of a replay rather than scanning the whole buffer.
func (l *Logger) EntriesSince(tick uint64) []Entry {
	all := l.Entries()
	i := 0
	for i < len(all) && all[i].Tick < tick {
		i++
	}
	return all[i:]
}

// Entries returns a copy of every buffered entry, oldest first.
func (l *Logger) Entries() []Entry {
	l.entriesMu.RLock()
	defer l.entriesMu.RUnlock()

	if l.entryCount == 0 {
		return []Entry{}
	}

	out := make([]Entry, l.entryCount)
	if l.entryCount < l.maxEntries {
		copy(out, l.entries[:l.entryCount])
		return out
	}
	for i := 0; i < l.entryCount; i++ {
		out[i] = l.entries[(l.writeIndex+i)%l.maxEntries]
	}
	return out
}

// RecentEntries returns at most the last n buffered entries.
func (l *Logger) RecentEntries(n int) []Entry {
	all := l.Entries()
	if n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

// Clear empties the ring buffer without disturbing enable flags or level.
func (l *Logger) Clear() {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()
	l.entryCount = 0
	l.writeIndex = 0
}

// SetComponentEnabled opts a component in or out of logging.
func (l *Logger) SetComponentEnabled(c Component, enabled bool) {
	l.componentMu.Lock()
	defer l.componentMu.Unlock()
	l.componentEnabled[c] = enabled
}

// ComponentEnabled reports whether a component currently logs.
func (l *Logger) ComponentEnabled(c Component) bool {
	l.componentMu.RLock()
	defer l.componentMu.RUnlock()
	return l.componentEnabled[c]
}

// SetMinLevel sets the minimum level that will be recorded.
func (l *Logger) SetMinLevel(level Level) {
	l.levelMu.Lock()
	defer l.levelMu.Unlock()
	l.minLevel = level
}

// MinLevel returns the currently configured minimum level.
func (l *Logger) MinLevel() Level {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.minLevel
}

// Shutdown stops the drain goroutine after flushing any queued entries.
func (l *Logger) Shutdown() {
	close(l.shutdown)
	l.wg.Wait()
}
