package logx

import (
	"fmt"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component names the subsystem that produced a log entry.
type Component string

const (
	ComponentEngine     Component = "Engine"
	ComponentRandomizer Component = "Randomizer"
	ComponentRotation   Component = "Rotation"
	ComponentReplay     Component = "Replay"
	ComponentStorage    Component = "Storage"
	ComponentFrontend   Component = "Frontend"
)

// Entry is a single recorded log line. Tick names the game tick the entry
// was recorded under rather than just a wall-clock instant, so entries can
// be correlated back to deterministic replay positions.
type Entry struct {
	Timestamp time.Time
	Tick      uint64
	Component Component
	Level     Level
	Message   string
	Data      map[string]any
}

// Format renders e as a single human-readable line.
func (e *Entry) Format() string {
	ts := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s t=%d] [%s] %s: %s", ts, e.Tick, e.Component, e.Level, e.Message)
}
