// Package config loads a TOML configuration file into an engine.Config,
// the same shape of concern as the teacher's flag-parsed emulator startup
// options in cmd/emulator/main.go, but file-based via the teacher's own
// (indirect, here promoted to direct) github.com/BurntSushi/toml
// dependency.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/randomizer"
	"faststack/internal/rotation"
)

// File is the on-disk TOML shape. Enum fields are plain strings so the
// file stays readable; Resolve maps them onto engine.Config's typed
// fields.
type File struct {
	FieldWidth  int `toml:"field_width"`
	FieldHeight int `toml:"field_height"`

	// Seed is a pointer so an absent "seed" key can be told apart from an
	// explicit "seed = 0" (engine.Config.SeedSet mirrors that distinction).
	Seed           *uint32 `toml:"seed"`
	Randomizer     string  `toml:"randomizer"`
	RotationSystem string `toml:"rotation_system"`

	Gravity         int `toml:"gravity"`
	SoftDropGravity int `toml:"soft_drop_gravity"`

	LockDelay int    `toml:"lock_delay"`
	LockStyle string `toml:"lock_style"`

	AREDelay       int  `toml:"are_delay"`
	LineClearDelay int  `toml:"line_clear_delay"`
	AreCancellable bool `toml:"are_cancellable"`

	ReadyPhaseLength    int  `toml:"ready_phase_length"`
	GoPhaseLength       int  `toml:"go_phase_length"`
	InfiniteReadyGoHold bool `toml:"infinite_ready_go_hold"`

	NextPieceCount int  `toml:"next_piece_count"`
	HoldEnabled    bool `toml:"hold_enabled"`

	FloorkickLimit int `toml:"floorkick_limit"`

	DASDelay             int    `toml:"das_delay"`
	DASSpeed             int    `toml:"das_speed"`
	InitialRotationStyle string `toml:"initial_rotation_style"`
	InitialHoldStyle     string `toml:"initial_hold_style"`

	GoalType string `toml:"goal_type"`
	Goal     int    `toml:"goal"`
}

var randomizerNames = map[string]randomizer.Type{
	"simple":     randomizer.Simple,
	"noszo_bag7": randomizer.NoszoBag7,
	"tgm1":       randomizer.TGM1,
	"tgm2":       randomizer.TGM2,
}

var rotationSystemNames = map[string]rotation.SystemType{
	"simple":     rotation.SystemSimple,
	"sega":       rotation.SystemSega,
	"srs":        rotation.SystemSRS,
	"arika_srs":  rotation.SystemArikaSRS,
	"tgm12":      rotation.SystemTGM12,
	"tgm3":       rotation.SystemTGM3,
	"dtet":       rotation.SystemDTET,
}

var lockStyleNames = map[string]engine.LockStyle{
	"entry": engine.LockEntry,
	"step":  engine.LockStep,
	"move":  engine.LockMove,
}

var initialActionStyleNames = map[string]control.InitialActionStyle{
	"none":       control.InitialNone,
	"persistent": control.InitialPersistent,
	"trigger":    control.InitialTrigger,
}

var goalTypeNames = map[string]engine.GoalType{
	"none":  engine.GoalNone,
	"lines": engine.GoalLines,
	"time":  engine.GoalTime,
}

// Load reads the TOML file at path into an engine.Config. A missing file
// is not an error: it yields engine.DefaultConfig() unchanged, matching
// spec.md §7's "missing config starts from documented defaults" reading.
// A malformed file or an unrecognized enum value yields a *engine.ConfigError
// wrapping the underlying cause.
func Load(path string) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &engine.ConfigError{Field: "file", Reason: err.Error()}
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return cfg, &engine.ConfigError{Field: "file", Reason: fmt.Sprintf("parse: %v", err)}
	}

	return Resolve(f, cfg)
}

// Resolve overlays a parsed File's set fields onto base, resolving its
// string enum fields against their known names. Zero-valued numeric
// fields in f are treated as "not specified" and left at base's value.
// Only Seed, read through a pointer, can be set to an explicit zero; a
// zero floorkick_limit or goal in the file leaves base's value in place.
func Resolve(f File, base engine.Config) (engine.Config, error) {
	cfg := base

	if f.FieldWidth != 0 {
		cfg.FieldWidth = f.FieldWidth
	}
	if f.FieldHeight != 0 {
		cfg.FieldHeight = f.FieldHeight
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
		cfg.SeedSet = true
	}

	if f.Randomizer != "" {
		rt, ok := randomizerNames[f.Randomizer]
		if !ok {
			return base, &engine.ConfigError{Field: "randomizer", Reason: "unknown value " + f.Randomizer}
		}
		cfg.RandomizerType = rt
	}
	if f.RotationSystem != "" {
		rs, ok := rotationSystemNames[f.RotationSystem]
		if !ok {
			return base, &engine.ConfigError{Field: "rotation_system", Reason: "unknown value " + f.RotationSystem}
		}
		cfg.RotationSystem = rs
	}

	if f.Gravity != 0 {
		cfg.Gravity = f.Gravity
	}
	if f.SoftDropGravity != 0 {
		cfg.SoftDropGravity = f.SoftDropGravity
	}
	if f.LockDelay != 0 {
		cfg.LockDelay = f.LockDelay
	}
	if f.LockStyle != "" {
		ls, ok := lockStyleNames[f.LockStyle]
		if !ok {
			return base, &engine.ConfigError{Field: "lock_style", Reason: "unknown value " + f.LockStyle}
		}
		cfg.LockStyle = ls
	}

	if f.AREDelay != 0 {
		cfg.AREDelay = f.AREDelay
	}
	if f.LineClearDelay != 0 {
		cfg.LineClearDelay = f.LineClearDelay
	}
	cfg.AreCancellable = f.AreCancellable || cfg.AreCancellable
	if f.ReadyPhaseLength != 0 {
		cfg.ReadyPhaseLength = f.ReadyPhaseLength
	}
	if f.GoPhaseLength != 0 {
		cfg.GoPhaseLength = f.GoPhaseLength
	}
	cfg.InfiniteReadyGoHold = f.InfiniteReadyGoHold

	if f.NextPieceCount != 0 {
		cfg.NextPieceCount = f.NextPieceCount
	}
	cfg.HoldEnabled = f.HoldEnabled || cfg.HoldEnabled

	if f.FloorkickLimit != 0 {
		cfg.FloorkickLimit = f.FloorkickLimit
	}

	if f.DASDelay != 0 {
		cfg.DAS.DASDelay = f.DASDelay
	}
	if f.DASSpeed != 0 {
		cfg.DAS.DASSpeed = f.DASSpeed
	}
	if f.InitialRotationStyle != "" {
		s, ok := initialActionStyleNames[f.InitialRotationStyle]
		if !ok {
			return base, &engine.ConfigError{Field: "initial_rotation_style", Reason: "unknown value " + f.InitialRotationStyle}
		}
		cfg.DAS.InitialRotationStyle = s
	}
	if f.InitialHoldStyle != "" {
		s, ok := initialActionStyleNames[f.InitialHoldStyle]
		if !ok {
			return base, &engine.ConfigError{Field: "initial_hold_style", Reason: "unknown value " + f.InitialHoldStyle}
		}
		cfg.DAS.InitialHoldStyle = s
	}

	if f.GoalType != "" {
		gt, ok := goalTypeNames[f.GoalType]
		if !ok {
			return base, &engine.ConfigError{Field: "goal_type", Reason: "unknown value " + f.GoalType}
		}
		cfg.Goal.Type = gt
	}
	if f.Goal != 0 {
		cfg.Goal.Target = f.Goal
	}

	return cfg, nil
}
