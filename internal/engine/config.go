package engine

import (
	"faststack/internal/control"
	"faststack/internal/randomizer"
	"faststack/internal/rotation"
)

// GravityUnit is how many sub-cell units of fall progress equal one whole
// cell of descent. Gravity and SoftDropGravity are expressed in these
// units per tick, giving sub-cell-per-tick fall rates without floats.
const GravityUnit = 256

// Config fully parameterizes one game session. It is copied into the Game
// at NewGame/Reset, so later mutation of a Config the caller kept does not
// affect a running Game.
type Config struct {
	FieldWidth, FieldHeight int

	Seed           uint32
	// SeedSet distinguishes an explicitly chosen seed (including the valid
	// seed 0) from "no seed given", in which case reset derives one from
	// the wall clock instead of silently seeding with 0.
	SeedSet        bool
	RandomizerType randomizer.Type
	RotationSystem rotation.SystemType

	// Gravity and SoftDropGravity are fall rates in GravityUnit-per-tick.
	Gravity         int
	SoftDropGravity int

	LockDelay int
	LockStyle LockStyle

	// AREDelay and LineClearDelay are both in ticks; the config file's
	// are_delay and line_clear_delay are read as tick counts unchanged and
	// nothing converts them from milliseconds.
	AREDelay       int
	LineClearDelay int
	// AreCancellable lets any live input (rotation, movement, soft drop,
	// hard drop, hold) or a rotation/hold latched during ARE (via IRS/IHS)
	// cut the wait short instead of running the full AREDelay, matching the
	// reference engine's entry-delay skip.
	AreCancellable bool

	ReadyPhaseLength    int
	GoPhaseLength       int
	InfiniteReadyGoHold bool

	NextPieceCount int
	HoldEnabled    bool

	// FloorkickLimit caps how many in-air kicks with a nonzero vertical
	// offset a single piece may use before further such kicks stop
	// refreshing its lock timer. A negative value means unlimited.
	FloorkickLimit int

	DAS control.Config

	Goal Goal
}

// DefaultConfig returns a Config with commonly-used, self-consistent
// values: a 10x20 field, SRS rotation, NOSZO_BAG7 randomizer, standard
// lock/ARE timings and no goal.
func DefaultConfig() Config {
	return Config{
		FieldWidth:      10,
		FieldHeight:     20,
		Seed:            1,
		SeedSet:         true,
		RandomizerType:  randomizer.NoszoBag7,
		RotationSystem:  rotation.SystemSRS,
		Gravity:         16,
		SoftDropGravity: GravityUnit,
		LockDelay:       30,
		LockStyle:       LockStep,
		AREDelay:        18,
		LineClearDelay:  20,
		AreCancellable:  false,
		ReadyPhaseLength: 50,
		GoPhaseLength:    30,
		NextPieceCount:   4,
		HoldEnabled:      true,
		FloorkickLimit:   -1,
		DAS: control.Config{
			DASDelay: 10,
			DASSpeed: 2,
		},
		Goal: Goal{Type: GoalNone},
	}
}

func (c Config) validate() error {
	if c.FieldWidth <= 0 || c.FieldWidth > 20 {
		return &ConfigError{Field: "FieldWidth", Reason: "must be in (0, 20]"}
	}
	if c.FieldHeight <= 0 || c.FieldHeight > 25 {
		return &ConfigError{Field: "FieldHeight", Reason: "must be in (0, 25]"}
	}
	if c.Gravity < 0 {
		return &ConfigError{Field: "Gravity", Reason: "must be non-negative"}
	}
	if c.SoftDropGravity < 0 {
		return &ConfigError{Field: "SoftDropGravity", Reason: "must be non-negative"}
	}
	if c.LockDelay < 0 {
		return &ConfigError{Field: "LockDelay", Reason: "must be non-negative"}
	}
	if c.AREDelay < 0 {
		return &ConfigError{Field: "AREDelay", Reason: "must be non-negative"}
	}
	if c.LineClearDelay < 0 {
		return &ConfigError{Field: "LineClearDelay", Reason: "must be non-negative"}
	}
	if c.NextPieceCount < 1 {
		return &ConfigError{Field: "NextPieceCount", Reason: "must be at least 1"}
	}
	if c.RotationSystem < 0 || int(c.RotationSystem) >= len(rotation.Systems) {
		return &ConfigError{Field: "RotationSystem", Reason: "unknown rotation system"}
	}
	if c.Goal.Type != GoalNone && c.Goal.Target <= 0 {
		return &ConfigError{Field: "Goal.Target", Reason: "must be positive when a goal is set"}
	}
	return nil
}
