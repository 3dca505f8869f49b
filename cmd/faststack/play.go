package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"faststack/internal/config"
	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/frontend/headless"
	"faststack/internal/frontend/sdl"
	"faststack/internal/frontend/terminal"
	"faststack/internal/replay"
)

func playCmd() *cobra.Command {
	var (
		configPath string
		frontend   string
		seed       uint32
		recordPath string
		logEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a live session through a frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
				cfg.SeedSet = true
			}

			game, err := engine.NewGame(cfg)
			if err != nil {
				return err
			}

			log := newLogger(logEnabled)
			defer log.Shutdown()

			var rec *replay.Recorder
			if recordPath != "" {
				rec = replay.NewRecorder(replay.Overview{Config: cfg, Goal: cfg.Goal})
			}
			tickHook := func(tick uint64, keys control.Key) {
				log.SetTick(tick)
				if rec != nil {
					rec.Record(tick, keys)
				}
			}

			switch frontend {
			case "headless":
				runner := headless.NewRunner(game, tickDuration(cfg), log)
				runner.SetTickHook(tickHook)
				err = runner.Run()
			case "sdl":
				var ui *sdl.UI
				ui, err = sdl.New(game)
				if err != nil {
					return err
				}
				ui.SetTickHook(tickHook)
				err = ui.Run(ticksPerSecond(cfg))
			case "terminal", "":
				model := terminal.NewModel(game, tickDuration(cfg)).WithTickHook(tickHook)
				err = terminal.Run(model)
			default:
				return fmt.Errorf("unknown frontend %q (want terminal, sdl or headless)", frontend)
			}
			if err != nil {
				return err
			}

			if rec != nil {
				overview := rec.Overview()
				overview.SummarizeFrom(game)
				rec.SetOverview(overview)

				f, err := os.Create(recordPath)
				if err != nil {
					return fmt.Errorf("play: creating record file: %w", err)
				}
				defer f.Close()
				return replay.Encode(f, replay.Record{Overview: rec.Overview(), Deltas: rec.Deltas()})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "faststack.toml", "path to a TOML configuration file")
	cmd.Flags().StringVar(&frontend, "frontend", "terminal", "frontend to use: terminal, sdl or headless")
	cmd.Flags().StringVar(&recordPath, "record", "", "record this session's input stream to FILE")
	cmd.Flags().BoolVar(&logEnabled, "log", false, "enable structured logging to the in-memory ring buffer")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "override the configured PRNG seed")

	return cmd
}

// ticksPerSecond derives a frontend's tick rate from the engine's own
// notion of "how long is a tick" — here a simple fixed 60Hz default, since
// Config carries delays in ticks rather than wall-clock time (spec.md §9's
// ms→ticks rounding decision, recorded in DESIGN.md).
func ticksPerSecond(cfg engine.Config) int {
	return 60
}

func tickDuration(cfg engine.Config) time.Duration {
	return time.Second / time.Duration(ticksPerSecond(cfg))
}
