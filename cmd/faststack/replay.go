package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"faststack/internal/control"
	"faststack/internal/engine"
	"faststack/internal/frontend/headless"
	"faststack/internal/frontend/sdl"
	"faststack/internal/frontend/terminal"
	"faststack/internal/replay"
)

func replayCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "replay",
		Short: "Play back or inspect a recorded session",
	}
	root.AddCommand(replayPlayCmd())
	root.AddCommand(replayShowCmd())
	return root
}

func replayPlayCmd() *cobra.Command {
	var frontend string

	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Replay a recorded session's input stream against a fresh game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadRecord(args[0])
			if err != nil {
				return err
			}

			game, err := engine.NewGame(rec.Overview.Config)
			if err != nil {
				return err
			}

			player := replay.NewPlayer(rec.Overview, rec.Deltas)
			keySource := func(tick uint64) control.Key {
				return player.KeysAt(tick)
			}

			switch frontend {
			case "headless":
				runner := headless.NewRunner(game, tickDuration(rec.Overview.Config), nil)
				runner.SetKeySource(keySource)
				return runner.Run()
			case "terminal", "":
				model := terminal.NewModel(game, tickDuration(rec.Overview.Config)).WithKeySource(keySource)
				return terminal.Run(model)
			case "sdl":
				ui, err := sdl.New(game)
				if err != nil {
					return err
				}
				ui.SetKeySource(keySource)
				return ui.Run(ticksPerSecond(rec.Overview.Config))
			default:
				return fmt.Errorf("unknown frontend %q (want terminal, sdl or headless)", frontend)
			}
		},
	}
	cmd.Flags().StringVar(&frontend, "frontend", "terminal", "frontend to use: terminal, sdl or headless")
	return cmd
}

func replayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a recorded session's overview and tick count, without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadRecord(args[0])
			if err != nil {
				return err
			}
			ov := rec.Overview
			fmt.Printf("field:        %dx%d\n", ov.Config.FieldWidth, ov.Config.FieldHeight)
			fmt.Printf("seed:         %d\n", ov.Config.Seed)
			fmt.Printf("rotation:     %d\n", ov.Config.RotationSystem)
			fmt.Printf("randomizer:   %d\n", ov.Config.RandomizerType)
			fmt.Printf("goal:         type=%d target=%d\n", ov.Goal.Type, ov.Goal.Target)
			fmt.Printf("final state:  %s\n", ov.FinalState)
			fmt.Printf("total ticks:  %d\n", ov.TotalTicks)
			fmt.Printf("lines:        %d\n", ov.LinesCleared)
			fmt.Printf("blocks:       %d\n", ov.BlocksPlaced)
			fmt.Printf("wasted d/r:   %d/%d\n", ov.WastedDirection, ov.WastedRotation)
			fmt.Printf("deltas:       %d\n", len(rec.Deltas))
			return nil
		},
	}
}

func loadRecord(path string) (replay.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return replay.Record{}, fmt.Errorf("replay: opening %s: %w", path, err)
	}
	defer f.Close()
	return replay.Decode(f)
}
