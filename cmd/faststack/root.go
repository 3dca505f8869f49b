package main

import (
	"github.com/spf13/cobra"
)

// rootCmd builds the faststack command tree fresh on each invocation
// (tests construct their own copy, so no command state leaks between
// Execute calls).
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "faststack",
		Short: "A deterministic, frame-accurate falling-block engine",
		Long: "faststack drives the FastStack core engine through a live frontend,\n" +
			"replays a previously recorded session, or reports stored hiscores.",
		SilenceUsage: true,
	}

	root.AddCommand(playCmd())
	root.AddCommand(replayCmd())
	root.AddCommand(hiscoreCmd())
	return root
}
