// Command faststack is the FastStack CLI: play the engine live through one
// of three frontends, replay a recorded session, or list hiscores.
// Grounded on the teacher's cmd/emulator/main.go flag set (rom/scale/log),
// generalized here into a cobra subcommand tree the way sixafter-nanoid-cli's
// go.mod pulls in spf13/cobra for the same purpose.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
