package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func hiscoreCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hiscore",
		Short: "Inspect stored hiscores",
	}
	root.AddCommand(hiscoreListCmd())
	return root
}

func hiscoreListCmd() *cobra.Command {
	var (
		goal int
		db   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored hiscore entries, fastest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(db)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.ListHiscores(goal)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no hiscores recorded yet")
				return nil
			}

			fmt.Printf("%-8s %-10s %-12s %-8s %-12s %s\n", "replay", "ticks", "ticks/sec", "goal", "keys/tick", "date")
			for _, e := range entries {
				fmt.Printf("%-8d %-10d %-12.2f %-8d %-12.2f %s\n",
					e.ReplayID, e.Ticks, e.TicksPerSecond, e.Goal, e.KeysPerTick, e.Date.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&goal, "goal", 0, "filter to entries with this goal target (0 = no filter)")
	cmd.Flags().StringVar(&db, "db", "", "path to the hiscore/replay database directory (default: ./faststack-data)")
	return cmd
}
