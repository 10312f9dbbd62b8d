package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/unlock"
)

var unlocksCmd = &cobra.Command{
	Use:   "unlocks",
	Short: "List topics unlocked on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		markers, err := d.markers.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list unlocks: %w", err)
		}
		if len(markers) == 0 {
			fmt.Println("No topics unlocked yet.")
			return nil
		}

		for _, m := range markers {
			if id, ok := unlock.ParseMarker(m); ok {
				fmt.Printf("%-16s  item %d\n", m, id)
			} else {
				fmt.Println(m)
			}
		}
		fmt.Printf("\n%d unlocked\n", len(markers))
		return nil
	},
}
