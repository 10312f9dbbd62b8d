package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/unlock"
)

var roadmapsCmd = &cobra.Command{
	Use:   "roadmaps",
	Short: "List roadmaps and their items",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		roadmaps, err := d.client.ListRoadmaps(ctx)
		if err != nil {
			return fmt.Errorf("list roadmaps: %w", err)
		}
		unlocked, err := unlock.LoadSet(ctx, d.markers)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Could not read unlocks:", err)
		}

		shown := 0
		for _, rm := range roadmaps {
			if topic != "" && !strings.Contains(strings.ToLower(rm.Topic), strings.ToLower(topic)) {
				continue
			}
			shown++
			fmt.Printf("%s (%s)\n", rm.Topic, rm.Experience)
			fmt.Println(strings.Repeat("─", 60))
			for _, it := range rm.Items {
				badge := ""
				if unlocked.Has(it.ID) {
					badge = "  NEW"
				}
				fmt.Printf("  %-6d  %-40s%s\n", it.ID, it.Title, badge)
			}
			fmt.Println()
		}

		fmt.Printf("%d roadmaps\n", shown)
		return nil
	},
}

func init() {
	roadmapsCmd.Flags().String("topic", "", "Only show roadmaps whose topic contains this text")
}
