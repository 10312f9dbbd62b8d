package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz completions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		records, err := d.store.CompletionRepo().RecentCompletions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query completions: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No completions recorded.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-7s  %-7s  %-8s  %-6s  %s\n",
			"ID", "Timestamp", "Item", "Score", "Reported", "Unlock", "Error")
		fmt.Println(strings.Repeat("─", 80))

		for _, r := range records {
			reported := "✗"
			if r.Reported {
				reported = "✓"
			}
			unlocked := ""
			if r.NewUnlock {
				unlocked = "✦"
			}
			errText := r.Error
			if len(errText) > 30 {
				errText = errText[:27] + "..."
			}
			fmt.Printf("%-5d  %-19s  %-7d  %-7s  %-8s  %-6s  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.RoadmapItemID,
				fmt.Sprintf("%d/%d", r.Score, r.Total),
				reported, unlocked, errText)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of records to show")
}
