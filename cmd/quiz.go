package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/nav"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <item-id>",
	Short: "Take the quiz for a roadmap item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		return runApp(cmd, nav.Quiz(id))
	},
}
