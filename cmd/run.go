package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/app"
	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/unlock"
)

// runApp opens the store, builds dependencies, and launches the TUI at route.
func runApp(cmd *cobra.Command, route nav.Route) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	completions := d.store.CompletionRepo()
	opts := app.Options{
		Catalog: d.client,
		Graph:   d.client,
		Loader:  quiz.NewGateway(d.client),
		Reporter: progress.NewReporter(d.client,
			progress.WithHistory(completions),
			progress.WithLogger(d.log),
		),
		Unlocks: unlock.NewFlow(d.markers, d.client, d.log),
		Markers: d.markers,
		History: completions,
		User:    progress.UserContext{UserID: d.cfg.UserID},
		Logger:  d.log,
	}

	d.log.Info().Str("route", route.String()).Msg("starting")
	return app.Run(opts, route)
}

var openCmd = &cobra.Command{
	Use:   "open <route>",
	Short: "Start at a route, e.g. /roadmap or /quiz/12",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		route, err := nav.Parse(args[0])
		if err != nil {
			return err
		}
		return runApp(cmd, route)
	},
}
