package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/config"
	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pathwise",
	Short: "Terminal learning companion",
	Long:  "Pathwise walks a learning roadmap in the terminal and unlocks topics as you pass their quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nav.Home())
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PATHWISE_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "Backend base URL (overrides PATHWISE_API_URL env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner id sent with completions (overrides PATHWISE_USER_ID env var)")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(roadmapsCmd)
	rootCmd.AddCommand(unlocksCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.APIBaseURL = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.UserID = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag or PATHWISE_DB
// (both already folded into cfg), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
