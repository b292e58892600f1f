package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/app"
	"github.com/akshayb/jacpath/internal/config"
	"github.com/akshayb/jacpath/internal/logger"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/walker"
)

var rootCmd = &cobra.Command{
	Use:   "jacpath",
	Short: "Terminal client for the Jac learning platform",
	Long:  "jacpath is a terminal app for learning the Jac language. Lessons, quizzes, and a mastery skill map, powered by Jaseci walkers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Run(deps)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/jacpath/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "User id sent to the backend (overrides config)")
	rootCmd.PersistentFlags().String("server", "", "Backend base URL (overrides config)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.Walker.UserID = v
	}
	if v, _ := cmd.Flags().GetString("server"); v != "" {
		cfg.Walker.BaseURL = v
	}
	return cfg, nil
}

// buildDeps assembles the shared services for the TUI. The returned
// cleanup closes the store and flushes the log.
func buildDeps(cmd *cobra.Command) (app.Deps, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return app.Deps{}, nil, err
	}

	wcfg := walker.Config{
		BaseURL: cfg.Walker.BaseURL,
		UserID:  cfg.Walker.UserID,
		Timeout: cfg.Walker.Timeout(),
	}
	if err := wcfg.Validate(); err != nil {
		return app.Deps{}, nil, fmt.Errorf("%w (set walker.user_id in the config file or pass --user)", err)
	}

	log := logger.New(cfg.Log.File, cfg.Log.Level)
	client := walker.WithLogging(walker.NewHTTPClient(wcfg), log)

	deps := app.Deps{
		Client: client,
		Log:    log,
		UserID: cfg.Walker.UserID,
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		// The app still works without local history.
		log.Warn("open attempt store failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Warning: local history unavailable:", err)
	} else {
		deps.Attempts = st.Attempts()
	}

	cleanup := func() {
		if st != nil {
			_ = st.Close()
		}
		_ = log.Sync()
	}
	return deps, cleanup, nil
}
