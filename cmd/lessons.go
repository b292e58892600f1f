package cmd

import (
	"github.com/spf13/cobra"

	"github.com/akshayb/jacpath/internal/app"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons [category]",
	Short: "Browse lessons (core, advanced, or practical)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		category := "core"
		if len(args) > 0 {
			category = args[0]
		}
		return app.RunLessons(deps, category)
	},
}
