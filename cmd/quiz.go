package cmd

import (
	"github.com/spf13/cobra"

	"github.com/akshayb/jacpath/internal/app"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <quiz-id>",
	Short: "Take a quiz by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.RunQuiz(deps, args[0])
	},
}
