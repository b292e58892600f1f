package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akshayb/jacpath/internal/config"
	"github.com/akshayb/jacpath/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent quiz attempts from local history",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer func() { _ = st.Close() }()

		attempts, err := st.Attempts().Recent(cmd.Context(), 20)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tQUIZ\tSCORE\tRESULT")
		for _, a := range attempts {
			result := "failed"
			if a.Passed {
				result = "passed"
			}
			fmt.Fprintf(w, "%s\t%s\t%d/%d (%.0f%%)\t%s\n",
				a.FinishedAt.Format("2006-01-02 15:04"),
				a.QuizTitle,
				a.CorrectAnswers, a.TotalQuestions, a.Score,
				result,
			)
		}
		return w.Flush()
	},
}
