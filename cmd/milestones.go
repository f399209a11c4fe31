package cmd

import (
	"fmt"
	"os"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/milestones"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/quiz"

	"github.com/spf13/cobra"
)

var milestonesFormat = formatTable

// recentQuizLimit caps the recent quiz runs listed by milestones.
const recentQuizLimit = 5

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "Show level, achievements and play history",
	RunE:  runMilestones,
}

func init() {
	milestonesCmd.Flags().Var(&milestonesFormat, "format", "Output format: table, json or yaml")
	rootCmd.AddCommand(milestonesCmd)
}

// milestonesReport is the structured output of the milestones command.
type milestonesReport struct {
	milestones.Snapshot `yaml:",inline"`

	History model.HistoryStats `json:"history" yaml:"history"`
	Recent  []model.QuizResult `json:"recent_quizzes" yaml:"recent_quizzes"`
}

func runMilestones(_ *cobra.Command, _ []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	snap, err := milestones.Load(b.progress)
	if err != nil {
		return err
	}
	var stats model.HistoryStats
	recent := []model.QuizResult{}
	if b.db != nil {
		if stats, err = b.db.Stats(); err != nil {
			return err
		}
		if recent, err = b.db.RecentQuizzes(recentQuizLimit); err != nil {
			return err
		}
	}

	if milestonesFormat != formatTable {
		return writeStructured(os.Stdout, milestonesFormat, milestonesReport{Snapshot: snap, History: stats, Recent: recent})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MILESTONES  Level %d", snap.Level)))
	fmt.Println()
	fmt.Printf("  Next level %s\n\n", cli.RenderProgressBar(snap.LevelProgress, 30, false))

	rows := make([][]string, 0, len(snap.Achievements))
	for _, a := range snap.Achievements {
		status := "locked"
		if a.Unlocked {
			status = "unlocked"
		}
		rows = append(rows, []string{a.Tier.Icon() + " " + a.Title, a.Tier.String(), a.Description, status})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Achievements %d/%d", snap.Unlocked(), len(snap.Achievements)),
		Headers: []string{"Achievement", "Tier", "Goal", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	history := [][]string{
		{"Bonus Income", cli.FormatBonus(snap.BonusIncome)},
		{"Quizzes Completed", fmt.Sprintf("%d", stats.QuizzesCompleted)},
		{"Best Quiz Score", fmt.Sprintf("%d", stats.BestScore)},
		{"Budgets Submitted", fmt.Sprintf("%d", stats.EvaluationsSubmitted)},
		{"Balanced Budgets", fmt.Sprintf("%d", stats.BalancedBudgets)},
	}
	if stats.LastQuizAt != nil {
		history = append(history, []string{"Last Quiz", stats.LastQuizAt.Local().Format("Jan 2 15:04")})
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"History", "Value"}, Rows: history}))
	fmt.Println()

	if len(recent) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recent Quizzes",
			Headers: []string{"Completed", "Score", "Bonus"},
			Rows:    recentQuizRows(recent),
		}))
		fmt.Println()
	}
	return nil
}

// recentQuizRows formats quiz runs for the recent quizzes table.
func recentQuizRows(runs []model.QuizResult) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.CompletedAt.Local().Format("Jan 2 15:04"),
			cli.FormatScore(r.Score, r.Questions*quiz.PointsPerCorrect),
			cli.FormatBonus(float64(r.Score)),
		})
	}
	return rows
}
