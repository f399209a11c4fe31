package cmd

import (
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/milestones"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/quiz"

	"github.com/spf13/cobra"
)

func runHome(_ *cobra.Command, _ []string) error {
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
	if b.db != nil {
		if stats, err = b.db.Stats(); err != nil {
			b.log.Warn("reading history", "err", err)
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("Welcome to FinFrenzy"))
	fmt.Println()
	fmt.Printf("  %s\n", cli.Accent("Did you know?"))
	fmt.Printf("  “%s”\n", quiz.Quote.Text)
	fmt.Printf("  %s\n\n", cli.Muted("— "+quiz.Quote.Author))

	rows := [][]string{
		{"Base Income", cli.FormatCurrency(config.BaseIncome(b.cfg))},
		{"Bonus Income", cli.FormatBonus(snap.BonusIncome)},
		{"Level", fmt.Sprintf("%d", snap.Level)},
		{"Achievements", fmt.Sprintf("%d / %d", snap.Unlocked(), len(snap.Achievements))},
		{"---"},
		{"Best Quiz Score", fmt.Sprintf("%d", stats.BestScore)},
		{"Balanced Budgets", fmt.Sprintf("%d / %d", stats.BalancedBudgets, stats.EvaluationsSubmitted)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Progress", "Value"}, Rows: rows}))
	fmt.Println()

	if !flagQuiet {
		fmt.Println(cli.Muted("  finfrenzy quiz     answer ten questions to earn bonus income"))
		fmt.Println(cli.Muted("  finfrenzy budget   check a 50/30/20 allocation"))
		fmt.Println(cli.Muted("  finfrenzy tui      open the interactive dashboard"))
		fmt.Println()
	}
	return nil
}
