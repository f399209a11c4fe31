package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/budget"
	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/model"

	"github.com/spf13/cobra"
)

var (
	budgetAlloc    *allocationFlags
	budgetIncome   float64
	budgetFormat   = formatTable
	budgetNoRecord bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Check an allocation against the 50/30/20 rule",
	Long: "Evaluate how income is split across rent, food, savings, entertainment\n" +
		"and miscellaneous. Needs (rent, food) should get 50%, wants\n" +
		"(entertainment, misc) 30% and savings 20%, each within $20, and the\n" +
		"whole income must be allocated. Bonus income earned in the quiz is added.",
	Example: "  finfrenzy budget --rent 250 --food 250 --savings 200 --entertainment 150 --misc 150",
	RunE:    runBudget,
}

func init() {
	budgetAlloc = newAllocationFlags(budgetCmd.Flags())
	budgetCmd.Flags().Float64Var(&budgetIncome, "income", 0, "Base income for this evaluation (default from config)")
	budgetCmd.Flags().Var(&budgetFormat, "format", "Output format: table, json or yaml")
	budgetCmd.Flags().BoolVar(&budgetNoRecord, "no-record", false, "Do not save this evaluation to history")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	base := config.BaseIncome(b.cfg)
	if cmd.Flags().Changed("income") {
		base = budgetIncome
	}
	bonus, err := carryover.BonusIncome(b.progress)
	if err != nil {
		return err
	}

	res, err := budget.Evaluate(base, bonus, budgetAlloc.allocation())
	if err != nil {
		return err
	}
	b.log.Debug("budget evaluated", "total_income", res.TotalIncome, "balanced", res.IsBalanced)

	if !budgetNoRecord && b.db != nil {
		_, err := b.db.RecordEvaluation(model.EvaluationRecord{
			TotalIncome:    res.TotalIncome,
			TotalAllocated: res.TotalAllocated,
			Balanced:       res.IsBalanced,
			SubmittedAt:    time.Now(),
		})
		if err != nil {
			b.log.Warn("recording evaluation", "err", err)
		}
	}

	if budgetFormat != formatTable {
		return writeStructured(os.Stdout, budgetFormat, res)
	}
	printBudget(res)
	return nil
}

func printBudget(res model.EvaluationResult) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET CHECK  50 / 30 / 20"))
	fmt.Println()

	income := [][]string{
		{"Base Income", cli.FormatCurrency(res.BaseIncome)},
		{"Bonus Income", cli.FormatBonus(res.BonusIncome)},
		{"Total Income", cli.FormatCurrency(res.TotalIncome)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Income", "Amount"}, Rows: income}))
	fmt.Println()

	var rows [][]string
	for _, c := range model.Categories {
		rows = append(rows, []string{
			c.Label(),
			cli.FormatCurrency(res.Allocated[c]),
			cli.FormatCurrency(res.SubTargets[c]),
			cli.Check(res.NearTarget[c]),
		})
	}
	rows = append(rows, []string{"---"})
	for _, bk := range model.Buckets {
		rows = append(rows, []string{
			fmt.Sprintf("%s (%s)", bk, cli.FormatPercent(bk.Share())),
			cli.FormatCurrency(res.BucketAllocated(bk)),
			cli.FormatCurrency(res.Targets.For(bk)),
			cli.Check(budget.WithinTolerance(res.BucketAllocated(bk), res.Targets.For(bk))),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total",
		cli.FormatCurrency(res.TotalAllocated),
		cli.FormatCurrency(res.TotalIncome),
		cli.Check(res.TotalAllocated == res.TotalIncome),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Allocated", "Target", "On target"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Printf("  Allocated %s\n\n", cli.RenderProgressBar(budget.Progress(res), 30, res.IsBalanced))

	title, message := budget.Feedback(res)
	fmt.Print(cli.RenderVerdict(res.IsBalanced, title, message))
	fmt.Println()
}
