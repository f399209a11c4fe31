package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/quiz"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagAccessible bool

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer ten money questions to earn bonus income",
	Long: "Each correct answer is worth 10 points. Your final score becomes bonus\n" +
		"income for the next budget round.",
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().BoolVar(&flagAccessible, "accessible", false, "Use plain prompts suitable for screen readers")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(_ *cobra.Command, _ []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	s, err := quiz.NewSession(quiz.DefaultBank(), b.progress)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FINFRENZY QUIZ"))
	fmt.Println()

	for s.State() != quiz.Completed {
		q := s.Current()

		var choice string
		field := huh.NewSelect[string]().
			Title(fmt.Sprintf("Question %d of %d", s.Index()+1, s.Len())).
			Description(q.Prompt).
			Options(huh.NewOptions(q.Options...)...).
			Value(&choice)

		err := huh.NewForm(huh.NewGroup(field)).
			WithAccessible(flagAccessible).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println(cli.Muted("  Quiz abandoned. Your stored bonus is unchanged."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading answer: %w", err)
		}

		if err := s.SelectAnswer(choice); err != nil {
			return err
		}
		v, err := s.SubmitAnswer()
		if err != nil {
			return err
		}
		printVerdict(v)

		if err := s.Advance(); err != nil {
			return err
		}
	}

	b.log.Info("quiz completed", "score", s.Score())
	if b.db != nil {
		_, err := b.db.RecordQuiz(model.QuizResult{
			Score:       s.Score(),
			Questions:   s.Len(),
			CompletedAt: time.Now(),
		})
		if err != nil {
			b.log.Warn("recording quiz", "err", err)
		}
	}

	maxScore := s.Len() * quiz.PointsPerCorrect
	fmt.Println()
	fmt.Printf("  %s %s\n", cli.Accent("Quiz complete! Score:"), cli.FormatScore(s.Score(), maxScore))
	fmt.Printf("  Bonus income for your next budget: %s\n\n", cli.FormatBonus(float64(s.Score())))

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	fmt.Printf("  %s %s\n\n", cli.Accent("Tip:"), cli.Muted(quiz.PickTip(quiz.Tips, rng)))
	return nil
}

func printVerdict(v model.Verdict) {
	if v.Correct {
		fmt.Print(cli.RenderVerdict(true, "✓ Correct!", v.Selected))
		return
	}
	fmt.Print(cli.RenderVerdict(false, "✗ Incorrect", "Correct answer: "+v.CorrectAnswer))
	fmt.Println("  " + cli.Muted(v.Explanation))
}
