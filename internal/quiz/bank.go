package quiz

import "github.com/finfrenzy/finfrenzy/internal/model"

var defaultBank = []model.Question{
	{
		Prompt:        "What is a budget?",
		Options:       []string{"A spending plan", "A savings account", "A type of investment", "A loan"},
		CorrectAnswer: "A spending plan",
		Explanation:   "A budget helps you manage your income and expenses.",
	},
	{
		Prompt:        "What does APR stand for?",
		Options:       []string{"Annual Percentage Rate", "Applied Payment Ratio", "Actual Profit Rate", "Average Payment Rate"},
		CorrectAnswer: "Annual Percentage Rate",
		Explanation:   "APR represents the cost of borrowing money annually.",
	},
	{
		Prompt:        "Which of these is a liability?",
		Options:       []string{"A car loan", "A savings account", "Stocks", "A house owned outright"},
		CorrectAnswer: "A car loan",
		Explanation:   "Liabilities are debts or financial obligations.",
	},
	{
		Prompt:        "Emergency fund used for:",
		Options:       []string{"Vacation", "Unexpected expenses", "Buying stocks", "Gifting money"},
		CorrectAnswer: "Unexpected expenses",
		Explanation:   "An emergency fund is set aside for unforeseen financial needs.",
	},
	{
		Prompt:        "What is compound interest?",
		Options:       []string{"Interest on accumulated interest", "A fixed rate of return", "A tax on savings", "An investment strategy"},
		CorrectAnswer: "Interest on accumulated interest",
		Explanation:   "Compound interest helps savings grow exponentially.",
	},
	{
		Prompt:        "Purpose of credit score is:",
		Options:       []string{"To determine financial risk", "To measure income", "To track expenses", "To calculate taxes"},
		CorrectAnswer: "To determine financial risk",
		Explanation:   "A credit score reflects creditworthiness for loans and credit cards.",
	},
	{
		Prompt:        "What is a 401(k)?",
		Options:       []string{"A retirement savings plan", "A type of loan", "A tax deduction", "A stock market index"},
		CorrectAnswer: "A retirement savings plan",
		Explanation:   "A 401(k) is a tax-advantaged retirement savings plan.",
	},
	{
		Prompt:        "What is diversification?",
		Options:       []string{"Spread investments wisely", "Investing in one high-return stock", "Avoiding all risk", "Maximizing short-term gains"},
		CorrectAnswer: "Spread investments wisely",
		Explanation:   "Diversification reduces risk by spreading investments.",
	},
	{
		Prompt:        "Which is a fixed expense?",
		Options:       []string{"Rent", "Groceries", "Dining out", "Entertainment"},
		CorrectAnswer: "Rent",
		Explanation:   "Fixed expenses remain constant each month, like rent or mortgage payments.",
	},
	{
		Prompt:        "What is an overdraft fee?",
		Options:       []string{"Fee for overspending balance", "A reward for saving money", "A tax on banking", "A bonus for credit card use"},
		CorrectAnswer: "Fee for overspending balance",
		Explanation:   "Banks charge overdraft fees when an account goes negative.",
	},
}

// DefaultBank returns a copy of the built-in ten-question bank in its fixed
// order.
func DefaultBank() []model.Question {
	out := make([]model.Question, len(defaultBank))
	for i, q := range defaultBank {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Tips are shown on the completion screen.
var Tips = []string{
	"Start saving early to take advantage of compound interest!",
	"Diversifying your investments can reduce your financial risk.",
	"Build an emergency fund that can cover 3-6 months of living expenses.",
	"Pay off high-interest debt first to save money in the long run.",
	"Invest in yourself: your skills and education are some of the best assets.",
	"Avoid impulse spending by sticking to a budget each month.",
	"Regularly check your credit score to ensure it's healthy for future loans.",
	"Create a realistic budget and track your expenses every month.",
}

// FallbackTip is returned when there are no tips to choose from.
const FallbackTip = "Keep learning and improving your financial knowledge!"

// IntSource yields a uniform integer in [0, n). *math/rand/v2.Rand
// satisfies it.
type IntSource interface {
	IntN(n int) int
}

// PickTip selects one tip using the given random source.
func PickTip(tips []string, src IntSource) string {
	if len(tips) == 0 || src == nil {
		return FallbackTip
	}
	return tips[src.IntN(len(tips))]
}

// Quote is the "Did you know?" line shown on the home screen.
var Quote = struct {
	Text, Author string
}{
	Text:   "A budget is more than numbers, it's an expression of our values.",
	Author: "Barack Obama",
}
