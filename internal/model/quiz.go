package model

// Question is one immutable multiple-choice quiz entry.
type Question struct {
	Prompt        string
	Options       []string
	CorrectAnswer string
	Explanation   string // shown only after an incorrect answer
}

// HasOption reports whether option is one of the question's choices.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Verdict is the outcome of scoring one submitted answer.
type Verdict struct {
	Correct       bool
	Selected      string
	CorrectAnswer string
	Explanation   string
}
