package quiz

import "fmt"

// QuestionType identifies how a question is presented and answered.
// The set is closed: evaluation-request construction switches over it
// exhaustively.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFreeText       QuestionType = "free_text"
	TypeCode           QuestionType = "code"
)

// Known reports whether t is one of the supported question types.
func (t QuestionType) Known() bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeFreeText, TypeCode:
		return true
	}
	return false
}

// Question is a single quiz question as delivered by the QuizGenerator
// walker. Immutable once fetched for a session.
type Question struct {
	ID   string
	Text string
	Type QuestionType

	// Options holds the ordered answer choices. Present only for
	// multiple_choice questions.
	Options []string

	// StarterCode seeds the answer input. Present only for code questions.
	StarterCode string
}

// Quiz is an ordered set of questions. Question order is traversal order.
type Quiz struct {
	ID        string
	Title     string
	Questions []Question
}

// Validate checks the structural invariants of a fetched quiz: at least
// one question, unique question ids, a known type per question, and
// options present exactly when the type requires them.
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return &ContractError{Detail: fmt.Sprintf("quiz %s has no questions", q.ID)}
	}
	seen := make(map[string]bool, len(q.Questions))
	for _, qu := range q.Questions {
		if qu.ID == "" {
			return &ContractError{Detail: fmt.Sprintf("quiz %s has a question with no id", q.ID)}
		}
		if seen[qu.ID] {
			return &ContractError{Detail: fmt.Sprintf("quiz %s repeats question id %s", q.ID, qu.ID)}
		}
		seen[qu.ID] = true
		if !qu.Type.Known() {
			return &ContractError{Detail: fmt.Sprintf("question %s has unknown type %q", qu.ID, qu.Type)}
		}
		if qu.Type == TypeMultipleChoice && len(qu.Options) == 0 {
			return &ContractError{Detail: fmt.Sprintf("multiple_choice question %s has no options", qu.ID)}
		}
	}
	return nil
}

// Feedback is the assessor's verdict for one answered question.
type Feedback struct {
	Correct     bool
	Message     string
	Explanation string
}

// Score is the final result of a completed session, produced exactly once
// by the remote scoring service.
type Score struct {
	Score          float64 // 0..100
	Passed         bool
	CorrectAnswers int
	TotalQuestions int
}

// Completion is the payload delivered to the caller's completion callback.
type Completion struct {
	QuizID string
	Score  float64
	Passed bool
}
