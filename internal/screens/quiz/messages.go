package quizscreen

import (
	"github.com/akshayb/jacpath/internal/quiz"
)

// quizLoadedMsg is sent when the quiz definition has been fetched.
type quizLoadedMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// evaluatedMsg is sent when the walker finishes grading an answer.
type evaluatedMsg struct {
	QuestionID string
	Feedback   quiz.Feedback
	Err        error
}

// advanceMsg is sent when the feedback display period ends. The token
// lets the session drop firings scheduled before a state change.
type advanceMsg struct {
	Token quiz.AdvanceToken
}

// scoredMsg is sent when the walker finishes scoring the quiz.
type scoredMsg struct {
	Score quiz.Score
	Err   error
}

// attemptSavedMsg confirms the attempt record was written locally.
type attemptSavedMsg struct {
	Err error
}
