// Package quizscreen drives an assessment session: it fetches the quiz,
// collects answers, sends each one to the walker for grading, shows
// feedback briefly, and requests the final score.
package quizscreen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/quiz"
	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/walker"
)

type inputKind int

const (
	inputOptions inputKind = iota
	inputText
	inputCode
)

// QuizScreen implements screen.Screen for an active quiz session.
type QuizScreen struct {
	client   walker.Client
	attempts store.AttemptRepo
	log      *zap.Logger

	session   *quiz.Session
	startedAt time.Time

	kind    inputKind
	options components.OptionList
	input   components.AnswerInput
	code    components.CodeInput

	width, height int
	errMsg        string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the given quiz id. The attempt repo may
// be nil; results are then not recorded locally.
func New(client walker.Client, attempts store.AttemptRepo, log *zap.Logger, quizID, userID string) *QuizScreen {
	return &QuizScreen{
		client:    client,
		attempts:  attempts,
		log:       log,
		session:   quiz.NewSession(uuid.NewString(), quizID, userID),
		startedAt: time.Now(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadQuiz()
}

func (s *QuizScreen) Title() string {
	if q := s.session.Quiz(); q != nil {
		return q.Title
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.State() {
	case quiz.StateInProgress:
		if s.kind == inputCode {
			return []layout.KeyHint{
				{Key: "Ctrl+S", Description: "Submit"},
				{Key: "Esc", Description: "Quit quiz"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case quiz.StateCompleted, quiz.StateFailed:
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleLoaded(msg)

	case evaluatedMsg:
		return s.handleEvaluated(msg)

	case advanceMsg:
		return s.handleAdvance(msg)

	case scoredMsg:
		return s.handleScored(msg)

	case attemptSavedMsg:
		if msg.Err != nil && s.log != nil {
			s.log.Warn("save attempt failed", zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

// loadQuiz fetches the quiz definition asynchronously.
func (s *QuizScreen) loadQuiz() tea.Cmd {
	client := s.client
	quizID := s.session.QuizID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		q, err := client.FetchQuiz(ctx, quizID)
		return quizLoadedMsg{Quiz: q, Err: err}
	}
}

func (s *QuizScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.session.Fail(msg.Err)
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if err := s.session.Begin(msg.Quiz); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.setupQuestion()
}

// setupQuestion prepares the input widget for the current question.
func (s *QuizScreen) setupQuestion() tea.Cmd {
	q := s.session.CurrentQuestion()
	if q == nil {
		return nil
	}
	switch q.Type {
	case quiz.TypeMultipleChoice:
		s.kind = inputOptions
		s.options = components.NewOptionList(q.Options)
		return nil
	case quiz.TypeTrueFalse:
		s.kind = inputOptions
		s.options = components.NewOptionList([]string{"True", "False"})
		return nil
	case quiz.TypeCode:
		s.kind = inputCode
		s.code = components.NewCodeInput(q.StarterCode, codeWidth(s.width), 10)
		return s.code.Init()
	default:
		s.kind = inputText
		s.input = components.NewAnswerInput("Type your answer...")
		return s.input.Init()
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.session.State() {
	case quiz.StateCompleted:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case quiz.StateFailed:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case quiz.StateInProgress:
		switch {
		case key == "esc":
			s.session.Close()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key == "enter" && s.kind != inputCode:
			return s.captureAndSubmit()
		case key == "ctrl+s" && s.kind == inputCode:
			return s.captureAndSubmit()
		}
		return s.forwardToInput(msg)

	case quiz.StateEvaluating, quiz.StateScoring, quiz.StateLoading:
		// Grading or scoring in flight; esc still quits.
		if key == "esc" {
			s.session.Close()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	return s, nil
}

// captureAndSubmit records the current widget value as the answer and
// submits it for grading. Submission without an answer is a no-op.
func (s *QuizScreen) captureAndSubmit() (screen.Screen, tea.Cmd) {
	value := s.currentValue()
	if value != "" {
		if err := s.session.RecordAnswer(value); err != nil {
			return s, nil
		}
	}
	if !s.session.CanSubmit() {
		return s, nil
	}
	req, err := s.session.Submit()
	if err != nil {
		return s, nil
	}
	if s.kind == inputOptions {
		// Confirm the highlighted option so the view shows the pick.
		s.options, _ = s.options.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	return s, s.evaluate(req)
}

func (s *QuizScreen) currentValue() string {
	switch s.kind {
	case inputOptions:
		if v := s.options.Chosen(); v != "" {
			return v
		}
		return s.options.Highlighted()
	case inputCode:
		return s.code.Value()
	default:
		return s.input.Value()
	}
}

// evaluate sends the answer to the walker for grading.
func (s *QuizScreen) evaluate(req *quiz.EvaluateRequest) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		fb, err := client.EvaluateAnswer(ctx, req)
		return evaluatedMsg{QuestionID: req.QuestionID, Feedback: fb, Err: err}
	}
}

func (s *QuizScreen) handleEvaluated(msg evaluatedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.session.EvaluationFailed(msg.Err)
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	tok, err := s.session.RecordFeedback(msg.QuestionID, msg.Feedback)
	if err != nil {
		// A response for a question we are not grading; drop it.
		return s, nil
	}

	switch s.kind {
	case inputOptions:
		s.options.MarkResult(msg.Feedback.Correct)
	case inputText:
		s.input.MarkResult(msg.Feedback.Correct)
	}

	return s, tea.Tick(quiz.FeedbackInterval, func(time.Time) tea.Msg {
		return advanceMsg{Token: tok}
	})
}

func (s *QuizScreen) handleAdvance(msg advanceMsg) (screen.Screen, tea.Cmd) {
	res, err := s.session.Advance(msg.Token)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	switch res {
	case quiz.AdvanceNext:
		return s, s.setupQuestion()
	case quiz.AdvanceScore:
		req, err := s.session.ScoreRequest()
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, s.scoreQuiz(req)
	}

	// Stale firing from before a state change.
	return s, nil
}

// scoreQuiz asks the walker for the final score.
func (s *QuizScreen) scoreQuiz(req *quiz.ScoreRequest) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		score, err := client.ScoreQuiz(ctx, req)
		return scoredMsg{Score: score, Err: err}
	}
}

func (s *QuizScreen) handleScored(msg scoredMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.session.Fail(msg.Err)
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	completion, err := s.session.Complete(msg.Score)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	return s, s.saveAttempt(completion, msg.Score)
}

// saveAttempt records the finished run in the local history.
func (s *QuizScreen) saveAttempt(c quiz.Completion, score quiz.Score) tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	repo := s.attempts
	q := s.session.Quiz()
	userID := s.session.UserID
	startedAt := s.startedAt
	return func() tea.Msg {
		a := &store.Attempt{
			QuizID:         c.QuizID,
			UserID:         userID,
			Score:          c.Score,
			Passed:         c.Passed,
			CorrectAnswers: score.CorrectAnswers,
			TotalQuestions: score.TotalQuestions,
			StartedAt:      startedAt,
			FinishedAt:     time.Now(),
		}
		if q != nil {
			a.QuizTitle = q.Title
		}
		err := repo.Save(context.Background(), a)
		return attemptSavedMsg{Err: err}
	}
}

func (s *QuizScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.session.State() != quiz.StateInProgress {
		return s, nil
	}
	var cmd tea.Cmd
	switch s.kind {
	case inputOptions:
		s.options, cmd = s.options.Update(msg)
	case inputCode:
		s.code, cmd = s.code.Update(msg)
	default:
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

func codeWidth(width int) int {
	w := width - 10
	if w > 76 {
		w = 76
	}
	if w < 30 {
		w = 30
	}
	return w
}
