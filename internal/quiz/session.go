package quiz

import (
	"fmt"
	"time"
)

// FeedbackInterval is how long evaluation feedback stays on screen before
// the session auto-advances. The delay is a deliberate part of the flow:
// the learner gets time to read the verdict before the next question.
const FeedbackInterval = 2 * time.Second

// State is the session lifecycle state.
type State int

const (
	StateLoading State = iota // quiz fetch in flight
	StateInProgress
	StateEvaluating // answer evaluation in flight, or feedback on display
	StateScoring
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in_progress"
	case StateEvaluating:
		return "evaluating"
	case StateScoring:
		return "scoring"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// AdvanceToken identifies one scheduled auto-advance. A token minted
// before the session moved on (teardown, restart, failure) no longer
// matches and its firing is a no-op.
type AdvanceToken struct {
	seq int
}

// AdvanceResult tells the caller what an Advance call did.
type AdvanceResult int

const (
	// AdvanceStale means the token no longer matched; nothing changed.
	AdvanceStale AdvanceResult = iota
	// AdvanceNext means the session moved to the next question.
	AdvanceNext
	// AdvanceScore means the last question is done and scoring is due.
	AdvanceScore
)

// EvaluateRequest carries one answer to the QuizAssessor walker.
type EvaluateRequest struct {
	QuizID     string
	QuestionID string
	UserAnswer string
	Type       QuestionType
	UserID     string
}

// ScoreRequest carries the full answer/feedback state to the scoring
// walker at the end of a session.
type ScoreRequest struct {
	QuizID   string
	UserID   string
	Answers  map[string]string
	Feedback map[string]Feedback
}

// Session drives one quiz attempt from fetch to scored completion. All
// mutable state is owned by the session value; only its own transition
// methods mutate it. A session is not safe for concurrent use; the
// Bubble Tea update loop serializes all calls.
type Session struct {
	ID     string
	QuizID string
	UserID string

	quiz     *Quiz
	state    State
	current  int
	answers  map[string]string
	feedback map[string]Feedback

	// inFlight is the question id with an outstanding evaluation
	// request. Single-flight: empty means none.
	inFlight string

	advanceSeq     int
	pendingAdvance int // seq of the one valid advance token, 0 = none

	scoreRequested bool
	score          *Score
	err            error
	closed         bool
}

// NewSession creates a session in the Loading state. Begin moves it to
// InProgress once the quiz fetch succeeds.
func NewSession(id, quizID, userID string) *Session {
	return &Session{
		ID:       id,
		QuizID:   quizID,
		UserID:   userID,
		state:    StateLoading,
		answers:  make(map[string]string),
		feedback: make(map[string]Feedback),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Err returns the error that moved the session to Failed, if any.
func (s *Session) Err() error { return s.err }

// Quiz returns the fetched quiz, nil before Begin.
func (s *Session) Quiz() *Quiz { return s.quiz }

// Score returns the final score, nil before completion.
func (s *Session) Score() *Score { return s.score }

// CurrentIndex returns the zero-based index of the current question.
func (s *Session) CurrentIndex() int { return s.current }

// CurrentQuestion returns the question at the current index, or nil if
// the quiz is not loaded.
func (s *Session) CurrentQuestion() *Question {
	if s.quiz == nil || s.current >= len(s.quiz.Questions) {
		return nil
	}
	return &s.quiz.Questions[s.current]
}

// AnswerFor returns the recorded answer for a question id.
func (s *Session) AnswerFor(questionID string) (string, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// FeedbackFor returns the recorded feedback for a question id.
func (s *Session) FeedbackFor(questionID string) (Feedback, bool) {
	fb, ok := s.feedback[questionID]
	return fb, ok
}

// Begin transitions Loading → InProgress with a validated quiz. The
// question order of the quiz is the traversal order of the session.
func (s *Session) Begin(q *Quiz) error {
	if s.closed {
		return &PreconditionError{Op: "begin", Reason: "session is closed"}
	}
	if s.state != StateLoading {
		return &PreconditionError{Op: "begin", Reason: "session already started"}
	}
	if err := q.Validate(); err != nil {
		s.fail(err)
		return err
	}
	s.quiz = q
	s.current = 0
	s.state = StateInProgress
	return nil
}

// Fail moves the session to Failed, surfacing err to the caller.
// Recorded answers and feedback are kept so a retried session flow can
// show what was already entered. Reachable from any non-terminal state.
func (s *Session) Fail(err error) {
	if s.state == StateCompleted || s.closed {
		return
	}
	s.fail(err)
}

func (s *Session) fail(err error) {
	s.err = err
	s.state = StateFailed
	s.inFlight = ""
	s.pendingAdvance = 0
}

// RecordAnswer stores an answer for the current question. Callable any
// number of times before submission; the last value wins. Does not
// change state.
func (s *Session) RecordAnswer(value string) error {
	if s.closed {
		return &PreconditionError{Op: "record answer", Reason: "session is closed"}
	}
	if s.state != StateInProgress {
		return &PreconditionError{Op: "record answer", Reason: fmt.Sprintf("session is %s", s.state)}
	}
	q := s.CurrentQuestion()
	if q == nil {
		return &PreconditionError{Op: "record answer", Reason: "no current question"}
	}
	s.answers[q.ID] = value
	return nil
}

// CanSubmit reports whether Submit would be accepted right now. Used by
// the UI to disable the submit affordance.
func (s *Session) CanSubmit() bool {
	if s.state != StateInProgress {
		return false
	}
	q := s.CurrentQuestion()
	if q == nil {
		return false
	}
	return s.answers[q.ID] != ""
}

// Submit transitions InProgress → Evaluating and returns the single
// evaluation request to dispatch. Rejected when no non-empty answer is
// recorded for the current question, or when an evaluation is already in
// flight (single-flight per question).
func (s *Session) Submit() (*EvaluateRequest, error) {
	if s.closed {
		return nil, &PreconditionError{Op: "submit", Reason: "session is closed"}
	}
	if s.inFlight != "" {
		return nil, &PreconditionError{Op: "submit", Reason: "evaluation already in flight for " + s.inFlight}
	}
	if s.state != StateInProgress {
		return nil, &PreconditionError{Op: "submit", Reason: fmt.Sprintf("session is %s", s.state)}
	}
	q := s.CurrentQuestion()
	if q == nil {
		return nil, &PreconditionError{Op: "submit", Reason: "no current question"}
	}
	if s.answers[q.ID] == "" {
		return nil, &PreconditionError{Op: "submit", Reason: "no answer recorded for " + q.ID}
	}

	s.inFlight = q.ID
	s.state = StateEvaluating
	return &EvaluateRequest{
		QuizID:     s.QuizID,
		QuestionID: q.ID,
		UserAnswer: s.answers[q.ID],
		Type:       q.Type,
		UserID:     s.UserID,
	}, nil
}

// RecordFeedback stores the assessor's verdict against the question id it
// was requested for, keyed by id rather than position, so a completion that
// lands late can never corrupt another question's result. It returns the
// advance token for the feedback-display timer; the session stays in
// Evaluating until that token is redeemed via Advance.
func (s *Session) RecordFeedback(questionID string, fb Feedback) (AdvanceToken, error) {
	if s.closed {
		return AdvanceToken{}, &PreconditionError{Op: "record feedback", Reason: "session is closed"}
	}
	if s.state != StateEvaluating {
		return AdvanceToken{}, &PreconditionError{Op: "record feedback", Reason: fmt.Sprintf("session is %s", s.state)}
	}
	if s.inFlight != questionID {
		return AdvanceToken{}, &ContractError{Detail: fmt.Sprintf("feedback for %s but evaluation in flight for %s", questionID, s.inFlight)}
	}
	if _, answered := s.answers[questionID]; !answered {
		return AdvanceToken{}, &ContractError{Detail: "feedback for unanswered question " + questionID}
	}

	s.feedback[questionID] = fb
	s.inFlight = ""
	s.advanceSeq++
	s.pendingAdvance = s.advanceSeq
	return AdvanceToken{seq: s.advanceSeq}, nil
}

// EvaluationFailed moves the session to Failed after an evaluation
// request error. No feedback entry is written; prior answers stay.
func (s *Session) EvaluationFailed(err error) {
	if s.closed || s.state != StateEvaluating {
		return
	}
	s.fail(err)
}

// Advance is called when the feedback-display timer fires. A stale token
// (session failed, closed, or restarted since the token was minted) is a
// no-op. Otherwise the session moves to the next question, or to Scoring
// after the final one.
func (s *Session) Advance(tok AdvanceToken) (AdvanceResult, error) {
	if s.closed || s.pendingAdvance == 0 || tok.seq != s.pendingAdvance {
		return AdvanceStale, nil
	}
	if s.state != StateEvaluating {
		return AdvanceStale, nil
	}
	s.pendingAdvance = 0

	if s.current < len(s.quiz.Questions)-1 {
		s.current++
		s.state = StateInProgress
		return AdvanceNext, nil
	}
	s.state = StateScoring
	return AdvanceScore, nil
}

// ScoreRequest builds the one scoring request for the session, carrying
// the full answer and feedback maps. A second call is rejected so a
// session can never be scored twice.
func (s *Session) ScoreRequest() (*ScoreRequest, error) {
	if s.closed {
		return nil, &PreconditionError{Op: "score", Reason: "session is closed"}
	}
	if s.state != StateScoring {
		return nil, &PreconditionError{Op: "score", Reason: fmt.Sprintf("session is %s", s.state)}
	}
	if s.scoreRequested {
		return nil, &PreconditionError{Op: "score", Reason: "scoring already requested"}
	}
	s.scoreRequested = true

	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	feedback := make(map[string]Feedback, len(s.feedback))
	for k, v := range s.feedback {
		feedback[k] = v
	}
	return &ScoreRequest{
		QuizID:   s.QuizID,
		UserID:   s.UserID,
		Answers:  answers,
		Feedback: feedback,
	}, nil
}

// Complete transitions Scoring → Completed with the walker's score and
// returns the completion payload for the caller's callback. The session
// is terminal afterwards: answer and submit operations are rejected.
func (s *Session) Complete(score Score) (Completion, error) {
	if s.closed {
		return Completion{}, &PreconditionError{Op: "complete", Reason: "session is closed"}
	}
	if s.state != StateScoring {
		return Completion{}, &PreconditionError{Op: "complete", Reason: fmt.Sprintf("session is %s", s.state)}
	}
	s.score = &score
	s.state = StateCompleted
	return Completion{QuizID: s.QuizID, Score: score.Score, Passed: score.Passed}, nil
}

// Close tears the session down. Any pending advance token becomes stale;
// every later mutation is rejected. Answer and feedback maps are
// discarded with the session value itself.
func (s *Session) Close() {
	s.closed = true
	s.pendingAdvance = 0
	s.inFlight = ""
}
