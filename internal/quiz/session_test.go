package quiz

import (
	"errors"
	"testing"
)

func testQuiz(n int) *Quiz {
	q := &Quiz{ID: "jac-basics-quiz", Title: "Jac Basics Quiz"}
	for i := 0; i < n; i++ {
		q.Questions = append(q.Questions, Question{
			ID:   string(rune('a' + i)),
			Text: "What is a node in Jac?",
			Type: TypeFreeText,
		})
	}
	return q
}

// answerAndEvaluate walks one question through record → submit → feedback
// and returns the advance token.
func answerAndEvaluate(t *testing.T, s *Session, answer string, correct bool) AdvanceToken {
	t.Helper()
	if err := s.RecordAnswer(answer); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	req, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	tok, err := s.RecordFeedback(req.QuestionID, Feedback{Correct: correct, Message: "ok"})
	if err != nil {
		t.Fatalf("RecordFeedback: %v", err)
	}
	return tok
}

func TestBegin_InvalidQuiz(t *testing.T) {
	cases := []struct {
		name string
		quiz *Quiz
	}{
		{"empty", &Quiz{ID: "x", Title: "Empty"}},
		{"duplicate ids", &Quiz{ID: "x", Questions: []Question{
			{ID: "q1", Type: TypeFreeText},
			{ID: "q1", Type: TypeFreeText},
		}}},
		{"unknown type", &Quiz{ID: "x", Questions: []Question{
			{ID: "q1", Type: QuestionType("essay")},
		}}},
		{"choice without options", &Quiz{ID: "x", Questions: []Question{
			{ID: "q1", Type: TypeMultipleChoice},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession("s1", "x", "u1")
			err := s.Begin(tc.quiz)
			var ce *ContractError
			if !errors.As(err, &ce) {
				t.Fatalf("Begin error = %v, want ContractError", err)
			}
			if s.State() != StateFailed {
				t.Errorf("State = %s, want failed", s.State())
			}
		})
	}
}

func TestSession_VisitsEveryQuestionOnceInOrder(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(3)); err != nil {
		t.Fatal(err)
	}

	var visited []string
	for s.State() == StateInProgress {
		q := s.CurrentQuestion()
		visited = append(visited, q.ID)
		tok := answerAndEvaluate(t, s, "walkers traverse graphs", true)
		if _, err := s.Advance(tok); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"a", "b", "c"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
	if s.State() != StateScoring {
		t.Errorf("State = %s, want scoring", s.State())
	}
}

func TestSubmit_RequiresNonEmptyAnswer(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(1)); err != nil {
		t.Fatal(err)
	}

	// No answer recorded at all.
	if _, err := s.Submit(); err == nil {
		t.Error("Submit with no answer should be rejected")
	}

	// Empty answer recorded.
	if err := s.RecordAnswer(""); err != nil {
		t.Fatal(err)
	}
	_, err := s.Submit()
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Errorf("Submit error = %v, want PreconditionError", err)
	}
	if s.State() != StateInProgress {
		t.Errorf("State = %s, want in_progress (unchanged)", s.State())
	}
}

func TestSubmit_SingleFlightPerQuestion(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer("true"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatal(err)
	}

	// Resubmission while the evaluation is outstanding is rejected, not queued.
	if _, err := s.Submit(); err == nil {
		t.Error("second Submit while in flight should be rejected")
	}
}

func TestRecordAnswer_LastWriteWins(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(1)); err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"first", "second", "final"} {
		if err := s.RecordAnswer(v); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := s.AnswerFor("a")
	if got != "final" {
		t.Errorf("AnswerFor = %q, want %q", got, "final")
	}
}

func TestRecordFeedback_KeyedByQuestionID(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer("yes"); err != nil {
		t.Fatal(err)
	}
	req, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}

	// Feedback for a question other than the in-flight one is a
	// contract violation, never attributed to the wrong entry.
	_, err = s.RecordFeedback("b", Feedback{Correct: true})
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("RecordFeedback for wrong id = %v, want ContractError", err)
	}
	if _, ok := s.FeedbackFor("b"); ok {
		t.Error("feedback must not be recorded under the wrong id")
	}

	if _, err := s.RecordFeedback(req.QuestionID, Feedback{Correct: true}); err != nil {
		t.Fatal(err)
	}
	if fb, ok := s.FeedbackFor("a"); !ok || !fb.Correct {
		t.Errorf("FeedbackFor(a) = %+v, %v", fb, ok)
	}
}

func TestAdvance_StaleTokenIsNoOp(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}
	tok := answerAndEvaluate(t, s, "true", true)

	s.Close()

	res, err := s.Advance(tok)
	if err != nil {
		t.Fatal(err)
	}
	if res != AdvanceStale {
		t.Errorf("Advance after Close = %v, want AdvanceStale", res)
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d, want 0 (no mutation after teardown)", s.CurrentIndex())
	}
}

func TestAdvance_TokenRedeemedOnce(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(3)); err != nil {
		t.Fatal(err)
	}
	tok := answerAndEvaluate(t, s, "true", true)

	if res, _ := s.Advance(tok); res != AdvanceNext {
		t.Fatalf("first Advance = %v, want AdvanceNext", res)
	}
	if res, _ := s.Advance(tok); res != AdvanceStale {
		t.Errorf("second Advance with same token = %v, want AdvanceStale", res)
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex())
	}
}

func TestScoring_ExactlyOnce(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(1)); err != nil {
		t.Fatal(err)
	}
	tok := answerAndEvaluate(t, s, "true", true)
	if res, _ := s.Advance(tok); res != AdvanceScore {
		t.Fatalf("Advance = %v, want AdvanceScore", res)
	}

	req, err := s.ScoreRequest()
	if err != nil {
		t.Fatal(err)
	}
	if len(req.Answers) != 1 || len(req.Feedback) != 1 {
		t.Errorf("ScoreRequest carries %d answers / %d feedback, want 1/1", len(req.Answers), len(req.Feedback))
	}

	if _, err := s.ScoreRequest(); err == nil {
		t.Error("second ScoreRequest should be rejected")
	}
}

func TestCompletedSessionRejectsMutation(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(1)); err != nil {
		t.Fatal(err)
	}
	tok := answerAndEvaluate(t, s, "true", true)
	if _, err := s.Advance(tok); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScoreRequest(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Complete(Score{Score: 100, Passed: true, CorrectAnswers: 1, TotalQuestions: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.RecordAnswer("late"); err == nil {
		t.Error("RecordAnswer on completed session should be rejected")
	}
	if _, err := s.Submit(); err == nil {
		t.Error("Submit on completed session should be rejected")
	}
	if _, err := s.Complete(Score{}); err == nil {
		t.Error("second Complete should be rejected")
	}
}

func TestFullRun_TwoCorrectAnswers(t *testing.T) {
	s := NewSession("s1", "jac-basics-quiz", "u1")
	if err := s.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		tok := answerAndEvaluate(t, s, "correct answer", true)
		if _, err := s.Advance(tok); err != nil {
			t.Fatal(err)
		}
	}
	if s.State() != StateScoring {
		t.Fatalf("State = %s, want scoring", s.State())
	}
	if _, err := s.ScoreRequest(); err != nil {
		t.Fatal(err)
	}

	done, err := s.Complete(Score{Score: 100, Passed: true, CorrectAnswers: 2, TotalQuestions: 2})
	if err != nil {
		t.Fatal(err)
	}
	if done.QuizID != "jac-basics-quiz" || done.Score != 100 || !done.Passed {
		t.Errorf("Completion = %+v", done)
	}
	if s.Score().CorrectAnswers != 2 || s.Score().TotalQuestions != 2 {
		t.Errorf("Score = %+v", s.Score())
	}
}

func TestEvaluationFailure_MovesToFailed(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer("something"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatal(err)
	}

	netErr := errors.New("connection refused")
	s.EvaluationFailed(netErr)

	if s.State() != StateFailed {
		t.Fatalf("State = %s, want failed", s.State())
	}
	if !errors.Is(s.Err(), netErr) {
		t.Errorf("Err = %v, want %v", s.Err(), netErr)
	}
	if _, ok := s.FeedbackFor("a"); ok {
		t.Error("no feedback entry must exist after a failed evaluation")
	}
	// Recorded answers are kept for the failure screen.
	if v, ok := s.AnswerFor("a"); !ok || v != "something" {
		t.Errorf("AnswerFor(a) = %q, %v, want kept", v, ok)
	}

	// A restart is a fresh session with empty maps.
	fresh := NewSession("s2", "quiz-1", "u1")
	if err := fresh.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}
	if _, ok := fresh.AnswerFor("a"); ok {
		t.Error("fresh session must start with an empty answer map")
	}
	if fresh.State() != StateInProgress {
		t.Errorf("fresh State = %s, want in_progress", fresh.State())
	}
}

func TestClose_RejectsEveryLaterMutation(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer("x"); err != nil {
		t.Fatal(err)
	}

	s.Close()

	var pe *PreconditionError
	if err := s.RecordAnswer("y"); !errors.As(err, &pe) {
		t.Errorf("RecordAnswer after Close = %v, want PreconditionError", err)
	}
	if _, err := s.Submit(); !errors.As(err, &pe) {
		t.Errorf("Submit after Close = %v, want PreconditionError", err)
	}
	if _, err := s.RecordFeedback("a", Feedback{Correct: true}); !errors.As(err, &pe) {
		t.Errorf("RecordFeedback after Close = %v, want PreconditionError", err)
	}
	if _, err := s.ScoreRequest(); !errors.As(err, &pe) {
		t.Errorf("ScoreRequest after Close = %v, want PreconditionError", err)
	}
	if _, err := s.Complete(Score{}); !errors.As(err, &pe) {
		t.Errorf("Complete after Close = %v, want PreconditionError", err)
	}
	if err := s.Begin(testQuiz(1)); !errors.As(err, &pe) {
		t.Errorf("Begin after Close = %v, want PreconditionError", err)
	}

	// The torn-down session keeps the answer it had; it just refuses to
	// change it.
	if v, _ := s.AnswerFor("a"); v != "x" {
		t.Errorf("AnswerFor(a) = %q, want %q", v, "x")
	}
}

func TestClose_SilencesEvaluationFailure(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	if err := s.Begin(testQuiz(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer("x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatal(err)
	}

	s.Close()
	s.EvaluationFailed(errors.New("connection reset"))

	if s.State() == StateFailed {
		t.Error("a closed session must not transition on a late evaluation error")
	}
}

func TestFail_FromAnyStateKeepsState(t *testing.T) {
	s := NewSession("s1", "quiz-1", "u1")
	s.Fail(errors.New("quiz fetch failed"))
	if s.State() != StateFailed {
		t.Fatalf("State = %s, want failed", s.State())
	}
	if err := s.RecordAnswer("x"); err == nil {
		t.Error("RecordAnswer on failed session should be rejected")
	}
}
