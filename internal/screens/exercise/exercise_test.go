package exercisescreen

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/exercise"
	"github.com/akshayb/jacpath/internal/router"
	quizscreen "github.com/akshayb/jacpath/internal/screens/quiz"
	"github.com/akshayb/jacpath/internal/walker"
)

// runCmd executes a command synchronously and returns its message.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func passingMock() *walker.Mock {
	return &walker.Mock{
		ValidateExerciseFunc: func(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error) {
			return exercise.ValidationResult{
				ExerciseID:  exerciseID,
				AllPassed:   true,
				PassedTests: 2,
				TotalTests:  2,
				Tests: []exercise.TestResult{
					{Name: "node creation", Passed: true},
					{Name: "edge creation", Passed: true},
				},
			}, nil
		},
		SubmitExerciseFunc: func(ctx context.Context, req *exercise.SubmitRequest) (exercise.Receipt, error) {
			return exercise.Receipt{Success: true, Message: "Accepted", PointsEarned: 10}, nil
		},
	}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func TestRunTests_RecordsResult(t *testing.T) {
	client := &walker.Mock{
		ValidateExerciseFunc: func(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error) {
			return exercise.ValidationResult{
				ExerciseID:  exerciseID,
				AllPassed:   false,
				PassedTests: 1,
				TotalTests:  2,
				Tests: []exercise.TestResult{
					{Name: "node creation", Passed: true},
					{Name: "edge creation", Passed: false, Message: "no edge found"},
				},
			}, nil
		},
	}
	e := New(client, nil, zap.NewNop(), "ex-1", "l1", "", "u-1")

	updated, cmd := e.Update(ctrlKey('r'))
	e = updated.(*ExerciseScreen)
	msg := runCmd(t, cmd)
	updated, _ = e.Update(msg)
	e = updated.(*ExerciseScreen)

	if e.result == nil || e.result.PassedTests != 1 {
		t.Fatalf("result = %+v", e.result)
	}
	if e.result.Submittable() {
		t.Error("a failing run must not be submittable")
	}
}

func TestSubmit_BlockedUntilAllTestsPass(t *testing.T) {
	// The mock has no SubmitExerciseFunc: any submission attempt fails
	// the test loudly.
	client := &walker.Mock{
		ValidateExerciseFunc: func(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error) {
			return exercise.ValidationResult{AllPassed: false, PassedTests: 0, TotalTests: 1}, nil
		},
	}
	e := New(client, nil, zap.NewNop(), "ex-1", "l1", "", "u-1")

	// Submit before any run.
	updated, cmd := e.Update(ctrlKey('s'))
	e = updated.(*ExerciseScreen)
	if cmd != nil {
		t.Fatal("submit with no test run must not dispatch a request")
	}
	if e.errMsg == "" {
		t.Error("expected a message telling the learner to pass the tests")
	}

	// Submit after a failing run.
	updated, cmd = e.Update(ctrlKey('r'))
	e = updated.(*ExerciseScreen)
	updated, _ = e.Update(runCmd(t, cmd))
	e = updated.(*ExerciseScreen)

	updated, cmd = e.Update(ctrlKey('s'))
	e = updated.(*ExerciseScreen)
	if cmd != nil {
		t.Fatal("submit with failing tests must not dispatch a request")
	}
}

func TestSubmit_AfterPassingRunRecordsReceipt(t *testing.T) {
	e := New(passingMock(), nil, zap.NewNop(), "ex-1", "l1", "", "u-1")

	updated, cmd := e.Update(ctrlKey('r'))
	e = updated.(*ExerciseScreen)
	updated, _ = e.Update(runCmd(t, cmd))
	e = updated.(*ExerciseScreen)

	updated, cmd = e.Update(ctrlKey('s'))
	e = updated.(*ExerciseScreen)
	updated, _ = e.Update(runCmd(t, cmd))
	e = updated.(*ExerciseScreen)

	if e.receipt == nil || !e.receipt.Success || e.receipt.PointsEarned != 10 {
		t.Fatalf("receipt = %+v", e.receipt)
	}

	// Enter with no follow-up quiz goes back.
	updated, cmd = e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	e = updated.(*ExerciseScreen)
	if _, ok := runCmd(t, cmd).(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after continue without a quiz")
	}
}

func TestContinue_HandsOffToFollowUpQuiz(t *testing.T) {
	e := New(passingMock(), nil, zap.NewNop(), "ex-1", "l1", "quiz-9", "u-1")

	updated, cmd := e.Update(ctrlKey('r'))
	e = updated.(*ExerciseScreen)
	updated, _ = e.Update(runCmd(t, cmd))
	e = updated.(*ExerciseScreen)
	updated, cmd = e.Update(ctrlKey('s'))
	e = updated.(*ExerciseScreen)
	updated, _ = e.Update(runCmd(t, cmd))
	e = updated.(*ExerciseScreen)

	updated, cmd = e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	e = updated.(*ExerciseScreen)
	msg := runCmd(t, cmd)
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", msg)
	}
	if _, ok := replace.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("replacement screen = %T, want quiz screen", replace.Screen)
	}
}

func TestEsc_Pops(t *testing.T) {
	e := New(&walker.Mock{}, nil, zap.NewNop(), "ex-1", "l1", "", "u-1")

	_, cmd := e.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := runCmd(t, cmd).(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on esc")
	}
}
