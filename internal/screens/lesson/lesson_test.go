package lessonscreen

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/akshayb/jacpath/internal/lessons"
	"github.com/akshayb/jacpath/internal/router"
	exercisescreen "github.com/akshayb/jacpath/internal/screens/exercise"
	"github.com/akshayb/jacpath/internal/walker"
)

func twoSectionLesson() *lessons.Lesson {
	return &lessons.Lesson{
		ID:    "l1",
		Title: "Walker Basics",
		Sections: []lessons.Section{
			{Title: "Intro", Body: "Walkers traverse graphs."},
			{Title: "Abilities", Body: "Abilities run on node entry.", CodeExample: "walker greet { can say_hi; }"},
		},
	}
}

func loadedViewer(t *testing.T, client walker.Client) *ViewerScreen {
	t.Helper()
	v := NewViewer(client, nil, nil, "l1", "u-1")
	msg := v.Init()()
	updated, _ := v.Update(msg)
	return updated.(*ViewerScreen)
}

func TestViewer_PagesThroughSections(t *testing.T) {
	client := &walker.Mock{
		FetchLessonFunc: func(ctx context.Context, lessonID string) (*lessons.Lesson, error) {
			return twoSectionLesson(), nil
		},
	}
	v := loadedViewer(t, client)

	if v.pager.Index() != 0 {
		t.Fatalf("start index = %d", v.pager.Index())
	}

	updated, _ := v.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	v = updated.(*ViewerScreen)
	if v.pager.Index() != 1 {
		t.Errorf("index after right = %d", v.pager.Index())
	}
	if !v.pager.AtEnd() {
		t.Error("expected pager at end")
	}

	updated, _ = v.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	v = updated.(*ViewerScreen)
	if v.pager.Index() != 0 {
		t.Errorf("index after left = %d", v.pager.Index())
	}
}

func TestViewer_FinishTracksCompletionOnce(t *testing.T) {
	tracked := 0
	client := &walker.Mock{
		FetchLessonFunc: func(ctx context.Context, lessonID string) (*lessons.Lesson, error) {
			return twoSectionLesson(), nil
		},
		TrackLessonFunc: func(ctx context.Context, lessonID, status string, timeSpentSecs int) error {
			tracked++
			if lessonID != "l1" || status != "completed" {
				t.Errorf("tracked %q %q", lessonID, status)
			}
			return nil
		},
	}
	v := loadedViewer(t, client)

	updated, _ := v.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	v = updated.(*ViewerScreen)

	updated, cmd := v.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	v = updated.(*ViewerScreen)
	if cmd == nil {
		t.Fatal("expected a tracking command")
	}
	msg := cmd()
	if _, ok := msg.(trackedMsg); !ok {
		t.Fatalf("expected trackedMsg, got %T", msg)
	}
	if tracked != 1 {
		t.Errorf("tracked %d times", tracked)
	}

	// A second enter at the end must not track again.
	_, cmd = v.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		if _, ok := cmd().(trackedMsg); ok {
			t.Error("completion tracked twice")
		}
	}
	if tracked != 1 {
		t.Errorf("tracked %d times after second enter", tracked)
	}

	// The confirmation pops the screen.
	updated, cmd = v.Update(trackedMsg{})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	_ = updated
}

func TestViewer_FinishHandsOffToExercise(t *testing.T) {
	client := &walker.Mock{
		FetchLessonFunc: func(ctx context.Context, lessonID string) (*lessons.Lesson, error) {
			l := twoSectionLesson()
			l.ExerciseID = "ex-1"
			l.QuizID = "quiz-9"
			return l, nil
		},
	}
	v := loadedViewer(t, client)

	updated, cmd := v.Update(trackedMsg{})
	v = updated.(*ViewerScreen)
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := replace.Screen.(*exercisescreen.ExerciseScreen); !ok {
		t.Errorf("replacement screen = %T, want exercise screen", replace.Screen)
	}
}

func TestBrowser_OpensSelectedLesson(t *testing.T) {
	client := &walker.Mock{
		ListLessonsFunc: func(ctx context.Context, category string) ([]lessons.Summary, error) {
			return []lessons.Summary{
				{ID: "l1", Title: "Walker Basics"},
				{ID: "l2", Title: "Node Types"},
			}, nil
		},
	}
	b := NewBrowser(client, nil, nil, "core", "u-1")
	msg := b.Init()()
	updated, _ := b.Update(msg)
	b = updated.(*BrowserScreen)

	updated, _ = b.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	b = updated.(*BrowserScreen)

	_, cmd := b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	viewer, ok := push.Screen.(*ViewerScreen)
	if !ok {
		t.Fatalf("expected ViewerScreen, got %T", push.Screen)
	}
	if viewer.lessonID != "l2" {
		t.Errorf("opened %q, want l2", viewer.lessonID)
	}
}
