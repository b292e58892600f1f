package skillmapscreen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akshayb/jacpath/internal/skillmap"
	"github.com/akshayb/jacpath/internal/walker"
)

func testConcepts() []skillmap.Concept {
	return []skillmap.Concept{
		{ID: "c1", Name: "Variables", Category: skillmap.CategoryCore, MasteryScore: 0.9, Unlocked: true},
		{ID: "c2", Name: "Walkers", Category: skillmap.CategoryAdvanced, MasteryScore: 0.2, Unlocked: false, UnlockThreshold: 0.6},
		{ID: "c3", Name: "Graph Build", Category: skillmap.CategoryPractical, MasteryScore: 0.5, Unlocked: true},
	}
}

func loadedScreen(t *testing.T) *SkillMapScreen {
	t.Helper()
	client := &walker.Mock{
		FetchSkillMapFunc: func(ctx context.Context) ([]skillmap.Concept, error) {
			return testConcepts(), nil
		},
	}
	s := New(client)
	msg := s.Init()()
	updated, _ := s.Update(msg)
	return updated.(*SkillMapScreen)
}

func TestLoad_BuildsRowsInCategoryOrder(t *testing.T) {
	s := loadedScreen(t)

	var headers []string
	for _, r := range s.rows {
		if r.kind == rowCategoryHeader {
			headers = append(headers, string(r.category))
		}
	}
	want := []string{"core", "advanced", "practical"}
	if len(headers) != len(want) {
		t.Fatalf("got %d headers", len(headers))
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, headers[i], want[i])
		}
	}
}

func TestLoad_CursorStartsOnFirstConcept(t *testing.T) {
	s := loadedScreen(t)
	if s.rows[s.cursor].kind != rowConcept {
		t.Errorf("cursor on row kind %v", s.rows[s.cursor].kind)
	}
	if s.rows[s.cursor].concept.ID != "c1" {
		t.Errorf("cursor on %q", s.rows[s.cursor].concept.ID)
	}
}

func TestMoveCursor_SkipsHeaders(t *testing.T) {
	s := loadedScreen(t)

	s.moveCursor(1)
	if s.rows[s.cursor].kind != rowConcept {
		t.Fatalf("cursor landed on a header")
	}
	if s.rows[s.cursor].concept.ID != "c2" {
		t.Errorf("cursor on %q, want c2", s.rows[s.cursor].concept.ID)
	}
}

func TestView_LockedConceptStaysVisible(t *testing.T) {
	s := loadedScreen(t)
	out := s.View(100, 40)
	if !strings.Contains(out, "Walkers") {
		t.Error("locked concept missing from view")
	}
	if !strings.Contains(out, "unlock at 60%") {
		t.Errorf("unlock threshold missing from view:\n%s", out)
	}
}

func TestLoad_ErrorShowsMessage(t *testing.T) {
	client := &walker.Mock{
		FetchSkillMapFunc: func(ctx context.Context) ([]skillmap.Concept, error) {
			return nil, errors.New("connection refused")
		},
	}
	s := New(client)
	msg := s.Init()()
	updated, _ := s.Update(msg)
	s = updated.(*SkillMapScreen)

	out := s.View(100, 40)
	if !strings.Contains(out, "connection refused") {
		t.Errorf("error missing from view:\n%s", out)
	}
}
