package dashboard

import (
	"errors"
	"testing"
)

func TestRoundPercent_HalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{41.4, 41},
		{41.5, 42},
		{41.6, 42},
		{99.5, 100},
		{72.49, 72},
	}
	for _, tc := range cases {
		if got := RoundPercent(tc.in); got != tc.want {
			t.Errorf("RoundPercent(%.2f) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBuild_PairsLessonsWithReasonsByIndex(t *testing.T) {
	recs := RecommendationSet{
		NextLessons: []RecommendedLesson{
			{LessonID: "advanced-walkers-1", Title: "Advanced Walker Patterns"},
			{LessonID: "jac-osp-1", Title: "Object-Spatial Paradigm"},
		},
		Reasons: []string{
			"You've mastered walker basics. Time for advanced patterns!",
			"OSP builds on your graph knowledge.",
		},
	}

	v, err := Build(Snapshot{}, recs)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Recommendations) != 2 {
		t.Fatalf("Recommendations = %d, want 2", len(v.Recommendations))
	}
	for i, r := range v.Recommendations {
		if r.Lesson.LessonID != recs.NextLessons[i].LessonID {
			t.Errorf("rec[%d].Lesson = %s, want %s", i, r.Lesson.LessonID, recs.NextLessons[i].LessonID)
		}
		if r.Reason != recs.Reasons[i] {
			t.Errorf("rec[%d].Reason = %q, want %q", i, r.Reason, recs.Reasons[i])
		}
	}
}

func TestBuild_MismatchedReasonsFails(t *testing.T) {
	recs := RecommendationSet{
		NextLessons: []RecommendedLesson{{LessonID: "a"}, {LessonID: "b"}},
		Reasons:     []string{"only one reason"},
	}
	_, err := Build(Snapshot{}, recs)
	var mm *ErrReasonMismatch
	if !errors.As(err, &mm) {
		t.Fatalf("Build = %v, want ErrReasonMismatch", err)
	}
	if mm.Lessons != 2 || mm.Reasons != 1 {
		t.Errorf("mismatch counts = %d/%d, want 2/1", mm.Lessons, mm.Reasons)
	}
}

func TestBuild_PreservesWalkerOrdering(t *testing.T) {
	snap := Snapshot{
		OverallProgress: 67.5,
		AvgQuizScore:    82.49,
		WeakAreas: []WeakArea{
			{ConceptName: "byLLM", Proficiency: 0.25},
			{ConceptName: "Walkers", Proficiency: 0.55},
			{ConceptName: "Abilities", Proficiency: 0.35},
		},
		RecentLessons: []TimelineLesson{
			{LessonID: "jac-intro-1", Status: StatusCompleted},
			{LessonID: "jac-nodes-1", Status: StatusInProgress},
		},
	}

	v, err := Build(snap, RecommendationSet{})
	if err != nil {
		t.Fatal(err)
	}

	if v.OverallPercent != 68 {
		t.Errorf("OverallPercent = %d, want 68", v.OverallPercent)
	}
	if v.AvgQuizPercent != 82 {
		t.Errorf("AvgQuizPercent = %d, want 82", v.AvgQuizPercent)
	}

	// The aggregator's ordering is authoritative: never re-sorted, even
	// when not sorted by proficiency.
	wantAreas := []string{"byLLM", "Walkers", "Abilities"}
	for i, wa := range v.WeakAreas {
		if wa.ConceptName != wantAreas[i] {
			t.Errorf("WeakAreas[%d] = %s, want %s", i, wa.ConceptName, wantAreas[i])
		}
	}
	if v.RecentLessons[0].LessonID != "jac-intro-1" || v.RecentLessons[1].LessonID != "jac-nodes-1" {
		t.Errorf("RecentLessons order changed: %+v", v.RecentLessons)
	}
}

func TestProficiencyPercent(t *testing.T) {
	wa := WeakArea{Proficiency: 0.545}
	if got := wa.ProficiencyPercent(); got != 55 {
		t.Errorf("ProficiencyPercent = %d, want 55", got)
	}
}
