// Package dashboard merges the MasteryAggregator's progress snapshot and
// the LearningPathOptimizer's recommendation set into one display-ready
// view model. The client never recomputes aggregate values; it only
// formats what the walkers delivered.
package dashboard

import (
	"fmt"
	"math"
)

// LessonStatus is the completion state of a lesson on the timeline.
type LessonStatus string

const (
	StatusCompleted  LessonStatus = "completed"
	StatusInProgress LessonStatus = "in_progress"
	StatusNotStarted LessonStatus = "not_started"
)

// TimelineLesson is one entry of the recent-lessons timeline.
type TimelineLesson struct {
	LessonID      string
	Title         string
	Category      string
	Status        LessonStatus
	CompletedDate string
}

// WeakArea is a concept flagged by the aggregator as needing work.
type WeakArea struct {
	ConceptName string
	Proficiency float64 // 0..1
}

// Snapshot is the aggregate progress state delivered by the walker.
// Ordered slices keep the walker's ordering; the client never re-sorts.
type Snapshot struct {
	OverallProgress  float64 // 0..100
	LessonsCompleted int
	TotalLessons     int
	AvgQuizScore     float64 // 0..100
	CurrentStreak    int
	HoursThisWeek    float64
	HoursThisMonth   float64
	TotalHours       float64
	RecentLessons    []TimelineLesson
	WeakAreas        []WeakArea
}

// RecommendedLesson is one suggested next lesson.
type RecommendedLesson struct {
	LessonID        string
	Title           string
	Difficulty      string
	DurationMinutes int
	Category        string
}

// RecommendationSet pairs lessons with reasons positionally: the lesson
// at index i goes with the reason at index i.
type RecommendationSet struct {
	NextLessons []RecommendedLesson
	Reasons     []string
}

// Recommendation is one zipped (lesson, reason) pair.
type Recommendation struct {
	Lesson RecommendedLesson
	Reason string
}

// ErrReasonMismatch reports lesson and reason sequences of different
// lengths. Truncating or padding would pair a lesson with the wrong
// reason, so the projection fails instead.
type ErrReasonMismatch struct {
	Lessons int
	Reasons int
}

func (e *ErrReasonMismatch) Error() string {
	return fmt.Sprintf("recommendation set has %d lessons but %d reasons", e.Lessons, e.Reasons)
}

// View is the dashboard view model.
type View struct {
	OverallPercent   int
	LessonsCompleted int
	TotalLessons     int
	AvgQuizPercent   int
	CurrentStreak    int
	HoursThisWeek    float64
	HoursThisMonth   float64
	TotalHours       float64
	RecentLessons    []TimelineLesson
	WeakAreas        []WeakArea
	Recommendations  []Recommendation
}

// Build produces the view model. Pure function; order of RecentLessons,
// WeakAreas, and Recommendations is the walkers' order.
func Build(snap Snapshot, recs RecommendationSet) (*View, error) {
	if len(recs.NextLessons) != len(recs.Reasons) {
		return nil, &ErrReasonMismatch{Lessons: len(recs.NextLessons), Reasons: len(recs.Reasons)}
	}

	paired := make([]Recommendation, len(recs.NextLessons))
	for i, lesson := range recs.NextLessons {
		paired[i] = Recommendation{Lesson: lesson, Reason: recs.Reasons[i]}
	}

	return &View{
		OverallPercent:   RoundPercent(snap.OverallProgress),
		LessonsCompleted: snap.LessonsCompleted,
		TotalLessons:     snap.TotalLessons,
		AvgQuizPercent:   RoundPercent(snap.AvgQuizScore),
		CurrentStreak:    snap.CurrentStreak,
		HoursThisWeek:    snap.HoursThisWeek,
		HoursThisMonth:   snap.HoursThisMonth,
		TotalHours:       snap.TotalHours,
		RecentLessons:    snap.RecentLessons,
		WeakAreas:        snap.WeakAreas,
		Recommendations:  paired,
	}, nil
}

// RoundPercent rounds a percentage to the nearest integer, half up.
// Every percent shown anywhere in the client goes through this so the
// displays stay consistent.
func RoundPercent(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ProficiencyPercent returns a weak area's proficiency as a rounded
// display percentage.
func (w WeakArea) ProficiencyPercent() int {
	return RoundPercent(w.Proficiency * 100)
}
