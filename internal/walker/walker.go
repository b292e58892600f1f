// Package walker is the client for the platform's backend walkers, the
// remote operations that generate quizzes, assess answers, aggregate
// mastery, and plan learning paths. The client owns request/response
// plumbing only; all instructional intelligence lives on the server.
package walker

import (
	"context"

	"github.com/akshayb/jacpath/internal/dashboard"
	"github.com/akshayb/jacpath/internal/exercise"
	"github.com/akshayb/jacpath/internal/lessons"
	"github.com/akshayb/jacpath/internal/quiz"
	"github.com/akshayb/jacpath/internal/skillmap"
)

// Client is the walker abstraction consumed by screens and commands.
type Client interface {
	// FetchQuiz retrieves a quiz from the QuizGenerator walker.
	FetchQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error)

	// EvaluateAnswer sends one answer to the QuizAssessor walker.
	EvaluateAnswer(ctx context.Context, req *quiz.EvaluateRequest) (quiz.Feedback, error)

	// ScoreQuiz scores a completed attempt from its full answer and
	// feedback state.
	ScoreQuiz(ctx context.Context, req *quiz.ScoreRequest) (quiz.Score, error)

	// FetchSkillMap retrieves the mastery snapshot from the
	// MasteryAggregator walker.
	FetchSkillMap(ctx context.Context) ([]skillmap.Concept, error)

	// FetchProgress retrieves the aggregate progress snapshot.
	FetchProgress(ctx context.Context) (dashboard.Snapshot, error)

	// FetchRecommendations retrieves the LearningPathOptimizer's
	// suggested next lessons.
	FetchRecommendations(ctx context.Context) (dashboard.RecommendationSet, error)

	// FetchLesson retrieves full lesson content from the ContentServer
	// walker.
	FetchLesson(ctx context.Context, lessonID string) (*lessons.Lesson, error)

	// ListLessons retrieves the lesson catalog for a category.
	ListLessons(ctx context.Context, category string) ([]lessons.Summary, error)

	// TrackLesson reports a lesson status change to the ProgressTracker
	// walker.
	TrackLesson(ctx context.Context, lessonID, status string, timeSpentSecs int) error

	// ValidateExercise runs exercise code against its test cases via the
	// ContentValidator walker.
	ValidateExercise(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error)

	// SubmitExercise records an accepted solution with the
	// ProgressTracker walker.
	SubmitExercise(ctx context.Context, req *exercise.SubmitRequest) (exercise.Receipt, error)
}
