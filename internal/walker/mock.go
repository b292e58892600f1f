package walker

import (
	"context"
	"fmt"

	"github.com/akshayb/jacpath/internal/dashboard"
	"github.com/akshayb/jacpath/internal/exercise"
	"github.com/akshayb/jacpath/internal/lessons"
	"github.com/akshayb/jacpath/internal/quiz"
	"github.com/akshayb/jacpath/internal/skillmap"
)

// Mock is a test double for Client. Unset funcs return an error so a
// test that hits an unexpected endpoint fails loudly.
type Mock struct {
	FetchQuizFunc            func(ctx context.Context, quizID string) (*quiz.Quiz, error)
	EvaluateAnswerFunc       func(ctx context.Context, req *quiz.EvaluateRequest) (quiz.Feedback, error)
	ScoreQuizFunc            func(ctx context.Context, req *quiz.ScoreRequest) (quiz.Score, error)
	FetchSkillMapFunc        func(ctx context.Context) ([]skillmap.Concept, error)
	FetchProgressFunc        func(ctx context.Context) (dashboard.Snapshot, error)
	FetchRecommendationsFunc func(ctx context.Context) (dashboard.RecommendationSet, error)
	FetchLessonFunc          func(ctx context.Context, lessonID string) (*lessons.Lesson, error)
	ListLessonsFunc          func(ctx context.Context, category string) ([]lessons.Summary, error)
	TrackLessonFunc          func(ctx context.Context, lessonID, status string, timeSpentSecs int) error
	ValidateExerciseFunc     func(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error)
	SubmitExerciseFunc       func(ctx context.Context, req *exercise.SubmitRequest) (exercise.Receipt, error)
}

var _ Client = (*Mock)(nil)

func (m *Mock) FetchQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	if m.FetchQuizFunc == nil {
		return nil, fmt.Errorf("unexpected FetchQuiz call")
	}
	return m.FetchQuizFunc(ctx, quizID)
}

func (m *Mock) EvaluateAnswer(ctx context.Context, req *quiz.EvaluateRequest) (quiz.Feedback, error) {
	if m.EvaluateAnswerFunc == nil {
		return quiz.Feedback{}, fmt.Errorf("unexpected EvaluateAnswer call")
	}
	return m.EvaluateAnswerFunc(ctx, req)
}

func (m *Mock) ScoreQuiz(ctx context.Context, req *quiz.ScoreRequest) (quiz.Score, error) {
	if m.ScoreQuizFunc == nil {
		return quiz.Score{}, fmt.Errorf("unexpected ScoreQuiz call")
	}
	return m.ScoreQuizFunc(ctx, req)
}

func (m *Mock) FetchSkillMap(ctx context.Context) ([]skillmap.Concept, error) {
	if m.FetchSkillMapFunc == nil {
		return nil, fmt.Errorf("unexpected FetchSkillMap call")
	}
	return m.FetchSkillMapFunc(ctx)
}

func (m *Mock) FetchProgress(ctx context.Context) (dashboard.Snapshot, error) {
	if m.FetchProgressFunc == nil {
		return dashboard.Snapshot{}, fmt.Errorf("unexpected FetchProgress call")
	}
	return m.FetchProgressFunc(ctx)
}

func (m *Mock) FetchRecommendations(ctx context.Context) (dashboard.RecommendationSet, error) {
	if m.FetchRecommendationsFunc == nil {
		return dashboard.RecommendationSet{}, fmt.Errorf("unexpected FetchRecommendations call")
	}
	return m.FetchRecommendationsFunc(ctx)
}

func (m *Mock) FetchLesson(ctx context.Context, lessonID string) (*lessons.Lesson, error) {
	if m.FetchLessonFunc == nil {
		return nil, fmt.Errorf("unexpected FetchLesson call")
	}
	return m.FetchLessonFunc(ctx, lessonID)
}

func (m *Mock) ListLessons(ctx context.Context, category string) ([]lessons.Summary, error) {
	if m.ListLessonsFunc == nil {
		return nil, fmt.Errorf("unexpected ListLessons call")
	}
	return m.ListLessonsFunc(ctx, category)
}

func (m *Mock) TrackLesson(ctx context.Context, lessonID, status string, timeSpentSecs int) error {
	if m.TrackLessonFunc == nil {
		return fmt.Errorf("unexpected TrackLesson call")
	}
	return m.TrackLessonFunc(ctx, lessonID, status, timeSpentSecs)
}

func (m *Mock) ValidateExercise(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error) {
	if m.ValidateExerciseFunc == nil {
		return exercise.ValidationResult{}, fmt.Errorf("unexpected ValidateExercise call")
	}
	return m.ValidateExerciseFunc(ctx, exerciseID, code)
}

func (m *Mock) SubmitExercise(ctx context.Context, req *exercise.SubmitRequest) (exercise.Receipt, error) {
	if m.SubmitExerciseFunc == nil {
		return exercise.Receipt{}, fmt.Errorf("unexpected SubmitExercise call")
	}
	return m.SubmitExerciseFunc(ctx, req)
}
