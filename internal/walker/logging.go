package walker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/dashboard"
	"github.com/akshayb/jacpath/internal/exercise"
	"github.com/akshayb/jacpath/internal/lessons"
	"github.com/akshayb/jacpath/internal/quiz"
	"github.com/akshayb/jacpath/internal/skillmap"
)

// loggingClient wraps a Client and logs every call with its duration
// and outcome.
type loggingClient struct {
	inner Client
	log   *zap.Logger
}

// WithLogging decorates a client with request/response logging.
func WithLogging(inner Client, log *zap.Logger) Client {
	return &loggingClient{inner: inner, log: log}
}

func (c *loggingClient) observe(op string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.Warn("walker call failed", append([]zap.Field{zap.String("op", op)}, fields...)...)
		return
	}
	c.log.Debug("walker call ok", append([]zap.Field{zap.String("op", op)}, fields...)...)
}

func (c *loggingClient) FetchQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	start := time.Now()
	q, err := c.inner.FetchQuiz(ctx, quizID)
	c.observe("fetch quiz", start, err, zap.String("quizId", quizID))
	return q, err
}

func (c *loggingClient) EvaluateAnswer(ctx context.Context, req *quiz.EvaluateRequest) (quiz.Feedback, error) {
	start := time.Now()
	fb, err := c.inner.EvaluateAnswer(ctx, req)
	c.observe("evaluate answer", start, err,
		zap.String("quizId", req.QuizID),
		zap.String("questionId", req.QuestionID))
	return fb, err
}

func (c *loggingClient) ScoreQuiz(ctx context.Context, req *quiz.ScoreRequest) (quiz.Score, error) {
	start := time.Now()
	score, err := c.inner.ScoreQuiz(ctx, req)
	c.observe("score quiz", start, err, zap.String("quizId", req.QuizID))
	return score, err
}

func (c *loggingClient) FetchSkillMap(ctx context.Context) ([]skillmap.Concept, error) {
	start := time.Now()
	concepts, err := c.inner.FetchSkillMap(ctx)
	c.observe("fetch skill map", start, err, zap.Int("concepts", len(concepts)))
	return concepts, err
}

func (c *loggingClient) FetchProgress(ctx context.Context) (dashboard.Snapshot, error) {
	start := time.Now()
	snap, err := c.inner.FetchProgress(ctx)
	c.observe("fetch progress", start, err)
	return snap, err
}

func (c *loggingClient) FetchRecommendations(ctx context.Context) (dashboard.RecommendationSet, error) {
	start := time.Now()
	set, err := c.inner.FetchRecommendations(ctx)
	c.observe("fetch recommendations", start, err, zap.Int("lessons", len(set.NextLessons)))
	return set, err
}

func (c *loggingClient) FetchLesson(ctx context.Context, lessonID string) (*lessons.Lesson, error) {
	start := time.Now()
	l, err := c.inner.FetchLesson(ctx, lessonID)
	c.observe("fetch lesson", start, err, zap.String("lessonId", lessonID))
	return l, err
}

func (c *loggingClient) ListLessons(ctx context.Context, category string) ([]lessons.Summary, error) {
	start := time.Now()
	list, err := c.inner.ListLessons(ctx, category)
	c.observe("list lessons", start, err, zap.String("category", category))
	return list, err
}

func (c *loggingClient) TrackLesson(ctx context.Context, lessonID, status string, timeSpentSecs int) error {
	start := time.Now()
	err := c.inner.TrackLesson(ctx, lessonID, status, timeSpentSecs)
	c.observe("track lesson", start, err,
		zap.String("lessonId", lessonID),
		zap.String("status", status))
	return err
}

func (c *loggingClient) ValidateExercise(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error) {
	start := time.Now()
	result, err := c.inner.ValidateExercise(ctx, exerciseID, code)
	c.observe("validate exercise", start, err,
		zap.String("exerciseId", exerciseID),
		zap.Bool("allPassed", result.AllPassed))
	return result, err
}

func (c *loggingClient) SubmitExercise(ctx context.Context, req *exercise.SubmitRequest) (exercise.Receipt, error) {
	start := time.Now()
	receipt, err := c.inner.SubmitExercise(ctx, req)
	c.observe("submit exercise", start, err,
		zap.String("exerciseId", req.ExerciseID),
		zap.String("lessonId", req.LessonID))
	return receipt, err
}
