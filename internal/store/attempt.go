package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt records one finished quiz run.
type Attempt struct {
	ID             string  `gorm:"primaryKey"`
	QuizID         string  `gorm:"index"`
	QuizTitle      string
	UserID         string  `gorm:"index"`
	Score          float64
	Passed         bool
	CorrectAnswers int
	TotalQuestions int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// AttemptRepo stores and queries quiz attempts.
type AttemptRepo interface {
	// Save records a finished attempt. A missing ID is filled in.
	Save(ctx context.Context, a *Attempt) error

	// Recent returns up to limit attempts, newest first.
	Recent(ctx context.Context, limit int) ([]Attempt, error)

	// ByQuiz returns all attempts for one quiz, newest first.
	ByQuiz(ctx context.Context, quizID string) ([]Attempt, error)
}

type attemptRepo struct {
	db *gorm.DB
}

func (r *attemptRepo) Save(ctx context.Context, a *Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	var out []Attempt
	q := r.db.WithContext(ctx).Order("finished_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *attemptRepo) ByQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	var out []Attempt
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("finished_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
