package walker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akshayb/jacpath/internal/dashboard"
	"github.com/akshayb/jacpath/internal/exercise"
	"github.com/akshayb/jacpath/internal/lessons"
	"github.com/akshayb/jacpath/internal/quiz"
	"github.com/akshayb/jacpath/internal/skillmap"
)

// HTTPClient talks to the walker backend over JSON/HTTP. Every response
// body is validated against its schema before it is trusted.
type HTTPClient struct {
	baseURL string
	userID  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given backend.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		userID:  cfg.UserID,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	var dto quizDTO
	if err := c.get(ctx, "fetch quiz", "/api/quizzes/"+quizID, quizSchema, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *HTTPClient) EvaluateAnswer(ctx context.Context, req *quiz.EvaluateRequest) (quiz.Feedback, error) {
	body := map[string]any{
		"quizId":       req.QuizID,
		"questionId":   req.QuestionID,
		"userAnswer":   req.UserAnswer,
		"questionType": string(req.Type),
		"userId":       req.UserID,
	}
	var dto evaluationDTO
	if err := c.post(ctx, "evaluate answer", "/api/quizzes/evaluate-answer", body, evaluationSchema, &dto); err != nil {
		return quiz.Feedback{}, err
	}
	return quiz.Feedback{
		Correct:     dto.Feedback.Correct,
		Message:     dto.Feedback.Message,
		Explanation: dto.Feedback.Explanation,
	}, nil
}

func (c *HTTPClient) ScoreQuiz(ctx context.Context, req *quiz.ScoreRequest) (quiz.Score, error) {
	feedback := make(map[string]feedbackDTO, len(req.Feedback))
	for id, fb := range req.Feedback {
		feedback[id] = feedbackDTO{Correct: fb.Correct, Message: fb.Message, Explanation: fb.Explanation}
	}
	body := map[string]any{
		"quizId":   req.QuizID,
		"userId":   req.UserID,
		"answers":  req.Answers,
		"feedback": feedback,
	}
	var dto scoreDTO
	if err := c.post(ctx, "score quiz", "/api/quizzes/score", body, scoreSchema, &dto); err != nil {
		return quiz.Score{}, err
	}
	return quiz.Score{
		Score:          dto.Score,
		Passed:         dto.Passed,
		CorrectAnswers: dto.CorrectAnswers,
		TotalQuestions: dto.TotalQuestions,
	}, nil
}

func (c *HTTPClient) FetchSkillMap(ctx context.Context) ([]skillmap.Concept, error) {
	var dto skillMapDTO
	path := fmt.Sprintf("/api/users/%s/skill-map", c.userID)
	if err := c.get(ctx, "fetch skill map", path, skillMapSchema, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (c *HTTPClient) FetchProgress(ctx context.Context) (dashboard.Snapshot, error) {
	var dto progressDTO
	path := fmt.Sprintf("/api/users/%s/progress", c.userID)
	if err := c.get(ctx, "fetch progress", path, progressSchema, &dto); err != nil {
		return dashboard.Snapshot{}, err
	}
	return dto.toDomain(), nil
}

func (c *HTTPClient) FetchRecommendations(ctx context.Context) (dashboard.RecommendationSet, error) {
	var dto recommendationsDTO
	path := fmt.Sprintf("/api/users/%s/recommendations", c.userID)
	if err := c.get(ctx, "fetch recommendations", path, recommendationsSchema, &dto); err != nil {
		return dashboard.RecommendationSet{}, err
	}
	return dto.toDomain(), nil
}

func (c *HTTPClient) FetchLesson(ctx context.Context, lessonID string) (*lessons.Lesson, error) {
	var dto lessonDTO
	if err := c.get(ctx, "fetch lesson", "/api/lessons/"+lessonID, lessonSchema, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *HTTPClient) ListLessons(ctx context.Context, category string) ([]lessons.Summary, error) {
	var dto lessonListDTO
	if err := c.get(ctx, "list lessons", "/api/lessons/category/"+category, lessonListSchema, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *HTTPClient) TrackLesson(ctx context.Context, lessonID, status string, timeSpentSecs int) error {
	body := map[string]any{
		"userId":    c.userID,
		"lessonId":  lessonID,
		"status":    status,
		"timeSpent": timeSpentSecs,
	}
	return c.post(ctx, "track lesson", "/api/progress/track", body, nil, nil)
}

func (c *HTTPClient) ValidateExercise(ctx context.Context, exerciseID, code string) (exercise.ValidationResult, error) {
	body := map[string]any{
		"exerciseId": exerciseID,
		"code":       code,
		"userId":     c.userID,
	}
	var dto validationDTO
	if err := c.post(ctx, "validate exercise", "/api/exercises/validate", body, validationSchema, &dto); err != nil {
		return exercise.ValidationResult{}, err
	}
	return dto.toDomain(), nil
}

func (c *HTTPClient) SubmitExercise(ctx context.Context, req *exercise.SubmitRequest) (exercise.Receipt, error) {
	body := map[string]any{
		"exerciseId":  req.ExerciseID,
		"lessonId":    req.LessonID,
		"code":        req.Code,
		"userId":      c.userID,
		"testsPassed": req.TestsPassed,
		"totalTests":  req.TotalTests,
	}
	var dto receiptDTO
	if err := c.post(ctx, "submit exercise", "/api/exercises/submit", body, receiptSchema, &dto); err != nil {
		return exercise.Receipt{}, err
	}
	return exercise.Receipt{
		Success:      dto.Success,
		Message:      dto.Message,
		PointsEarned: dto.PointsEarned,
	}, nil
}

// get performs a GET request and decodes the validated response into out.
func (c *HTTPClient) get(ctx context.Context, op, path string, schema *Schema, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	return c.do(op, req, schema, out)
}

// post performs a POST request with a JSON body and decodes the
// validated response into out (out may be nil when the caller only
// cares about success).
func (c *HTTPClient) post(ctx context.Context, op, path string, body any, schema *Schema, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, schema, out)
}

func (c *HTTPClient) do(op string, req *http.Request, schema *Schema, out any) error {
	req.Header.Set("X-User-ID", c.userID)

	resp, err := c.client.Do(req)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServiceError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	if schema != nil {
		if err := validatePayload(schema, raw); err != nil {
			return &ContractError{Op: op, Err: err}
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ContractError{Op: op, Err: err}
	}
	return nil
}

// Wire DTOs. Field names follow the walker API's JSON contract.

type questionDTO struct {
	QuestionID   string   `json:"questionId"`
	QuestionText string   `json:"questionText"`
	QuestionType string   `json:"questionType"`
	Options      []string `json:"options"`
	StarterCode  string   `json:"starterCode"`
}

type quizDTO struct {
	QuizID    string        `json:"quizId"`
	Title     string        `json:"title"`
	Questions []questionDTO `json:"questions"`
}

func (d *quizDTO) toDomain() *quiz.Quiz {
	q := &quiz.Quiz{ID: d.QuizID, Title: d.Title}
	for _, qd := range d.Questions {
		q.Questions = append(q.Questions, quiz.Question{
			ID:          qd.QuestionID,
			Text:        qd.QuestionText,
			Type:        quiz.QuestionType(qd.QuestionType),
			Options:     qd.Options,
			StarterCode: qd.StarterCode,
		})
	}
	return q
}

type feedbackDTO struct {
	Correct     bool   `json:"correct"`
	Message     string `json:"message"`
	Explanation string `json:"explanation,omitempty"`
}

type evaluationDTO struct {
	Feedback feedbackDTO `json:"feedback"`
}

type scoreDTO struct {
	Score          float64 `json:"score"`
	Passed         bool    `json:"passed"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
}

type resourceDTO struct {
	LessonID    string `json:"lessonId"`
	LessonTitle string `json:"lessonTitle"`
}

type conceptDTO struct {
	ConceptID       string        `json:"conceptId"`
	ConceptName     string        `json:"conceptName"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	MasteryScore    float64       `json:"masteryScore"`
	IsUnlocked      bool          `json:"isUnlocked"`
	UnlockThreshold float64       `json:"unlockThreshold"`
	TimesPracticed  int           `json:"timesPracticed"`
	LastPracticed   *string       `json:"lastPracticed"`
	Resources       []resourceDTO `json:"resources"`
}

type skillMapDTO struct {
	Concepts []conceptDTO `json:"concepts"`
}

func (d *skillMapDTO) toDomain() ([]skillmap.Concept, error) {
	out := make([]skillmap.Concept, 0, len(d.Concepts))
	for _, cd := range d.Concepts {
		c := skillmap.Concept{
			ID:              cd.ConceptID,
			Name:            cd.ConceptName,
			Description:     cd.Description,
			Category:        skillmap.Category(cd.Category),
			MasteryScore:    cd.MasteryScore,
			Unlocked:        cd.IsUnlocked,
			UnlockThreshold: cd.UnlockThreshold,
			TimesPracticed:  cd.TimesPracticed,
		}
		if cd.LastPracticed != nil && *cd.LastPracticed != "" {
			t, err := parseWalkerDate(*cd.LastPracticed)
			if err != nil {
				return nil, &ContractError{Op: "fetch skill map", Err: fmt.Errorf("concept %s: %w", cd.ConceptID, err)}
			}
			c.LastPracticed = &t
		}
		for _, r := range cd.Resources {
			c.Resources = append(c.Resources, skillmap.Resource{LessonID: r.LessonID, LessonTitle: r.LessonTitle})
		}
		out = append(out, c)
	}
	return out, nil
}

// parseWalkerDate accepts the two timestamp shapes walkers emit: a bare
// date or RFC 3339.
func parseWalkerDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	return t, nil
}

type timelineLessonDTO struct {
	LessonID      string `json:"lessonId"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	CompletedDate string `json:"completedDate"`
}

type weakAreaDTO struct {
	ConceptName string  `json:"conceptName"`
	Proficiency float64 `json:"proficiency"`
}

type progressDTO struct {
	OverallProgress  float64             `json:"overallProgress"`
	LessonsCompleted int                 `json:"lessonsCompleted"`
	TotalLessons     int                 `json:"totalLessons"`
	AvgQuizScore     float64             `json:"avgQuizScore"`
	CurrentStreak    int                 `json:"currentStreak"`
	HoursThisWeek    float64             `json:"hoursThisWeek"`
	HoursThisMonth   float64             `json:"hoursThisMonth"`
	TotalHours       float64             `json:"totalHours"`
	RecentLessons    []timelineLessonDTO `json:"recentLessons"`
	WeakAreas        []weakAreaDTO       `json:"weakAreas"`
}

func (d *progressDTO) toDomain() dashboard.Snapshot {
	snap := dashboard.Snapshot{
		OverallProgress:  d.OverallProgress,
		LessonsCompleted: d.LessonsCompleted,
		TotalLessons:     d.TotalLessons,
		AvgQuizScore:     d.AvgQuizScore,
		CurrentStreak:    d.CurrentStreak,
		HoursThisWeek:    d.HoursThisWeek,
		HoursThisMonth:   d.HoursThisMonth,
		TotalHours:       d.TotalHours,
	}
	for _, l := range d.RecentLessons {
		snap.RecentLessons = append(snap.RecentLessons, dashboard.TimelineLesson{
			LessonID:      l.LessonID,
			Title:         l.Title,
			Category:      l.Category,
			Status:        dashboard.LessonStatus(l.Status),
			CompletedDate: l.CompletedDate,
		})
	}
	for _, w := range d.WeakAreas {
		snap.WeakAreas = append(snap.WeakAreas, dashboard.WeakArea{
			ConceptName: w.ConceptName,
			Proficiency: w.Proficiency,
		})
	}
	return snap
}

type recommendedLessonDTO struct {
	LessonID        string `json:"lessonId"`
	Title           string `json:"title"`
	Difficulty      string `json:"difficulty"`
	DurationMinutes int    `json:"durationMinutes"`
	Category        string `json:"category"`
}

type recommendationsDTO struct {
	NextLessons []recommendedLessonDTO `json:"nextLessons"`
	Reasons     []string               `json:"reasons"`
}

func (d *recommendationsDTO) toDomain() dashboard.RecommendationSet {
	set := dashboard.RecommendationSet{Reasons: d.Reasons}
	for _, l := range d.NextLessons {
		set.NextLessons = append(set.NextLessons, dashboard.RecommendedLesson{
			LessonID:        l.LessonID,
			Title:           l.Title,
			Difficulty:      l.Difficulty,
			DurationMinutes: l.DurationMinutes,
			Category:        l.Category,
		})
	}
	return set
}

type sectionDTO struct {
	SectionTitle string   `json:"sectionTitle"`
	Body         string   `json:"body"`
	CodeExample  string   `json:"codeExample"`
	KeyConcepts  []string `json:"keyConcepts"`
}

type lessonDTO struct {
	LessonID        string       `json:"lessonId"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Difficulty      string       `json:"difficulty"`
	DurationMinutes int          `json:"durationMinutes"`
	QuizID          string       `json:"quizId"`
	ExerciseID      string       `json:"exerciseId"`
	Sections        []sectionDTO `json:"sections"`
}

func (d *lessonDTO) toDomain() *lessons.Lesson {
	l := &lessons.Lesson{
		ID:              d.LessonID,
		Title:           d.Title,
		Category:        d.Category,
		Difficulty:      d.Difficulty,
		DurationMinutes: d.DurationMinutes,
		QuizID:          d.QuizID,
		ExerciseID:      d.ExerciseID,
	}
	for _, s := range d.Sections {
		l.Sections = append(l.Sections, lessons.Section{
			Title:       s.SectionTitle,
			Body:        s.Body,
			CodeExample: s.CodeExample,
			KeyConcepts: s.KeyConcepts,
		})
	}
	return l
}

type testDetailDTO struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

type validationDTO struct {
	ExerciseID  string          `json:"exerciseId"`
	AllPassed   bool            `json:"allPassed"`
	PassedTests int             `json:"passedTests"`
	TotalTests  int             `json:"totalTests"`
	TestDetails []testDetailDTO `json:"testDetails"`
}

func (d *validationDTO) toDomain() exercise.ValidationResult {
	r := exercise.ValidationResult{
		ExerciseID:  d.ExerciseID,
		AllPassed:   d.AllPassed,
		PassedTests: d.PassedTests,
		TotalTests:  d.TotalTests,
	}
	for _, td := range d.TestDetails {
		r.Tests = append(r.Tests, exercise.TestResult{
			Name:    td.Name,
			Passed:  td.Passed,
			Message: td.Message,
		})
	}
	return r
}

type receiptDTO struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PointsEarned int    `json:"pointsEarned"`
}

type lessonSummaryDTO struct {
	LessonID        string `json:"lessonId"`
	Title           string `json:"title"`
	Difficulty      string `json:"difficulty"`
	DurationMinutes int    `json:"durationMinutes"`
	Completed       bool   `json:"completed"`
}

type lessonListDTO struct {
	Lessons []lessonSummaryDTO `json:"lessons"`
}

func (d *lessonListDTO) toDomain() []lessons.Summary {
	out := make([]lessons.Summary, 0, len(d.Lessons))
	for _, l := range d.Lessons {
		out = append(out, lessons.Summary{
			ID:              l.LessonID,
			Title:           l.Title,
			Difficulty:      l.Difficulty,
			DurationMinutes: l.DurationMinutes,
			Completed:       l.Completed,
		})
	}
	return out
}
