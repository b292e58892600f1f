// Package lessons holds the lesson content model and the section
// paginator for the lesson viewer. Content comes from the ContentServer
// walker and is immutable once fetched.
package lessons

// Section is one page of a lesson.
type Section struct {
	Title       string
	Body        string
	CodeExample string
	KeyConcepts []string
}

// Lesson is a fetched lesson with its ordered sections. QuizID and
// ExerciseID are empty when the lesson has no follow-up quiz or code
// exercise.
type Lesson struct {
	ID              string
	Title           string
	Category        string
	Difficulty      string
	DurationMinutes int
	QuizID          string
	ExerciseID      string
	Sections        []Section
}

// Summary is a catalog entry for category listings.
type Summary struct {
	ID              string
	Title           string
	Difficulty      string
	DurationMinutes int
	Completed       bool
}
