// Package exercise models code exercises: the learner writes Jac code,
// the ContentValidator walker runs it against test cases, and the
// ProgressTracker walker records the accepted solution. The client
// never executes code itself.
package exercise

// TestResult is the verdict for one test case.
type TestResult struct {
	Name    string
	Passed  bool
	Message string
}

// ValidationResult is the ContentValidator's report for one run.
type ValidationResult struct {
	ExerciseID  string
	AllPassed   bool
	PassedTests int
	TotalTests  int
	Tests       []TestResult
}

// Submittable reports whether the solution may be submitted. A solution
// with failing tests is rejected client-side before any request is made.
func (r *ValidationResult) Submittable() bool {
	return r != nil && r.AllPassed
}

// SubmitRequest carries an accepted solution to the ProgressTracker.
type SubmitRequest struct {
	ExerciseID  string
	LessonID    string
	Code        string
	TestsPassed int
	TotalTests  int
}

// Receipt acknowledges a submitted solution.
type Receipt struct {
	Success      bool
	Message      string
	PointsEarned int
}
