package walker

import (
	"encoding/json"
	"testing"
)

func TestValidatePayload_AcceptsConformingPayload(t *testing.T) {
	raw := json.RawMessage(`{"score": 50, "passed": false, "correctAnswers": 1, "totalQuestions": 2}`)
	if err := validatePayload(scoreSchema, raw); err != nil {
		t.Errorf("validatePayload: %v", err)
	}
}

func TestValidatePayload_RejectsOutOfRangeScore(t *testing.T) {
	raw := json.RawMessage(`{"score": 120, "passed": true, "correctAnswers": 1, "totalQuestions": 2}`)
	if err := validatePayload(scoreSchema, raw); err == nil {
		t.Error("expected validation error for score > 100")
	}
}

func TestValidatePayload_RejectsMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"feedback": {"message": "hi"}}`)
	if err := validatePayload(evaluationSchema, raw); err == nil {
		t.Error("expected validation error for missing feedback.correct")
	}
}

func TestCompiledSchema_CachesByName(t *testing.T) {
	first, err := compiledSchema(quizSchema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := compiledSchema(quizSchema)
	if err != nil {
		t.Fatalf("compile again: %v", err)
	}
	if first != second {
		t.Error("expected the cached schema on the second call")
	}
}
