package walker

// Schema is a named JSON Schema a walker response must satisfy before
// the client trusts its shape.
type Schema struct {
	Name       string
	Definition map[string]any
}

var quizSchema = &Schema{
	Name: "quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quizId": map[string]any{"type": "string"},
			"title":  map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionId":   map[string]any{"type": "string"},
						"questionText": map[string]any{"type": "string"},
						"questionType": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"starterCode": map[string]any{"type": "string"},
					},
					"required": []any{"questionId", "questionText", "questionType"},
				},
			},
		},
		"required": []any{"quizId", "title", "questions"},
	},
}

var evaluationSchema = &Schema{
	Name: "evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correct":     map[string]any{"type": "boolean"},
					"message":     map[string]any{"type": "string"},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"correct", "message"},
			},
		},
		"required": []any{"feedback"},
	},
}

var scoreSchema = &Schema{
	Name: "score",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":          map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"passed":         map[string]any{"type": "boolean"},
			"correctAnswers": map[string]any{"type": "integer"},
			"totalQuestions": map[string]any{"type": "integer"},
		},
		"required": []any{"score", "passed", "correctAnswers", "totalQuestions"},
	},
}

var skillMapSchema = &Schema{
	Name: "skill-map",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"conceptId":       map[string]any{"type": "string"},
						"conceptName":     map[string]any{"type": "string"},
						"description":     map[string]any{"type": "string"},
						"category":        map[string]any{"type": "string"},
						"masteryScore":    map[string]any{"type": "number", "minimum": 0, "maximum": 1},
						"isUnlocked":      map[string]any{"type": "boolean"},
						"unlockThreshold": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
						"timesPracticed":  map[string]any{"type": "integer"},
						"resources": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"lessonId":    map[string]any{"type": "string"},
									"lessonTitle": map[string]any{"type": "string"},
								},
								"required": []any{"lessonId", "lessonTitle"},
							},
						},
					},
					"required": []any{"conceptId", "conceptName", "category", "masteryScore", "isUnlocked"},
				},
			},
		},
		"required": []any{"concepts"},
	},
}

var progressSchema = &Schema{
	Name: "progress",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overallProgress":  map[string]any{"type": "number"},
			"lessonsCompleted": map[string]any{"type": "integer"},
			"totalLessons":     map[string]any{"type": "integer"},
			"avgQuizScore":     map[string]any{"type": "number"},
			"currentStreak":    map[string]any{"type": "integer"},
			"recentLessons":    map[string]any{"type": "array"},
			"weakAreas": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"conceptName": map[string]any{"type": "string"},
						"proficiency": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
					},
					"required": []any{"conceptName", "proficiency"},
				},
			},
		},
		"required": []any{"overallProgress", "lessonsCompleted", "totalLessons", "avgQuizScore"},
	},
}

var recommendationsSchema = &Schema{
	Name: "recommendations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nextLessons": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"lessonId":        map[string]any{"type": "string"},
						"title":           map[string]any{"type": "string"},
						"difficulty":      map[string]any{"type": "string"},
						"durationMinutes": map[string]any{"type": "integer"},
						"category":        map[string]any{"type": "string"},
					},
					"required": []any{"lessonId", "title"},
				},
			},
			"reasons": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"nextLessons", "reasons"},
	},
}

var lessonSchema = &Schema{
	Name: "lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessonId": map[string]any{"type": "string"},
			"title":    map[string]any{"type": "string"},
			"sections": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sectionTitle": map[string]any{"type": "string"},
						"body":         map[string]any{"type": "string"},
						"codeExample":  map[string]any{"type": "string"},
						"keyConcepts": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required": []any{"sectionTitle", "body"},
				},
			},
		},
		"required": []any{"lessonId", "title", "sections"},
	},
}

var validationSchema = &Schema{
	Name: "exercise-validation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exerciseId":  map[string]any{"type": "string"},
			"allPassed":   map[string]any{"type": "boolean"},
			"passedTests": map[string]any{"type": "integer", "minimum": 0},
			"totalTests":  map[string]any{"type": "integer", "minimum": 0},
			"testDetails": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":    map[string]any{"type": "string"},
						"passed":  map[string]any{"type": "boolean"},
						"message": map[string]any{"type": "string"},
					},
					"required": []any{"name", "passed"},
				},
			},
		},
		"required": []any{"exerciseId", "allPassed", "passedTests", "totalTests"},
	},
}

var receiptSchema = &Schema{
	Name: "exercise-receipt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":      map[string]any{"type": "boolean"},
			"exerciseId":   map[string]any{"type": "string"},
			"message":      map[string]any{"type": "string"},
			"pointsEarned": map[string]any{"type": "integer"},
		},
		"required": []any{"success"},
	},
}

var lessonListSchema = &Schema{
	Name: "lesson-list",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lessons": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"lessonId":        map[string]any{"type": "string"},
						"title":           map[string]any{"type": "string"},
						"difficulty":      map[string]any{"type": "string"},
						"durationMinutes": map[string]any{"type": "integer"},
						"completed":       map[string]any{"type": "boolean"},
					},
					"required": []any{"lessonId", "title"},
				},
			},
		},
		"required": []any{"lessons"},
	},
}
