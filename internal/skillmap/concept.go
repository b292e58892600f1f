package skillmap

import "time"

// Category groups concepts on the skill map. The set is fixed and always
// rendered in the order returned by AllCategories, even when empty.
type Category string

const (
	CategoryCore      Category = "core"
	CategoryAdvanced  Category = "advanced"
	CategoryPractical Category = "practical"
)

// AllCategories returns the fixed display order of categories.
func AllCategories() []Category {
	return []Category{CategoryCore, CategoryAdvanced, CategoryPractical}
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case CategoryCore:
		return "Core Concepts"
	case CategoryAdvanced:
		return "Advanced Concepts"
	case CategoryPractical:
		return "Practical Concepts"
	}
	return string(c)
}

// Strength is the qualitative mastery label derived from a mastery
// score. It is always recomputed from the raw score, never stored, so a
// mastery refresh can never leave the map showing inconsistent state.
type Strength string

const (
	StrengthWeak       Strength = "weak"
	StrengthDeveloping Strength = "developing"
	StrengthStrong     Strength = "strong"
	StrengthMastered   Strength = "mastered"
)

// StrengthOf classifies a mastery score in [0,1].
func StrengthOf(masteryScore float64) Strength {
	switch {
	case masteryScore >= 0.8:
		return StrengthMastered
	case masteryScore >= 0.6:
		return StrengthStrong
	case masteryScore >= 0.4:
		return StrengthDeveloping
	default:
		return StrengthWeak
	}
}

// Resource links a concept to a lesson covering it.
type Resource struct {
	LessonID    string
	LessonTitle string
}

// Concept is one node of the mastery snapshot delivered by the
// MasteryAggregator walker. Read-only: the snapshot is refreshed
// wholesale on each fetch.
type Concept struct {
	ID             string
	Name           string
	Description    string
	Category       Category
	MasteryScore   float64 // 0..1
	Unlocked       bool
	UnlockThreshold float64 // 0..1
	TimesPracticed int
	LastPracticed  *time.Time
	Resources      []Resource
}

// Strength returns the derived mastery label for this concept.
func (c *Concept) Strength() Strength {
	return StrengthOf(c.MasteryScore)
}

// UnlockProgress returns progress toward the unlock threshold as a
// fraction in [0,1], capped at 1 for display.
func (c *Concept) UnlockProgress() float64 {
	if c.UnlockThreshold <= 0 {
		return 1
	}
	p := c.MasteryScore / c.UnlockThreshold
	if p > 1 {
		return 1
	}
	return p
}
