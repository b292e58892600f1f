package skillmap

import "fmt"

// Group is one category section of the skill map, concepts in snapshot
// order.
type Group struct {
	Category Category
	Concepts []Concept
}

// Map is the category-grouped projection of a mastery snapshot. All
// three categories are always present, in fixed order, even when empty.
// Locked concepts are included: the lock dims the display affordance, it
// never hides data the snapshot provided.
type Map struct {
	Groups []Group
}

// ErrUnknownCategory reports a concept whose category is outside the
// fixed set: a contract violation from the aggregator, not something to
// silently drop.
type ErrUnknownCategory struct {
	ConceptID string
	Category  Category
}

func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("concept %s has unknown category %q", e.ConceptID, e.Category)
}

// Build projects a mastery snapshot into a Map. Pure function: no side
// effects, no network access, safe to recompute from any number of
// snapshots concurrently.
func Build(concepts []Concept) (*Map, error) {
	byCategory := make(map[Category][]Concept, 3)
	for _, c := range concepts {
		switch c.Category {
		case CategoryCore, CategoryAdvanced, CategoryPractical:
			byCategory[c.Category] = append(byCategory[c.Category], c)
		default:
			return nil, &ErrUnknownCategory{ConceptID: c.ID, Category: c.Category}
		}
	}

	m := &Map{}
	for _, cat := range AllCategories() {
		m.Groups = append(m.Groups, Group{Category: cat, Concepts: byCategory[cat]})
	}
	return m, nil
}

// Find returns the concept with the given id, for the detail view.
func (m *Map) Find(conceptID string) *Concept {
	for gi := range m.Groups {
		for ci := range m.Groups[gi].Concepts {
			if m.Groups[gi].Concepts[ci].ID == conceptID {
				return &m.Groups[gi].Concepts[ci]
			}
		}
	}
	return nil
}
