package lessons

// Pager steps through a lesson's sections. Unlike the quiz session it is
// a plain bidirectional cursor over an immutable list: no network call
// per step, and going back is allowed.
type Pager struct {
	lesson *Lesson
	index  int
}

// NewPager creates a pager positioned on the first section.
func NewPager(lesson *Lesson) *Pager {
	return &Pager{lesson: lesson}
}

// Section returns the current section, nil for a lesson with none.
func (p *Pager) Section() *Section {
	if p.lesson == nil || len(p.lesson.Sections) == 0 {
		return nil
	}
	return &p.lesson.Sections[p.index]
}

// Index returns the zero-based current section index.
func (p *Pager) Index() int { return p.index }

// Len returns the number of sections.
func (p *Pager) Len() int {
	if p.lesson == nil {
		return 0
	}
	return len(p.lesson.Sections)
}

// Next moves forward one section. Returns false at the last section.
func (p *Pager) Next() bool {
	if p.index >= p.Len()-1 {
		return false
	}
	p.index++
	return true
}

// Prev moves back one section. Returns false at the first section.
func (p *Pager) Prev() bool {
	if p.index <= 0 {
		return false
	}
	p.index--
	return true
}

// AtEnd reports whether the pager is on the final section, where the
// viewer offers lesson completion instead of Next.
func (p *Pager) AtEnd() bool {
	return p.Len() > 0 && p.index == p.Len()-1
}
