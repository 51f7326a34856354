// Package feedback implements the post-session prompt: a thumbs rating
// and, after a thumbs down, a multi-select list of what went wrong.
package feedback

import (
	"errors"
	"slices"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

// ErrNotReady is returned by Submit before a rating was chosen.
var ErrNotReady = errors.New("feedback form has no rating yet")

// Step is the form's current page.
type Step int

const (
	StepRating  Step = iota // thumbs up / thumbs down / skip
	StepDetails             // reason checklist after a thumbs down
	StepDone
)

// Form is the state of one feedback prompt. Not safe for concurrent use.
type Form struct {
	options  []string
	step     Step
	rating   domain.Rating
	selected []string // in the order the user picked them
	cursor   int
	skipped  bool
}

// NewForm creates a form offering the stock reasons.
func NewForm() *Form {
	return NewFormWithOptions(domain.FeedbackReasons)
}

// NewFormWithOptions creates a form offering the given reasons.
func NewFormWithOptions(options []string) *Form {
	return &Form{options: slices.Clone(options)}
}

func (f *Form) Step() Step        { return f.step }
func (f *Form) Options() []string { return f.options }
func (f *Form) Cursor() int       { return f.cursor }

// ThumbsUp rates the session positively and finishes the form.
func (f *Form) ThumbsUp() {
	if f.step != StepRating {
		return
	}
	f.rating = domain.RatingPositive
	f.step = StepDone
}

// ThumbsDown rates the session negatively and opens the reason list.
func (f *Form) ThumbsDown() {
	if f.step != StepRating {
		return
	}
	f.rating = domain.RatingNegative
	f.step = StepDetails
}

// MoveCursor moves the highlighted reason by delta, wrapping around.
func (f *Form) MoveCursor(delta int) {
	n := len(f.options)
	if n == 0 {
		return
	}
	f.cursor = ((f.cursor+delta)%n + n) % n
}

// Toggle selects the reason at index i, or unselects it if it already is.
func (f *Form) Toggle(i int) {
	if f.step != StepDetails || i < 0 || i >= len(f.options) {
		return
	}
	opt := f.options[i]
	if idx := slices.Index(f.selected, opt); idx >= 0 {
		f.selected = slices.Delete(f.selected, idx, idx+1)
		return
	}
	f.selected = append(f.selected, opt)
}

// ToggleCursor toggles the highlighted reason.
func (f *Form) ToggleCursor() {
	f.Toggle(f.cursor)
}

// Selected reports whether the reason at index i is picked.
func (f *Form) Selected(i int) bool {
	if i < 0 || i >= len(f.options) {
		return false
	}
	return slices.Contains(f.selected, f.options[i])
}

// Submit finishes the form and returns the answer.
func (f *Form) Submit() (domain.Feedback, error) {
	switch f.step {
	case StepRating:
		return domain.Feedback{}, ErrNotReady
	case StepDetails:
		f.step = StepDone
	}
	if f.skipped {
		return domain.Feedback{}, ErrNotReady
	}
	return f.result(), nil
}

// Skip closes the form without an answer.
func (f *Form) Skip() {
	if f.step == StepDone {
		return
	}
	f.skipped = true
	f.step = StepDone
}

// Skipped reports whether the user closed the form without answering.
func (f *Form) Skipped() bool {
	return f.skipped
}

func (f *Form) result() domain.Feedback {
	return domain.Feedback{
		Rating:  f.rating,
		Reasons: slices.Clone(f.selected),
	}
}
