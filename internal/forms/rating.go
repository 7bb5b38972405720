package forms

import "github.com/thenoetrevino/tienda/internal/models"

// RatingSelector tracks the star widget: a committed value and a transient
// hover preview. Hovering never changes the committed value.
type RatingSelector struct {
	committed int
	preview   int
	hovering  bool
}

// NewRatingSelector creates an idle selector committed to initial
func NewRatingSelector(initial int) *RatingSelector {
	v := clampRating(initial)
	return &RatingSelector{committed: v, preview: v}
}

func clampRating(v int) int {
	if v < 0 {
		return 0
	}
	if v > models.MaxRating {
		return models.MaxRating
	}
	return v
}

// Enter moves the pointer over star v
func (r *RatingSelector) Enter(v int) {
	r.preview = clampRating(v)
	r.hovering = true
}

// Leave moves the pointer off the widget, discarding the preview
func (r *RatingSelector) Leave() {
	r.preview = r.committed
	r.hovering = false
}

// Select commits v. The preview follows so the stars fill immediately.
func (r *RatingSelector) Select(v int) {
	v = clampRating(v)
	r.committed = v
	r.preview = v
	r.hovering = false
}

// Committed returns the last selected value (0 if never selected)
func (r *RatingSelector) Committed() int {
	return r.committed
}

// Preview returns the hover preview value
func (r *RatingSelector) Preview() int {
	return r.preview
}

// Hovering reports whether the pointer is over the widget
func (r *RatingSelector) Hovering() bool {
	return r.hovering
}

// Displayed returns the value the stars currently show
func (r *RatingSelector) Displayed() int {
	if r.hovering {
		return max(r.committed, r.preview)
	}
	return r.committed
}

// Filled reports whether star i (1..5) renders filled
func (r *RatingSelector) Filled(i int) bool {
	return i >= models.MinRating && i <= r.Displayed()
}
