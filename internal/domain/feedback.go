package domain

import "time"

// Rating is the thumbs up / thumbs down answer of the feedback prompt.
type Rating int

const (
	RatingNone Rating = iota
	RatingPositive
	RatingNegative
)

// String returns a human-readable rating.
func (r Rating) String() string {
	switch r {
	case RatingPositive:
		return "positive"
	case RatingNegative:
		return "negative"
	default:
		return "none"
	}
}

// FeedbackReasons are the options offered after a negative rating.
var FeedbackReasons = []string{
	"It misheard me",
	"Audio issues",
	"I didn't like the responses",
	"It couldn't hear me",
	"It interrupted me",
	"Other",
}

// Feedback is the user's post-session answer.
type Feedback struct {
	Rating      Rating
	Reasons     []string
	SubmittedAt time.Time
}
