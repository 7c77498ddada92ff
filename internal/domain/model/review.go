package model

import (
	"strings"
	"time"
)

// Review represents a reviewer's verdict on a pull request. It is sourced
// either from the reviews endpoint or synthesized from a "reviewed" issue
// timeline event when no native reviews exist.
type Review struct {
	ReviewerLogin string
	State         ReviewState
	SubmittedAt   time.Time
}

// IsFreshApprovalBy reports whether this review is an approval by the given
// reviewer submitted strictly after the cutoff. A review submitted at exactly
// the cutoff does not count.
func (r Review) IsFreshApprovalBy(reviewer string, cutoff time.Time) bool {
	return r.State == ReviewStateApproved &&
		strings.EqualFold(r.ReviewerLogin, reviewer) &&
		r.SubmittedAt.After(cutoff)
}
