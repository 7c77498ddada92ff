package model

// ReviewState represents the state of a review. GitHub reports review states
// uppercase on the reviews endpoint and lowercase on timeline events; the
// adapter normalizes both to lowercase.
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "approved"
	ReviewStateChangesRequested ReviewState = "changes_requested"
	ReviewStateCommented        ReviewState = "commented"
	ReviewStatePending          ReviewState = "pending"
	ReviewStateDismissed        ReviewState = "dismissed"
)
