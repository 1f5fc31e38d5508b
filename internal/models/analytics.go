package models

// Percentiles is a generic struct for storing percentiles for any distribution of data.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// RequestAnalytics describes the pending course request queue.
type RequestAnalytics struct {
	Pending int `json:"pending"`
	// PendingByCourse maps course ID to the number of pending requests for it.
	PendingByCourse map[string]int `json:"pendingByCourse"`
	// DistinctLearners is the number of learners with at least one pending request.
	DistinctLearners int `json:"distinctLearners"`
	// WaitSeconds is the distribution of how long pending requests have been waiting.
	WaitSeconds Percentiles `json:"waitSeconds"`
}

// DashboardSummary is shown on the admin dashboard landing page.
type DashboardSummary struct {
	Courses      int              `json:"courses"`
	Tutors       int              `json:"tutors"`
	NewInquiries int              `json:"newInquiries"`
	Requests     RequestAnalytics `json:"requests"`
}
