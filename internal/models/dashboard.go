package models

// TutorCounts breaks the tutor population down by verification state.
type TutorCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
}

// GroupCounts covers roles that only track activity.
type GroupCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// SessionCounts summarises tutoring sessions.
type SessionCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}

// RevenueSummary totals processed payments.
type RevenueSummary struct {
	Total     float64 `json:"total"`
	ThisMonth float64 `json:"this_month"`
	Currency  string  `json:"currency"`
}

// DashboardStats is the aggregate payload behind the admin landing page.
type DashboardStats struct {
	Tutors   TutorCounts    `json:"tutors"`
	Students GroupCounts    `json:"students"`
	Parents  GroupCounts    `json:"parents"`
	Sessions SessionCounts  `json:"sessions"`
	Revenue  RevenueSummary `json:"revenue"`
}
