package models

import "time"

// UserRole distinguishes marketplace account types.
type UserRole string

const (
	RoleTutor   UserRole = "tutor"
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
	RoleAdmin   UserRole = "admin"
)

// UserSummary is the list-view projection of a marketplace user. Tutors
// carry both identifiers; ProfileID is empty for roles without a profile
// record.
type UserSummary struct {
	UserID    AccountID         `json:"user_id"`
	ProfileID ApplicationID     `json:"id,omitempty"`
	FullName  string            `json:"full_name"`
	Email     string            `json:"email"`
	Role      UserRole          `json:"user_type"`
	Status    ApplicationStatus `json:"status,omitempty"`
	Subjects  []string          `json:"subjects"`
	PhotoURL  string            `json:"photo_url,omitempty"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

// UserFilter captures the query parameters of the user list endpoint.
type UserFilter struct {
	Role     UserRole
	Search   string
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
