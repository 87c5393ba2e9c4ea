package gateway

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

// envelope mirrors the backend's common response wrapper. Older endpoints
// answer with a bare object, so data may be absent and the whole payload is
// decoded instead.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
}

type userPayload struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	UserType  string          `json:"user_type"`
	Status    string          `json:"status"`
	Subjects  json.RawMessage `json:"subjects"`
	PhotoURL  string          `json:"photo_url"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

type documentPayload struct {
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Verified   bool      `json:"verified"`
	UploadDate time.Time `json:"upload_date"`
	Notes      string    `json:"notes"`
}

type applicationPayload struct {
	ID                 string                 `json:"id"`
	UserID             string                 `json:"user_id"`
	Status             string                 `json:"status"`
	FullName           string                 `json:"full_name"`
	Email              string                 `json:"email"`
	Subjects           json.RawMessage        `json:"subjects"`
	AcademicLevels     json.RawMessage        `json:"academic_levels_taught"`
	Documents          []documentPayload      `json:"documents"`
	BackgroundCheck    bool                   `json:"background_check"`
	ReferenceCheck     bool                   `json:"reference_check"`
	QualificationCheck bool                   `json:"qualification_check"`
	IsInterview        bool                   `json:"is_interview"`
	InterviewSlots     []models.InterviewSlot `json:"interview_slots"`
	// The backend emits the admin-proposed pool under either name depending
	// on endpoint vintage.
	PreferredTimes []string `json:"preferred_interview_times"`
	PreferredSlots []string `json:"preferredSlots"`
	StatusReason   string   `json:"profile_status_reason"`
}

type transitionRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

type verifyDocumentRequest struct {
	UserID       string `json:"user_id"`
	DocumentType string `json:"document_type"`
}

type assignSlotsRequest struct {
	UserID         string   `json:"user_id"`
	PreferredTimes []string `json:"preferred_interview_times"`
}

type interviewToggleRequest struct {
	IsInterview bool `json:"is_interview"`
}

type interviewResultRequest struct {
	UserID   string `json:"user_id"`
	Outcome  string `json:"outcome"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
