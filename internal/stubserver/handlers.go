package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
	"github.com/noah-isme/tutorlink-admin-core/pkg/response"
)

// Handler exposes the stub backend's REST surface over the fixture store.
type Handler struct {
	store  *Store
	tokens *TokenManager
}

// NewHandler wires the handler set.
func NewHandler(store *Store, tokens *TokenManager) *Handler {
	return &Handler{store: store, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type transitionBody struct {
	UserID string `json:"user_id" binding:"required"`
	Reason string `json:"reason"`
}

type verifyDocumentBody struct {
	UserID       string `json:"user_id" binding:"required"`
	DocumentType string `json:"document_type" binding:"required"`
}

type assignSlotsBody struct {
	UserID         string   `json:"user_id" binding:"required"`
	PreferredTimes []string `json:"preferred_interview_times" binding:"required,min=1"`
}

type interviewToggleBody struct {
	IsInterview bool `json:"is_interview"`
}

type interviewResultBody struct {
	UserID   string `json:"user_id" binding:"required"`
	Outcome  string `json:"outcome" binding:"required,oneof=passed failed conditional reschedule"`
	Score    int    `json:"score" binding:"min=0,max=100"`
	Feedback string `json:"feedback" binding:"max=2000"`
}

// Login exchanges fixture credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "email and password are required"))
		return
	}
	cred, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	token, err := h.tokens.Issue(cred.userID, cred.email, cred.role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"user_id": cred.userID, "email": cred.email, "role": cred.role},
	}, nil)
}

// DashboardStats serves the aggregate counts.
func (h *Handler) DashboardStats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.store.Stats(), nil)
}

// ListUsers serves the filtered user list.
func (h *Handler) ListUsers(c *gin.Context) {
	filter := models.UserFilter{
		Role:   models.UserRole(c.Query("userType")),
		Search: c.Query("search"),
	}
	users := h.store.Users(filter)
	response.JSON(c, http.StatusOK, users, &models.Pagination{
		Page: 1, PageSize: len(users), TotalCount: len(users),
	})
}

// TutorDetail serves one application, addressed by account id.
func (h *Handler) TutorDetail(c *gin.Context) {
	app, err := h.store.Application(models.AccountID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, wireApplication(app), nil)
}

// Approve runs the guarded pending -> verified transition.
func (h *Handler) Approve(c *gin.Context) {
	h.transition(c, "tutor verified", h.store.Approve)
}

// PartialApprove records the reason without changing status.
func (h *Handler) PartialApprove(c *gin.Context) {
	h.transition(c, "partial approval recorded", h.store.PartialApprove)
}

// Reject runs the pending -> rejected transition.
func (h *Handler) Reject(c *gin.Context) {
	h.transition(c, "tutor rejected", h.store.Reject)
}

func (h *Handler) transition(c *gin.Context, message string, apply func(models.AccountID, string) (*models.TutorApplication, error)) {
	var req transitionBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "user_id is required"))
		return
	}
	app, err := apply(models.AccountID(req.UserID), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Transition(c, http.StatusOK, message, string(app.Status))
}

// VerifyDocument marks one document type verified.
func (h *Handler) VerifyDocument(c *gin.Context) {
	var req verifyDocumentBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "user_id and document_type are required"))
		return
	}
	if err := h.store.VerifyDocument(models.AccountID(req.UserID), models.DocumentType(req.DocumentType)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "document verified")
}

// AvailableSlots serves the candidate grid for a date.
func (h *Handler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	response.JSON(c, http.StatusOK, h.store.AvailableSlots(date), nil)
}

// AssignSlots replaces a tutor's admin-proposed slot pool.
func (h *Handler) AssignSlots(c *gin.Context) {
	var req assignSlotsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "user_id and preferred_interview_times are required"))
		return
	}
	if err := h.store.AssignPreferredSlots(models.AccountID(req.UserID), req.PreferredTimes); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "interview slots assigned")
}

// ToggleInterview flips the interview stage, addressed by profile id.
func (h *Handler) ToggleInterview(c *gin.Context) {
	var req interviewToggleBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_interview is required"))
		return
	}
	if err := h.store.ToggleInterview(models.ApplicationID(c.Param("id")), req.IsInterview); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "interview stage updated")
}

// InterviewResult records the outcome of a completed interview.
func (h *Handler) InterviewResult(c *gin.Context) {
	var req interviewResultBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "outcome must be one of passed, failed, conditional, reschedule"))
		return
	}
	err := h.store.RecordInterviewResult(
		models.AccountID(req.UserID),
		models.InterviewOutcome(req.Outcome),
		req.Score,
		req.Feedback,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "interview result recorded")
}

// wireApplication serialises an application with the backend's field names.
// The admin-proposed pool goes out as preferred_interview_times, which is the
// name the production detail endpoint uses.
func wireApplication(app *models.TutorApplication) gin.H {
	return gin.H{
		"id":                        app.ID,
		"user_id":                   app.UserID,
		"status":                    app.Status,
		"full_name":                 app.FullName,
		"email":                     app.Email,
		"subjects":                  app.Subjects,
		"academic_levels_taught":    app.AcademicLevels,
		"documents":                 app.Documents,
		"background_check":          app.BackgroundCheck,
		"reference_check":           app.ReferenceCheck,
		"qualification_check":       app.QualificationCheck,
		"is_interview":              app.InterviewEnabled,
		"interview_slots":           app.InterviewSlots,
		"preferred_interview_times": app.PreferredSlots,
		"profile_status_reason":     app.StatusReason,
	}
}
