package workflow

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorlink-admin-core/internal/gateway"
	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
)

// gatewayAPI is the slice of the gateway client the workflow drives.
type gatewayAPI interface {
	ApproveTutor(ctx context.Context, userID models.AccountID, reason string) (gateway.TransitionResult, error)
	PartialApproveTutor(ctx context.Context, userID models.AccountID, reason string) (gateway.TransitionResult, error)
	RejectTutor(ctx context.Context, userID models.AccountID, reason string) (gateway.TransitionResult, error)
	VerifyDocument(ctx context.Context, userID models.AccountID, docType models.DocumentType) error
	SetPreferredInterviewSlots(ctx context.Context, userID models.AccountID, isoDateTimes []string) error
	ToggleInterviewStage(ctx context.Context, profileID models.ApplicationID, enabled bool) error
	RecordInterviewResult(ctx context.Context, userID models.AccountID, outcome models.InterviewOutcome, score int, feedback string) error
}

// InterviewResultRequest is the payload for recording a completed interview.
type InterviewResultRequest struct {
	Outcome  models.InterviewOutcome `json:"outcome" validate:"required,oneof=passed failed conditional reschedule"`
	Score    int                     `json:"score" validate:"min=0,max=100"`
	Feedback string                  `json:"feedback" validate:"max=2000"`
}

// Service advances a tutor application through the verification workflow.
// Every mutating operation patches only the fields it governs, and only
// after the backend accepted the call — a failed approve must never leave a
// locally verified tutor behind.
type Service struct {
	gw        gatewayAPI
	validator *validator.Validate
	logger    *zap.Logger
}

// NewService constructs the workflow service.
func NewService(gw gatewayAPI, validate *validator.Validate, logger *zap.Logger) *Service {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, validator: validate, logger: logger}
}

// CanApprove checks the approval invariant: every document verified and all
// three screening checks passed. The backend re-validates; this preflight
// exists so the operator gets an answer without a round-trip.
func (s *Service) CanApprove(app *models.TutorApplication) error {
	if app.Status.Terminal() {
		return appErrors.Clone(appErrors.ErrFinalized, "tutor is already "+string(app.Status))
	}
	if !app.AllDocumentsVerified() {
		return appErrors.Clone(appErrors.ErrValidation, "all documents must be verified before approval")
	}
	if !app.ChecksPassed() {
		return appErrors.Clone(appErrors.ErrValidation, "background, reference and qualification checks must all pass")
	}
	return nil
}

// Approve requests pending -> verified. On a 400 the server message is
// surfaced verbatim and the snapshot stays untouched.
func (s *Service) Approve(ctx context.Context, app *models.TutorApplication, reason string) error {
	if err := s.CanApprove(app); err != nil {
		return err
	}
	result, err := s.gw.ApproveTutor(ctx, app.UserID, strings.TrimSpace(reason))
	if err != nil {
		return err
	}
	if err := transitionError(result); err != nil {
		return err
	}
	applyApproval(app, reason)
	s.logger.Info("tutor approved", zap.String("user_id", app.UserID.String()))
	return nil
}

// Reject requests pending -> rejected. A reason is mandatory and validated
// before anything is sent.
func (s *Service) Reject(ctx context.Context, app *models.TutorApplication, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return appErrors.Clone(appErrors.ErrValidation, "a rejection reason is required")
	}
	if app.Status.Terminal() {
		return appErrors.Clone(appErrors.ErrFinalized, "tutor is already "+string(app.Status))
	}
	result, err := s.gw.RejectTutor(ctx, app.UserID, reason)
	if err != nil {
		return err
	}
	if err := transitionError(result); err != nil {
		return err
	}
	applyRejection(app, reason)
	s.logger.Info("tutor rejected", zap.String("user_id", app.UserID.String()))
	return nil
}

// PartialApprove records a reason while keeping the application pending.
// It may be repeated; each call replaces the recorded reason.
func (s *Service) PartialApprove(ctx context.Context, app *models.TutorApplication, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return appErrors.Clone(appErrors.ErrValidation, "a partial-approval reason is required")
	}
	if app.Status.Terminal() {
		return appErrors.Clone(appErrors.ErrFinalized, "tutor is already "+string(app.Status))
	}
	result, err := s.gw.PartialApproveTutor(ctx, app.UserID, reason)
	if err != nil {
		return err
	}
	if err := transitionError(result); err != nil {
		return err
	}
	applyPartialApproval(app, reason)
	return nil
}

// VerifyDocument marks one document type verified. Verification is
// monotonic: there is no un-verify, and re-verifying is a no-op.
func (s *Service) VerifyDocument(ctx context.Context, app *models.TutorApplication, docType models.DocumentType) error {
	doc := app.Document(docType)
	if doc == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "no document of type "+string(docType))
	}
	if err := s.gw.VerifyDocument(ctx, app.UserID, docType); err != nil {
		return err
	}
	applyDocumentVerification(app, docType)
	return nil
}

// SetPreferredSlots replaces the admin-proposed interview pool.
func (s *Service) SetPreferredSlots(ctx context.Context, app *models.TutorApplication, isoDateTimes []string) error {
	if len(isoDateTimes) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "at least one interview slot is required")
	}
	if err := s.gw.SetPreferredInterviewSlots(ctx, app.UserID, isoDateTimes); err != nil {
		return err
	}
	applyPreferredSlots(app, isoDateTimes)
	return nil
}

// ToggleInterview enables or disables the interview stage. This is the one
// operation addressed by profile id rather than account id.
func (s *Service) ToggleInterview(ctx context.Context, app *models.TutorApplication, enabled bool) error {
	if err := s.gw.ToggleInterviewStage(ctx, app.ID, enabled); err != nil {
		return err
	}
	applyInterviewToggle(app, enabled)
	return nil
}

// RecordInterviewResult stores the outcome of a completed interview. Allowed
// only once a slot has actually been scheduled.
func (s *Service) RecordInterviewResult(ctx context.Context, app *models.TutorApplication, req InterviewResultRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interview result")
	}
	if !models.AnyScheduled(app.InterviewSlots) {
		return appErrors.Clone(appErrors.ErrValidation, "no interview has been scheduled yet")
	}
	if err := s.gw.RecordInterviewResult(ctx, app.UserID, req.Outcome, req.Score, req.Feedback); err != nil {
		return err
	}
	applyInterviewResult(app, req)
	return nil
}

// transitionError maps a passed-through transition answer onto the error
// taxonomy. nil means the transition was accepted.
func transitionError(result gateway.TransitionResult) error {
	switch {
	case result.OK():
		return nil
	case result.StatusCode == http.StatusBadRequest:
		message := result.Message
		if message == "" {
			message = "transition rejected"
		}
		return appErrors.Clone(appErrors.ErrValidation, message)
	case result.StatusCode == http.StatusConflict:
		return appErrors.Clone(appErrors.ErrFinalized, result.Message)
	default:
		return appErrors.Clone(appErrors.ErrTransport, result.Message)
	}
}
