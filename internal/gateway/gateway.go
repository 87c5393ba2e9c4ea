package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
)

// TokenSource yields the operator bearer token, if any. Absence is not an
// error; the backend answers 401 and the client reacts.
type TokenSource interface {
	Token() (string, bool)
}

// TransitionResult carries a status-transition answer through uninterpreted
// so the workflow layer can branch on 200 vs 400 vs other.
type TransitionResult struct {
	StatusCode int
	Message    string
	Status     models.ApplicationStatus
}

// OK reports whether the backend accepted the transition.
func (r TransitionResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Params groups Client constructor dependencies.
type Params struct {
	BaseURL   string
	APIPrefix string
	Tokens    TokenSource
	// HTTPClient defaults to one with a 30s timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *Metrics
	// OnAuthExpired fires on any 401 so the caller can force
	// re-authentication. Called at most once per request.
	OnAuthExpired func()
}

// Client is the typed HTTP client for the marketplace admin REST surface.
type Client struct {
	baseURL       string
	prefix        string
	http          *http.Client
	tokens        TokenSource
	logger        *zap.Logger
	metrics       *Metrics
	onAuthExpired func()
}

// New constructs a gateway client.
func New(params Params) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(params.BaseURL), "/"),
		prefix:        params.APIPrefix,
		http:          httpClient,
		tokens:        params.Tokens,
		logger:        logger,
		metrics:       params.Metrics,
		onAuthExpired: params.OnAuthExpired,
	}
}

// BaseURL exposes the configured origin, which also anchors asset URL
// rewriting.
func (c *Client) BaseURL() string { return c.baseURL }

// DashboardStats fetches the aggregate counts behind the admin landing page.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	status, payload, err := c.do(ctx, "dashboard_stats", http.MethodGet, "/dashboard/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.apiError(status, payload)
	}
	stats := &models.DashboardStats{}
	if err := decodeData(payload, stats); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "decode dashboard stats")
	}
	return stats, nil
}

// ListUsers returns normalized user summaries for the given role filter.
func (c *Client) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.UserSummary, error) {
	query := url.Values{}
	if filter.Role != "" {
		query.Set("userType", string(filter.Role))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	status, payload, err := c.do(ctx, "list_users", http.MethodGet, "/users", query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.apiError(status, payload)
	}

	var raw []userPayload
	if err := decodeData(payload, &raw); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "decode user list")
	}

	users := make([]models.UserSummary, 0, len(raw))
	for _, p := range raw {
		users = append(users, p.toModel(c.baseURL))
	}
	return users, nil
}

// TutorApplication fetches and normalizes one tutor's verification record.
func (c *Client) TutorApplication(ctx context.Context, userID models.AccountID) (*models.TutorApplication, error) {
	path := "/tutors/" + url.PathEscape(string(userID))
	status, payload, err := c.do(ctx, "tutor_application", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.apiError(status, payload)
	}

	var raw applicationPayload
	if err := decodeData(payload, &raw); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "decode tutor application")
	}
	return raw.toModel(c.baseURL), nil
}

// ApproveTutor requests the pending -> verified transition. The backend
// re-validates the approval invariant and answers 400 with a message when
// it does not hold.
func (c *Client) ApproveTutor(ctx context.Context, userID models.AccountID, reason string) (TransitionResult, error) {
	return c.transition(ctx, "approve_tutor", "/tutors/approve", userID, reason)
}

// PartialApproveTutor records a reason while keeping the application pending.
func (c *Client) PartialApproveTutor(ctx context.Context, userID models.AccountID, reason string) (TransitionResult, error) {
	return c.transition(ctx, "partial_approve_tutor", "/tutors/partial-approve", userID, reason)
}

// RejectTutor requests the pending -> rejected transition.
func (c *Client) RejectTutor(ctx context.Context, userID models.AccountID, reason string) (TransitionResult, error) {
	return c.transition(ctx, "reject_tutor", "/tutors/reject", userID, reason)
}

func (c *Client) transition(ctx context.Context, operation, path string, userID models.AccountID, reason string) (TransitionResult, error) {
	body := transitionRequest{UserID: string(userID), Reason: reason}
	status, payload, err := c.do(ctx, operation, http.MethodPost, path, nil, body)
	if err != nil {
		return TransitionResult{}, err
	}
	if status == http.StatusUnauthorized {
		return TransitionResult{}, c.apiError(status, payload)
	}

	var env envelope
	_ = json.Unmarshal(payload, &env)
	return TransitionResult{
		StatusCode: status,
		Message:    env.Message,
		Status:     models.ApplicationStatus(env.Status),
	}, nil
}

// VerifyDocument marks one document type verified on the server.
func (c *Client) VerifyDocument(ctx context.Context, userID models.AccountID, docType models.DocumentType) error {
	body := verifyDocumentRequest{UserID: string(userID), DocumentType: string(docType)}
	status, payload, err := c.do(ctx, "verify_document", http.MethodPost, "/tutors/verify/document", nil, body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.apiError(status, payload)
	}
	return nil
}

// AvailableInterviewSlots lists candidate interview times for a date. It
// never fails its caller: any transport or upstream trouble yields the
// deterministic fallback set so scheduling is not blocked by an outage.
func (c *Client) AvailableInterviewSlots(ctx context.Context, date string) []models.SlotProposal {
	query := url.Values{"date": []string{date}}
	status, payload, err := c.do(ctx, "available_slots", http.MethodGet, "/interviews/available-slots", query, nil)
	if err != nil {
		c.logger.Warn("slot availability lookup failed, serving fallback", zap.String("date", date), zap.Error(err))
		c.metrics.RecordFallback()
		return FallbackProposals(date)
	}
	if status != http.StatusOK {
		if status == http.StatusUnauthorized && c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		c.logger.Warn("slot availability lookup rejected, serving fallback",
			zap.String("date", date), zap.Int("status", status))
		c.metrics.RecordFallback()
		return FallbackProposals(date)
	}

	var slots []models.SlotProposal
	if err := decodeData(payload, &slots); err != nil {
		c.metrics.RecordFallback()
		return FallbackProposals(date)
	}
	// An empty answer is a real answer: the backend has nothing bookable
	// that day, and inventing slots would let the admin propose times the
	// scheduler never offered.
	if slots == nil {
		slots = []models.SlotProposal{}
	}
	return slots
}

// SetPreferredInterviewSlots replaces the admin-proposed slot pool.
func (c *Client) SetPreferredInterviewSlots(ctx context.Context, userID models.AccountID, isoDateTimes []string) error {
	body := assignSlotsRequest{UserID: string(userID), PreferredTimes: isoDateTimes}
	status, payload, err := c.do(ctx, "assign_slots", http.MethodPut, "/tutors/interview/assign", nil, body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.apiError(status, payload)
	}
	return nil
}

// ToggleInterviewStage flips is_interview. Note this addresses the profile
// id, not the account id.
func (c *Client) ToggleInterviewStage(ctx context.Context, profileID models.ApplicationID, enabled bool) error {
	path := "/tutors/" + url.PathEscape(string(profileID)) + "/interview-toggle"
	status, payload, err := c.do(ctx, "interview_toggle", http.MethodPut, path, nil, interviewToggleRequest{IsInterview: enabled})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.apiError(status, payload)
	}
	return nil
}

// RecordInterviewResult stores the outcome of a completed interview.
func (c *Client) RecordInterviewResult(ctx context.Context, userID models.AccountID, outcome models.InterviewOutcome, score int, feedback string) error {
	body := interviewResultRequest{
		UserID:   string(userID),
		Outcome:  string(outcome),
		Score:    score,
		Feedback: feedback,
	}
	status, payload, err := c.do(ctx, "interview_result", http.MethodPost, "/tutors/interview/result", nil, body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.apiError(status, payload)
	}
	return nil
}

// do issues one authenticated request and returns the raw status and body.
// Transport failures come back as typed errors; HTTP-level failures are left
// to the caller to interpret.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body interface{}) (int, []byte, error) {
	target := c.baseURL + c.prefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Record(operation, 0, time.Since(start))
		return 0, nil, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status,
			fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	c.metrics.Record(operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, "read response body")
	}
	return resp.StatusCode, payload, nil
}

// apiError maps an HTTP-level failure to the error taxonomy. 401 fires the
// re-authentication hook.
func (c *Client) apiError(status int, payload []byte) error {
	var env envelope
	_ = json.Unmarshal(payload, &env)
	message := strings.TrimSpace(env.Message)

	switch status {
	case http.StatusUnauthorized:
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return appErrors.Clone(appErrors.ErrAuthRequired, message)
	case http.StatusBadRequest:
		return appErrors.Clone(appErrors.ErrValidation, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusConflict:
		return appErrors.Clone(appErrors.ErrFinalized, message)
	default:
		if message == "" {
			message = fmt.Sprintf("backend answered %d", status)
		}
		return appErrors.Clone(appErrors.ErrTransport, message)
	}
}

// decodeData unwraps the response envelope, falling back to decoding the
// whole payload for endpoints that answer bare objects.
func decodeData(payload []byte, dest interface{}) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, dest)
	}
	return json.Unmarshal(payload, dest)
}
