package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
)

type staticTokens string

func (s staticTokens) Token() (string, bool) {
	return string(s), s != ""
}

func newTestClient(serverURL string, hook func()) *Client {
	return New(Params{
		BaseURL:       serverURL,
		APIPrefix:     "/api/admin",
		Tokens:        staticTokens("test-token"),
		OnAuthExpired: hook,
	})
}

func TestNewUsesProvidedHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	client := New(Params{BaseURL: "http://localhost:5000", HTTPClient: custom})
	assert.Same(t, custom, client.http)
}

func TestDashboardStatsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/dashboard/stats", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": models.DashboardStats{
				Tutors: models.TutorCounts{Total: 12, Pending: 4},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	stats, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Tutors.Total)
	assert.Equal(t, 4, stats.Tutors.Pending)
}

func TestDashboardStatsUnauthorizedFiresHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer server.Close()

	fired := false
	client := newTestClient(server.URL, func() { fired = true })

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAuthRequired))
	assert.True(t, fired)
	assert.Contains(t, err.Error(), "token expired")
}

func TestListUsersNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tutor", r.URL.Query().Get("userType"))
		_, _ = w.Write([]byte(`[
			{"id":"p1","user_id":"u1","full_name":"Ada","user_type":"tutor","subjects":"[\"Math\",\"Physics\"]","photo_url":"uploads/ada.jpg"},
			{"id":"p2","user_id":"u2","full_name":"Bob","user_type":"tutor","subjects":"[Math","photo_url":"#"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	users, err := client.ListUsers(context.Background(), models.UserFilter{Role: models.RoleTutor})
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, []string{"Math", "Physics"}, users[0].Subjects)
	assert.Equal(t, server.URL+"/uploads/ada.jpg", users[0].PhotoURL)

	assert.Equal(t, []string{}, users[1].Subjects)
	assert.Equal(t, "#", users[1].PhotoURL)
}

func TestTutorApplicationNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/tutors/u1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{
			"id":"p1","user_id":"u1","status":"pending",
			"subjects":"[\"Math\"]",
			"documents":[{"type":"ID Proof","url":"uploads/id.pdf","verified":false}],
			"preferred_interview_times":["2026-09-01T09:00:00Z"]
		}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	app, err := client.TutorApplication(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationID("p1"), app.ID)
	assert.Equal(t, models.AccountID("u1"), app.UserID)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, []string{"Math"}, app.Subjects)
	assert.Equal(t, []string{}, app.AcademicLevels)
	require.Len(t, app.Documents, 1)
	assert.Equal(t, server.URL+"/uploads/id.pdf", app.Documents[0].URL)
	assert.Equal(t, []string{"2026-09-01T09:00:00Z"}, app.PreferredSlots)
}

func TestApproveTutorPassesThroughValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "u1", body["user_id"])
		assert.Equal(t, "all good", body["reason"])
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "documents not fully verified"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	result, err := client.ApproveTutor(context.Background(), "u1", "all good")
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "documents not fully verified", result.Message)
}

func TestApproveTutorSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "tutor verified", "status": "verified"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	result, err := client.ApproveTutor(context.Background(), "u1", "checks complete")
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, models.StatusVerified, result.Status)
}

func TestVerifyDocumentSendsTypedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/tutors/verify/document", r.URL.Path)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "u1", body["user_id"])
		assert.Equal(t, "Degree Certificate", body["document_type"])
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	err := client.VerifyDocument(context.Background(), "u1", models.DocDegreeCertificate)
	require.NoError(t, err)
}

func TestAvailableSlotsFallbackOnDeadServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, nil)
	slots := client.AvailableInterviewSlots(context.Background(), "2026-09-01")

	require.Len(t, slots, 6)
	unavailable := 0
	for _, slot := range slots {
		assert.Equal(t, "2026-09-01", slot.Date)
		if !slot.Available {
			unavailable++
			assert.Equal(t, "11:00", slot.Time)
		}
	}
	assert.Equal(t, 1, unavailable)
}

func TestAvailableSlotsFromServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"data":[{"date":"2026-09-01","time":"13:00","available":true}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	slots := client.AvailableInterviewSlots(context.Background(), "2026-09-01")
	require.Len(t, slots, 1)
	assert.Equal(t, "13:00", slots[0].Time)
}

func TestAvailableSlotsEmptyAnswerStaysEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	slots := client.AvailableInterviewSlots(context.Background(), "2026-09-01")
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableSlotsNullAnswerStaysEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	slots := client.AvailableInterviewSlots(context.Background(), "2026-09-01")
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestToggleInterviewStageUsesProfileID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/tutors/p1/interview-toggle", r.URL.Path)
		var body map[string]bool
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.True(t, body["is_interview"])
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	require.NoError(t, client.ToggleInterviewStage(context.Background(), "p1", true))
}
