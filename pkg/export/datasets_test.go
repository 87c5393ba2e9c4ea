package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

func TestUsersDatasetCSVRoundTrip(t *testing.T) {
	users := []models.UserSummary{
		{
			UserID: "u-1", FullName: "Amelia Price", Email: "amelia@example.com",
			Role: models.RoleTutor, Status: models.StatusPending,
			Subjects:  []string{"Math", "Physics"},
			CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{UserID: "u-2", FullName: "Sam Ortiz", Role: models.RoleStudent, Active: true},
	}

	data := UsersDataset(users)
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Amelia Price")
	assert.Contains(t, text, "\"Math, Physics\"")
	// Students have no verification status.
	assert.Contains(t, text, "u-2,Sam Ortiz,,student,-")
}

func TestApplicationsDatasetSummaries(t *testing.T) {
	result := models.OutcomePassed
	apps := []models.TutorApplication{
		{
			UserID: "u-1", FullName: "Amelia Price", Status: models.StatusPending,
			Documents: []models.Document{
				{Type: models.DocIDProof, Verified: true},
				{Type: models.DocDegreeCertificate},
			},
			BackgroundCheck: true,
		},
		{
			UserID: "u-2", FullName: "Noah Chen", Status: models.StatusVerified,
			Documents:       []models.Document{{Type: models.DocIDProof, Verified: true}},
			BackgroundCheck: true, ReferenceCheck: true, QualificationCheck: true,
			InterviewEnabled: true,
			InterviewSlots: []models.InterviewSlot{
				{Date: "2026-09-03", Time: "10:00", Scheduled: true, Completed: true, Result: &result},
			},
		},
	}

	data := ApplicationsDataset(apps)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "1/2 verified", data.Rows[0]["Documents"])
	assert.Equal(t, "missing: reference, qualification", data.Rows[0]["Checks"])
	assert.Equal(t, "not required", data.Rows[0]["Interview"])
	assert.Equal(t, "all passed", data.Rows[1]["Checks"])
	assert.Equal(t, "passed", data.Rows[1]["Interview"])
}

func TestDashboardDatasetPDF(t *testing.T) {
	stats := &models.DashboardStats{
		Tutors:   models.TutorCounts{Total: 3, Pending: 1, Verified: 1, Rejected: 1},
		Students: models.GroupCounts{Total: 2, Active: 2},
		Revenue:  models.RevenueSummary{ThisMonth: 1975, Currency: "GBP"},
	}

	data := DashboardDataset(stats, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	out, err := NewPDFExporter().Render(data, "Platform overview")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVTrimsCellWhitespace(t *testing.T) {
	data := Dataset{
		Headers: []string{"Name", "Notes"},
		Rows: []map[string]string{
			{"Name": "  Amelia Price ", "Notes": "strong candidate\n"},
			{"Name": "Noah Chen"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Amelia Price,strong candidate\n")
	// A row missing a column renders an empty cell, not a shifted one.
	assert.Contains(t, text, "Noah Chen,\n")
}
