package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

// UsersDataset projects the user list into an exportable table.
func UsersDataset(users []models.UserSummary) Dataset {
	rows := make([]map[string]string, 0, len(users))
	for _, user := range users {
		status := string(user.Status)
		if status == "" {
			status = "-"
		}
		created := "-"
		if !user.CreatedAt.IsZero() {
			created = user.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, map[string]string{
			"User ID":  user.UserID.String(),
			"Name":     user.FullName,
			"Email":    user.Email,
			"Type":     string(user.Role),
			"Status":   status,
			"Subjects": strings.Join(user.Subjects, ", "),
			"Joined":   created,
		})
	}
	return Dataset{
		Headers: []string{"User ID", "Name", "Email", "Type", "Status", "Subjects", "Joined"},
		Rows:    rows,
	}
}

// ApplicationsDataset projects verification records into an exportable table,
// one row per tutor with the document progress summarised.
func ApplicationsDataset(apps []models.TutorApplication) Dataset {
	rows := make([]map[string]string, 0, len(apps))
	for _, app := range apps {
		verified := 0
		for _, doc := range app.Documents {
			if doc.Verified {
				verified++
			}
		}
		rows = append(rows, map[string]string{
			"User ID":   app.UserID.String(),
			"Name":      app.FullName,
			"Status":    string(app.Status),
			"Documents": fmt.Sprintf("%d/%d verified", verified, len(app.Documents)),
			"Checks":    checksSummary(&app),
			"Interview": interviewSummary(&app),
		})
	}
	return Dataset{
		Headers: []string{"User ID", "Name", "Status", "Documents", "Checks", "Interview"},
		Rows:    rows,
	}
}

// DashboardDataset flattens the aggregate stats into metric/value rows for a
// one-page report.
func DashboardDataset(stats *models.DashboardStats, asOf time.Time) Dataset {
	rows := []map[string]string{
		{"Metric": "Report generated", "Value": asOf.Format(time.RFC3339)},
		{"Metric": "Tutors total", "Value": fmt.Sprintf("%d", stats.Tutors.Total)},
		{"Metric": "Tutors pending", "Value": fmt.Sprintf("%d", stats.Tutors.Pending)},
		{"Metric": "Tutors verified", "Value": fmt.Sprintf("%d", stats.Tutors.Verified)},
		{"Metric": "Tutors rejected", "Value": fmt.Sprintf("%d", stats.Tutors.Rejected)},
		{"Metric": "Students active", "Value": fmt.Sprintf("%d of %d", stats.Students.Active, stats.Students.Total)},
		{"Metric": "Parents active", "Value": fmt.Sprintf("%d of %d", stats.Parents.Active, stats.Parents.Total)},
		{"Metric": "Sessions completed", "Value": fmt.Sprintf("%d of %d", stats.Sessions.Completed, stats.Sessions.Total)},
		{"Metric": "Revenue this month", "Value": fmt.Sprintf("%.2f %s", stats.Revenue.ThisMonth, stats.Revenue.Currency)},
	}
	return Dataset{Headers: []string{"Metric", "Value"}, Rows: rows}
}

func checksSummary(app *models.TutorApplication) string {
	if app.ChecksPassed() {
		return "all passed"
	}
	missing := make([]string, 0, 3)
	if !app.BackgroundCheck {
		missing = append(missing, "background")
	}
	if !app.ReferenceCheck {
		missing = append(missing, "reference")
	}
	if !app.QualificationCheck {
		missing = append(missing, "qualification")
	}
	return "missing: " + strings.Join(missing, ", ")
}

func interviewSummary(app *models.TutorApplication) string {
	if !app.InterviewEnabled {
		return "not required"
	}
	for _, slot := range app.InterviewSlots {
		if slot.Completed && slot.Result != nil {
			return string(*slot.Result)
		}
	}
	if models.AnyScheduled(app.InterviewSlots) {
		return "scheduled"
	}
	return "awaiting booking"
}
