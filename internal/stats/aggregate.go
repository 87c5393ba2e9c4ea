package stats

import "github.com/noah-isme/tutorlink-admin-core/internal/models"

// CountByStatus tallies tutor applications per verification state without
// touching the source records.
func CountByStatus(applications []models.TutorApplication) map[models.ApplicationStatus]int {
	counts := make(map[models.ApplicationStatus]int, 4)
	for _, app := range applications {
		counts[app.Status]++
	}
	return counts
}

// CountUsersByStatus tallies list-view rows per status, which is what the
// tab badges actually render from.
func CountUsersByStatus(users []models.UserSummary) map[models.ApplicationStatus]int {
	counts := make(map[models.ApplicationStatus]int, 4)
	for _, user := range users {
		if user.Status == "" {
			continue
		}
		counts[user.Status]++
	}
	return counts
}
