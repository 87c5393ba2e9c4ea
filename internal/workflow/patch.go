package workflow

import "github.com/noah-isme/tutorlink-admin-core/internal/models"

// Patch reducers: each operation's effect on the local snapshot is defined
// exactly once, instead of ad-hoc merges scattered across call sites. A
// reducer touches only the fields its operation governs.

func applyApproval(app *models.TutorApplication, reason string) {
	app.Status = models.StatusVerified
	app.StatusReason = reason
}

func applyRejection(app *models.TutorApplication, reason string) {
	app.Status = models.StatusRejected
	app.StatusReason = reason
}

func applyPartialApproval(app *models.TutorApplication, reason string) {
	app.Status = models.StatusPending
	app.StatusReason = reason
}

func applyDocumentVerification(app *models.TutorApplication, docType models.DocumentType) {
	for i := range app.Documents {
		if app.Documents[i].Type == docType {
			app.Documents[i].Verified = true
		}
	}
}

func applyPreferredSlots(app *models.TutorApplication, isoDateTimes []string) {
	app.PreferredSlots = append([]string(nil), isoDateTimes...)
}

func applyInterviewToggle(app *models.TutorApplication, enabled bool) {
	app.InterviewEnabled = enabled
}

// applyInterviewResult completes the first scheduled, not-yet-completed slot.
func applyInterviewResult(app *models.TutorApplication, req InterviewResultRequest) {
	for i := range app.InterviewSlots {
		slot := &app.InterviewSlots[i]
		if slot.Scheduled && !slot.Completed {
			outcome := req.Outcome
			score := req.Score
			slot.Completed = true
			slot.Result = &outcome
			slot.Score = &score
			slot.Notes = req.Feedback
			return
		}
	}
}
