package models

// InterviewOutcome is the closed result set an admin may record after a
// completed interview.
type InterviewOutcome string

const (
	OutcomePassed      InterviewOutcome = "passed"
	OutcomeFailed      InterviewOutcome = "failed"
	OutcomeConditional InterviewOutcome = "conditional"
	OutcomeReschedule  InterviewOutcome = "reschedule"
)

// InterviewSlot is a tutor-booked interview appointment. The admin side
// reads these; the tutor's own client writes them.
type InterviewSlot struct {
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Scheduled bool              `json:"scheduled"`
	Completed bool              `json:"completed"`
	Result    *InterviewOutcome `json:"result,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Score     *int              `json:"score,omitempty"`
}

// AnyScheduled reports whether at least one slot has been booked, which is
// the gate for recording an interview result.
func AnyScheduled(slots []InterviewSlot) bool {
	for _, slot := range slots {
		if slot.Scheduled {
			return true
		}
	}
	return false
}
