package gateway

import "github.com/noah-isme/tutorlink-admin-core/internal/models"

// fallbackTimes is the deterministic slot grid served when the availability
// service is unreachable. 11:00 is always marked unavailable.
var fallbackTimes = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

const fallbackBlockedTime = "11:00"

// FallbackProposals builds the fixed candidate set for a date.
func FallbackProposals(date string) []models.SlotProposal {
	proposals := make([]models.SlotProposal, 0, len(fallbackTimes))
	for _, t := range fallbackTimes {
		proposals = append(proposals, models.SlotProposal{
			Date:      date,
			Time:      t,
			Available: t != fallbackBlockedTime,
		})
	}
	return proposals
}
