package gateway

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
)

// NormalizeAssetURL joins a relative document/photo path onto the backend
// origin. The '#' sentinel ("no document uploaded") and already-absolute
// URLs pass through untouched.
func NormalizeAssetURL(base, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "#" {
		return trimmed
	}
	if parsed, err := url.Parse(trimmed); err == nil && parsed.IsAbs() {
		return trimmed
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(trimmed, "/")
}

// ParseSubjects unwraps the subjects field from every encoding the backend
// has shipped: a plain string array, a JSON-encoded string holding an array,
// or an array whose elements are themselves JSON-encoded arrays. The result
// is never nil; anything unparseable collapses to an empty list.
func ParseSubjects(raw json.RawMessage) []string {
	subjects := []string{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return subjects
	}

	switch trimmed[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return subjects
		}
		return decodeSubjectList(encoded)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return subjects
		}
		for _, elem := range elems {
			var s string
			if err := json.Unmarshal(elem, &s); err != nil {
				continue
			}
			if strings.HasPrefix(strings.TrimSpace(s), "[") {
				subjects = append(subjects, decodeSubjectList(s)...)
				continue
			}
			if s != "" {
				subjects = append(subjects, s)
			}
		}
	}
	return subjects
}

func decodeSubjectList(encoded string) []string {
	var parsed []string
	if err := json.Unmarshal([]byte(encoded), &parsed); err != nil || parsed == nil {
		return []string{}
	}
	return parsed
}

// parseStringList handles fields like academic_levels_taught that may be a
// string array, a JSON-encoded string, or absent.
func parseStringList(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []string{}
	}
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return []string{}
		}
		return decodeSubjectList(encoded)
	}
	var parsed []string
	if err := json.Unmarshal(trimmed, &parsed); err != nil || parsed == nil {
		return []string{}
	}
	return parsed
}

func (p userPayload) toModel(base string) models.UserSummary {
	return models.UserSummary{
		UserID:    models.AccountID(p.UserID),
		ProfileID: models.ApplicationID(p.ID),
		FullName:  p.FullName,
		Email:     p.Email,
		Role:      models.UserRole(p.UserType),
		Status:    models.ApplicationStatus(p.Status),
		Subjects:  ParseSubjects(p.Subjects),
		PhotoURL:  NormalizeAssetURL(base, p.PhotoURL),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

func (p applicationPayload) toModel(base string) *models.TutorApplication {
	app := &models.TutorApplication{
		ID:                 models.ApplicationID(p.ID),
		UserID:             models.AccountID(p.UserID),
		Status:             models.ApplicationStatus(p.Status),
		FullName:           p.FullName,
		Email:              p.Email,
		Subjects:           ParseSubjects(p.Subjects),
		AcademicLevels:     parseStringList(p.AcademicLevels),
		BackgroundCheck:    p.BackgroundCheck,
		ReferenceCheck:     p.ReferenceCheck,
		QualificationCheck: p.QualificationCheck,
		InterviewEnabled:   p.IsInterview,
		InterviewSlots:     p.InterviewSlots,
		StatusReason:       p.StatusReason,
	}

	app.Documents = make([]models.Document, 0, len(p.Documents))
	for _, doc := range p.Documents {
		app.Documents = append(app.Documents, models.Document{
			Type:       models.DocumentType(doc.Type),
			URL:        NormalizeAssetURL(base, doc.URL),
			Verified:   doc.Verified,
			UploadDate: doc.UploadDate,
			Notes:      doc.Notes,
		})
	}

	// Unify the two wire spellings of the admin-proposed pool.
	app.PreferredSlots = p.PreferredSlots
	if len(app.PreferredSlots) == 0 {
		app.PreferredSlots = p.PreferredTimes
	}
	if app.PreferredSlots == nil {
		app.PreferredSlots = []string{}
	}
	if app.InterviewSlots == nil {
		app.InterviewSlots = []models.InterviewSlot{}
	}

	return app
}
