package models

import "time"

// AccountID identifies a tutor's account record. Workflow mutations
// (approve, reject, document verification, slot assignment) address the
// account.
type AccountID string

// ApplicationID identifies a tutor's profile record. Detail lookups and the
// interview-stage toggle address the profile. The two identifiers are
// deliberately distinct types: the legacy dashboard passed them
// interchangeably and the mixups were a recurring defect.
type ApplicationID string

func (id AccountID) String() string     { return string(id) }
func (id ApplicationID) String() string { return string(id) }

// ApplicationStatus is the verification state of a tutor application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusVerified ApplicationStatus = "verified"
	StatusRejected ApplicationStatus = "rejected"
	// StatusUnverified appears in list payloads for accounts that never
	// submitted documents. It is a rendering state, never stored.
	StatusUnverified ApplicationStatus = "unverified"
)

// Terminal reports whether no further status transitions are allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// DocumentType names an uploaded verification document. The set is
// conventionally fixed but carried as a typed string so unknown server
// values survive a round-trip.
type DocumentType string

const (
	DocIDProof           DocumentType = "ID Proof"
	DocAddressProof      DocumentType = "Address Proof"
	DocDegreeCertificate DocumentType = "Degree Certificate"
	DocReferenceLetter   DocumentType = "Reference Letter"
	DocBackgroundCheck   DocumentType = "Background Check"
)

// Document is one uploaded verification file and its approval flag.
type Document struct {
	Type       DocumentType `json:"type"`
	URL        string       `json:"url"`
	Verified   bool         `json:"verified"`
	UploadDate time.Time    `json:"upload_date"`
	Notes      string       `json:"notes,omitempty"`
}

// TutorApplication is the verification record tracked per prospective tutor.
type TutorApplication struct {
	ID     ApplicationID     `json:"id"`
	UserID AccountID         `json:"user_id"`
	Status ApplicationStatus `json:"status"`

	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Subjects []string `json:"subjects"`
	// AcademicLevels mirrors academic_levels_taught on the wire.
	AcademicLevels []string `json:"academic_levels_taught"`

	Documents          []Document `json:"documents"`
	BackgroundCheck    bool       `json:"background_check"`
	ReferenceCheck     bool       `json:"reference_check"`
	QualificationCheck bool       `json:"qualification_check"`

	InterviewEnabled bool            `json:"is_interview"`
	InterviewSlots   []InterviewSlot `json:"interview_slots"`
	// PreferredSlots is the admin-proposed pool of ISO date-time strings the
	// tutor books from.
	PreferredSlots []string `json:"preferred_slots"`

	StatusReason string `json:"profile_status_reason,omitempty"`
}

// AllDocumentsVerified reports whether every uploaded document has been
// approved. An application with no documents does not pass: there is nothing
// to have verified.
func (a *TutorApplication) AllDocumentsVerified() bool {
	if len(a.Documents) == 0 {
		return false
	}
	for _, doc := range a.Documents {
		if !doc.Verified {
			return false
		}
	}
	return true
}

// ChecksPassed reports whether all three screening checks hold.
func (a *TutorApplication) ChecksPassed() bool {
	return a.BackgroundCheck && a.ReferenceCheck && a.QualificationCheck
}

// Document returns the first document of the given type, or nil.
func (a *TutorApplication) Document(t DocumentType) *Document {
	for i := range a.Documents {
		if a.Documents[i].Type == t {
			return &a.Documents[i]
		}
	}
	return nil
}

// SlotProposal is one candidate interview time offered by the availability
// query.
type SlotProposal struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
