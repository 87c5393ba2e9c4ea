package stubserver

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	appErrors "github.com/noah-isme/tutorlink-admin-core/pkg/errors"
)

type credential struct {
	userID       string
	email        string
	role         models.UserRole
	passwordHash []byte
}

// Store is the in-memory fixture store behind the stub backend. It mimics
// the production document store closely enough for integration tests and
// local development, including the server-side approval invariant.
type Store struct {
	mu          sync.RWMutex
	users       []models.UserSummary
	apps        map[models.AccountID]*models.TutorApplication
	profiles    map[models.ApplicationID]models.AccountID
	credentials map[string]credential
	blockedSlot map[string]map[string]bool
	stats       models.DashboardStats
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		apps:        make(map[models.AccountID]*models.TutorApplication),
		profiles:    make(map[models.ApplicationID]models.AccountID),
		credentials: make(map[string]credential),
		blockedSlot: make(map[string]map[string]bool),
	}
}

// Seed loads the development fixture set.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addCredentialLocked("admin@tutorlink.test", "admin123!", "a-1", models.RoleAdmin); err != nil {
		return err
	}

	now := time.Now().UTC()

	s.addTutorLocked(&models.TutorApplication{
		ID: "p-2001", UserID: "u-1001", Status: models.StatusPending,
		FullName: "Amelia Price", Email: "amelia@example.com",
		Subjects:       []string{"Math", "Physics"},
		AcademicLevels: []string{"GCSE", "A-Level"},
		Documents: []models.Document{
			{Type: models.DocIDProof, URL: "uploads/u-1001-id.pdf", UploadDate: now.AddDate(0, 0, -9)},
			{Type: models.DocDegreeCertificate, URL: "uploads/u-1001-degree.pdf", UploadDate: now.AddDate(0, 0, -9)},
		},
	})

	interviewSlots := []models.InterviewSlot{
		{Date: "2026-09-03", Time: "10:00", Scheduled: true},
	}
	s.addTutorLocked(&models.TutorApplication{
		ID: "p-2002", UserID: "u-1002", Status: models.StatusPending,
		FullName: "Noah Chen", Email: "noah@example.com",
		Subjects:       []string{"Chemistry"},
		AcademicLevels: []string{"A-Level"},
		Documents: []models.Document{
			{Type: models.DocIDProof, URL: "uploads/u-1002-id.pdf", Verified: true, UploadDate: now.AddDate(0, 0, -20)},
			{Type: models.DocAddressProof, URL: "uploads/u-1002-address.pdf", Verified: true, UploadDate: now.AddDate(0, 0, -20)},
			{Type: models.DocReferenceLetter, URL: "uploads/u-1002-reference.pdf", Verified: true, UploadDate: now.AddDate(0, 0, -18)},
		},
		BackgroundCheck: true, ReferenceCheck: true, QualificationCheck: true,
		InterviewEnabled: true,
		InterviewSlots:   interviewSlots,
		PreferredSlots:   []string{"2026-09-03T10:00:00", "2026-09-03T14:00:00"},
	})

	s.addTutorLocked(&models.TutorApplication{
		ID: "p-2003", UserID: "u-1003", Status: models.StatusVerified,
		FullName: "Priya Sharma", Email: "priya@example.com",
		Subjects: []string{"Biology"},
		Documents: []models.Document{
			{Type: models.DocIDProof, URL: "uploads/u-1003-id.pdf", Verified: true, UploadDate: now.AddDate(0, -2, 0)},
		},
		BackgroundCheck: true, ReferenceCheck: true, QualificationCheck: true,
		StatusReason: "all checks complete",
	})

	s.users = append(s.users,
		models.UserSummary{UserID: "u-3001", FullName: "Sam Ortiz", Email: "sam@example.com", Role: models.RoleStudent, Active: true, Subjects: []string{}, CreatedAt: now.AddDate(0, -1, 0)},
		models.UserSummary{UserID: "u-3002", FullName: "Lena Kovacs", Email: "lena@example.com", Role: models.RoleStudent, Active: true, Subjects: []string{}, CreatedAt: now.AddDate(0, 0, -4)},
		models.UserSummary{UserID: "u-4001", FullName: "Marta Ortiz", Email: "marta@example.com", Role: models.RoleParent, Active: true, Subjects: []string{}, CreatedAt: now.AddDate(0, -1, 0)},
	)

	s.blockedSlot["2026-09-03"] = map[string]bool{"11:00": true}

	s.recomputeStatsLocked()
	return nil
}

func (s *Store) addCredentialLocked(email, password, userID string, role models.UserRole) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.credentials[strings.ToLower(email)] = credential{
		userID: userID, email: email, role: role, passwordHash: hash,
	}
	return nil
}

func (s *Store) addTutorLocked(app *models.TutorApplication) {
	s.apps[app.UserID] = app
	s.profiles[app.ID] = app.UserID
	s.users = append(s.users, models.UserSummary{
		UserID:    app.UserID,
		ProfileID: app.ID,
		FullName:  app.FullName,
		Email:     app.Email,
		Role:      models.RoleTutor,
		Status:    app.Status,
		Subjects:  app.Subjects,
		Active:    true,
	})
}

// Authenticate checks fixture credentials.
func (s *Store) Authenticate(email, password string) (credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.credentials[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return credential{}, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cred.passwordHash, []byte(password)); err != nil {
		return credential{}, appErrors.ErrInvalidCredentials
	}
	return cred, nil
}

// Users filters the fixture user list.
func (s *Store) Users(filter models.UserFilter) []models.UserSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.UserSummary, 0, len(s.users))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, user := range s.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(user.FullName), search) &&
			!strings.Contains(strings.ToLower(user.Email), search) {
			continue
		}
		result = append(result, user)
	}
	return result
}

// Application returns a deep copy so handlers never leak the live record.
func (s *Store) Application(userID models.AccountID) (*models.TutorApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	return copyApplication(app), nil
}

// Approve enforces the approval invariant server-side.
func (s *Store) Approve(userID models.AccountID, reason string) (*models.TutorApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	if app.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "tutor is already "+string(app.Status))
	}
	if !app.AllDocumentsVerified() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "documents not fully verified")
	}
	if !app.ChecksPassed() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "screening checks incomplete")
	}

	app.Status = models.StatusVerified
	app.StatusReason = reason
	s.syncUserLocked(app)
	s.recomputeStatsLocked()
	return copyApplication(app), nil
}

// PartialApprove records the reason and keeps the application pending.
func (s *Store) PartialApprove(userID models.AccountID, reason string) (*models.TutorApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	if app.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "tutor is already "+string(app.Status))
	}
	app.StatusReason = reason
	return copyApplication(app), nil
}

// Reject moves a pending application to the terminal rejected state.
func (s *Store) Reject(userID models.AccountID, reason string) (*models.TutorApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	if app.Status.Terminal() {
		return nil, appErrors.Clone(appErrors.ErrFinalized, "tutor is already "+string(app.Status))
	}
	app.Status = models.StatusRejected
	app.StatusReason = reason
	s.syncUserLocked(app)
	s.recomputeStatsLocked()
	return copyApplication(app), nil
}

// VerifyDocument flips one document type to verified. Idempotent.
func (s *Store) VerifyDocument(userID models.AccountID, docType models.DocumentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	found := false
	for i := range app.Documents {
		if app.Documents[i].Type == docType {
			app.Documents[i].Verified = true
			found = true
		}
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "no document of type "+string(docType))
	}
	return nil
}

// SetChecks flips the screening flags. The production system does this
// through a separate screening-provider callback; tests drive it directly.
func (s *Store) SetChecks(userID models.AccountID, background, reference, qualification bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	app.BackgroundCheck = background
	app.ReferenceCheck = reference
	app.QualificationCheck = qualification
	return nil
}

// AvailableSlots serves the per-date candidate grid.
func (s *Store) AvailableSlots(date string) []models.SlotProposal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	times := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	blocked := s.blockedSlot[date]
	proposals := make([]models.SlotProposal, 0, len(times))
	for _, t := range times {
		proposals = append(proposals, models.SlotProposal{
			Date:      date,
			Time:      t,
			Available: !blocked[t],
		})
	}
	return proposals
}

// AssignPreferredSlots replaces the admin-proposed pool.
func (s *Store) AssignPreferredSlots(userID models.AccountID, isoDateTimes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	app.PreferredSlots = append([]string(nil), isoDateTimes...)
	return nil
}

// ToggleInterview flips is_interview, addressed by profile id.
func (s *Store) ToggleInterview(profileID models.ApplicationID, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.profiles[profileID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor profile not found")
	}
	s.apps[userID].InterviewEnabled = enabled
	return nil
}

// RecordInterviewResult completes the first scheduled open slot.
func (s *Store) RecordInterviewResult(userID models.AccountID, outcome models.InterviewOutcome, score int, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[userID]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	for i := range app.InterviewSlots {
		slot := &app.InterviewSlots[i]
		if slot.Scheduled && !slot.Completed {
			slot.Completed = true
			slot.Result = &outcome
			slot.Score = &score
			slot.Notes = feedback
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "no scheduled interview to record a result for")
}

// Stats returns the aggregate snapshot.
func (s *Store) Stats() models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Store) syncUserLocked(app *models.TutorApplication) {
	for i := range s.users {
		if s.users[i].UserID == app.UserID {
			s.users[i].Status = app.Status
		}
	}
}

func (s *Store) recomputeStatsLocked() {
	tutors := models.TutorCounts{}
	for _, app := range s.apps {
		tutors.Total++
		switch app.Status {
		case models.StatusPending:
			tutors.Pending++
		case models.StatusVerified:
			tutors.Verified++
		case models.StatusRejected:
			tutors.Rejected++
		}
	}

	students := models.GroupCounts{}
	parents := models.GroupCounts{}
	for _, user := range s.users {
		switch user.Role {
		case models.RoleStudent:
			students.Total++
			if user.Active {
				students.Active++
			}
		case models.RoleParent:
			parents.Total++
			if user.Active {
				parents.Active++
			}
		}
	}

	s.stats = models.DashboardStats{
		Tutors:   tutors,
		Students: students,
		Parents:  parents,
		Sessions: models.SessionCounts{Total: 48, Completed: 41, Upcoming: 7},
		Revenue:  models.RevenueSummary{Total: 12840.50, ThisMonth: 1975.00, Currency: "GBP"},
	}
}

func copyApplication(app *models.TutorApplication) *models.TutorApplication {
	cp := *app
	cp.Subjects = append([]string(nil), app.Subjects...)
	cp.AcademicLevels = append([]string(nil), app.AcademicLevels...)
	cp.Documents = append([]models.Document(nil), app.Documents...)
	cp.InterviewSlots = append([]models.InterviewSlot(nil), app.InterviewSlots...)
	cp.PreferredSlots = append([]string(nil), app.PreferredSlots...)
	return &cp
}
