package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patiponrmutl/DASystem/models"
)

// ApplicationRepo is the persistence contract the service needs. The gorm
// implementation lives in the repository package; tests use an in-memory
// fake.
type ApplicationRepo interface {
	Create(app *models.Application) error
	// FindByID returns ErrNotFound when no row matches.
	FindByID(id uint) (*models.Application, error)
	// FindAll returns applications newest-submission first. A non-nil
	// ownerID restricts the result to that owner.
	FindAll(ownerID *uint) ([]models.Application, error)
	Count() (int64, error)
	CountByStatus() (map[models.Status]int64, error)
	// Update applies changes to one row and returns the updated record.
	// Returns ErrNotFound when the id is absent.
	Update(id uint, changes map[string]any) (*models.Application, error)
}

type UserRepo interface {
	CountByRole(role models.Role) (int64, error)
}

// ApplicationService enforces the request lifecycle and the role rules
// gating each transition.
type ApplicationService struct {
	apps  ApplicationRepo
	users UserRepo
}

func NewApplicationService(apps ApplicationRepo, users UserRepo) *ApplicationService {
	return &ApplicationService{apps: apps, users: users}
}

/* ====================== Authorization rules ====================== */

// One predicate per operation so the rules are testable away from HTTP.

func canDecide(r models.Role) bool { return r.Reviewer() }

func canViewStats(r models.Role) bool { return r.Reviewer() }

func canView(r models.Role, callerID uint, app *models.Application) bool {
	return r.Reviewer() || app.UserID == callerID
}

func canEdit(callerID uint, app *models.Application) bool {
	return app.UserID == callerID
}

/* ====================== Operations ====================== */

// Submit creates a pending application for ownerID. files are stored
// filenames already accepted by the attachment store.
func (s *ApplicationService) Submit(ownerID uint, subject, message string, files []string) (*models.Application, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if err := validateMessage(message); err != nil {
		return nil, err
	}

	app := &models.Application{
		UserID:         ownerID,
		Subject:        subject,
		Message:        message,
		Files:          files,
		Status:         models.StatusPending,
		SubmissionDate: time.Now(),
	}
	if err := s.apps.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

// List returns every application for reviewers and only the caller's own
// for plain users, newest submission first.
func (s *ApplicationService) List(role models.Role, callerID uint) ([]models.Application, error) {
	if role.Reviewer() {
		return s.apps.FindAll(nil)
	}
	return s.apps.FindAll(&callerID)
}

func (s *ApplicationService) Get(role models.Role, callerID, id uint) (*models.Application, error) {
	app, err := s.apps.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !canView(role, callerID, app) {
		return nil, ErrForbidden
	}
	return app, nil
}

// Decide sets a reviewer decision. Prior status is deliberately not
// checked: a reviewer may re-decide an already decided application.
func (s *ApplicationService) Decide(role models.Role, id uint, status models.Status, comment string) (*models.Application, error) {
	if !canDecide(role) {
		return nil, ErrForbidden
	}
	if !status.Decision() {
		return nil, invalid(fmt.Sprintf("invalid status %q", status))
	}
	if utf8.RuneCountInString(comment) > models.MaxCommentLen {
		return nil, invalid(fmt.Sprintf("comment cannot be more than %d characters", models.MaxCommentLen))
	}

	now := time.Now()
	return s.apps.Update(id, map[string]any{
		"status":            status,
		"principal_comment": comment,
		"action_date":       &now,
	})
}

// EditInput carries the owner's resubmission. Nil pointers mean "keep the
// current value"; Files replaces the whole attachment set and is ignored
// when empty.
type EditInput struct {
	Subject *string
	Message *string
	Files   []string
}

// Edit lets the owner rework a returned application. It resets the record
// to pending and clears the reviewer's comment and action date.
func (s *ApplicationService) Edit(callerID, id uint, in EditInput) (*models.Application, error) {
	app, err := s.apps.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !canEdit(callerID, app) {
		return nil, ErrForbidden
	}
	if app.Status != models.StatusReturned {
		return nil, ErrInvalidState
	}

	changes := map[string]any{
		"status":            models.StatusPending,
		"principal_comment": "",
		"action_date":       nil,
	}
	if in.Subject != nil {
		if err := validateSubject(*in.Subject); err != nil {
			return nil, err
		}
		changes["subject"] = *in.Subject
	}
	if in.Message != nil {
		if err := validateMessage(*in.Message); err != nil {
			return nil, err
		}
		changes["message"] = *in.Message
	}
	if len(in.Files) > 0 {
		changes["files"] = in.Files
	}

	return s.apps.Update(id, changes)
}

// Stats is the reviewer dashboard aggregate. Absent statuses count as 0,
// so the four buckets always sum to Total.
type Stats struct {
	Total      int64 `json:"total"`
	TotalUsers int64 `json:"totalUsers"`
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
	Returned   int64 `json:"returned"`
}

func (s *ApplicationService) Stats(role models.Role) (*Stats, error) {
	if !canViewStats(role) {
		return nil, ErrForbidden
	}

	total, err := s.apps.Count()
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.CountByRole(models.RoleUser)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.apps.CountByStatus()
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:      total,
		TotalUsers: totalUsers,
		Pending:    byStatus[models.StatusPending],
		Approved:   byStatus[models.StatusApproved],
		Rejected:   byStatus[models.StatusRejected],
		Returned:   byStatus[models.StatusReturned],
	}, nil
}

/* ====================== Field validation ====================== */

func validateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return invalid("subject is required")
	}
	if !models.ValidSubject(subject) {
		return invalid(fmt.Sprintf("invalid subject %q", subject))
	}
	return nil
}

func validateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return invalid("message is required")
	}
	if utf8.RuneCountInString(message) > models.MaxMessageLen {
		return invalid(fmt.Sprintf("message cannot be more than %d characters", models.MaxMessageLen))
	}
	return nil
}
