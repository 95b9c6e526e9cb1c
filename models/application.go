package models

import (
	"time"

	"github.com/lib/pq"
)

// Status is the application lifecycle state. pending is the only entry
// state; returned applications can be edited back to pending by their
// owner.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusReturned:
		return true
	}
	return false
}

// Decision reports whether s is a state a reviewer may set.
func (s Status) Decision() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusReturned
}

// Subjects is the fixed set of request categories.
var Subjects = []string{
	"Sick Leave",
	"Vacation Request",
	"Personal Leave",
	"Medical Leave",
	"Emergency Leave",
	"Study Leave",
	"Maternity/Paternity Leave",
	"Bereavement Leave",
	"Other",
}

func ValidSubject(s string) bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}

const (
	MaxMessageLen = 1000
	MaxCommentLen = 500
)

type Application struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           uint           `json:"user_id" gorm:"index;not null"`
	Subject          string         `json:"subject" gorm:"size:60;not null"`
	Message          string         `json:"message" gorm:"type:text;not null"`
	Files            pq.StringArray `json:"files" gorm:"type:text[]"` // stored filenames, served under /uploads
	Status           Status         `json:"status" gorm:"size:20;not null;default:'pending'"`
	PrincipalComment string         `json:"principal_comment" gorm:"type:text"`
	SubmissionDate   time.Time      `json:"submission_date" gorm:"autoCreateTime"`
	ActionDate       *time.Time     `json:"action_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
