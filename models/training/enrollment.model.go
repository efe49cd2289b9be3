package training

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses. OVERDUE is derived at read time from the assignment
// due date and is never stored.
const (
	EnrollAssigned   = "ASSIGNED"
	EnrollInProgress = "IN_PROGRESS"
	EnrollCompleted  = "COMPLETED"
	EnrollOverdue    = "OVERDUE"
)

// Enrollment tracks a user's attempt at an assignment
type Enrollment struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_assignment"`
	AssignmentID uint       `json:"assignment_id" gorm:"index;not null;uniqueIndex:idx_user_assignment"`
	Assignment   Assignment `json:"-" gorm:"foreignKey:AssignmentID"`
	Status       string     `json:"status" gorm:"default:'ASSIGNED'"` // ASSIGNED, IN_PROGRESS, COMPLETED
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	IsDeleted    bool       `gorm:"default:false"`
}

// DisplayStatus layers the derived OVERDUE state on top of the stored status
func (e *Enrollment) DisplayStatus(dueAt *time.Time, now time.Time) string {
	if e.Status != EnrollCompleted && dueAt != nil && now.After(*dueAt) {
		return EnrollOverdue
	}
	return e.Status
}

// EnrollmentItemProgress marks completion of one content item within an
// enrollment. The (enrollment_id, content_item_id) pair is unique.
type EnrollmentItemProgress struct {
	gorm.Model
	EnrollmentID  uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_item"`
	ContentItemID uint       `json:"content_item_id" gorm:"not null;uniqueIndex:idx_enrollment_item"`
	Status        string     `json:"status" gorm:"default:'COMPLETED'"`
	Completed     bool       `json:"completed" gorm:"default:false"`
	CompletedAt   *time.Time `json:"completed_at"`
	IsDeleted     bool       `gorm:"default:false"`
}

// AttestationSignature records an explicit "I have read and understood" sign-off
type AttestationSignature struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	EnrollmentID  uint      `json:"enrollment_id" gorm:"index;not null"`
	ContentItemID uint      `json:"content_item_id" gorm:"index;not null"`
	SignedName    string    `json:"signed_name"`
	SignedAt      time.Time `json:"signed_at"`
	IsDeleted     bool      `gorm:"default:false"`
}

// FormResponse stores a learner's submitted form answers
type FormResponse struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	EnrollmentID  uint   `json:"enrollment_id" gorm:"index;not null"`
	ContentItemID uint   `json:"content_item_id" gorm:"index;not null"`
	Answers       string `json:"answers" gorm:"type:text"` // JSON object keyed by field name
	IsDeleted     bool   `gorm:"default:false"`
}
