package training

import (
	"time"

	"gorm.io/gorm"
)

// CompletionVaultRecord is the tamper-evident proof of completion. One active
// record per enrollment; re-completion updates in place. AssignmentTitle is a
// snapshot so the record survives renames and deletes of the source content.
// VerificationHash is a pure function of the other fields (see
// services/completion hash payload) and can be recomputed by any auditor.
type CompletionVaultRecord struct {
	gorm.Model
	EnrollmentID      uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	OrgID             uint      `json:"org_id" gorm:"index;not null"`
	CertificateID     *uint     `json:"certificate_id"`
	CertificateNumber *string   `json:"certificate_number"`
	AssignmentTitle   string    `json:"assignment_title"`
	CompletedAt       time.Time `json:"completed_at"`
	VerificationHash  string    `json:"verification_hash" gorm:"type:varchar(64);not null"`
	IsDeleted         bool      `gorm:"default:false"`
}
