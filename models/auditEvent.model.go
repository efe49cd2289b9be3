package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit event kinds emitted by the completion pipeline
const (
	EventItemCompleted       = "ITEM_COMPLETED"
	EventEnrollmentStarted   = "ENROLLMENT_STARTED"
	EventEnrollmentCompleted = "ENROLLMENT_COMPLETED"
	EventCertificateIssued   = "CERTIFICATE_ISSUED"
	EventVaultRecorded       = "VAULT_RECORDED"
	EventEnrollmentReset     = "ENROLLMENT_RESET"
)

// AuditEvent is a fire-and-forget operational trail entry. Payload holds a
// kind-specific struct (see payloads below) serialized as JSON.
type AuditEvent struct {
	gorm.Model
	OrgID        uint           `json:"org_id" gorm:"index;not null"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	EnrollmentID uint           `json:"enrollment_id" gorm:"index"`
	Kind         string         `json:"kind" gorm:"index;not null"`
	Payload      datatypes.JSON `json:"payload"`
	IsDeleted    bool           `gorm:"default:false"`
}

// ItemCompletedPayload accompanies EventItemCompleted
type ItemCompletedPayload struct {
	ContentItemID     uint `json:"content_item_id"`
	CompletedRequired int  `json:"completed_required"`
	TotalRequired     int  `json:"total_required"`
}

// EnrollmentCompletedPayload accompanies EventEnrollmentCompleted
type EnrollmentCompletedPayload struct {
	AssignmentID    uint   `json:"assignment_id"`
	AssignmentTitle string `json:"assignment_title"`
	CompletedAt     string `json:"completed_at"`
}

// CertificateIssuedPayload accompanies EventCertificateIssued
type CertificateIssuedPayload struct {
	CertificateID     uint   `json:"certificate_id"`
	CertificateNumber string `json:"certificate_number"`
	TemplateID        uint   `json:"template_id"`
}

// VaultRecordedPayload accompanies EventVaultRecorded
type VaultRecordedPayload struct {
	RecordID         uint   `json:"record_id"`
	VerificationHash string `json:"verification_hash"`
}

// EnrollmentResetPayload accompanies EventEnrollmentReset
type EnrollmentResetPayload struct {
	ResetBy uint   `json:"reset_by"`
	Reason  string `json:"reason"`
}
