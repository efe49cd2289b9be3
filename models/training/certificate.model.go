package training

import (
	"time"

	"gorm.io/gorm"
)

// CertificateTemplate is the org-configured layout a certificate renders with.
// An org without templates simply never issues certificates.
type CertificateTemplate struct {
	gorm.Model
	OrgID     uint   `json:"org_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	IsDefault bool   `json:"is_default" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}

// CertificateIssued is the minted certificate for a completed enrollment.
// The unique index on enrollment_id is the serialization point that makes
// issuance exactly-once even across concurrent completion events.
type CertificateIssued struct {
	gorm.Model
	EnrollmentID      uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	OrgID             uint      `json:"org_id" gorm:"index;not null"`
	TemplateID        uint      `json:"template_id" gorm:"not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"uniqueIndex;not null"`
	IssuedAt          time.Time `json:"issued_at"`
	RenderedURL       string    `json:"rendered_url"` // backfilled by the render collaborator
	IsDeleted         bool      `gorm:"default:false"`
}
