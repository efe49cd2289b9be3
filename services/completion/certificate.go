package completion

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"trainvault/models/training"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// numberAttempts bounds the collision retry loop for certificate numbers
const numberAttempts = 5

// Issuer mints certificates for completed enrollments. It does not re-verify
// completion; callers check the evaluator first, which keeps issuance usable
// in batch and backfill contexts.
type Issuer struct {
	db *gorm.DB
}

func NewIssuer(db *gorm.DB) *Issuer {
	return &Issuer{db: db}
}

// IssueCertificate creates at most one certificate for the enrollment.
// A second call returns the first call's certificate. Returns (nil, nil)
// when the org has no applicable template: certification is optional and
// its absence never fails a completion.
func (i *Issuer) IssueCertificate(enrollmentID, orgID, userID uint) (*training.CertificateIssued, error) {
	const op = "issuer.IssueCertificate"

	// first completion wins: an existing certificate is returned as-is
	var existing training.CertificateIssued
	err := i.db.Where("enrollment_id = ? AND is_deleted = ?", enrollmentID, false).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal(op, "failed to check existing certificate", err)
	}

	var enrollment training.Enrollment
	if err := i.db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, "enrollment not found", err)
		}
		return nil, internal(op, "failed to load enrollment", err)
	}

	template, err := i.resolveTemplate(enrollment.AssignmentID, orgID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	number, err := i.uniqueNumber(orgID)
	if err != nil {
		return nil, err
	}

	cert := training.CertificateIssued{
		EnrollmentID:      enrollmentID,
		UserID:            userID,
		OrgID:             orgID,
		TemplateID:        template.ID,
		CertificateNumber: number,
		IssuedAt:          time.Now(),
	}
	if err := i.db.Create(&cert).Error; err != nil {
		// the unique index on enrollment_id is the true serialization point;
		// losing the race means a concurrent completion already issued
		if isDuplicate(err) {
			var winner training.CertificateIssued
			if err2 := i.db.Where("enrollment_id = ?", enrollmentID).First(&winner).Error; err2 == nil {
				return &winner, nil
			}
		}
		return nil, internal(op, "failed to create certificate", err)
	}

	return &cert, nil
}

// resolveTemplate prefers the assignment's template override, then the org
// default. Nil with no error means the org issues no certificates.
func (i *Issuer) resolveTemplate(assignmentID, orgID uint) (*training.CertificateTemplate, error) {
	const op = "issuer.resolveTemplate"

	var assignment training.Assignment
	if err := i.db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, "assignment not found", err)
		}
		return nil, internal(op, "failed to load assignment", err)
	}

	var template training.CertificateTemplate
	if assignment.TemplateID != nil {
		err := i.db.Where("id = ? AND org_id = ? AND is_deleted = ?", *assignment.TemplateID, orgID, false).
			First(&template).Error
		if err == nil {
			return &template, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal(op, "failed to load template", err)
		}
	}

	err := i.db.Where("org_id = ? AND is_default = ? AND is_deleted = ?", orgID, true, false).
		First(&template).Error
	if err == nil {
		return &template, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, internal(op, "failed to load default template", err)
}

// uniqueNumber generates an org-unique certificate number, retrying on the
// vanishingly rare token collision
func (i *Issuer) uniqueNumber(orgID uint) (string, error) {
	const op = "issuer.uniqueNumber"

	for attempt := 0; attempt < numberAttempts; attempt++ {
		token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
		number := fmt.Sprintf("TV-%d-%s", orgID, token)

		var count int64
		err := i.db.Model(&training.CertificateIssued{}).
			Where("certificate_number = ?", number).
			Count(&count).Error
		if err != nil {
			return "", internal(op, "failed to check number uniqueness", err)
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", internal(op, "exhausted certificate number attempts", nil)
}

// isDuplicate reports whether err is a unique constraint violation. GORM
// translates it for the postgres and mysql drivers; sqlite needs the
// message check.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}
