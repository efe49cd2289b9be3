package completion

import (
	"errors"
	"time"

	"trainvault/models/training"

	"gorm.io/gorm"
)

// CompletionRecord carries the facts the vault persists for one completion
type CompletionRecord struct {
	EnrollmentID      uint
	OrgID             uint
	UserID            uint
	CompletedAt       time.Time
	CertificateID     *uint
	CertificateNumber *string
}

// Recorder writes the hash-stamped completion record. One record per
// enrollment: re-completion (after an admin reset) updates in place instead
// of accumulating stale rows.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// RecordCompletion snapshots the assignment title, stamps the verification
// hash, and upserts the vault record keyed by enrollment. An unknown
// enrollment is a programming error upstream and propagates.
func (r *Recorder) RecordCompletion(rec CompletionRecord) (uint, error) {
	const op = "recorder.RecordCompletion"

	var enrollment training.Enrollment
	if err := r.db.Where("id = ? AND is_deleted = ?", rec.EnrollmentID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound(op, "enrollment not found", err)
		}
		return 0, internal(op, "failed to load enrollment", err)
	}

	title := r.snapshotTitle(enrollment.AssignmentID)

	hash := ComputeHash(BuildPayload(Facts{
		EnrollmentID:      rec.EnrollmentID,
		UserID:            rec.UserID,
		OrgID:             rec.OrgID,
		CertificateID:     rec.CertificateID,
		CertificateNumber: rec.CertificateNumber,
		AssignmentTitle:   title,
		CompletedAt:       rec.CompletedAt,
	}))

	var recordID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing training.CompletionVaultRecord
		err := tx.Where("enrollment_id = ?", rec.EnrollmentID).First(&existing).Error
		switch {
		case err == nil:
			recordID = existing.ID
			return tx.Model(&existing).Updates(map[string]interface{}{
				"user_id":            rec.UserID,
				"org_id":             rec.OrgID,
				"certificate_id":     rec.CertificateID,
				"certificate_number": rec.CertificateNumber,
				"assignment_title":   title,
				"completed_at":       rec.CompletedAt,
				"verification_hash":  hash,
				"is_deleted":         false,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			record := training.CompletionVaultRecord{
				EnrollmentID:      rec.EnrollmentID,
				UserID:            rec.UserID,
				OrgID:             rec.OrgID,
				CertificateID:     rec.CertificateID,
				CertificateNumber: rec.CertificateNumber,
				AssignmentTitle:   title,
				CompletedAt:       rec.CompletedAt,
				VerificationHash:  hash,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			recordID = record.ID
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if isDuplicate(err) {
			// a concurrent recorder inserted first; both writers computed from
			// the same completion event, so its row is just as valid
			var winner training.CompletionVaultRecord
			if err2 := r.db.Where("enrollment_id = ?", rec.EnrollmentID).First(&winner).Error; err2 == nil {
				return winner.ID, nil
			}
		}
		return 0, internal(op, "failed to upsert vault record", err)
	}

	return recordID, nil
}

// snapshotTitle copies the assignment's display title at record time. The
// vault must stay meaningful even if the source content is later renamed or
// deleted, so a failed lookup degrades to an empty snapshot rather than an
// error.
func (r *Recorder) snapshotTitle(assignmentID uint) string {
	var assignment training.Assignment
	if err := r.db.Where("id = ?", assignmentID).First(&assignment).Error; err != nil {
		return ""
	}

	switch assignment.Type {
	case training.AssignmentCurriculum:
		if assignment.CurriculumID == nil {
			return ""
		}
		var curriculum training.Curriculum
		if err := r.db.Where("id = ?", *assignment.CurriculumID).First(&curriculum).Error; err != nil {
			return ""
		}
		return curriculum.Title
	default:
		if assignment.ContentItemID == nil {
			return ""
		}
		var item training.ContentItem
		if err := r.db.Where("id = ?", *assignment.ContentItemID).First(&item).Error; err != nil {
			return ""
		}
		return item.Title
	}
}
