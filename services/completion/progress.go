package completion

import (
	"errors"
	"time"

	"trainvault/models/training"

	"gorm.io/gorm"
)

// Tracker upserts per-content-item progress for an enrollment. Authorization
// (enrollment belongs to the acting user) is the caller's responsibility.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// MarkItemComplete records completion of one content item within the
// enrollment. Calling it twice for the same item only refreshes CompletedAt.
// The first item completion moves an ASSIGNED enrollment to IN_PROGRESS and
// stamps StartedAt; the returned bool reports whether that transition fired.
func (t *Tracker) MarkItemComplete(enrollmentID, contentItemID uint) (*training.EnrollmentItemProgress, bool, error) {
	const op = "tracker.MarkItemComplete"

	var enrollment training.Enrollment
	if err := t.db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, notFound(op, "enrollment not found", err)
		}
		return nil, false, internal(op, "failed to load enrollment", err)
	}

	now := time.Now()
	var progress training.EnrollmentItemProgress
	started := false

	err := t.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("enrollment_id = ? AND content_item_id = ? AND is_deleted = ?", enrollmentID, contentItemID, false).
			First(&progress).Error
		switch {
		case err == nil:
			// already marked; refresh the completion stamp only
			return tx.Model(&progress).Updates(map[string]interface{}{
				"completed":    true,
				"status":       training.EnrollCompleted,
				"completed_at": now,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = training.EnrollmentItemProgress{
				EnrollmentID:  enrollmentID,
				ContentItemID: contentItemID,
				Status:        training.EnrollCompleted,
				Completed:     true,
				CompletedAt:   &now,
			}
			return tx.Create(&progress).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// concurrent writer created the row first; nothing left to do
			t.db.Where("enrollment_id = ? AND content_item_id = ?", enrollmentID, contentItemID).First(&progress)
		} else {
			return nil, false, internal(op, "failed to upsert progress", err)
		}
	}

	if enrollment.Status == training.EnrollAssigned {
		updates := map[string]interface{}{"status": training.EnrollInProgress}
		if enrollment.StartedAt == nil {
			updates["started_at"] = now
		}
		// compare-and-swap so a concurrent first event cannot double-apply
		res := t.db.Model(&training.Enrollment{}).
			Where("id = ? AND status = ?", enrollmentID, training.EnrollAssigned).
			Updates(updates)
		if res.Error != nil {
			return nil, false, internal(op, "failed to start enrollment", res.Error)
		}
		started = res.RowsAffected > 0
	}

	return &progress, started, nil
}
