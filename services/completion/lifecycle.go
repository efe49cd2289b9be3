package completion

import (
	"errors"
	"log"
	"time"

	"trainvault/models"
	"trainvault/models/training"

	"gorm.io/gorm"
)

// Outcome reports what one item-completion event did end to end
type Outcome struct {
	Progress      *training.EnrollmentItemProgress
	Result        Result
	JustCompleted bool // this event fired the COMPLETED transition
	Certificate   *training.CertificateIssued
	VaultRecordID uint
}

// Lifecycle orchestrates the completion pipeline: progress upsert, status
// transitions, completion evaluation, certificate issuance, vault recording.
// All components share one *gorm.DB handed in by the caller.
type Lifecycle struct {
	db        *gorm.DB
	tracker   *Tracker
	evaluator *Evaluator
	issuer    *Issuer
	recorder  *Recorder
	notifier  *Notifier
}

func NewLifecycle(db *gorm.DB) *Lifecycle {
	return &Lifecycle{
		db:        db,
		tracker:   NewTracker(db),
		evaluator: NewEvaluator(db),
		issuer:    NewIssuer(db),
		recorder:  NewRecorder(db),
		notifier:  NewNotifier(db),
	}
}

// Evaluator exposes the read-only completion check for handlers that only
// want progress numbers
func (l *Lifecycle) Evaluator() *Evaluator {
	return l.evaluator
}

// HandleItemCompletion runs the pipeline for one content-completion event.
// Progress is durably recorded first; certificate and vault failures after
// that point are logged and retried out of band, never reported as a failed
// completion to the learner.
func (l *Lifecycle) HandleItemCompletion(enrollmentID, contentItemID uint) (*Outcome, error) {
	const op = "lifecycle.HandleItemCompletion"

	progress, started, err := l.tracker.MarkItemComplete(enrollmentID, contentItemID)
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{Progress: progress}

	var enrollment training.Enrollment
	if err := l.db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(op, "enrollment not found", err)
		}
		return nil, internal(op, "failed to reload enrollment", err)
	}

	var assignment training.Assignment
	if err := l.db.Where("id = ?", enrollment.AssignmentID).First(&assignment).Error; err != nil {
		return nil, internal(op, "failed to load assignment", err)
	}

	if started {
		l.notifier.Emit(assignment.OrgID, enrollment.UserID, enrollmentID, models.EventEnrollmentStarted, nil)
	}

	// no transition out of COMPLETED through this pipeline; re-doing content
	// after completion must never re-issue. The evaluator still runs so the
	// reported counts are real, not a fabricated zero denominator.
	if enrollment.Status == training.EnrollCompleted {
		result, err := l.evaluator.CheckCompletion(enrollmentID)
		if err != nil {
			return nil, err
		}
		result.IsComplete = true
		outcome.Result = result
		return outcome, nil
	}

	result, err := l.evaluator.CheckCompletion(enrollmentID)
	if err != nil {
		return nil, err
	}
	outcome.Result = result

	l.notifier.Emit(assignment.OrgID, enrollment.UserID, enrollmentID, models.EventItemCompleted, models.ItemCompletedPayload{
		ContentItemID:     contentItemID,
		CompletedRequired: result.CompletedRequired,
		TotalRequired:     result.TotalRequired,
	})

	if !result.IsComplete {
		return outcome, nil
	}

	// compare-and-swap on status is the guard: exactly one concurrent event
	// passes and stamps CompletedAt
	now := time.Now()
	res := l.db.Model(&training.Enrollment{}).
		Where("id = ? AND status <> ?", enrollmentID, training.EnrollCompleted).
		Updates(map[string]interface{}{
			"status":       training.EnrollCompleted,
			"completed_at": now,
		})
	if res.Error != nil {
		return nil, internal(op, "failed to complete enrollment", res.Error)
	}
	if res.RowsAffected == 0 {
		// another writer won the transition and owns issuance
		return outcome, nil
	}
	outcome.JustCompleted = true

	l.finishCompletion(outcome, &enrollment, &assignment, now)
	return outcome, nil
}

// finishCompletion issues the certificate and writes the vault record for a
// transition this event just won. Failures here are deliberately non-fatal:
// progress is already durable and certification is recoverable by backfill.
func (l *Lifecycle) finishCompletion(outcome *Outcome, enrollment *training.Enrollment, assignment *training.Assignment, completedAt time.Time) {
	cert, err := l.issuer.IssueCertificate(enrollment.ID, assignment.OrgID, enrollment.UserID)
	if err != nil {
		log.Printf("[COMPLETION] certificate issuance failed for enrollment %d: %v", enrollment.ID, err)
	}
	outcome.Certificate = cert

	rec := CompletionRecord{
		EnrollmentID: enrollment.ID,
		OrgID:        assignment.OrgID,
		UserID:       enrollment.UserID,
		CompletedAt:  completedAt,
	}
	if cert != nil {
		rec.CertificateID = &cert.ID
		rec.CertificateNumber = &cert.CertificateNumber
	}

	recordID, err := l.recorder.RecordCompletion(rec)
	if err != nil {
		log.Printf("[COMPLETION] vault recording failed for enrollment %d: %v", enrollment.ID, err)
	}
	outcome.VaultRecordID = recordID

	l.notifier.Emit(assignment.OrgID, enrollment.UserID, enrollment.ID, models.EventEnrollmentCompleted, models.EnrollmentCompletedPayload{
		AssignmentID:    assignment.ID,
		AssignmentTitle: l.recorder.snapshotTitle(assignment.ID),
		CompletedAt:     completedAt.UTC().Format(time.RFC3339),
	})
	if cert != nil {
		l.notifier.Emit(assignment.OrgID, enrollment.UserID, enrollment.ID, models.EventCertificateIssued, models.CertificateIssuedPayload{
			CertificateID:     cert.ID,
			CertificateNumber: cert.CertificateNumber,
			TemplateID:        cert.TemplateID,
		})
	}
	if recordID != 0 {
		var record training.CompletionVaultRecord
		if err := l.db.First(&record, recordID).Error; err == nil {
			l.notifier.Emit(assignment.OrgID, enrollment.UserID, enrollment.ID, models.EventVaultRecorded, models.VaultRecordedPayload{
				RecordID:         record.ID,
				VerificationHash: record.VerificationHash,
			})
		}
	}
}
