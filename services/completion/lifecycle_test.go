package completion

import (
	"testing"

	"trainvault/models"
	"trainvault/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleItemCompletionContentItemNoTemplate(t *testing.T) {
	db := setupTestDB(t)
	enrollment, item := seedContentEnrollment(t, db, 1, 10, "Chemical Handling")
	lifecycle := NewLifecycle(db)

	outcome, err := lifecycle.HandleItemCompletion(enrollment.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Result.IsComplete)
	assert.True(t, outcome.JustCompleted)
	assert.Nil(t, outcome.Certificate, "no template configured for the org")
	require.NotZero(t, outcome.VaultRecordID)

	var record training.CompletionVaultRecord
	require.NoError(t, db.First(&record, outcome.VaultRecordID).Error)
	assert.Nil(t, record.CertificateID)
	assert.Nil(t, record.CertificateNumber)
	assert.Regexp(t, hexHash, record.VerificationHash)

	var reloaded training.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, training.EnrollCompleted, reloaded.Status)
	require.NotNil(t, reloaded.CompletedAt)
}

func TestHandleItemCompletionCurriculumEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	enrollment, items := seedCurriculumEnrollment(t, db, 1, 10, "Security Awareness", []bool{true, true})
	seedDefaultTemplate(t, db, 1)
	lifecycle := NewLifecycle(db)

	// complete item A only
	outcome, err := lifecycle.HandleItemCompletion(enrollment.ID, items[0].ID)
	require.NoError(t, err)
	assert.False(t, outcome.Result.IsComplete)
	assert.Equal(t, 2, outcome.Result.TotalRequired)
	assert.Equal(t, 1, outcome.Result.CompletedRequired)
	assert.False(t, outcome.JustCompleted)
	assert.Nil(t, outcome.Certificate)

	var reloaded training.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, training.EnrollInProgress, reloaded.Status)
	assert.Nil(t, reloaded.CompletedAt)

	// complete item B
	outcome, err = lifecycle.HandleItemCompletion(enrollment.ID, items[1].ID)
	require.NoError(t, err)
	assert.True(t, outcome.Result.IsComplete)
	assert.Equal(t, 2, outcome.Result.CompletedRequired)
	assert.True(t, outcome.JustCompleted)
	require.NotNil(t, outcome.Certificate)

	var certCount, vaultCount int64
	db.Model(&training.CertificateIssued{}).Where("enrollment_id = ?", enrollment.ID).Count(&certCount)
	db.Model(&training.CompletionVaultRecord{}).Where("enrollment_id = ?", enrollment.ID).Count(&vaultCount)
	assert.Equal(t, int64(1), certCount)
	assert.Equal(t, int64(1), vaultCount)

	var record training.CompletionVaultRecord
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&record).Error)
	require.NotNil(t, record.CertificateNumber)
	assert.Equal(t, outcome.Certificate.CertificateNumber, *record.CertificateNumber)
	assert.Equal(t, "Security Awareness", record.AssignmentTitle)
}

func TestHandleItemCompletionGuardsCompletedEnrollment(t *testing.T) {
	db := setupTestDB(t)
	enrollment, items := seedCurriculumEnrollment(t, db, 1, 10, "Guarded", []bool{true, false})
	seedDefaultTemplate(t, db, 1)
	lifecycle := NewLifecycle(db)

	outcome, err := lifecycle.HandleItemCompletion(enrollment.ID, items[0].ID)
	require.NoError(t, err)
	require.True(t, outcome.JustCompleted)
	require.NotNil(t, outcome.Certificate)
	firstCertID := outcome.Certificate.ID

	var completedAt = func() int64 {
		var e training.Enrollment
		require.NoError(t, db.First(&e, enrollment.ID).Error)
		require.NotNil(t, e.CompletedAt)
		return e.CompletedAt.UnixNano()
	}
	firstStamp := completedAt()

	// a later event (the optional item) must not re-trigger issuance or
	// restamp CompletedAt
	outcome, err = lifecycle.HandleItemCompletion(enrollment.ID, items[1].ID)
	require.NoError(t, err)
	assert.False(t, outcome.JustCompleted)
	assert.Nil(t, outcome.Certificate)

	// the guarded path still reports the real evaluator counts
	assert.True(t, outcome.Result.IsComplete)
	assert.Equal(t, 1, outcome.Result.TotalRequired)
	assert.Equal(t, 1, outcome.Result.CompletedRequired)

	assert.Equal(t, firstStamp, completedAt())

	var certCount, vaultCount int64
	db.Model(&training.CertificateIssued{}).Where("enrollment_id = ?", enrollment.ID).Count(&certCount)
	db.Model(&training.CompletionVaultRecord{}).Where("enrollment_id = ?", enrollment.ID).Count(&vaultCount)
	assert.Equal(t, int64(1), certCount)
	assert.Equal(t, int64(1), vaultCount)

	var cert training.CertificateIssued
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&cert).Error)
	assert.Equal(t, firstCertID, cert.ID)
}

func TestHandleItemCompletionZeroRequiredNeverCompletes(t *testing.T) {
	db := setupTestDB(t)
	enrollment, items := seedCurriculumEnrollment(t, db, 1, 10, "All Optional", []bool{false, false})
	seedDefaultTemplate(t, db, 1)
	lifecycle := NewLifecycle(db)

	for _, item := range items {
		outcome, err := lifecycle.HandleItemCompletion(enrollment.ID, item.ID)
		require.NoError(t, err)
		assert.False(t, outcome.Result.IsComplete)
		assert.False(t, outcome.JustCompleted)
	}

	var reloaded training.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, training.EnrollInProgress, reloaded.Status)

	var certCount int64
	db.Model(&training.CertificateIssued{}).Count(&certCount)
	assert.Equal(t, int64(0), certCount)
}

func TestHandleItemCompletionEmitsAuditTrail(t *testing.T) {
	db := setupTestDB(t)
	enrollment, item := seedContentEnrollment(t, db, 1, 10, "Audit Me")
	seedDefaultTemplate(t, db, 1)

	_, err := NewLifecycle(db).HandleItemCompletion(enrollment.ID, item.ID)
	require.NoError(t, err)

	kinds := map[string]int64{}
	for _, kind := range []string{
		models.EventEnrollmentStarted,
		models.EventItemCompleted,
		models.EventEnrollmentCompleted,
		models.EventCertificateIssued,
		models.EventVaultRecorded,
	} {
		var count int64
		db.Model(&models.AuditEvent{}).
			Where("enrollment_id = ? AND kind = ?", enrollment.ID, kind).
			Count(&count)
		kinds[kind] = count
	}
	for kind, count := range kinds {
		assert.Equal(t, int64(1), count, "expected one %s event", kind)
	}
}

func TestHandleItemCompletionUnknownEnrollment(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewLifecycle(db).HandleItemCompletion(31337, 1)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
