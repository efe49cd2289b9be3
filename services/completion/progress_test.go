package completion

import (
	"testing"

	"trainvault/models/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkItemCompleteCreatesProgressAndStartsEnrollment(t *testing.T) {
	db := setupTestDB(t)
	enrollment, item := seedContentEnrollment(t, db, 1, 10, "Fire Safety")
	tracker := NewTracker(db)

	progress, started, err := tracker.MarkItemComplete(enrollment.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, progress.Completed)
	assert.Equal(t, training.EnrollCompleted, progress.Status)
	require.NotNil(t, progress.CompletedAt)

	var reloaded training.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, training.EnrollInProgress, reloaded.Status)
	require.NotNil(t, reloaded.StartedAt)
}

func TestMarkItemCompleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	enrollment, item := seedContentEnrollment(t, db, 1, 10, "Fire Safety")
	tracker := NewTracker(db)

	first, started, err := tracker.MarkItemComplete(enrollment.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, started)

	second, started, err := tracker.MarkItemComplete(enrollment.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, started, "second event must not re-fire the start transition")
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&training.EnrollmentItemProgress{}).
		Where("enrollment_id = ? AND content_item_id = ?", enrollment.ID, item.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkItemCompleteStartedAtSetOnce(t *testing.T) {
	db := setupTestDB(t)
	enrollment, items := seedCurriculumEnrollment(t, db, 1, 10, "Onboarding", []bool{true, true})
	tracker := NewTracker(db)

	_, _, err := tracker.MarkItemComplete(enrollment.ID, items[0].ID)
	require.NoError(t, err)

	var afterFirst training.Enrollment
	require.NoError(t, db.First(&afterFirst, enrollment.ID).Error)
	require.NotNil(t, afterFirst.StartedAt)
	startedAt := *afterFirst.StartedAt

	_, _, err = tracker.MarkItemComplete(enrollment.ID, items[1].ID)
	require.NoError(t, err)

	var afterSecond training.Enrollment
	require.NoError(t, db.First(&afterSecond, enrollment.ID).Error)
	require.NotNil(t, afterSecond.StartedAt)
	assert.Equal(t, startedAt.Unix(), afterSecond.StartedAt.Unix())
}

func TestMarkItemCompleteUnknownEnrollment(t *testing.T) {
	db := setupTestDB(t)
	tracker := NewTracker(db)

	_, _, err := tracker.MarkItemComplete(9999, 1)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
