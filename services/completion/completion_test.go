package completion

import (
	"fmt"
	"testing"

	"trainvault/models"
	"trainvault/models/training"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory sqlite database with the training
// schema migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.AuditEvent{},
		&training.ContentItem{},
		&training.Curriculum{},
		&training.CurriculumSection{},
		&training.CurriculumItem{},
		&training.Assignment{},
		&training.Enrollment{},
		&training.EnrollmentItemProgress{},
		&training.CertificateTemplate{},
		&training.CertificateIssued{},
		&training.CompletionVaultRecord{},
	)
	require.NoError(t, err)

	return db
}

// seedContentEnrollment creates a CONTENT_ITEM assignment plus an enrollment
// for it, returning the enrollment and the content item
func seedContentEnrollment(t *testing.T, db *gorm.DB, orgID, userID uint, title string) (*training.Enrollment, *training.ContentItem) {
	t.Helper()

	item := training.ContentItem{OrgID: orgID, Title: title, ContentType: training.ContentArticle, IsPublished: true}
	require.NoError(t, db.Create(&item).Error)

	assignment := training.Assignment{OrgID: orgID, Type: training.AssignmentContentItem, ContentItemID: &item.ID}
	require.NoError(t, db.Create(&assignment).Error)

	enrollment := training.Enrollment{UserID: userID, AssignmentID: assignment.ID, Status: training.EnrollAssigned}
	require.NoError(t, db.Create(&enrollment).Error)

	return &enrollment, &item
}

// seedCurriculumEnrollment creates a curriculum with one section holding the
// given items (required flag per item) and an enrollment for it
func seedCurriculumEnrollment(t *testing.T, db *gorm.DB, orgID, userID uint, title string, required []bool) (*training.Enrollment, []training.ContentItem) {
	t.Helper()

	curriculum := training.Curriculum{OrgID: orgID, Title: title, IsPublished: true}
	require.NoError(t, db.Create(&curriculum).Error)

	section := training.CurriculumSection{CurriculumID: curriculum.ID, Title: "Section 1"}
	require.NoError(t, db.Create(&section).Error)

	items := make([]training.ContentItem, len(required))
	for i, req := range required {
		items[i] = training.ContentItem{OrgID: orgID, Title: fmt.Sprintf("%s item %d", title, i+1), IsPublished: true}
		require.NoError(t, db.Create(&items[i]).Error)
		link := training.CurriculumItem{SectionID: section.ID, ContentItemID: items[i].ID, OrderIndex: i, Required: req}
		require.NoError(t, db.Create(&link).Error)
	}

	assignment := training.Assignment{OrgID: orgID, Type: training.AssignmentCurriculum, CurriculumID: &curriculum.ID}
	require.NoError(t, db.Create(&assignment).Error)

	enrollment := training.Enrollment{UserID: userID, AssignmentID: assignment.ID, Status: training.EnrollAssigned}
	require.NoError(t, db.Create(&enrollment).Error)

	return &enrollment, items
}

// seedDefaultTemplate gives the org a default certificate template
func seedDefaultTemplate(t *testing.T, db *gorm.DB, orgID uint) *training.CertificateTemplate {
	t.Helper()

	template := training.CertificateTemplate{OrgID: orgID, Name: "Standard", IsDefault: true}
	require.NoError(t, db.Create(&template).Error)
	return &template
}
