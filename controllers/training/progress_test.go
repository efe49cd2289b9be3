package trainingController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"trainvault/models"
	"trainvault/models/training"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// markCompleteApp mounts MarkItemComplete behind a stand-in for the auth and
// param middlewares so the handler sees the locals it expects
func markCompleteApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Post("/enrollments/:enrollmentId/items/:itemId/complete", func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		enrollmentID, _ := strconv.Atoi(c.Params("enrollmentId"))
		itemID, _ := strconv.Atoi(c.Params("itemId"))
		c.Locals("enrollmentID", enrollmentID)
		c.Locals("itemID", itemID)
		return c.Next()
	}, MarkItemComplete)
	return app
}

func postMarkComplete(t *testing.T, app *fiber.App, enrollmentID, itemID uint) (int, string) {
	t.Helper()

	path := fmt.Sprintf("/enrollments/%d/items/%d/complete", enrollmentID, itemID)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Message
}

func seedLearnerEnrollment(t *testing.T, db *gorm.DB) (*models.User, *training.Enrollment, *training.ContentItem) {
	t.Helper()

	user := models.User{OrgID: 1, Name: "Dana", Email: "dana@acme.test", Role: "LEARNER"}
	require.NoError(t, db.Create(&user).Error)

	item := training.ContentItem{OrgID: 1, Title: "Assigned Article", ContentType: training.ContentArticle, IsPublished: true}
	require.NoError(t, db.Create(&item).Error)

	assignment := training.Assignment{OrgID: 1, Type: training.AssignmentContentItem, ContentItemID: &item.ID}
	require.NoError(t, db.Create(&assignment).Error)

	enrollment := training.Enrollment{UserID: user.ID, AssignmentID: assignment.ID, Status: training.EnrollAssigned}
	require.NoError(t, db.Create(&enrollment).Error)

	return &user, &enrollment, &item
}

func TestMarkItemCompleteRejectsItemOutsideAssignment(t *testing.T) {
	db := setupControllerDB(t,
		&models.User{}, &models.AuditEvent{},
		&training.ContentItem{}, &training.Curriculum{}, &training.CurriculumSection{}, &training.CurriculumItem{},
		&training.Assignment{}, &training.Enrollment{}, &training.EnrollmentItemProgress{},
		&training.CertificateTemplate{}, &training.CertificateIssued{}, &training.CompletionVaultRecord{},
	)
	user, enrollment, _ := seedLearnerEnrollment(t, db)

	// published org item that is not part of the assignment
	stray := training.ContentItem{OrgID: 1, Title: "Unrelated Article", ContentType: training.ContentArticle, IsPublished: true}
	require.NoError(t, db.Create(&stray).Error)

	app := markCompleteApp(user.ID)
	status, message := postMarkComplete(t, app, enrollment.ID, stray.ID)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message, "not part of this assignment")

	// no progress accrued and no lifecycle transition fired
	var progressCount int64
	db.Model(&training.EnrollmentItemProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&progressCount)
	assert.Equal(t, int64(0), progressCount)

	var reloaded training.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.Equal(t, training.EnrollAssigned, reloaded.Status)
}

func TestMarkItemCompleteAcceptsAssignedItem(t *testing.T) {
	db := setupControllerDB(t,
		&models.User{}, &models.AuditEvent{},
		&training.ContentItem{}, &training.Curriculum{}, &training.CurriculumSection{}, &training.CurriculumItem{},
		&training.Assignment{}, &training.Enrollment{}, &training.EnrollmentItemProgress{},
		&training.CertificateTemplate{}, &training.CertificateIssued{}, &training.CompletionVaultRecord{},
	)
	user, enrollment, item := seedLearnerEnrollment(t, db)

	app := markCompleteApp(user.ID)
	status, _ := postMarkComplete(t, app, enrollment.ID, item.ID)
	assert.Equal(t, http.StatusOK, status)

	var progressCount int64
	db.Model(&training.EnrollmentItemProgress{}).
		Where("enrollment_id = ? AND content_item_id = ? AND completed = ?", enrollment.ID, item.ID, true).
		Count(&progressCount)
	assert.Equal(t, int64(1), progressCount)
}
