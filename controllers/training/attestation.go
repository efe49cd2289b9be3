package trainingController

import (
	"time"

	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
)

// SignAttestation records a learner's sign-off on an attestation item and
// triggers the completion pipeline
func SignAttestation(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	itemID := c.Locals("itemID").(int)
	reqData, ok := c.Locals("validatedAttestation").(*struct {
		SignedName string `json:"signed_name" validate:"required,min=2"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	enrollment, err := loadOwnedEnrollment(db, uint(enrollmentID), user.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	var item training.ContentItem
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ? AND is_published = ?", itemID, user.OrgID, false, true).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}
	if item.ContentType != training.ContentAttestation {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not an attestation!", nil)
	}
	if !itemInAssignment(db, enrollment.AssignmentID, item.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not part of this assignment!", nil)
	}

	signature := training.AttestationSignature{
		UserID:        user.ID,
		EnrollmentID:  enrollment.ID,
		ContentItemID: item.ID,
		SignedName:    reqData.SignedName,
		SignedAt:      time.Now(),
	}
	if err := db.Create(&signature).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record signature!", nil)
	}

	outcome, err := completion.NewLifecycle(db).HandleItemCompletion(enrollment.ID, item.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	notifyCompletion(user, outcome, enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attestation signed successfully!", fiber.Map{
		"signature": signature,
		"summary":   outcome.Result,
	})
}
