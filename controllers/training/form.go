package trainingController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
)

// SubmitForm stores a learner's form answers and triggers the completion
// pipeline. Field-level validation of the answers against the form schema is
// the form collaborator's concern, not the pipeline's.
func SubmitForm(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	itemID := c.Locals("itemID").(int)
	reqData, ok := c.Locals("validatedFormSubmit").(*struct {
		Answers string `json:"answers" validate:"required,json"`
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
	if item.ContentType != training.ContentForm {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not a form!", nil)
	}
	if !itemInAssignment(db, enrollment.AssignmentID, item.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not part of this assignment!", nil)
	}

	response := training.FormResponse{
		UserID:        user.ID,
		EnrollmentID:  enrollment.ID,
		ContentItemID: item.ID,
		Answers:       reqData.Answers,
	}
	if err := db.Create(&response).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit form!", nil)
	}

	outcome, err := completion.NewLifecycle(db).HandleItemCompletion(enrollment.ID, item.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	notifyCompletion(user, outcome, enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Form submitted successfully!", fiber.Map{
		"response": response,
		"summary":  outcome.Result,
	})
}
