package trainingController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
)

// MarkItemComplete handles the explicit "mark complete" action for passive
// content (articles, slide decks, videos). Quiz, form and attestation items
// complete through their own type-specific triggers instead.
func MarkItemComplete(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	itemID := c.Locals("itemID").(int)
	db := database.Database.Db

	enrollment, err := loadOwnedEnrollment(db, uint(enrollmentID), user.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	var item training.ContentItem
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ? AND is_published = ?", itemID, user.OrgID, false, true).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}

	switch item.ContentType {
	case training.ContentQuiz:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quizzes complete by passing a submission!", nil)
	case training.ContentForm:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Forms complete by submitting a response!", nil)
	case training.ContentAttestation:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Attestations complete by signing!", nil)
	}

	if !itemInAssignment(db, enrollment.AssignmentID, item.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not part of this assignment!", nil)
	}

	outcome, err := completion.NewLifecycle(db).HandleItemCompletion(enrollment.ID, item.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	notifyCompletion(user, outcome, enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", fiber.Map{
		"progress": outcome.Progress,
		"summary":  outcome.Result,
	})
}
