package trainingController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models"
	"trainvault/models/training"
	"trainvault/services/completion"
	"trainvault/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requireUser loads the acting user from the JWT locals
func requireUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// loadOwnedEnrollment verifies the enrollment exists and belongs to the
// acting user before any progress mutation runs
func loadOwnedEnrollment(db *gorm.DB, enrollmentID, userID uint) (*training.Enrollment, error) {
	var enrollment training.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return nil, &completion.Error{Kind: completion.KindNotFound, Op: "loadOwnedEnrollment", Msg: "enrollment not found", Err: err}
	}
	if enrollment.UserID != userID {
		return nil, &completion.Error{Kind: completion.KindForbidden, Op: "loadOwnedEnrollment", Msg: "enrollment belongs to another user"}
	}
	return &enrollment, nil
}

// itemInAssignment reports whether the content item is part of the
// enrollment's assignment: the single target item, or any item of the
// curriculum's sections. Progress against unrelated org items would never
// count toward completion, but it should not be recordable either.
func itemInAssignment(db *gorm.DB, assignmentID, itemID uint) bool {
	var assignment training.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return false
	}

	if assignment.Type == training.AssignmentContentItem {
		return assignment.ContentItemID != nil && *assignment.ContentItemID == itemID
	}

	if assignment.CurriculumID == nil {
		return false
	}
	var sectionIDs []uint
	if err := db.Model(&training.CurriculumSection{}).
		Where("curriculum_id = ? AND is_deleted = ?", *assignment.CurriculumID, false).
		Pluck("id", &sectionIDs).Error; err != nil || len(sectionIDs) == 0 {
		return false
	}

	var count int64
	db.Model(&training.CurriculumItem{}).
		Where("section_id IN ? AND content_item_id = ? AND is_deleted = ?", sectionIDs, itemID, false).
		Count(&count)
	return count > 0
}

// respondCompletionError maps pipeline error kinds onto HTTP responses
func respondCompletionError(c *fiber.Ctx, err error) error {
	switch completion.KindOf(err) {
	case completion.KindNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	case completion.KindForbidden:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enrollment belongs to another user!", nil)
	case completion.KindConflict:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already done!", nil)
	case completion.KindInvalid:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// notifyCompletion sends the learner-facing side effects of a completion that
// just happened: notification emails and the certificate render dispatch.
// Everything here is best-effort; the completion itself is already durable.
func notifyCompletion(user *models.User, outcome *completion.Outcome, enrollment *training.Enrollment) {
	if outcome == nil || !outcome.JustCompleted {
		return
	}

	db := database.Database.Db
	title := utils.AssignmentTitle(db, enrollment.AssignmentID)

	go utils.SendCompletionEmail(user.Email, user.Name, title)

	if outcome.Certificate != nil {
		go utils.SendCertificateEmail(user.Email, user.Name, title, outcome.Certificate.CertificateNumber)

		var record training.CompletionVaultRecord
		hash := ""
		if err := db.Where("enrollment_id = ?", enrollment.ID).First(&record).Error; err == nil {
			hash = record.VerificationHash
		}
		utils.DispatchCertificateRender(outcome.Certificate, user.Name, title, hash)
	}
}
