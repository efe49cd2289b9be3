package adminController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
)

// ResetEnrollment is the explicit admin reset: it deletes the enrollment and
// everything hanging off it (progress, certificate, vault record) so the user
// can be re-assigned from scratch. This is deliberately not a state
// transition - the completion pipeline has no way back out of COMPLETED.
func ResetEnrollment(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	reqData, _ := c.Locals("validatedReset").(*struct {
		Reason string `json:"reason"`
	})
	reason := ""
	if reqData != nil {
		reason = reqData.Reason
	}

	db := database.Database.Db

	var enrollment training.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var assignment training.Assignment
	if err := db.Where("id = ? AND org_id = ?", enrollment.AssignmentID, orgID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enrollment belongs to another organization!", nil)
	}

	// hard deletes: a soft-deleted enrollment would still hold the unique
	// (user_id, assignment_id) index and block re-assignment forever
	tx := db.Begin()
	steps := []error{
		tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&training.EnrollmentItemProgress{}).Error,
		tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&training.QuizAttempt{}).Error,
		tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&training.AttestationSignature{}).Error,
		tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&training.FormResponse{}).Error,
		tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&training.CertificateIssued{}).Error,
		tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&training.CompletionVaultRecord{}).Error,
		tx.Unscoped().Delete(&enrollment).Error,
	}
	for _, err := range steps {
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset enrollment!", nil)
		}
	}
	tx.Commit()

	completion.NewNotifier(db).Emit(orgID, enrollment.UserID, enrollment.ID, models.EventEnrollmentReset, models.EnrollmentResetPayload{
		ResetBy: adminID,
		Reason:  reason,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment reset successfully!", nil)
}

// ListVaultRecords lists the org's completion vault for auditors
func ListVaultRecords(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedPagination").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	page := 1
	limit := 25
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&training.CompletionVaultRecord{}).
		Where("org_id = ? AND is_deleted = ?", orgID, false)

	var total int64
	db.Count(&total)

	var records []training.CompletionVaultRecord
	if err := db.Offset(offset).Limit(limit).Order("completed_at desc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch vault records!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vault records fetched successfully!", fiber.Map{
		"records": records,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
