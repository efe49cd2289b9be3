package adminController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models"

	"github.com/gofiber/fiber/v2"
)

// ListAuditEvents lists the org's lifecycle audit trail, newest first
func ListAuditEvents(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedPagination").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	page := 1
	limit := 50
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.AuditEvent{}).
		Where("org_id = ? AND is_deleted = ?", orgID, false)

	if kind := c.Query("kind"); kind != "" {
		db = db.Where("kind = ?", kind)
	}
	if enrollmentID := c.QueryInt("enrollment_id"); enrollmentID > 0 {
		db = db.Where("enrollment_id = ?", enrollmentID)
	}

	var total int64
	db.Count(&total)

	var events []models.AuditEvent
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit events fetched successfully!", fiber.Map{
		"events": events,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
