package adminController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"

	"github.com/gofiber/fiber/v2"
)

// CreateTemplate creates a certificate template for the acting admin's org.
// Marking it default demotes the previous default.
func CreateTemplate(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTemplate").(*struct {
		Name      string `json:"name" validate:"required,min=2"`
		IsDefault bool   `json:"is_default"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	template := training.CertificateTemplate{
		OrgID:     orgID,
		Name:      reqData.Name,
		IsDefault: reqData.IsDefault,
	}

	tx := db.Begin()
	if reqData.IsDefault {
		if err := tx.Model(&training.CertificateTemplate{}).
			Where("org_id = ? AND is_default = ?", orgID, true).
			Update("is_default", false).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update default template!", nil)
		}
	}
	if err := tx.Create(&template).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create template!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully!", template)
}

// ListTemplates lists the org's certificate templates
func ListTemplates(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var templates []training.CertificateTemplate
	if err := database.Database.Db.Where("org_id = ? AND is_deleted = ?", orgID, false).Find(&templates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully!", templates)
}
