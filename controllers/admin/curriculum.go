package adminController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"

	"github.com/gofiber/fiber/v2"
)

// CreateCurriculum creates an empty curriculum in the acting admin's org
func CreateCurriculum(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCurriculum").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		IsPublished bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	curriculum := training.Curriculum{
		OrgID:       orgID,
		Title:       reqData.Title,
		Description: reqData.Description,
		IsPublished: reqData.IsPublished,
	}

	if err := database.Database.Db.Create(&curriculum).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create curriculum!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Curriculum created successfully!", curriculum)
}

// AddCurriculumSection appends a section to a curriculum
func AddCurriculumSection(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	curriculumID := c.Locals("curriculumID").(int)
	reqData, ok := c.Locals("validatedSection").(*struct {
		Title      string `json:"title" validate:"required,min=2"`
		OrderIndex int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var curriculum training.Curriculum
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", curriculumID, orgID, false).First(&curriculum).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curriculum not found!", nil)
	}

	section := training.CurriculumSection{
		CurriculumID: curriculum.ID,
		Title:        reqData.Title,
		OrderIndex:   reqData.OrderIndex,
	}
	if err := db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section added successfully!", section)
}

// AddSectionItem places a content item into a curriculum section
func AddSectionItem(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(int)
	reqData, ok := c.Locals("validatedSectionItem").(*struct {
		ContentItemID uint `json:"content_item_id" validate:"required"`
		OrderIndex    int  `json:"order_index"`
		Required      bool `json:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section training.CurriculumSection
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	var curriculum training.Curriculum
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", section.CurriculumID, orgID, false).First(&curriculum).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curriculum not found!", nil)
	}

	var item training.ContentItem
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", reqData.ContentItemID, orgID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}

	link := training.CurriculumItem{
		SectionID:     section.ID,
		ContentItemID: item.ID,
		OrderIndex:    reqData.OrderIndex,
		Required:      reqData.Required,
	}
	if err := db.Create(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add item to section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Item added to section successfully!", link)
}
