package adminController

import (
	"time"

	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models"
	"trainvault/models/training"

	"github.com/gofiber/fiber/v2"
)

// CreateAssignment creates an assignment over a content item or a curriculum
func CreateAssignment(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		Type          string     `json:"type" validate:"required,oneof=CONTENT_ITEM CURRICULUM"`
		ContentItemID *uint      `json:"content_item_id"`
		CurriculumID  *uint      `json:"curriculum_id"`
		TemplateID    *uint      `json:"template_id"`
		DueAt         *time.Time `json:"due_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	switch reqData.Type {
	case training.AssignmentContentItem:
		if reqData.ContentItemID == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "content_item_id is required for CONTENT_ITEM assignments!", nil)
		}
		var item training.ContentItem
		if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", *reqData.ContentItemID, orgID, false).First(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
		}
	case training.AssignmentCurriculum:
		if reqData.CurriculumID == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "curriculum_id is required for CURRICULUM assignments!", nil)
		}
		var curriculum training.Curriculum
		if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", *reqData.CurriculumID, orgID, false).First(&curriculum).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Curriculum not found!", nil)
		}
	}

	assignment := training.Assignment{
		OrgID:         orgID,
		Type:          reqData.Type,
		ContentItemID: reqData.ContentItemID,
		CurriculumID:  reqData.CurriculumID,
		TemplateID:    reqData.TemplateID,
		DueAt:         reqData.DueAt,
	}
	if err := db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// AssignToUsers enrolls the listed users and/or group members into an
// assignment. Users already enrolled are skipped, so re-running an assignment
// push is safe.
func AssignToUsers(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)
	reqData, ok := c.Locals("validatedAssignTo").(*struct {
		UserIDs  []uint `json:"user_ids"`
		GroupIDs []uint `json:"group_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	if len(reqData.UserIDs) == 0 && len(reqData.GroupIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Provide user_ids or group_ids!", nil)
	}

	db := database.Database.Db

	var assignment training.Assignment
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", assignmentID, orgID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	// fan out group memberships into the target user set
	targetIDs := make(map[uint]bool)
	for _, id := range reqData.UserIDs {
		targetIDs[id] = true
	}
	if len(reqData.GroupIDs) > 0 {
		var memberIDs []uint
		db.Model(&models.GroupMember{}).
			Joins("JOIN groups ON groups.id = group_members.group_id").
			Where("group_members.group_id IN ? AND groups.org_id = ? AND group_members.is_deleted = ?", reqData.GroupIDs, orgID, false).
			Pluck("group_members.user_id", &memberIDs)
		for _, id := range memberIDs {
			targetIDs[id] = true
		}
	}

	created := 0
	skipped := 0
	for userID := range targetIDs {
		var user models.User
		if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", userID, orgID, false).First(&user).Error; err != nil {
			skipped++
			continue
		}

		var existing training.Enrollment
		if err := db.Where("user_id = ? AND assignment_id = ? AND is_deleted = ?", userID, assignment.ID, false).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		enrollment := training.Enrollment{
			UserID:       userID,
			AssignmentID: assignment.ID,
			Status:       training.EnrollAssigned,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			skipped++
			continue
		}
		created++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment pushed successfully!", fiber.Map{
		"enrolled": created,
		"skipped":  skipped,
	})
}
