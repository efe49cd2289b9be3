package trainingController

import (
	"time"

	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/services/completion"
	"trainvault/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInAssignment self-enrolls the acting user into an assignment
func EnrollInAssignment(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)
	db := database.Database.Db

	var assignment training.Assignment
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", assignmentID, user.OrgID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	// Check if user is already enrolled
	var existing training.Enrollment
	if err := db.Where("user_id = ? AND assignment_id = ? AND is_deleted = ?", user.ID, assignmentID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this assignment!", nil)
	}

	enrollment := training.Enrollment{
		UserID:       user.ID,
		AssignmentID: uint(assignmentID),
		Status:       training.EnrollAssigned,
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", enrollment)
}

// GetMyEnrollments lists the acting user's enrollments with progress numbers
// and the derived display status
func GetMyEnrollments(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []training.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentView struct {
		training.Enrollment
		DisplayStatus   string `json:"display_status"`
		AssignmentTitle string `json:"assignment_title"`
		TotalRequired   int    `json:"total_required"`
		CompletedItems  int    `json:"completed_items"`
	}

	evaluator := completion.NewEvaluator(db)
	now := time.Now()

	result := make([]EnrollmentView, len(enrollments))
	for i, enrollment := range enrollments {
		var assignment training.Assignment
		db.Where("id = ?", enrollment.AssignmentID).First(&assignment)

		view := EnrollmentView{
			Enrollment:      enrollment,
			DisplayStatus:   enrollment.DisplayStatus(assignment.DueAt, now),
			AssignmentTitle: utils.AssignmentTitle(db, enrollment.AssignmentID),
		}
		if progress, err := evaluator.CheckCompletion(enrollment.ID); err == nil {
			view.TotalRequired = progress.TotalRequired
			view.CompletedItems = progress.CompletedRequired
		}
		result[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// GetEnrollmentProgress reports the completion state of one owned enrollment
func GetEnrollmentProgress(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	db := database.Database.Db

	enrollment, err := loadOwnedEnrollment(db, uint(enrollmentID), user.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	result, err := completion.NewEvaluator(db).CheckCompletion(enrollment.ID)
	if err != nil {
		return respondCompletionError(c, err)
	}

	var items []training.EnrollmentItemProgress
	db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Find(&items)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"summary":    result,
		"items":      items,
	})
}
