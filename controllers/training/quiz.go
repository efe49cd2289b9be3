package trainingController

import (
	"encoding/json"

	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
)

// QuizAnswer is one question's selected options in a submission
type QuizAnswer struct {
	QuestionID        uint   `json:"question_id" validate:"required"`
	SelectedOptionIDs []uint `json:"selected_option_ids" validate:"required,min=1"`
}

// SubmitQuiz grades a quiz submission against the item's pass threshold. A
// passing score triggers the completion pipeline; a failing one only records
// the attempt so the learner can retry.
func SubmitQuiz(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	itemID := c.Locals("itemID").(int)
	answers, ok := c.Locals("validatedQuizSubmit").(*struct {
		Answers []QuizAnswer `json:"answers" validate:"required,min=1,dive"`
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
	if item.ContentType != training.ContentQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not a quiz!", nil)
	}
	if !itemInAssignment(db, enrollment.AssignmentID, item.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not part of this assignment!", nil)
	}

	var questions []training.QuizQuestion
	if err := db.Where("content_item_id = ? AND is_deleted = ?", item.ID, false).Find(&questions).Error; err != nil || len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Quiz has no questions!", nil)
	}

	score := 0
	answersByQuestion := make(map[uint][]uint, len(answers.Answers))
	for _, answer := range answers.Answers {
		answersByQuestion[answer.QuestionID] = answer.SelectedOptionIDs
	}

	for _, question := range questions {
		var correctOptions []training.QuizOption
		db.Where("question_id = ? AND is_correct = ? AND is_deleted = ?", question.ID, true, false).Find(&correctOptions)

		correctIDs := make(map[uint]bool, len(correctOptions))
		for _, opt := range correctOptions {
			correctIDs[opt.ID] = true
		}

		selected := answersByQuestion[question.ID]
		correctCount := 0
		for _, id := range selected {
			if correctIDs[id] {
				correctCount++
			}
		}
		// all correct options selected and nothing extra
		if len(correctOptions) > 0 && correctCount == len(correctOptions) && len(selected) == len(correctOptions) {
			score++
		}
	}

	percent := score * 100 / len(questions)
	passed := percent >= item.PassThreshold

	var attemptCount int64
	db.Model(&training.QuizAttempt{}).
		Where("user_id = ? AND enrollment_id = ? AND content_item_id = ? AND is_deleted = ?", user.ID, enrollment.ID, item.ID, false).
		Count(&attemptCount)

	selectedJSON, _ := json.Marshal(answers.Answers)
	attempt := training.QuizAttempt{
		UserID:          user.ID,
		EnrollmentID:    enrollment.ID,
		ContentItemID:   item.ID,
		SelectedOptions: string(selectedJSON),
		Score:           score,
		MaxScore:        len(questions),
		Passed:          passed,
		AttemptNumber:   int(attemptCount) + 1,
	}
	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	response := fiber.Map{
		"attempt": attempt,
		"percent": percent,
		"passed":  passed,
	}

	if !passed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted. Threshold not met, try again!", response)
	}

	outcome, err := completion.NewLifecycle(db).HandleItemCompletion(enrollment.ID, item.ID)
	if err != nil {
		// the attempt is already durable; report the pass and let the
		// completion be retried rather than failing the submit
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz passed! Completion will be synced shortly.", response)
	}

	notifyCompletion(user, outcome, enrollment)
	response["summary"] = outcome.Result

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz passed!", response)
}
