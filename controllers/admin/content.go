package adminController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"

	"github.com/gofiber/fiber/v2"
)

// CreateContentItem creates a content item in the acting admin's org
func CreateContentItem(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedContentItem").(*struct {
		Title         string `json:"title" validate:"required,min=3"`
		Description   string `json:"description"`
		ContentType   string `json:"content_type" validate:"required,oneof=ARTICLE SLIDES VIDEO QUIZ FORM ATTESTATION"`
		TextContent   string `json:"text_content"`
		VideoURL      string `json:"video_url" validate:"omitempty,url"`
		SlidesURL     string `json:"slides_url" validate:"omitempty,url"`
		FormSchema    string `json:"form_schema" validate:"omitempty,json"`
		PassThreshold int    `json:"pass_threshold" validate:"omitempty,min=1,max=100"`
		IsPublished   bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item := training.ContentItem{
		OrgID:       orgID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		SlidesURL:   reqData.SlidesURL,
		FormSchema:  reqData.FormSchema,
		IsPublished: reqData.IsPublished,
	}
	if reqData.PassThreshold > 0 {
		item.PassThreshold = reqData.PassThreshold
	}

	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content item created successfully!", item)
}

// AddQuizQuestion adds a question with its options to a quiz content item
func AddQuizQuestion(c *fiber.Ctx) error {
	orgID, ok := c.Locals("orgId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	itemID := c.Locals("itemID").(int)
	reqData, ok := c.Locals("validatedQuizQuestion").(*struct {
		QuestionText string `json:"question_text" validate:"required,min=3"`
		OrderIndex   int    `json:"order_index"`
		Options      []struct {
			OptionText string `json:"option_text" validate:"required"`
			IsCorrect  bool   `json:"is_correct"`
			OrderIndex int    `json:"order_index"`
		} `json:"options" validate:"required,min=2,dive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var item training.ContentItem
	if err := db.Where("id = ? AND org_id = ? AND is_deleted = ?", itemID, orgID, false).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content item not found!", nil)
	}
	if item.ContentType != training.ContentQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content item is not a quiz!", nil)
	}

	hasCorrect := false
	for _, opt := range reqData.Options {
		if opt.IsCorrect {
			hasCorrect = true
			break
		}
	}
	if !hasCorrect {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "At least one option must be correct!", nil)
	}

	question := training.QuizQuestion{
		ContentItemID: item.ID,
		QuestionText:  reqData.QuestionText,
		OrderIndex:    reqData.OrderIndex,
	}

	tx := db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}
	for _, opt := range reqData.Options {
		option := training.QuizOption{
			QuestionID: question.ID,
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: opt.OrderIndex,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create options!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz question added successfully!", question)
}
