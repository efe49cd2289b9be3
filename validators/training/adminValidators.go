package trainingValidator

import (
	"strings"
	"time"

	"trainvault/middleware"

	"github.com/gofiber/fiber/v2"
)

// ContentItem validates a content item creation body
func ContentItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedContentItem", reqData)
		return c.Next()
	}
}

// QuizQuestion validates a quiz question body along with the :itemId parameter
func QuizQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "itemId", "itemID"); !ok {
			return err
		}

		reqData := new(struct {
			QuestionText string `json:"question_text" validate:"required,min=3"`
			OrderIndex   int    `json:"order_index"`
			Options      []struct {
				OptionText string `json:"option_text" validate:"required"`
				IsCorrect  bool   `json:"is_correct"`
				OrderIndex int    `json:"order_index"`
			} `json:"options" validate:"required,min=2,dive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedQuizQuestion", reqData)
		return c.Next()
	}
}

// Curriculum validates a curriculum creation body
func Curriculum() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			IsPublished bool   `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCurriculum", reqData)
		return c.Next()
	}
}

// Section validates a section body along with the :curriculumId parameter
func Section() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "curriculumId", "curriculumID"); !ok {
			return err
		}

		reqData := new(struct {
			Title      string `json:"title" validate:"required,min=2"`
			OrderIndex int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// SectionItem validates a section item body along with the :sectionId parameter
func SectionItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "sectionId", "sectionID"); !ok {
			return err
		}

		reqData := new(struct {
			ContentItemID uint `json:"content_item_id" validate:"required"`
			OrderIndex    int  `json:"order_index"`
			Required      bool `json:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSectionItem", reqData)
		return c.Next()
	}
}

// Assignment validates an assignment creation body
func Assignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Type          string     `json:"type" validate:"required,oneof=CONTENT_ITEM CURRICULUM"`
			ContentItemID *uint      `json:"content_item_id"`
			CurriculumID  *uint      `json:"curriculum_id"`
			TemplateID    *uint      `json:"template_id"`
			DueAt         *time.Time `json:"due_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Type = strings.ToUpper(strings.TrimSpace(reqData.Type))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// AssignTo validates an assignment push body along with the :assignmentId
// parameter
func AssignTo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "assignmentId", "assignmentID"); !ok {
			return err
		}

		reqData := new(struct {
			UserIDs  []uint `json:"user_ids"`
			GroupIDs []uint `json:"group_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedAssignTo", reqData)
		return c.Next()
	}
}

// Template validates a certificate template body
func Template() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name      string `json:"name" validate:"required,min=2"`
			IsDefault bool   `json:"is_default"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}

// ResetEnrollment validates a reset body along with the :enrollmentId
// parameter. The reason is optional, so an empty body is accepted.
func ResetEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollmentId", "enrollmentID"); !ok {
			return err
		}

		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil && len(c.Body()) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedReset", reqData)
		return c.Next()
	}
}
