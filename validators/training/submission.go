package trainingValidator

import (
	"strings"

	trainingController "trainvault/controllers/training"
	"trainvault/middleware"

	"github.com/gofiber/fiber/v2"
)

// QuizSubmit validates a quiz submission body along with its path parameters
func QuizSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollmentId", "enrollmentID"); !ok {
			return err
		}
		if ok, err := paramID(c, "itemId", "itemID"); !ok {
			return err
		}

		reqData := new(struct {
			Answers []trainingController.QuizAnswer `json:"answers" validate:"required,min=1,dive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}

// Attestation validates an attestation sign-off body along with its path
// parameters
func Attestation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollmentId", "enrollmentID"); !ok {
			return err
		}
		if ok, err := paramID(c, "itemId", "itemID"); !ok {
			return err
		}

		reqData := new(struct {
			SignedName string `json:"signed_name" validate:"required,min=2"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.SignedName = strings.TrimSpace(reqData.SignedName)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedAttestation", reqData)
		return c.Next()
	}
}

// FormSubmit validates a form submission body along with its path parameters
func FormSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollmentId", "enrollmentID"); !ok {
			return err
		}
		if ok, err := paramID(c, "itemId", "itemID"); !ok {
			return err
		}

		reqData := new(struct {
			Answers string `json:"answers" validate:"required,json"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedFormSubmit", reqData)
		return c.Next()
	}
}
