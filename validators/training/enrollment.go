package trainingValidator

import (
	"strconv"
	"strings"

	"trainvault/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors[strings.ToLower(fe.Field())] = "Failed validation: " + fe.Tag()
		}
	} else {
		errors["request"] = "Invalid request!"
	}
	return errors
}

// paramID parses a positive integer path parameter into an int Local
func paramID(c *fiber.Ctx, param, local string) (bool, error) {
	value, err := strconv.Atoi(c.Params(param))
	if err != nil || value <= 0 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}
	c.Locals(local, value)
	return true, nil
}

// AssignmentParam validates the :assignmentId path parameter
func AssignmentParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "assignmentId", "assignmentID"); !ok {
			return err
		}
		return c.Next()
	}
}

// EnrollmentParam validates the :enrollmentId path parameter
func EnrollmentParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollmentId", "enrollmentID"); !ok {
			return err
		}
		return c.Next()
	}
}

// EnrollmentItemParams validates the :enrollmentId and :itemId path parameters
func EnrollmentItemParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollmentId", "enrollmentID"); !ok {
			return err
		}
		if ok, err := paramID(c, "itemId", "itemID"); !ok {
			return err
		}
		return c.Next()
	}
}

// CertificateParam validates the :certificateId path parameter
func CertificateParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "certificateId", "certificateID"); !ok {
			return err
		}
		return c.Next()
	}
}

// Pagination validates optional page and limit query parameters
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 200) {
			errors["limit"] = "Limit must be between 1 and 200!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPagination", reqData)
		return c.Next()
	}
}
