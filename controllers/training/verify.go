package trainingController

import (
	"strings"

	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/services/completion"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public verification surface. Given a certificate
// number it recomputes the verification hash from the stored vault fields and
// reports whether it still matches — a mismatch means the record was altered
// after it was written.
func VerifyCertificate(c *fiber.Ctx) error {
	number := strings.TrimSpace(c.Params("number"))
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
	}

	db := database.Database.Db

	var record training.CompletionVaultRecord
	if err := db.Where("certificate_number = ? AND is_deleted = ?", number, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No completion record found for this certificate!", nil)
	}

	recomputed := completion.ComputeHash(completion.BuildPayload(completion.Facts{
		EnrollmentID:      record.EnrollmentID,
		UserID:            record.UserID,
		OrgID:             record.OrgID,
		CertificateID:     record.CertificateID,
		CertificateNumber: record.CertificateNumber,
		AssignmentTitle:   record.AssignmentTitle,
		CompletedAt:       record.CompletedAt,
	}))

	valid := recomputed == record.VerificationHash

	message := "Certificate is valid!"
	if !valid {
		message = "Verification hash mismatch - record may have been tampered with!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, valid, message, fiber.Map{
		"valid":              valid,
		"certificate_number": number,
		"assignment_title":   record.AssignmentTitle,
		"completed_at":       record.CompletedAt,
		"verification_hash":  record.VerificationHash,
	})
}
