package trainingController

import (
	"trainvault/database"
	"trainvault/middleware"
	"trainvault/models/training"
	"trainvault/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMyCertificates lists all certificates issued to the acting user
func GetMyCertificates(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var certificates []training.CertificateIssued
	if err := db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateView struct {
		training.CertificateIssued
		AssignmentTitle  string `json:"assignment_title"`
		VerificationHash string `json:"verification_hash"`
	}

	result := make([]CertificateView, len(certificates))
	for i, cert := range certificates {
		view := CertificateView{CertificateIssued: cert}

		var record training.CompletionVaultRecord
		if err := db.Where("enrollment_id = ?", cert.EnrollmentID).First(&record).Error; err == nil {
			view.AssignmentTitle = record.AssignmentTitle
			view.VerificationHash = record.VerificationHash
		}
		result[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// RequestCertificateRender re-dispatches the document render for one of the
// acting user's certificates, for when the original render failed or the
// document was lost
func RequestCertificateRender(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(int)
	db := database.Database.Db

	var cert training.CertificateIssued
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", certificateID, user.ID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var record training.CompletionVaultRecord
	hash := ""
	title := ""
	if err := db.Where("enrollment_id = ?", cert.EnrollmentID).First(&record).Error; err == nil {
		hash = record.VerificationHash
		title = record.AssignmentTitle
	}

	utils.DispatchCertificateRender(&cert, user.Name, title, hash)

	return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Certificate render requested!", fiber.Map{
		"certificate_number": cert.CertificateNumber,
	})
}
