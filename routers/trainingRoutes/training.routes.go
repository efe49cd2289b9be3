package trainingRoutes

import (
	controllers "trainvault/controllers/training"
	"trainvault/middleware"
	validators "trainvault/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes sets up all learner-facing training routes
func SetupTrainingRoutes(app *fiber.App) {
	trainingGroup := app.Group("/training", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("take-training"))

	// Enrollments
	trainingGroup.Post("/assignments/:assignmentId/enroll", validators.AssignmentParam(), controllers.EnrollInAssignment)
	trainingGroup.Get("/enrollments", controllers.GetMyEnrollments)
	trainingGroup.Get("/enrollments/:enrollmentId/progress", validators.EnrollmentParam(), controllers.GetEnrollmentProgress)

	// Item completion
	trainingGroup.Post("/enrollments/:enrollmentId/items/:itemId/complete", validators.EnrollmentItemParams(), controllers.MarkItemComplete)
	trainingGroup.Post("/enrollments/:enrollmentId/items/:itemId/quiz", validators.QuizSubmit(), controllers.SubmitQuiz)
	trainingGroup.Post("/enrollments/:enrollmentId/items/:itemId/attest", validators.Attestation(), controllers.SignAttestation)
	trainingGroup.Post("/enrollments/:enrollmentId/items/:itemId/form", validators.FormSubmit(), controllers.SubmitForm)

	// Certificates
	trainingGroup.Get("/certificates", controllers.GetMyCertificates)
	trainingGroup.Post("/certificates/:certificateId/render", validators.CertificateParam(), controllers.RequestCertificateRender)

	// Public verification, no auth
	app.Get("/verify/:number", controllers.VerifyCertificate)
}
