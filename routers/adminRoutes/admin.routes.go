package adminRoutes

import (
	controllers "trainvault/controllers/admin"
	"trainvault/middleware"
	validators "trainvault/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all admin and manager routes
func SetupAdminRoutes(app *fiber.App) {
	// Content and curriculum management
	contentGroup := app.Group("/admin/content", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-content"))
	contentGroup.Post("/", validators.ContentItem(), controllers.CreateContentItem)
	contentGroup.Post("/:itemId/questions", validators.QuizQuestion(), controllers.AddQuizQuestion)

	curriculumGroup := app.Group("/admin/curriculums", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-content"))
	curriculumGroup.Post("/", validators.Curriculum(), controllers.CreateCurriculum)
	curriculumGroup.Post("/:curriculumId/sections", validators.Section(), controllers.AddCurriculumSection)
	curriculumGroup.Post("/sections/:sectionId/items", validators.SectionItem(), controllers.AddSectionItem)

	// Assignments
	assignmentGroup := app.Group("/admin/assignments", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-assignments"))
	assignmentGroup.Post("/", validators.Assignment(), controllers.CreateAssignment)
	assignmentGroup.Post("/:assignmentId/assign", validators.AssignTo(), controllers.AssignToUsers)

	// Certificate templates
	templateGroup := app.Group("/admin/templates", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-templates"))
	templateGroup.Post("/", validators.Template(), controllers.CreateTemplate)
	templateGroup.Get("/", controllers.ListTemplates)

	// Enrollment reset
	resetGroup := app.Group("/admin/enrollments", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("reset-enrollments"))
	resetGroup.Post("/:enrollmentId/reset", validators.ResetEnrollment(), controllers.ResetEnrollment)

	// Vault and audit log
	auditGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("view-audit-log"))
	auditGroup.Get("/vault", validators.Pagination(), controllers.ListVaultRecords)
	auditGroup.Get("/audit", validators.Pagination(), controllers.ListAuditEvents)
}
