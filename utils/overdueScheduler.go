package utils

import (
	"log"
	"time"

	"trainvault/database"
	"trainvault/models"
	"trainvault/models/training"

	"github.com/robfig/cron/v3"
)

// InitializeOverdueScheduler sets up the daily overdue-enrollment sweep.
// OVERDUE is a derived display state, never a stored transition; the sweep
// only sends reminders.
func InitializeOverdueScheduler() {
	log.Println("[OVERDUE-SCHEDULER] Initializing overdue scheduler...")

	c := cron.New()

	// Run daily at 8 AM to remind learners about overdue assignments
	c.AddFunc("0 8 * * *", func() {
		log.Println("[OVERDUE-SCHEDULER] Running daily overdue check...")
		ProcessOverdueEnrollments()
	})

	c.Start()
	log.Println("[OVERDUE-SCHEDULER] Overdue scheduler started - runs daily at 8 AM")
}

// ProcessOverdueEnrollments finds incomplete enrollments whose assignment is
// past due and emails their learners
func ProcessOverdueEnrollments() {
	db := database.Database.Db
	now := time.Now()

	var assignments []training.Assignment
	if err := db.
		Where("due_at IS NOT NULL AND due_at < ? AND is_deleted = ?", now, false).
		Find(&assignments).Error; err != nil {
		log.Printf("[OVERDUE-SCHEDULER] Error fetching past-due assignments: %v", err)
		return
	}
	if len(assignments) == 0 {
		return
	}

	assignmentIDs := make([]uint, 0, len(assignments))
	dueByAssignment := make(map[uint]*time.Time, len(assignments))
	for _, a := range assignments {
		assignmentIDs = append(assignmentIDs, a.ID)
		dueByAssignment[a.ID] = a.DueAt
	}

	var enrollments []training.Enrollment
	if err := db.
		Where("assignment_id IN ? AND status <> ? AND is_deleted = ?", assignmentIDs, training.EnrollCompleted, false).
		Find(&enrollments).Error; err != nil {
		log.Printf("[OVERDUE-SCHEDULER] Error fetching overdue enrollments: %v", err)
		return
	}

	log.Printf("[OVERDUE-SCHEDULER] Found %d overdue enrollments", len(enrollments))

	for _, enrollment := range enrollments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Error fetching user %d: %v", enrollment.UserID, err)
			continue
		}

		title := AssignmentTitle(db, enrollment.AssignmentID)
		dueAt := dueByAssignment[enrollment.AssignmentID]
		if dueAt == nil {
			continue
		}

		SendOverdueReminder(user.Email, user.Name, title, *dueAt)
		log.Printf("[OVERDUE-SCHEDULER] Sent overdue reminder for enrollment %d to %s", enrollment.ID, user.Email)
	}
}
