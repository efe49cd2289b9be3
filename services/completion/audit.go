package completion

import (
	"encoding/json"
	"log"

	"trainvault/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier appends audit events for operational visibility. It is strictly
// fire-and-forget: a failed write is logged and never surfaces to the
// pipeline that emitted it.
type Notifier struct {
	db *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db}
}

// Emit records one lifecycle event. payload is one of the typed payload
// structs in the models package; anything JSON-serializable is accepted.
func (n *Notifier) Emit(orgID, userID, enrollmentID uint, kind string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[AUDIT] failed to marshal %s payload: %v", kind, err)
		body = []byte("{}")
	}

	event := models.AuditEvent{
		OrgID:        orgID,
		UserID:       userID,
		EnrollmentID: enrollmentID,
		Kind:         kind,
		Payload:      datatypes.JSON(body),
	}
	if err := n.db.Create(&event).Error; err != nil {
		log.Printf("[AUDIT] failed to record %s event for enrollment %d: %v", kind, enrollmentID, err)
	}
}
