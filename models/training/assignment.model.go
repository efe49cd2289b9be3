package training

import (
	"time"

	"gorm.io/gorm"
)

// Assignment types
const (
	AssignmentContentItem = "CONTENT_ITEM"
	AssignmentCurriculum  = "CURRICULUM"
)

// Assignment is the thing being trained on: either a single content item or a
// whole curriculum. Enrollments hang off assignments.
type Assignment struct {
	gorm.Model
	OrgID         uint       `json:"org_id" gorm:"index;not null"`
	Type          string     `json:"type" gorm:"default:'CONTENT_ITEM'"` // CONTENT_ITEM, CURRICULUM
	ContentItemID *uint      `json:"content_item_id" gorm:"index"`       // set when Type=CONTENT_ITEM
	CurriculumID  *uint      `json:"curriculum_id" gorm:"index"`         // set when Type=CURRICULUM
	TemplateID    *uint      `json:"template_id"`                        // certificate template override
	DueAt         *time.Time `json:"due_at"`
	IsDeleted     bool       `gorm:"default:false"`
}
