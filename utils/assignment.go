package utils

import (
	"trainvault/models/training"

	"gorm.io/gorm"
)

// AssignmentTitle resolves the display title of an assignment: the curriculum
// title for curriculum assignments, otherwise the content item title. Returns
// an empty string when the source rows are gone.
func AssignmentTitle(db *gorm.DB, assignmentID uint) string {
	var assignment training.Assignment
	if err := db.Where("id = ?", assignmentID).First(&assignment).Error; err != nil {
		return ""
	}

	if assignment.Type == training.AssignmentCurriculum && assignment.CurriculumID != nil {
		var curriculum training.Curriculum
		if err := db.Where("id = ?", *assignment.CurriculumID).First(&curriculum).Error; err == nil {
			return curriculum.Title
		}
		return ""
	}

	if assignment.ContentItemID != nil {
		var item training.ContentItem
		if err := db.Where("id = ?", *assignment.ContentItemID).First(&item).Error; err == nil {
			return item.Title
		}
	}
	return ""
}
