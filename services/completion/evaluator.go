package completion

import (
	"errors"

	"trainvault/models/training"

	"gorm.io/gorm"
)

// Result reports how far along an enrollment is against its required items
type Result struct {
	IsComplete        bool `json:"is_complete"`
	TotalRequired     int  `json:"total_required"`
	CompletedRequired int  `json:"completed_required"`
}

// Evaluator decides whether an enrollment has completed all required items.
// Read-only; safe to call after every item completion.
type Evaluator struct {
	db *gorm.DB
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db}
}

// CheckCompletion computes the completion state of the enrollment. For a
// CONTENT_ITEM assignment the single item is the whole denominator. For a
// CURRICULUM assignment only required items count, deduped by content item.
// A curriculum with zero required items never reports complete: defining
// required items is a content-authoring responsibility, and auto-completing
// an empty denominator would mint certificates for doing nothing.
func (e *Evaluator) CheckCompletion(enrollmentID uint) (Result, error) {
	const op = "evaluator.CheckCompletion"

	var enrollment training.Enrollment
	if err := e.db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, notFound(op, "enrollment not found", err)
		}
		return Result{}, internal(op, "failed to load enrollment", err)
	}

	var assignment training.Assignment
	if err := e.db.Where("id = ? AND is_deleted = ?", enrollment.AssignmentID, false).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, notFound(op, "assignment not found", err)
		}
		return Result{}, internal(op, "failed to load assignment", err)
	}

	switch assignment.Type {
	case training.AssignmentContentItem:
		if assignment.ContentItemID == nil {
			return Result{}, invalid(op, "content-item assignment has no content item")
		}
		var count int64
		err := e.db.Model(&training.EnrollmentItemProgress{}).
			Where("enrollment_id = ? AND content_item_id = ? AND completed = ? AND is_deleted = ?",
				enrollmentID, *assignment.ContentItemID, true, false).
			Count(&count).Error
		if err != nil {
			return Result{}, internal(op, "failed to count progress", err)
		}
		return Result{
			IsComplete:        count > 0,
			TotalRequired:     1,
			CompletedRequired: int(min64(count, 1)),
		}, nil

	case training.AssignmentCurriculum:
		if assignment.CurriculumID == nil {
			return Result{}, invalid(op, "curriculum assignment has no curriculum")
		}
		requiredIDs, err := e.requiredItemIDs(*assignment.CurriculumID)
		if err != nil {
			return Result{}, internal(op, "failed to resolve required items", err)
		}
		if len(requiredIDs) == 0 {
			return Result{IsComplete: false, TotalRequired: 0, CompletedRequired: 0}, nil
		}

		var completed int64
		err = e.db.Model(&training.EnrollmentItemProgress{}).
			Where("enrollment_id = ? AND completed = ? AND is_deleted = ? AND content_item_id IN ?",
				enrollmentID, true, false, requiredIDs).
			Count(&completed).Error
		if err != nil {
			return Result{}, internal(op, "failed to count progress", err)
		}

		return Result{
			IsComplete:        int(completed) == len(requiredIDs),
			TotalRequired:     len(requiredIDs),
			CompletedRequired: int(completed),
		}, nil

	default:
		return Result{}, invalid(op, "unknown assignment type "+assignment.Type)
	}
}

// requiredItemIDs flattens the curriculum's sections to the distinct set of
// required content item IDs. An item listed in two sections counts once.
func (e *Evaluator) requiredItemIDs(curriculumID uint) ([]uint, error) {
	var sectionIDs []uint
	err := e.db.Model(&training.CurriculumSection{}).
		Where("curriculum_id = ? AND is_deleted = ?", curriculumID, false).
		Pluck("id", &sectionIDs).Error
	if err != nil {
		return nil, err
	}
	if len(sectionIDs) == 0 {
		return nil, nil
	}

	var itemIDs []uint
	err = e.db.Model(&training.CurriculumItem{}).
		Distinct("content_item_id").
		Where("section_id IN ? AND required = ? AND is_deleted = ?", sectionIDs, true, false).
		Pluck("content_item_id", &itemIDs).Error
	if err != nil {
		return nil, err
	}
	return itemIDs, nil
}

func min64(a int64, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
