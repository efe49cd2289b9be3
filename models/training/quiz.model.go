package training

import "gorm.io/gorm"

// QuizQuestion belongs to a QUIZ content item
type QuizQuestion struct {
	gorm.Model
	ContentItemID uint   `json:"content_item_id" gorm:"index;not null"`
	QuestionText  string `json:"question_text"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}

// QuizOption represents an option for a quiz question
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizAttempt represents a learner's graded submission of a quiz item
type QuizAttempt struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"index;not null"`
	EnrollmentID    uint   `json:"enrollment_id" gorm:"index;not null"`
	ContentItemID   uint   `json:"content_item_id" gorm:"index;not null"`
	SelectedOptions string `json:"selected_options"` // JSON array of selected option IDs
	Score           int    `json:"score"`
	MaxScore        int    `json:"max_score"`
	Passed          bool   `json:"passed" gorm:"default:false"`
	AttemptNumber   int    `json:"attempt_number" gorm:"default:1"`
	IsDeleted       bool   `gorm:"default:false"`
}
