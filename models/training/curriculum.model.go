package training

import "gorm.io/gorm"

// Curriculum is an ordered collection of sections of content items
type Curriculum struct {
	gorm.Model
	OrgID       uint   `json:"org_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// CurriculumSection is an ordered section within a curriculum
type CurriculumSection struct {
	gorm.Model
	CurriculumID uint   `json:"curriculum_id" gorm:"index;not null"`
	Title        string `json:"title"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}

// CurriculumItem places a content item inside a section. Only items with
// Required=true count toward enrollment completion.
type CurriculumItem struct {
	gorm.Model
	SectionID     uint `json:"section_id" gorm:"index;not null"`
	ContentItemID uint `json:"content_item_id" gorm:"index;not null"`
	OrderIndex    int  `json:"order_index" gorm:"default:0"`
	Required      bool `json:"required" gorm:"default:true"`
	IsDeleted     bool `gorm:"default:false"`
}
