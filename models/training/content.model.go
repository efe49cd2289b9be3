package training

import "gorm.io/gorm"

// Content item types
const (
	ContentArticle     = "ARTICLE"
	ContentSlides      = "SLIDES"
	ContentVideo       = "VIDEO"
	ContentQuiz        = "QUIZ"
	ContentForm        = "FORM"
	ContentAttestation = "ATTESTATION"
)

// ContentItem is a single piece of training material
type ContentItem struct {
	gorm.Model
	OrgID         uint   `json:"org_id" gorm:"index;not null"`
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description"`
	ContentType   string `json:"content_type" gorm:"default:'ARTICLE'"`
	TextContent   string `json:"text_content" gorm:"type:text"` // for ARTICLE type
	VideoURL      string `json:"video_url"`                     // for VIDEO type
	SlidesURL     string `json:"slides_url"`                    // for SLIDES type
	FormSchema    string `json:"form_schema" gorm:"type:text"`  // for FORM type
	PassThreshold int    `json:"pass_threshold" gorm:"default:80"` // percent, QUIZ only
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	IsDeleted     bool   `gorm:"default:false"`
}
