package models

import "gorm.io/gorm"

// Organization is a tenant. Every training record is scoped to one.
type Organization struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug" gorm:"unique;not null"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false"`
}
