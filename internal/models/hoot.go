package models

import (
	"time"
)

type Hoot struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	Category  string    `gorm:"size:20" json:"category"`
	Title     string    `json:"title"`
	Text      string    `gorm:"type:text" json:"text"`
	AuthorID  string    `gorm:"size:36;not null;index" json:"-"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
