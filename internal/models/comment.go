package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	HootID    string    `gorm:"size:36;not null;index" json:"-"`
	Text      string    `gorm:"type:text" json:"text"`
	AuthorID  string    `gorm:"size:36;not null;index" json:"-"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentForm is the payload submitted by the comment form.
type CommentForm struct {
	Text string `form:"text" json:"text" validate:"required,max=1000"`
}

// Validate checks the form against its field rules.
func (f *CommentForm) Validate() error {
	return validate.Struct(f)
}
