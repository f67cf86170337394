package model

import (
	"gorm.io/gorm"

	"github.com/Charnelx/quiz-demo/internal/util"
)

// Category groups quizzes; the relation is non-owning on both sides.
type Category struct {
	BaseModel
	Name    string  `gorm:"size:128;uniqueIndex;not null;default:'Misc'" json:"name"`
	Slug    string  `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Quizzes []*Quiz `gorm:"many2many:category_quizzes;" json:"quizzes,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = util.Slugify(c.Name)
	}
	return nil
}
