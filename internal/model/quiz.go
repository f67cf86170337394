package model

import (
	"gorm.io/gorm"

	"github.com/Charnelx/quiz-demo/internal/util"
)

// Quiz is a published collection of questions. A quiz can only be attempted
// when IsPublished is set, and by anonymous callers only when AllowAnonymous
// is set. When PreserveOrder is false the answer options of each question are
// shuffled at render time.
type Quiz struct {
	BaseModel
	Title          string      `gorm:"size:256;uniqueIndex;not null" json:"title"`
	Description    string      `gorm:"type:text" json:"description"`
	Slug           string      `gorm:"size:256;uniqueIndex;not null" json:"slug"`
	PreserveOrder  bool        `gorm:"default:true" json:"preserveOrder"`
	AllowAnonymous bool        `gorm:"default:false" json:"allowAnonymous"`
	IsPublished    bool        `gorm:"default:false" json:"isPublished"`
	Questions      []Question  `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Categories     []*Category `gorm:"many2many:category_quizzes;" json:"categories,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.Slug == "" {
		q.Slug = util.Slugify(q.Title)
	}
	return nil
}
