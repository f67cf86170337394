package model

// Answer is one selectable option of a question. IsValid is never serialized
// to quiz takers; client payloads are built from AnswerOption views instead.
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsValid    bool   `gorm:"default:false" json:"isValid"`
	Position   int    `gorm:"default:0" json:"position"`
}

func (Answer) TableName() string {
	return "answers"
}
