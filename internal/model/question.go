package model

// Question belongs to exactly one quiz and is deleted with it.
type Question struct {
	BaseModel
	QuizID uint     `gorm:"index;not null" json:"quizId"`
	Quiz   *Quiz    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text   string   `gorm:"type:text;not null" json:"text"`
	Answers []Answer `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// ValidAnswerIDs returns the ids of the answers marked correct.
func (q *Question) ValidAnswerIDs() map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, a := range q.Answers {
		if a.IsValid {
			ids[a.ID] = struct{}{}
		}
	}
	return ids
}
