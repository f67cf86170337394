package repository

import (
	"github.com/Charnelx/quiz-demo/internal/model"
	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// FindBySlug loads a quiz with its questions and answers in stored order.
func (r *QuizRepository) FindBySlug(slug string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id asc")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position asc, answers.id asc")
		}).
		Preload("Categories").
		Where("slug = ?", slug).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions").First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListPublished returns published quizzes; when anonymousOnly is set only
// quizzes open to anonymous callers are included.
func (r *QuizRepository) ListPublished(anonymousOnly bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Preload("Categories").Where("is_published = ?", true)
	if anonymousOnly {
		query = query.Where("allow_anonymous = ?", true)
	}
	err := query.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// Delete removes the quiz together with its questions and answers. The
// category cross-references are cleared but the categories themselves stay.
func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quiz model.Quiz
		if err := tx.First(&quiz, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&quiz).Association("Categories").Clear(); err != nil {
			return err
		}
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&quiz).Error
	})
}

// ReplaceCategories rewrites the quiz's category membership.
func (r *QuizRepository) ReplaceCategories(quiz *model.Quiz, categories []*model.Category) error {
	return r.DB.Model(quiz).Association("Categories").Replace(categories)
}
