package repository

import (
	"github.com/Charnelx/quiz-demo/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) ListAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name asc").Find(&categories).Error
	return categories, err
}

// FindBySlug loads a category with its quizzes.
func (r *CategoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var cat model.Category
	err := r.DB.
		Preload("Quizzes").
		Where("slug = ?", slug).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) FindByIDs(ids []uint) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.DB.Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Create(cat *model.Category) error {
	return r.DB.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *model.Category) error {
	return r.DB.Save(cat).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var cat model.Category
		if err := tx.First(&cat, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&cat).Association("Quizzes").Clear(); err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
}
