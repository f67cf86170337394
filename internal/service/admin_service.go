package service

import (
	"errors"

	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/internal/repository"
	"github.com/Charnelx/quiz-demo/internal/util"
	"gorm.io/gorm"
)

// AdminService curates the quiz catalog. Every write drops the affected quiz
// from the content cache.
type AdminService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	Content      *ContentService
}

func NewAdminService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository, content *ContentService) *AdminService {
	return &AdminService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		Content:      content,
	}
}

type AnswerRequest struct {
	Text     string `json:"text" binding:"required"`
	IsValid  bool   `json:"isValid"`
	Position int    `json:"position"`
}

type QuestionRequest struct {
	Text    string          `json:"text" binding:"required"`
	Answers []AnswerRequest `json:"answers" binding:"required"`
}

type QuizRequest struct {
	Title          string            `json:"title" binding:"required,max=256"`
	Description    string            `json:"description"`
	Slug           string            `json:"slug"`
	PreserveOrder  *bool             `json:"preserveOrder"`
	AllowAnonymous bool              `json:"allowAnonymous"`
	IsPublished    bool              `json:"isPublished"`
	CategoryIDs    []uint            `json:"categoryIds"`
	Questions      []QuestionRequest `json:"questions"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=128"`
	Slug string `json:"slug"`
}

// checkAnswers enforces the catalog rule that every question carries at
// least one valid answer.
func checkAnswers(answers []AnswerRequest) error {
	for _, a := range answers {
		if a.IsValid {
			return nil
		}
	}
	return util.ErrNoValidAnswer
}

func buildAnswers(reqs []AnswerRequest) []model.Answer {
	answers := make([]model.Answer, len(reqs))
	for i, a := range reqs {
		answers[i] = model.Answer{
			Text:     a.Text,
			IsValid:  a.IsValid,
			Position: a.Position,
		}
	}
	return answers
}

func (s *AdminService) CreateQuiz(req QuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:          req.Title,
		Description:    req.Description,
		Slug:           req.Slug,
		PreserveOrder:  true,
		AllowAnonymous: req.AllowAnonymous,
		IsPublished:    req.IsPublished,
	}
	if req.PreserveOrder != nil {
		quiz.PreserveOrder = *req.PreserveOrder
	}

	for _, qr := range req.Questions {
		if err := checkAnswers(qr.Answers); err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, model.Question{
			Text:    qr.Text,
			Answers: buildAnswers(qr.Answers),
		})
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	if len(req.CategoryIDs) > 0 {
		categories, err := s.CategoryRepo.FindByIDs(req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.QuizRepo.ReplaceCategories(quiz, categories); err != nil {
			return nil, err
		}
	}

	return quiz, nil
}

func (s *AdminService) UpdateQuiz(id uint, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	if req.Slug != "" {
		quiz.Slug = req.Slug
	}
	if req.PreserveOrder != nil {
		quiz.PreserveOrder = *req.PreserveOrder
	}
	quiz.AllowAnonymous = req.AllowAnonymous
	quiz.IsPublished = req.IsPublished

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		categories, err := s.CategoryRepo.FindByIDs(req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if err := s.QuizRepo.ReplaceCategories(quiz, categories); err != nil {
			return nil, err
		}
	}

	s.Content.InvalidateQuiz(quiz.Slug)
	return quiz, nil
}

func (s *AdminService) DeleteQuiz(id uint) error {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}
	s.Content.InvalidateQuiz(quiz.Slug)
	return nil
}

func (s *AdminService) CreateQuestion(quizID uint, req QuestionRequest) (*model.Question, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if err := checkAnswers(req.Answers); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:  quiz.ID,
		Text:    req.Text,
		Answers: buildAnswers(req.Answers),
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}

	s.Content.InvalidateQuiz(quiz.Slug)
	return question, nil
}

func (s *AdminService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if err := checkAnswers(req.Answers); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.Answers = nil
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.ReplaceAnswers(question.ID, buildAnswers(req.Answers)); err != nil {
		return nil, err
	}

	if question.Quiz != nil {
		s.Content.InvalidateQuiz(question.Quiz.Slug)
	}
	return s.QuestionRepo.FindByID(question.ID)
}

func (s *AdminService) DeleteQuestion(id uint) error {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return err
	}
	if question.Quiz != nil {
		s.Content.InvalidateQuiz(question.Quiz.Slug)
	}
	return nil
}

func (s *AdminService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	cat := &model.Category{Name: req.Name, Slug: req.Slug}
	if err := s.CategoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *AdminService) UpdateCategory(id uint, req CategoryRequest) (*model.Category, error) {
	var cat model.Category
	if err := s.CategoryRepo.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	cat.Name = req.Name
	if req.Slug != "" {
		cat.Slug = req.Slug
	}
	if err := s.CategoryRepo.Update(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *AdminService) DeleteCategory(id uint) error {
	err := s.CategoryRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCategoryNotFound
	}
	return err
}
