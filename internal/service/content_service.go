package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/internal/repository"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const quizCacheKeyPrefix = "quiz:slug:"

// ContentService is the read side of the quiz catalog. Quiz trees are cached
// in redis by slug; admin writes invalidate the cached entry.
type ContentService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	Redis        *redis.Client
	CacheTTL     time.Duration
}

func NewContentService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository, rdb *redis.Client, cacheTTL time.Duration) *ContentService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ContentService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
	}
}

// QuizBySlug returns the full quiz tree, from cache when possible.
func (s *ContentService) QuizBySlug(slug string) (*model.Quiz, error) {
	key := quizCacheKeyPrefix + slug
	ctx := context.Background()

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var quiz model.Quiz
			if err := json.Unmarshal([]byte(val), &quiz); err == nil {
				return &quiz, nil
			}
		}
	}

	quiz, err := s.QuizRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(quiz); err == nil {
			s.Redis.Set(ctx, key, raw, s.CacheTTL)
		}
	}

	return quiz, nil
}

func (s *ContentService) QuestionByID(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// InvalidateQuiz drops the cached tree for a slug after an admin write.
func (s *ContentService) InvalidateQuiz(slug string) {
	if s.Redis == nil || slug == "" {
		return
	}
	s.Redis.Del(context.Background(), quizCacheKeyPrefix+slug)
}

// QuizSummary is the list-page projection of a quiz.
type QuizSummary struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// ListQuizzes returns published quizzes; anonymous callers only see quizzes
// that allow anonymous access.
func (s *ContentService) ListQuizzes(authenticated bool) ([]QuizSummary, error) {
	quizzes, err := s.QuizRepo.ListPublished(!authenticated)
	if err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, len(quizzes))
	for i, q := range quizzes {
		names := make([]string, len(q.Categories))
		for j, c := range q.Categories {
			names[j] = c.Name
		}
		summaries[i] = QuizSummary{
			ID:          q.ID,
			Title:       q.Title,
			Slug:        q.Slug,
			Description: q.Description,
			Categories:  names,
		}
	}
	return summaries, nil
}

func (s *ContentService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.ListAll()
}

// CategoryDetail is a category with its visible quizzes.
type CategoryDetail struct {
	ID      uint          `json:"id"`
	Name    string        `json:"name"`
	Slug    string        `json:"slug"`
	Quizzes []QuizSummary `json:"quizzes"`
}

// CategoryBySlug applies the same visibility filter as ListQuizzes to the
// category's quizzes.
func (s *ContentService) CategoryBySlug(slug string, authenticated bool) (*CategoryDetail, error) {
	cat, err := s.CategoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	detail := &CategoryDetail{
		ID:      cat.ID,
		Name:    cat.Name,
		Slug:    cat.Slug,
		Quizzes: []QuizSummary{},
	}
	for _, q := range cat.Quizzes {
		if !q.IsPublished {
			continue
		}
		if !authenticated && !q.AllowAnonymous {
			continue
		}
		detail.Quizzes = append(detail.Quizzes, QuizSummary{
			ID:          q.ID,
			Title:       q.Title,
			Slug:        q.Slug,
			Description: q.Description,
		})
	}
	return detail, nil
}

// AnswerOption is the client-safe projection of an answer. The validity flag
// never leaves the server.
type AnswerOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionView is the client-safe projection of a question.
type QuestionView struct {
	ID      uint           `json:"id"`
	QuizID  uint           `json:"quizId"`
	Text    string         `json:"text"`
	Answers []AnswerOption `json:"answers"`
}

// RenderQuestion strips validity flags and, when the owning quiz does not
// preserve order, shuffles the answer options.
func RenderQuestion(q *model.Question) QuestionView {
	view := QuestionView{
		ID:      q.ID,
		QuizID:  q.QuizID,
		Text:    q.Text,
		Answers: make([]AnswerOption, len(q.Answers)),
	}
	for i, a := range q.Answers {
		view.Answers[i] = AnswerOption{ID: a.ID, Text: a.Text}
	}
	if q.Quiz != nil && !q.Quiz.PreserveOrder {
		rand.Shuffle(len(view.Answers), func(i, j int) {
			view.Answers[i], view.Answers[j] = view.Answers[j], view.Answers[i]
		})
	}
	return view
}
