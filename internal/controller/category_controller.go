package controller

import (
	"errors"

	"github.com/Charnelx/quiz-demo/internal/service"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Content *service.ContentService
}

func NewCategoryController(content *service.ContentService) *CategoryController {
	return &CategoryController{Content: content}
}

func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.Content.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// GetCategory returns a category with the quizzes the caller may see.
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	slug := ctx.Param("slug")
	authenticated := util.GetUserFromContext(ctx) != nil

	detail, err := c.Content.CategoryBySlug(slug, authenticated)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
