package controller

import (
	"errors"
	"strconv"

	"github.com/Charnelx/quiz-demo/internal/service"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/gin-gonic/gin"
)

// AdminController exposes catalog curation to admins.
type AdminController struct {
	Admin *service.AdminService
}

func NewAdminController(admin *service.AdminService) *AdminController {
	return &AdminController{Admin: admin}
}

func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (c *AdminController) mapAdminError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrCategoryNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNoValidAnswer):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *AdminController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Admin.CreateQuiz(req)
	if err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

func (c *AdminController) UpdateQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Admin.UpdateQuiz(id, req)
	if err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

func (c *AdminController) DeleteQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.Admin.DeleteQuiz(id); err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	quizID, err := strconv.ParseUint(ctx.Param("quizId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Admin.CreateQuestion(uint(quizID), req)
	if err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Admin.UpdateQuestion(id, req)
	if err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.Admin.DeleteQuestion(id); err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AdminController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.Admin.CreateCategory(req)
	if err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Created(ctx, cat)
}

func (c *AdminController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.Admin.UpdateCategory(id, req)
	if err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, cat)
}

func (c *AdminController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.Admin.DeleteCategory(id); err != nil {
		c.mapAdminError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
