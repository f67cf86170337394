package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Charnelx/quiz-demo/internal/config"
	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/internal/service"
	"github.com/Charnelx/quiz-demo/internal/session"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/gin-gonic/gin"
)

const answerFieldPrefix = "answer_"

// QuizContent is the read access the quiz-taking handlers need. It is
// implemented by service.ContentService.
type QuizContent interface {
	QuestionByID(id uint) (*model.Question, error)
	ListQuizzes(authenticated bool) ([]service.QuizSummary, error)
}

// QuizController serves the quiz-taking flow. All attempt state lives in two
// cookies: the session cookie (active quiz, answered questions) and the
// signed score cookie. Both are rewritten only after a transition succeeds.
type QuizController struct {
	Attempts *service.AttemptService
	Content  QuizContent
	Session  config.SessionConfig
}

func NewQuizController(attempts *service.AttemptService, content QuizContent, sessionCfg config.SessionConfig) *QuizController {
	return &QuizController{
		Attempts: attempts,
		Content:  content,
		Session:  sessionCfg,
	}
}

func (c *QuizController) readSession(ctx *gin.Context) session.Session {
	value, err := ctx.Cookie(c.Session.CookieName)
	if err != nil {
		return session.Session{}
	}
	return session.Decode(value)
}

func (c *QuizController) writeSession(ctx *gin.Context, sess session.Session) {
	value, err := sess.Encode()
	if err != nil {
		return
	}
	ctx.SetCookie(c.Session.CookieName, value, int(c.Session.MaxAge.Seconds()), "/", "", false, true)
}

func (c *QuizController) readScore(ctx *gin.Context) int {
	value, err := ctx.Cookie(c.Session.ScoreCookieName)
	if err != nil {
		return 0
	}
	return session.ReadScoreToken(value, c.Session.Secret)
}

func (c *QuizController) writeScore(ctx *gin.Context, score int) {
	token, err := session.IssueScoreToken(score, c.Session.Secret, c.Session.MaxAge)
	if err != nil {
		return
	}
	ctx.SetCookie(c.Session.ScoreCookieName, token, int(c.Session.MaxAge.Seconds()), "/", "", false, true)
}

// parseAnswerIDs collects the selected answer ids from repeated form fields
// named answer_<id>.
func parseAnswerIDs(ctx *gin.Context) []uint {
	ids := []uint{}
	if err := ctx.Request.ParseForm(); err != nil {
		return ids
	}
	for key := range ctx.Request.PostForm {
		if !strings.HasPrefix(key, answerFieldPrefix) {
			continue
		}
		raw := strings.TrimPrefix(key, answerFieldPrefix)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func quizStartPath(slug string) string {
	return "/api/quiz/" + slug
}

func questionPath(slug string, questionID uint) string {
	return fmt.Sprintf("/api/quiz/%s/%d", slug, questionID)
}

func (c *QuizController) mapContentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Forbidden(ctx, "Quiz is not published")
	case errors.Is(err, util.ErrAnonymousNotAllowed):
		util.Forbidden(ctx, "Quiz requires authentication")
	case errors.Is(err, util.ErrQuizEmpty):
		util.Forbidden(ctx, "Quiz has no questions")
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListQuizzes returns published quizzes visible to the caller.
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	authenticated := util.GetUserFromContext(ctx) != nil

	quizzes, err := c.Content.ListQuizzes(authenticated)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// StartQuiz opens a new attempt: it resets the session cookie to the quiz
// with no answered questions and the score cookie to a signed zero, and
// points the caller at the first question.
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	slug := ctx.Param("slug")
	authenticated := util.GetUserFromContext(ctx) != nil

	result, err := c.Attempts.StartAttempt(slug, authenticated)
	if err != nil {
		c.mapContentError(ctx, err)
		return
	}

	c.writeSession(ctx, result.Session)
	c.writeScore(ctx, 0)

	util.Success(ctx, gin.H{
		"quiz": gin.H{
			"title":       result.Quiz.Title,
			"slug":        result.Quiz.Slug,
			"description": result.Quiz.Description,
			"total":       len(result.Quiz.Questions),
		},
		"attemptId":     result.Session.AttemptID,
		"firstQuestion": questionPath(result.Quiz.Slug, result.FirstQuestionID),
	})
}

// GetQuestion renders a question with its answer options. Validity flags are
// stripped before the payload leaves the server. Any existing question id is
// servable regardless of the caller's session.
func (c *QuizController) GetQuestion(ctx *gin.Context) {
	idParam := ctx.Param("id")
	if idParam == "" {
		idParam = ctx.Param("questionId")
	}
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.Content.QuestionByID(uint(id))
	if err != nil {
		c.mapContentError(ctx, err)
		return
	}

	util.Success(ctx, service.RenderQuestion(question))
}

// SubmitAnswers runs one state-machine transition: scores the submitted
// answer set, updates the client-held state, and either redirects to the
// next question or renders the final result.
func (c *QuizController) SubmitAnswers(ctx *gin.Context) {
	slug := ctx.Param("slug")
	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	sess := c.readSession(ctx)
	score := c.readScore(ctx)
	answerIDs := parseAnswerIDs(ctx)

	result, err := c.Attempts.SubmitAnswers(sess, score, slug, uint(questionID), answerIDs)
	if err != nil {
		c.mapContentError(ctx, err)
		return
	}

	switch result.Kind {
	case service.OutcomeStaleSession:
		// The submission belongs to a different quiz than the active one;
		// send the caller to that quiz's start page untouched.
		ctx.Redirect(http.StatusFound, quizStartPath(result.RedirectSlug))

	case service.OutcomeNextQuestion:
		c.writeSession(ctx, result.Session)
		c.writeScore(ctx, result.Score)
		ctx.Redirect(http.StatusFound, questionPath(slug, result.NextQuestionID))

	case service.OutcomeCompleted:
		c.writeSession(ctx, result.Session)
		c.writeScore(ctx, result.Score)
		util.Success(ctx, gin.H{
			"quiz": gin.H{
				"title": result.Quiz.Title,
				"slug":  result.Quiz.Slug,
			},
			"finalScore": result.FinalScore,
			"total":      result.Total,
		})
	}
}
