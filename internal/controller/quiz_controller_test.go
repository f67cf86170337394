package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Charnelx/quiz-demo/internal/config"
	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/internal/service"
	"github.com/Charnelx/quiz-demo/internal/session"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/Charnelx/quiz-demo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	m.Run()
}

type fakeContent struct {
	quizzes   map[string]*model.Quiz
	questions map[uint]*model.Question
}

func newFakeContent(quizzes ...*model.Quiz) *fakeContent {
	f := &fakeContent{
		quizzes:   make(map[string]*model.Quiz),
		questions: make(map[uint]*model.Question),
	}
	for _, q := range quizzes {
		f.quizzes[q.Slug] = q
		for i := range q.Questions {
			f.questions[q.Questions[i].ID] = &q.Questions[i]
		}
	}
	return f
}

func (f *fakeContent) QuizBySlug(slug string) (*model.Quiz, error) {
	quiz, ok := f.quizzes[slug]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (f *fakeContent) QuestionByID(id uint) (*model.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	return question, nil
}

func (f *fakeContent) ListQuizzes(authenticated bool) ([]service.QuizSummary, error) {
	var out []service.QuizSummary
	for _, q := range f.quizzes {
		if !q.IsPublished {
			continue
		}
		if !authenticated && !q.AllowAnonymous {
			continue
		}
		out = append(out, service.QuizSummary{ID: q.ID, Title: q.Title, Slug: q.Slug})
	}
	return out, nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName:      "quiz_session",
		ScoreCookieName: "answer_count",
		Secret:          "test-secret",
		MaxAge:          time.Hour,
	}
}

func colorsQuiz() *model.Quiz {
	q1 := model.Question{Text: "Which is a primary color?"}
	q1.ID = 1
	a1 := model.Answer{Text: "Red", IsValid: true}
	a1.ID = 1
	a2 := model.Answer{Text: "Brown"}
	a2.ID = 2
	q1.Answers = []model.Answer{a1, a2}

	q2 := model.Question{Text: "Which are warm colors?"}
	q2.ID = 2
	a3 := model.Answer{Text: "Orange", IsValid: true}
	a3.ID = 3
	a4 := model.Answer{Text: "Yellow", IsValid: true}
	a4.ID = 4
	a5 := model.Answer{Text: "Blue"}
	a5.ID = 5
	q2.Answers = []model.Answer{a3, a4, a5}

	quiz := &model.Quiz{
		Title:          "Colors",
		Slug:           "colors",
		IsPublished:    true,
		AllowAnonymous: true,
		PreserveOrder:  true,
		Questions:      []model.Question{q1, q2},
	}
	quiz.ID = 1
	return quiz
}

func newTestRouter(quizzes ...*model.Quiz) (*gin.Engine, *fakeContent) {
	store := newFakeContent(quizzes...)
	ctrl := NewQuizController(service.NewAttemptService(store), store, testSessionConfig())

	router := gin.New()
	api := router.Group("/api")
	api.GET("/quizzes", ctrl.ListQuizzes)
	api.GET("/question/:id", ctrl.GetQuestion)
	api.GET("/quiz/:slug", ctrl.StartQuiz)
	api.GET("/quiz/:slug/:questionId", ctrl.GetQuestion)
	api.POST("/quiz/:slug/:questionId", ctrl.SubmitAnswers)
	return router, store
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestStartQuiz(t *testing.T) {
	t.Parallel()

	unpublished := colorsQuiz()
	unpublished.Slug = "draft"
	unpublished.IsPublished = false

	membersOnly := colorsQuiz()
	membersOnly.Slug = "members"
	membersOnly.AllowAnonymous = false

	router, _ := newTestRouter(colorsQuiz(), unpublished, membersOnly)

	tests := []struct {
		name       string
		slug       string
		wantStatus int
	}{
		{name: "ok", slug: "colors", wantStatus: http.StatusOK},
		{name: "unknown", slug: "missing", wantStatus: http.StatusNotFound},
		{name: "unpublished", slug: "draft", wantStatus: http.StatusForbidden},
		{name: "anonymous not allowed", slug: "members", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(t, router, http.MethodGet, "/api/quiz/"+tt.slug, nil, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStartQuizInitializesClientState(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(colorsQuiz())
	cfg := testSessionConfig()

	w := doRequest(t, router, http.MethodGet, "/api/quiz/colors", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	sessCookie := cookieByName(t, w, cfg.CookieName)
	require.NotNil(t, sessCookie)
	sess := session.Decode(sessCookie.Value)
	assert.Equal(t, "colors", sess.ActiveQuizSlug)
	assert.Empty(t, sess.AnsweredQuestionIDs)

	scoreCookie := cookieByName(t, w, cfg.ScoreCookieName)
	require.NotNil(t, scoreCookie)
	assert.Equal(t, 0, session.ReadScoreToken(scoreCookie.Value, cfg.Secret))

	var body struct {
		Data struct {
			FirstQuestion string `json:"firstQuestion"`
			Quiz          struct {
				Total int `json:"total"`
			} `json:"quiz"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/api/quiz/colors/1", body.Data.FirstQuestion)
	assert.Equal(t, 2, body.Data.Quiz.Total)
}

func TestGetQuestionWithholdsValidity(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(colorsQuiz())

	w := doRequest(t, router, http.MethodGet, "/api/question/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	raw := w.Body.String()
	assert.Contains(t, raw, "Orange")
	assert.Contains(t, raw, "Blue")
	assert.NotContains(t, raw, "isValid")

	w = doRequest(t, router, http.MethodGet, "/api/question/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Walks the whole colors quiz through the HTTP surface, carrying cookies
// between requests the way a browser would.
func TestQuizFlowEndToEnd(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(colorsQuiz())
	cfg := testSessionConfig()

	start := doRequest(t, router, http.MethodGet, "/api/quiz/colors", nil, nil)
	require.Equal(t, http.StatusOK, start.Code)
	cookies := start.Result().Cookies()

	// Q1: exact valid set {1}.
	form := url.Values{"answer_1": {"on"}}
	first := doRequest(t, router, http.MethodPost, "/api/quiz/colors/1", form, cookies)
	require.Equal(t, http.StatusFound, first.Code)
	assert.Equal(t, "/api/quiz/colors/2", first.Header().Get("Location"))

	scoreCookie := cookieByName(t, first, cfg.ScoreCookieName)
	require.NotNil(t, scoreCookie)
	assert.Equal(t, 1, session.ReadScoreToken(scoreCookie.Value, cfg.Secret))

	// Q2: exact valid set {3,4}.
	form = url.Values{"answer_3": {"on"}, "answer_4": {"on"}}
	second := doRequest(t, router, http.MethodPost, "/api/quiz/colors/2", form, first.Result().Cookies())
	require.Equal(t, http.StatusOK, second.Code)

	var body struct {
		Data struct {
			FinalScore int `json:"finalScore"`
			Total      int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.FinalScore)
	assert.Equal(t, 2, body.Data.Total)
}

func TestSubmitStaleSessionRedirectsToStart(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(colorsQuiz())
	cfg := testSessionConfig()

	other := session.New("other-quiz")
	encoded, err := other.Encode()
	require.NoError(t, err)

	form := url.Values{"answer_1": {"on"}}
	w := doRequest(t, router, http.MethodPost, "/api/quiz/colors/1", form, []*http.Cookie{
		{Name: cfg.CookieName, Value: encoded},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/quiz/colors", w.Header().Get("Location"))
	// No state is rewritten on the stale path.
	assert.Nil(t, cookieByName(t, w, cfg.CookieName))
	assert.Nil(t, cookieByName(t, w, cfg.ScoreCookieName))
}

func TestSubmitWithTamperedScoreStartsFromZero(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(colorsQuiz())
	cfg := testSessionConfig()

	sess := session.New("colors")
	sess.Append(1)
	encoded, err := sess.Encode()
	require.NoError(t, err)

	// A forged ledger: unverifiable value claiming a high score.
	form := url.Values{"answer_3": {"on"}, "answer_4": {"on"}}
	w := doRequest(t, router, http.MethodPost, "/api/quiz/colors/2", form, []*http.Cookie{
		{Name: cfg.CookieName, Value: encoded},
		{Name: cfg.ScoreCookieName, Value: "forged.score.token"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			FinalScore int `json:"finalScore"`
			Total      int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// Only the freshly earned point counts; the forged value reads as 0.
	assert.Equal(t, 1, body.Data.FinalScore)
	assert.Equal(t, 2, body.Data.Total)
}

func TestParseAnswerIDs(t *testing.T) {
	t.Parallel()

	router := gin.New()
	var got []uint
	router.POST("/submit", func(ctx *gin.Context) {
		got = parseAnswerIDs(ctx)
		ctx.Status(http.StatusOK)
	})

	form := url.Values{
		"answer_3":   {"on"},
		"answer_17":  {"on"},
		"answer_bad": {"on"},
		"unrelated":  {"x"},
	}
	w := doRequest(t, router, http.MethodPost, "/submit", form, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.ElementsMatch(t, []uint{3, 17}, got)
}
