package service

import (
	"testing"

	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/internal/session"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	quizzes   map[string]*model.Quiz
	questions map[uint]*model.Question
}

func newFakeStore(quizzes ...*model.Quiz) *fakeStore {
	f := &fakeStore{
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

func (f *fakeStore) QuizBySlug(slug string) (*model.Quiz, error) {
	quiz, ok := f.quizzes[slug]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (f *fakeStore) QuestionByID(id uint) (*model.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	return question, nil
}

func answer(id uint, valid bool) model.Answer {
	a := model.Answer{Text: "option", IsValid: valid}
	a.ID = id
	return a
}

func question(id uint, answers ...model.Answer) model.Question {
	q := model.Question{Text: "question", Answers: answers}
	q.ID = id
	return q
}

// colorsQuiz is the two-question fixture: Q1 answers {1,2} with valid {1},
// Q2 answers {3,4,5} with valid {3,4}.
func colorsQuiz() *model.Quiz {
	quiz := &model.Quiz{
		Title:          "Colors",
		Slug:           "colors",
		IsPublished:    true,
		AllowAnonymous: true,
		Questions: []model.Question{
			question(1, answer(1, true), answer(2, false)),
			question(2, answer(3, true), answer(4, true), answer(5, false)),
		},
	}
	quiz.ID = 1
	return quiz
}

func TestStartAttempt(t *testing.T) {
	t.Parallel()

	published := colorsQuiz()

	unpublished := colorsQuiz()
	unpublished.Slug = "draft"
	unpublished.IsPublished = false

	membersOnly := colorsQuiz()
	membersOnly.Slug = "members"
	membersOnly.AllowAnonymous = false

	empty := &model.Quiz{Slug: "empty", IsPublished: true, AllowAnonymous: true}

	svc := NewAttemptService(newFakeStore(published, unpublished, membersOnly, empty))

	tests := []struct {
		name          string
		slug          string
		authenticated bool
		wantErr       error
	}{
		{name: "anonymous allowed", slug: "colors", authenticated: false},
		{name: "authenticated", slug: "colors", authenticated: true},
		{name: "unknown quiz", slug: "missing", wantErr: util.ErrQuizNotFound},
		{name: "unpublished rejected even when authenticated", slug: "draft", authenticated: true, wantErr: util.ErrQuizNotPublished},
		{name: "anonymous rejected", slug: "members", authenticated: false, wantErr: util.ErrAnonymousNotAllowed},
		{name: "members quiz open to authenticated", slug: "members", authenticated: true},
		{name: "zero questions", slug: "empty", authenticated: true, wantErr: util.ErrQuizEmpty},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := svc.StartAttempt(tt.slug, tt.authenticated)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.slug, result.Session.ActiveQuizSlug)
			assert.Empty(t, result.Session.AnsweredQuestionIDs)
			assert.NotEmpty(t, result.Session.AttemptID)
			assert.Equal(t, result.Quiz.Questions[0].ID, result.FirstQuestionID)
		})
	}
}

func TestSubmitAnswers_ExactSetScoring(t *testing.T) {
	t.Parallel()

	svc := NewAttemptService(newFakeStore(colorsQuiz()))

	// Q2 valid set is {3,4}.
	tests := []struct {
		name        string
		answerIDs   []uint
		wantCorrect bool
	}{
		{name: "exact match", answerIDs: []uint{3, 4}, wantCorrect: true},
		{name: "order does not matter", answerIDs: []uint{4, 3}, wantCorrect: true},
		{name: "duplicates collapse", answerIDs: []uint{3, 4, 4}, wantCorrect: true},
		{name: "subset", answerIDs: []uint{3}, wantCorrect: false},
		{name: "superset", answerIDs: []uint{3, 4, 5}, wantCorrect: false},
		{name: "disjoint", answerIDs: []uint{5}, wantCorrect: false},
		{name: "foreign id", answerIDs: []uint{3, 4, 99}, wantCorrect: false},
		{name: "empty", answerIDs: nil, wantCorrect: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sess := session.New("colors")
			result, err := svc.SubmitAnswers(sess, 0, "colors", 2, tt.answerIDs)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCorrect, result.Correct)
			wantScore := 0
			if tt.wantCorrect {
				wantScore = 1
			}
			assert.Equal(t, wantScore, result.Score)
		})
	}
}

func TestSubmitAnswers_StaleSessionRedirect(t *testing.T) {
	t.Parallel()

	svc := NewAttemptService(newFakeStore(colorsQuiz()))

	sess := session.New("a")
	result, err := svc.SubmitAnswers(sess, 1, "b", 1, []uint{1})
	require.NoError(t, err)

	assert.Equal(t, OutcomeStaleSession, result.Kind)
	assert.Equal(t, "b", result.RedirectSlug)
	// Nothing was mutated: the caller's own session is untouched.
	assert.Empty(t, sess.AnsweredQuestionIDs)
	assert.Zero(t, result.Score)
}

func TestSubmitAnswers_FullTraversal(t *testing.T) {
	t.Parallel()

	quiz := &model.Quiz{
		Slug:           "long",
		IsPublished:    true,
		AllowAnonymous: true,
		Questions: []model.Question{
			question(10, answer(100, true)),
			question(11, answer(110, true)),
			question(12, answer(120, true)),
			question(13, answer(130, false), answer(131, true)),
		},
	}
	svc := NewAttemptService(newFakeStore(quiz))

	start, err := svc.StartAttempt("long", false)
	require.NoError(t, err)

	sess := start.Session
	score := 0
	questionID := start.FirstQuestionID
	transitions := 0

	valid := map[uint][]uint{10: {100}, 11: {110}, 12: {120}, 13: {131}}

	for {
		result, err := svc.SubmitAnswers(sess, score, "long", questionID, valid[questionID])
		require.NoError(t, err)
		transitions++

		sess = result.Session
		score = result.Score

		if result.Kind == OutcomeCompleted {
			assert.Equal(t, 4, result.Total)
			assert.Equal(t, 4, result.FinalScore)
			break
		}
		require.Equal(t, OutcomeNextQuestion, result.Kind)
		questionID = result.NextQuestionID
	}

	// Exactly one transition per question, terminating in one result.
	assert.Equal(t, 4, transitions)
	assert.Len(t, sess.AnsweredQuestionIDs, 4)
}

// Resubmitting an answered question appends to the raw history without
// re-counting it against the quiz total. This pins the current append-only
// behavior rather than endorsing it.
func TestSubmitAnswers_ResubmissionKeepsSetSemantics(t *testing.T) {
	t.Parallel()

	svc := NewAttemptService(newFakeStore(colorsQuiz()))

	sess := session.New("colors")

	first, err := svc.SubmitAnswers(sess, 0, "colors", 1, []uint{1})
	require.NoError(t, err)
	require.Equal(t, OutcomeNextQuestion, first.Kind)
	assert.Equal(t, uint(2), first.NextQuestionID)
	assert.Equal(t, 1, first.Score)

	// Same question again, wrong answer this time.
	second, err := svc.SubmitAnswers(first.Session, first.Score, "colors", 1, []uint{2})
	require.NoError(t, err)

	// Still directed at Q2: the duplicate does not shrink the remainder.
	require.Equal(t, OutcomeNextQuestion, second.Kind)
	assert.Equal(t, uint(2), second.NextQuestionID)
	assert.Equal(t, []uint{1, 1}, second.Session.AnsweredQuestionIDs)
	assert.Equal(t, 1, second.Score)

	final, err := svc.SubmitAnswers(second.Session, second.Score, "colors", 2, []uint{3, 4})
	require.NoError(t, err)
	require.Equal(t, OutcomeCompleted, final.Kind)
	assert.Equal(t, 2, final.FinalScore)
	assert.Equal(t, 2, final.Total)
}

func TestSubmitAnswers_UnknownQuestion(t *testing.T) {
	t.Parallel()

	svc := NewAttemptService(newFakeStore(colorsQuiz()))

	sess := session.New("colors")
	_, err := svc.SubmitAnswers(sess, 0, "colors", 999, []uint{1})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

// The end-to-end scenario: start, answer both questions correctly, finish
// with 2 of 2.
func TestSubmitAnswers_ColorsScenario(t *testing.T) {
	t.Parallel()

	svc := NewAttemptService(newFakeStore(colorsQuiz()))

	start, err := svc.StartAttempt("colors", false)
	require.NoError(t, err)
	require.Equal(t, uint(1), start.FirstQuestionID)

	q1, err := svc.SubmitAnswers(start.Session, 0, "colors", 1, []uint{1})
	require.NoError(t, err)
	require.Equal(t, OutcomeNextQuestion, q1.Kind)
	assert.Equal(t, uint(2), q1.NextQuestionID)
	assert.Equal(t, 1, q1.Score)

	q2, err := svc.SubmitAnswers(q1.Session, q1.Score, "colors", 2, []uint{3, 4})
	require.NoError(t, err)
	require.Equal(t, OutcomeCompleted, q2.Kind)
	assert.Equal(t, 2, q2.FinalScore)
	assert.Equal(t, 2, q2.Total)
}
