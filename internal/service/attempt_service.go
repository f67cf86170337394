package service

import (
	"github.com/Charnelx/quiz-demo/internal/model"
	"github.com/Charnelx/quiz-demo/internal/session"
	"github.com/Charnelx/quiz-demo/internal/util"
	"github.com/Charnelx/quiz-demo/pkg/monitoring"
)

// ContentStore is the read access the attempt state machine needs. It is
// implemented by ContentService; tests supply an in-memory fake.
type ContentStore interface {
	QuizBySlug(slug string) (*model.Quiz, error)
	QuestionByID(id uint) (*model.Question, error)
}

// AttemptService drives a quiz attempt: it decides, per submission, whether
// the answer set was correct, whether questions remain, and what the client
// should see next. It holds no state between calls; the session and score
// travel with the client.
type AttemptService struct {
	Store ContentStore
}

func NewAttemptService(store ContentStore) *AttemptService {
	return &AttemptService{Store: store}
}

// StartResult describes a freshly started attempt.
type StartResult struct {
	Quiz            *model.Quiz
	FirstQuestionID uint
	Session         session.Session
}

// StartAttempt validates access to the quiz and opens a new attempt. Any new
// attempt replaces the previous session and resets the score to zero.
func (s *AttemptService) StartAttempt(slug string, authenticated bool) (*StartResult, error) {
	quiz, err := s.Store.QuizBySlug(slug)
	if err != nil {
		return nil, err
	}

	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}
	if !authenticated && !quiz.AllowAnonymous {
		return nil, util.ErrAnonymousNotAllowed
	}
	if len(quiz.Questions) == 0 {
		return nil, util.ErrQuizEmpty
	}

	monitoring.AttemptsStarted.WithLabelValues(quiz.Slug).Inc()

	return &StartResult{
		Quiz:            quiz,
		FirstQuestionID: quiz.Questions[0].ID,
		Session:         session.New(slug),
	}, nil
}

// OutcomeKind tags the decision a submission produced.
type OutcomeKind int

const (
	// OutcomeStaleSession means the submission targeted a quiz other than the
	// session's active one; the caller is sent to that quiz's start page and
	// nothing is mutated.
	OutcomeStaleSession OutcomeKind = iota
	// OutcomeNextQuestion means questions remain; redirect to the next one.
	OutcomeNextQuestion
	// OutcomeCompleted means the attempt is finished; render the result.
	OutcomeCompleted
)

// SubmitResult carries the transition decision plus the updated client state.
// Session and Score are only meaningful for OutcomeNextQuestion and
// OutcomeCompleted.
type SubmitResult struct {
	Kind           OutcomeKind
	RedirectSlug   string
	NextQuestionID uint
	Session        session.Session
	Score          int
	Correct        bool
	FinalScore     int
	Total          int
	Quiz           *model.Quiz
}

// SubmitAnswers runs one transition of the attempt state machine.
//
// The submission is correct iff the submitted id set equals the question's
// valid-answer id set exactly; supersets, subsets and disjoint sets all score
// zero. The submitted question id is appended to the session even when it was
// answered before; remaining-question math uses set semantics, so a
// resubmission never changes the attempt's total.
func (s *AttemptService) SubmitAnswers(sess session.Session, score int, slug string, questionID uint, answerIDs []uint) (*SubmitResult, error) {
	if sess.ActiveQuizSlug != slug {
		return &SubmitResult{
			Kind:         OutcomeStaleSession,
			RedirectSlug: slug,
		}, nil
	}

	question, err := s.Store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	points := 0
	correct := answeredCorrectly(question, answerIDs)
	if correct {
		points = 1
		monitoring.AnswersScored.WithLabelValues("correct").Inc()
	} else {
		monitoring.AnswersScored.WithLabelValues("incorrect").Inc()
	}

	quiz, err := s.Store.QuizBySlug(slug)
	if err != nil {
		return nil, err
	}

	sess.Append(questionID)
	newScore := score + points

	remaining := remainingQuestions(quiz, sess.AnsweredSet())
	if len(remaining) == 0 {
		monitoring.AttemptsCompleted.WithLabelValues(quiz.Slug).Inc()
		return &SubmitResult{
			Kind:       OutcomeCompleted,
			Session:    sess,
			Score:      newScore,
			Correct:    correct,
			FinalScore: newScore,
			Total:      len(quiz.Questions),
			Quiz:       quiz,
		}, nil
	}

	return &SubmitResult{
		Kind:           OutcomeNextQuestion,
		NextQuestionID: remaining[0].ID,
		Session:        sess,
		Score:          newScore,
		Correct:        correct,
	}, nil
}

// answeredCorrectly checks the exact-set rule: every valid answer selected,
// nothing else selected. Partial credit is not supported.
func answeredCorrectly(question *model.Question, answerIDs []uint) bool {
	valid := question.ValidAnswerIDs()
	if len(answerIDs) != len(dedupe(answerIDs)) {
		answerIDs = dedupe(answerIDs)
	}
	if len(answerIDs) != len(valid) {
		return false
	}
	for _, id := range answerIDs {
		if _, ok := valid[id]; !ok {
			return false
		}
	}
	return true
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// remainingQuestions returns the quiz's questions, in quiz order, that are
// not in the answered set.
func remainingQuestions(quiz *model.Quiz, answered map[uint]struct{}) []model.Question {
	var remaining []model.Question
	for _, q := range quiz.Questions {
		if _, ok := answered[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	return remaining
}
