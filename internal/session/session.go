// Package session holds the client-held attempt state: a cookie with the
// active quiz and the questions answered so far, plus a signed token carrying
// the cumulative score. The server keeps no per-attempt state of its own.
package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
)

// Session is one quiz attempt as seen by a single client. AnsweredQuestionIDs
// is append-only for the lifetime of the attempt; starting another quiz
// replaces the whole session.
type Session struct {
	AttemptID           string `json:"attemptId"`
	ActiveQuizSlug      string `json:"activeQuizSlug"`
	AnsweredQuestionIDs []uint `json:"answeredQuestionIds"`
}

// New starts a fresh attempt for the given quiz.
func New(quizSlug string) Session {
	return Session{
		AttemptID:           uuid.New().String(),
		ActiveQuizSlug:      quizSlug,
		AnsweredQuestionIDs: []uint{},
	}
}

// Append records a submitted question id. Duplicates are kept on purpose:
// remaining-question math treats the list as a set, so a resubmission cannot
// shorten the attempt, but the raw submission history stays visible.
func (s *Session) Append(questionID uint) {
	s.AnsweredQuestionIDs = append(s.AnsweredQuestionIDs, questionID)
}

// AnsweredSet returns the answered ids as a set.
func (s *Session) AnsweredSet() map[uint]struct{} {
	set := make(map[uint]struct{}, len(s.AnsweredQuestionIDs))
	for _, id := range s.AnsweredQuestionIDs {
		set[id] = struct{}{}
	}
	return set
}

// Encode serializes the session for cookie transport.
func (s Session) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses a cookie value back into a session. Any failure yields an
// empty session: a client with a broken cookie is simply not in an attempt.
func Decode(value string) Session {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Session{}
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}
	}
	return s
}
