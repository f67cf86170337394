package util

import "errors"

var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrQuizNotPublished    = errors.New("quiz not published")
	ErrAnonymousNotAllowed = errors.New("anonymous access not allowed")
	ErrQuizEmpty           = errors.New("quiz has no questions")
	ErrNoValidAnswer       = errors.New("question must have at least one valid answer")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
