package models

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrBadgeNotFound     = errors.New("badge not found")
	ErrTermNotFound      = errors.New("glossary term not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrFriendNotFound    = errors.New("friendship not found")

	ErrDuplicateChapterNumber = errors.New("a chapter with this number already exists")
	ErrDuplicateAdmin         = errors.New("admin username already taken")

	ErrInvalidXPAmount    = errors.New("xp amount must not be negative")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
	ErrQuizHasNoQuestions = errors.New("quiz has no questions")
	ErrInvalidAttempt     = errors.New("invalid quiz attempt")
	ErrSelfFriendship     = errors.New("cannot befriend yourself")
	ErrInvalidStatus      = errors.New("invalid friendship status")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
