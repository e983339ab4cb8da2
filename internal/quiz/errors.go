package quiz

import "errors"

var (
	ErrIncomplete        = errors.New("question is not fully answered")
	ErrInvalidTransition = errors.New("action not allowed in current phase")
	ErrAnswersLocked     = errors.New("answers cannot be changed in current phase")
	ErrUnknownQuestion   = errors.New("question not in quiz")
	ErrWrongAnswerKind   = errors.New("answer kind does not match question type")
	ErrRetakeNotAllowed  = errors.New("quiz cannot be retaken")
	ErrRevealDisabled    = errors.New("answer reveal is disabled")
	ErrGapOutOfRange     = errors.New("gap index out of range")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrNoQuestions       = errors.New("quiz has no questions")
)
