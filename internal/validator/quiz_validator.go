package validator

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-engine/internal/errors"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
)

// Warning is a data-shape problem in delivered content. The engine copes with
// it (the question scores as incorrect) but authors should fix it.
type Warning struct {
	QuestionID string `json:"question_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

const (
	WarnMissingCorrectAnswer = "missing_correct_answer"
	WarnMissingOptions       = "missing_options"
	WarnAnswerOutOfRange     = "answer_out_of_range"
	WarnGapCountMismatch     = "gap_count_mismatch"
	WarnMissingPairs         = "missing_pairs"
	WarnMissingAudio         = "missing_audio"
)

// QuizValidator checks quiz content delivered by the content backend
type QuizValidator struct {
	gaps *quiz.GapCounter
}

func NewQuizValidator(gaps *quiz.GapCounter) *QuizValidator {
	if gaps == nil {
		gaps = quiz.DefaultGapCounter()
	}
	return &QuizValidator{gaps: gaps}
}

// Validate reports structural errors that would make a session ambiguous.
func (v *QuizValidator) Validate(q *models.Quiz) errors.ValidationErrors {
	var errs errors.ValidationErrors

	seen := make(map[string]int, len(q.Questions))
	for i, question := range q.Questions {
		if first, dup := seen[question.ID]; dup {
			errs = append(errs, *errors.NewValidationErrorWithRule(
				fmt.Sprintf("questions[%d].id", i),
				fmt.Sprintf("duplicates questions[%d].id", first),
				"unique", question.ID))
			continue
		}
		seen[question.ID] = i
	}

	return errs
}

// Inspect lists the data-shape warnings of every question.
func (v *QuizValidator) Inspect(q *models.Quiz) []Warning {
	var warnings []Warning
	for _, question := range q.Questions {
		warnings = append(warnings, v.InspectQuestion(question)...)
	}
	return warnings
}

// InspectQuestion lists the data-shape warnings of one question.
func (v *QuizValidator) InspectQuestion(q models.Question) []Warning {
	var warnings []Warning
	warn := func(code, format string, args ...interface{}) {
		warnings = append(warnings, Warning{QuestionID: q.ID, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	switch q.Type {
	case models.SingleChoice, models.MediaQuestion:
		if len(q.Options) == 0 {
			warn(WarnMissingOptions, "choice question has no options")
		}
		idx, ok := q.CorrectAnswer.Index()
		switch {
		case !ok:
			warn(WarnMissingCorrectAnswer, "correct answer is not an option index")
		case idx < 0 || (len(q.Options) > 0 && idx >= len(q.Options)):
			warn(WarnAnswerOutOfRange, "correct answer %d is outside %d options", idx, len(q.Options))
		}

	case models.MultipleChoice:
		if len(q.Options) == 0 {
			warn(WarnMissingOptions, "choice question has no options")
		}
		indices := q.CorrectAnswer.Indices()
		if len(indices) == 0 {
			warn(WarnMissingCorrectAnswer, "no correct option indices")
		}
		for _, idx := range indices {
			if idx < 0 || (len(q.Options) > 0 && idx >= len(q.Options)) {
				warn(WarnAnswerOutOfRange, "correct answer %d is outside %d options", idx, len(q.Options))
			}
		}

	case models.ShortAnswer, models.MediaOpenQuestion:
		if len(q.CorrectAnswer.Alternatives()) == 0 {
			warn(WarnMissingCorrectAnswer, "no accepted answer")
		}

	case models.FillBlank, models.TextCompletion:
		gaps := v.gaps.CountItems(q)
		if q.CorrectAnswer.IsZero() {
			warn(WarnMissingCorrectAnswer, "no gap answers")
		} else if len(q.CorrectAnswer.Values) != gaps {
			warn(WarnGapCountMismatch, "%d gaps but %d answers", gaps, len(q.CorrectAnswer.Values))
		}

	case models.Matching:
		if len(q.MatchingPairs) == 0 {
			warn(WarnMissingPairs, "matching question has no pairs")
		}
	}

	if q.AudioMode == models.AudioStrict && q.AudioURL == nil && q.MediaURL == nil {
		warn(WarnMissingAudio, "strict audio mode without audio")
	}

	return warnings
}
