package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator *validator.Validate
	quizValidator   *QuizValidator
}

// New creates a new centralized validator instance. gaps decides how gap
// markers are counted when quizzes are inspected; nil uses "[[...]]".
func New(gaps *quiz.GapCounter) *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		quizValidator:   NewQuizValidator(gaps),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidateQuiz validates a quiz payload: struct tags first, then the
// structural rules the engine relies on. Data-shape warnings are returned
// separately and never fail validation.
func (v *Validator) ValidateQuiz(q *models.Quiz) ([]Warning, error) {
	if err := v.Validate(q); err != nil {
		return nil, err
	}
	if errs := v.quizValidator.Validate(q); len(errs) > 0 {
		return nil, errs
	}
	return v.quizValidator.Inspect(q), nil
}

// Quiz returns the quiz validator
func (v *Validator) Quiz() *QuizValidator {
	return v.quizValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("display_mode", validateDisplayMode)
	validate.RegisterValidation("audio_mode", validateAudioMode)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).Valid()
}

func validateDisplayMode(fl validator.FieldLevel) bool {
	switch models.DisplayMode(fl.Field().String()) {
	case models.DisplaySequential, models.DisplayAllAtOnce:
		return true
	}
	return false
}

func validateAudioMode(fl validator.FieldLevel) bool {
	switch models.AudioMode(fl.Field().String()) {
	case models.AudioFlexible, models.AudioStrict:
		return true
	}
	return false
}
