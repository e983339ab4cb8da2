package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("question_id", "is required", "")

	assert.Equal(t, "question_id", err.Field)
	assert.Equal(t, "is required", err.Message)
	assert.Equal(t, "", err.Value)
	assert.Equal(t, "validation error on field 'question_id': is required", err.Error())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("field1", "message1", nil))
	assert.Equal(t, "validation failed: field1 message1", errs.Error())

	errs = append(errs, *NewValidationError("field2", "message2", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("max_plays", "must be at most 10", "max", 11)

	assert.Equal(t, "max", err.Rule)
	assert.Equal(t, "max_plays", err.Field)
	assert.Equal(t, 11, err.Value)
}

type reportRequest struct {
	Message string `validate:"required"`
	Inner   struct {
		Plays int `validate:"max=3"`
	}
}

func TestToValidationErrors(t *testing.T) {
	req := reportRequest{}
	req.Inner.Plays = 5

	err := validator.New().Struct(req)
	require.Error(t, err)

	errs := ToValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Message", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
	assert.Equal(t, "Inner.Plays", errs[1].Field)
	assert.Equal(t, "must be at most 3", errs[1].Message)
	assert.Equal(t, "max", errs[1].Rule)

	assert.Nil(t, ToValidationErrors(assert.AnError))
}
