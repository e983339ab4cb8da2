package quiz

import (
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCountItems(t *testing.T) {
	tests := []struct {
		name     string
		question models.Question
		expected int
	}{
		{
			name: "text completion with three gaps",
			question: models.Question{
				Type:        models.TextCompletion,
				ContentText: strPtr("A [[one]] and a [[two]] make [[three]]."),
			},
			expected: 3,
		},
		{
			name:     "single choice",
			question: models.Question{Type: models.SingleChoice, QuestionText: "Pick one"},
			expected: 1,
		},
		{
			name:     "image content",
			question: models.Question{Type: models.ImageContent, QuestionText: "[[ignored]]"},
			expected: 0,
		},
		{
			name:     "fill blank without markers",
			question: models.Question{Type: models.FillBlank, QuestionText: "Capital of France?"},
			expected: 1,
		},
		{
			name:     "fill blank with empty text",
			question: models.Question{Type: models.FillBlank},
			expected: 1,
		},
		{
			name: "content text wins over question text",
			question: models.Question{
				Type:         models.FillBlank,
				QuestionText: "Fill in [[a]] [[b]] [[c]]",
				ContentText:  strPtr("Only [[one]] here"),
			},
			expected: 1,
		},
		{
			name:     "gaps in question text when content text absent",
			question: models.Question{Type: models.FillBlank, QuestionText: "[[x]] + [[y]]"},
			expected: 2,
		},
		{
			name:     "matching counts once",
			question: models.Question{Type: models.Matching},
			expected: 1,
		},
		{
			name:     "long text counts once",
			question: models.Question{Type: models.LongText},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountItems(tt.question))
		})
	}
}

func TestDisplayNumber(t *testing.T) {
	questions := []models.Question{
		{ID: "intro", Type: models.ImageContent},
		{ID: "q1", Type: models.SingleChoice},
		{ID: "q2", Type: models.TextCompletion, ContentText: strPtr("[[a]] [[b]] [[c]]")},
		{ID: "picture", Type: models.ImageContent},
		{ID: "q3", Type: models.ShortAnswer},
	}

	t.Run("sums items of earlier questions", func(t *testing.T) {
		assert.Equal(t, 0, DisplayNumber(questions, 0))
		assert.Equal(t, 1, DisplayNumber(questions, 1))
		assert.Equal(t, 2, DisplayNumber(questions, 2))
		assert.Equal(t, 0, DisplayNumber(questions, 3))
		assert.Equal(t, 5, DisplayNumber(questions, 4))
	})

	t.Run("strictly increasing over numbered questions", func(t *testing.T) {
		last := 0
		for i := range questions {
			n := DisplayNumber(questions, i)
			if n == 0 {
				continue
			}
			assert.Greater(t, n, last, "question %d", i)
			last = n
		}
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Equal(t, 0, DisplayNumber(questions, -1))
		assert.Equal(t, 0, DisplayNumber(questions, len(questions)))
	})

	t.Run("labels", func(t *testing.T) {
		g := DefaultGapCounter()
		assert.Equal(t, "", g.DisplayLabel(questions, 0))
		assert.Equal(t, "Question 1", g.DisplayLabel(questions, 1))
		assert.Equal(t, "Questions 2–4", g.DisplayLabel(questions, 2))
		assert.Equal(t, "Question 5", g.DisplayLabel(questions, 4))
	})
}

func TestGapCounter_CustomDelimiters(t *testing.T) {
	g := NewGapCounter("{{", "}}")
	q := models.Question{Type: models.FillBlank, QuestionText: "{{a}} and {{b}} but not [[c]]"}

	assert.Equal(t, 2, g.CountItems(q))

	open, close := NewGapCounter("", "").Delimiters()
	assert.Equal(t, DefaultGapOpen, open)
	assert.Equal(t, DefaultGapClose, close)
}

func TestGapCounter_Segments(t *testing.T) {
	segments := DefaultGapCounter().Segments("The [[cat]] chased the [[dog]].")

	expected := []Segment{
		{Text: "The "},
		{IsGap: true, Gap: 0, Hint: "cat"},
		{Text: " chased the "},
		{IsGap: true, Gap: 1, Hint: "dog"},
		{Text: "."},
	}
	assert.Equal(t, expected, segments)
}
