package quiz

import (
	"math"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// PassThreshold is the minimum percentage that passes a quiz.
const PassThreshold = 50

// Stats aggregates item counts over a whole quiz.
type Stats struct {
	TotalItems       int `json:"total_items"`
	CorrectItems     int `json:"correct_items"`
	RegularQuestions int `json:"regular_questions"`
	CorrectRegular   int `json:"correct_regular"`
	TotalGaps        int `json:"total_gaps"`
	CorrectGaps      int `json:"correct_gaps"`
	ManualItems      int `json:"manual_items"`
}

// Percentage is round(100 * correct / total), 0 for an empty quiz.
func (s Stats) Percentage() int {
	return Percentage(s.CorrectItems, s.TotalItems)
}

// Passed applies the pass threshold to the percentage.
func (s Stats) Passed() bool {
	return Passed(s.Percentage())
}

// Evaluate scores every question. Long text questions count toward the totals
// but never toward the correct counts; content-only questions are skipped.
func (g *GapCounter) Evaluate(questions []models.Question, store AnswerStore) Stats {
	var stats Stats
	for _, q := range questions {
		if q.Type.IsContentOnly() {
			continue
		}
		res := g.EvaluateQuestion(q, store)
		if q.Type.IsGapped() {
			stats.TotalGaps += res.Items
			stats.CorrectGaps += res.CorrectItems
			continue
		}
		stats.RegularQuestions++
		if res.Pending {
			stats.ManualItems++
			continue
		}
		if res.Correct {
			stats.CorrectRegular++
		}
	}
	stats.TotalItems = stats.TotalGaps + stats.RegularQuestions
	stats.CorrectItems = stats.CorrectGaps + stats.CorrectRegular
	return stats
}

// Evaluate scores with the default gap markers.
func Evaluate(questions []models.Question, store AnswerStore) Stats {
	return defaultGaps.Evaluate(questions, store)
}

// Percentage rounds half up; a zero total yields 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func Passed(percentage int) bool {
	return percentage >= PassThreshold
}

// Trend summarises attempt history for the completed screen.
type Trend struct {
	Scores      []int               `json:"scores"`
	Latest      *models.QuizAttempt `json:"latest,omitempty"`
	Delta       *int                `json:"delta,omitempty"`
	LatestGrade *models.QuizAttempt `json:"latest_grade,omitempty"`
}

// BuildTrend expects attempts ordered oldest first. Delta is the change of the
// latest percentage against the attempt before it.
func BuildTrend(attempts []*models.QuizAttempt) Trend {
	trend := Trend{Scores: make([]int, 0, len(attempts))}
	for _, a := range attempts {
		if a == nil {
			continue
		}
		trend.Scores = append(trend.Scores, a.Percentage)
		trend.Latest = a
		if a.IsGraded {
			trend.LatestGrade = a
		}
	}
	if n := len(trend.Scores); n >= 2 {
		delta := trend.Scores[n-1] - trend.Scores[n-2]
		trend.Delta = &delta
	}
	return trend
}
