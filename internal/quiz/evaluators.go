package quiz

import (
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// QuestionResult is the evaluation of one question against the answer store.
type QuestionResult struct {
	QuestionID   string       `json:"question_id"`
	Items        int          `json:"items"`
	CorrectItems int          `json:"correct_items"`
	Correct      bool         `json:"correct"`
	Pending      bool         `json:"pending"`
	Gaps         []bool       `json:"gaps,omitempty"`
	Matches      map[int]bool `json:"matches,omitempty"`
}

// EvaluateQuestion scores q. It never fails: a missing or malformed answer key
// scores as incorrect.
func (g *GapCounter) EvaluateQuestion(q models.Question, store AnswerStore) QuestionResult {
	res := QuestionResult{QuestionID: q.ID, Items: g.CountItems(q)}

	switch q.Type {
	case models.ImageContent:
		return res

	case models.LongText:
		res.Pending = true
		return res

	case models.FillBlank, models.TextCompletion:
		res.Gaps = evaluateGaps(q, store.GapAnswers(q.ID), res.Items)
		for _, ok := range res.Gaps {
			if ok {
				res.CorrectItems++
			}
		}
		res.Correct = res.CorrectItems == res.Items
		return res

	case models.Matching:
		answer, _ := store.Answer(q.ID)
		res.Matches = evaluateMatching(q, answer)
		res.Correct = len(res.Matches) > 0
		for _, ok := range res.Matches {
			if !ok {
				res.Correct = false
			}
		}

	case models.SingleChoice, models.MediaQuestion:
		answer, _ := store.Answer(q.ID)
		res.Correct = isChoiceCorrect(q, answer)

	case models.MultipleChoice:
		answer, _ := store.Answer(q.ID)
		res.Correct = isSelectionCorrect(q, answer)

	case models.ShortAnswer, models.MediaOpenQuestion:
		answer, _ := store.Answer(q.ID)
		res.Correct = isTextCorrect(q, answer)
	}

	if res.Correct {
		res.CorrectItems = 1
	}
	return res
}

// IsCorrect reports whether a single stored answer is fully correct.
func IsCorrect(q models.Question, answer models.AnswerValue) bool {
	switch q.Type {
	case models.SingleChoice, models.MediaQuestion:
		return isChoiceCorrect(q, answer)
	case models.MultipleChoice:
		return isSelectionCorrect(q, answer)
	case models.ShortAnswer, models.MediaOpenQuestion:
		return isTextCorrect(q, answer)
	case models.Matching:
		matches := evaluateMatching(q, answer)
		if len(matches) == 0 {
			return false
		}
		for _, ok := range matches {
			if !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsGapCorrect compares one gap answer with the aligned answer key value.
func IsGapCorrect(q models.Question, gap int, answer string) bool {
	expected, ok := q.CorrectAnswer.At(gap)
	if !ok {
		return false
	}
	return normalizeText(answer) == normalizeText(expected)
}

// IsComplete reports whether q has been answered far enough to be checked.
func (g *GapCounter) IsComplete(q models.Question, store AnswerStore) bool {
	switch q.Type {
	case models.ImageContent:
		return true

	case models.FillBlank, models.TextCompletion:
		answers := store.GapAnswers(q.ID)
		gaps := g.CountItems(q)
		if len(answers) < gaps {
			return false
		}
		for i := 0; i < gaps; i++ {
			if strings.TrimSpace(answers[i]) == "" {
				return false
			}
		}
		return true

	case models.ShortAnswer, models.LongText, models.MediaOpenQuestion:
		answer, ok := store.Answer(q.ID)
		if !ok {
			return false
		}
		text, ok := answer.(models.TextAnswer)
		return ok && strings.TrimSpace(string(text)) != ""

	default:
		_, ok := store.Answer(q.ID)
		return ok
	}
}

// AcceptsAnswer reports whether v is the right variant for q.
func AcceptsAnswer(q models.Question, v models.AnswerValue) bool {
	switch q.Type {
	case models.SingleChoice, models.MediaQuestion:
		_, ok := v.(models.ChoiceAnswer)
		return ok
	case models.MultipleChoice:
		_, ok := v.(models.SelectionAnswer)
		return ok
	case models.ShortAnswer, models.LongText, models.MediaOpenQuestion:
		_, ok := v.(models.TextAnswer)
		return ok
	case models.Matching:
		_, ok := v.(models.MatchingAnswer)
		return ok
	default:
		return false
	}
}

// CorrectAnswer returns the answer that scores q in full. Gapped questions
// return their gap list; long text and content-only questions have none.
func (g *GapCounter) CorrectAnswer(q models.Question) (models.AnswerValue, []string, bool) {
	switch q.Type {
	case models.SingleChoice, models.MediaQuestion:
		idx, ok := q.CorrectAnswer.Index()
		if !ok {
			return nil, nil, false
		}
		return models.ChoiceAnswer(idx), nil, true

	case models.MultipleChoice:
		indices := q.CorrectAnswer.Indices()
		if len(indices) == 0 {
			return nil, nil, false
		}
		return models.SelectionAnswer(indices), nil, true

	case models.ShortAnswer, models.MediaOpenQuestion:
		alts := q.CorrectAnswer.Alternatives()
		if len(alts) == 0 {
			return nil, nil, false
		}
		return models.TextAnswer(strings.TrimSpace(alts[0])), nil, true

	case models.FillBlank, models.TextCompletion:
		gaps := make([]string, g.CountItems(q))
		for i := range gaps {
			v, ok := q.CorrectAnswer.At(i)
			if !ok {
				return nil, nil, false
			}
			gaps[i] = strings.TrimSpace(v)
		}
		return nil, gaps, true

	case models.Matching:
		if len(q.MatchingPairs) == 0 {
			return nil, nil, false
		}
		matches := make(models.MatchingAnswer, len(q.MatchingPairs))
		for i := range q.MatchingPairs {
			matches[i] = i
		}
		return matches, nil, true

	default:
		return nil, nil, false
	}
}

func isChoiceCorrect(q models.Question, answer models.AnswerValue) bool {
	choice, ok := answer.(models.ChoiceAnswer)
	if !ok {
		return false
	}
	want, ok := q.CorrectAnswer.Index()
	return ok && int(choice) == want
}

func isSelectionCorrect(q models.Question, answer models.AnswerValue) bool {
	selection, ok := answer.(models.SelectionAnswer)
	if !ok {
		return false
	}
	want := toSet(q.CorrectAnswer.Indices())
	if len(want) == 0 {
		return false
	}
	return setEqual(want, toSet(selection))
}

func isTextCorrect(q models.Question, answer models.AnswerValue) bool {
	text, ok := answer.(models.TextAnswer)
	if !ok {
		return false
	}
	given := normalizeText(string(text))
	if given == "" {
		return false
	}
	for _, alt := range q.CorrectAnswer.Alternatives() {
		if given == normalizeText(alt) {
			return true
		}
	}
	return false
}

func evaluateGaps(q models.Question, answers []string, gaps int) []bool {
	out := make([]bool, gaps)
	for i := range out {
		if i >= len(answers) || strings.TrimSpace(answers[i]) == "" {
			continue
		}
		out[i] = IsGapCorrect(q, i, answers[i])
	}
	return out
}

// evaluateMatching checks every left item against the identity correspondence
// of the canonical pair order. Display shuffling never reaches this point.
func evaluateMatching(q models.Question, answer models.AnswerValue) map[int]bool {
	matches, _ := answer.(models.MatchingAnswer)
	out := make(map[int]bool, len(q.MatchingPairs))
	for left := range q.MatchingPairs {
		right, ok := matches[left]
		out[left] = ok && right == left
	}
	return out
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []int) map[int]struct{} {
	m := make(map[int]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func setEqual(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
