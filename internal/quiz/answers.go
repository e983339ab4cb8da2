package quiz

import (
	"sort"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// AnswerStore holds a student's in-progress answers. It is a value: every
// With* method returns a new store and leaves the receiver untouched.
type AnswerStore struct {
	answers map[string]models.AnswerValue
	gaps    map[string][]string
}

// NewAnswerStore returns an empty store.
func NewAnswerStore() AnswerStore {
	return AnswerStore{
		answers: map[string]models.AnswerValue{},
		gaps:    map[string][]string{},
	}
}

// Answer returns the stored answer of a non-gapped question.
func (s AnswerStore) Answer(questionID string) (models.AnswerValue, bool) {
	v, ok := s.answers[questionID]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// GapAnswers returns a copy of the per-gap answers of a gapped question.
func (s AnswerStore) GapAnswers(questionID string) []string {
	return append([]string(nil), s.gaps[questionID]...)
}

// Len returns the number of questions with any stored answer.
func (s AnswerStore) Len() int {
	n := len(s.answers)
	for id := range s.gaps {
		if _, dup := s.answers[id]; !dup {
			n++
		}
	}
	return n
}

// WithAnswer stores v for a non-gapped question.
func (s AnswerStore) WithAnswer(questionID string, v models.AnswerValue) AnswerStore {
	next := s.clone()
	next.answers[questionID] = cloneValue(v)
	return next
}

// WithGapAnswer stores text for gap index of a question with gapCount gaps.
// The gap list is padded to gapCount so indices stay aligned with the source text.
func (s AnswerStore) WithGapAnswer(questionID string, gap int, text string, gapCount int) AnswerStore {
	if gapCount < gap+1 {
		gapCount = gap + 1
	}
	list := make([]string, gapCount)
	copy(list, s.gaps[questionID])
	list[gap] = text

	next := s.clone()
	next.gaps[questionID] = list
	return next
}

// WithMatch pairs left with right. Any other left item already pointing at
// right is unpaired in the same step, so a right item belongs to at most one
// left item.
func (s AnswerStore) WithMatch(questionID string, left, right int) AnswerStore {
	current, _ := s.answers[questionID].(models.MatchingAnswer)
	matches := make(models.MatchingAnswer, len(current)+1)
	for l, r := range current {
		if r == right && l != left {
			continue
		}
		matches[l] = r
	}
	matches[left] = right

	next := s.clone()
	next.answers[questionID] = matches
	return next
}

// WithoutMatch removes the pairing of left.
func (s AnswerStore) WithoutMatch(questionID string, left int) AnswerStore {
	current, ok := s.answers[questionID].(models.MatchingAnswer)
	if !ok {
		return s
	}
	matches := current.Clone()
	delete(matches, left)

	next := s.clone()
	next.answers[questionID] = matches
	return next
}

// Without drops every stored answer of a question.
func (s AnswerStore) Without(questionID string) AnswerStore {
	next := s.clone()
	delete(next.answers, questionID)
	delete(next.gaps, questionID)
	return next
}

// Snapshot renders the store in question order for persistence.
func (s AnswerStore) Snapshot(questions []models.Question) []models.AnswerSnapshot {
	out := make([]models.AnswerSnapshot, 0, len(questions))
	for _, q := range questions {
		if gaps, ok := s.gaps[q.ID]; ok {
			out = append(out, models.AnswerSnapshot{
				QuestionID: q.ID,
				Kind:       "gaps",
				Gaps:       append([]string(nil), gaps...),
			})
			continue
		}
		v, ok := s.answers[q.ID]
		if !ok {
			continue
		}
		snap := models.AnswerSnapshot{QuestionID: q.ID, Kind: models.AnswerKind(v)}
		switch a := v.(type) {
		case models.ChoiceAnswer:
			idx := int(a)
			snap.Choice = &idx
		case models.SelectionAnswer:
			snap.Selection = append([]int(nil), a...)
			sort.Ints(snap.Selection)
		case models.TextAnswer:
			text := string(a)
			snap.Text = &text
		case models.MatchingAnswer:
			snap.Matches = a.Clone()
		}
		out = append(out, snap)
	}
	return out
}

func (s AnswerStore) clone() AnswerStore {
	next := AnswerStore{
		answers: make(map[string]models.AnswerValue, len(s.answers)+1),
		gaps:    make(map[string][]string, len(s.gaps)+1),
	}
	for k, v := range s.answers {
		next.answers[k] = v
	}
	for k, v := range s.gaps {
		next.gaps[k] = v
	}
	return next
}

// cloneValue copies reference-typed answers so the store never shares them
// with callers.
func cloneValue(v models.AnswerValue) models.AnswerValue {
	switch a := v.(type) {
	case models.SelectionAnswer:
		return append(models.SelectionAnswer(nil), a...)
	case models.MatchingAnswer:
		return a.Clone()
	default:
		return v
	}
}
