package models

import "sort"

// AnswerValue is the stored answer of a non-gapped question. The set of
// implementations is closed.
type AnswerValue interface {
	answerKind() string
}

// ChoiceAnswer is the selected option index of a single choice question.
type ChoiceAnswer int

// SelectionAnswer is the set of selected option indices of a multiple choice question.
type SelectionAnswer []int

// TextAnswer is typed free text.
type TextAnswer string

// MatchingAnswer maps a left index to the chosen right index, both in the
// canonical (unshuffled) order.
type MatchingAnswer map[int]int

func (ChoiceAnswer) answerKind() string    { return "choice" }
func (SelectionAnswer) answerKind() string { return "selection" }
func (TextAnswer) answerKind() string      { return "text" }
func (MatchingAnswer) answerKind() string  { return "matching" }

// AnswerKind names the variant of v, or "" for nil.
func AnswerKind(v AnswerValue) string {
	if v == nil {
		return ""
	}
	return v.answerKind()
}

// Contains reports whether idx is selected.
func (s SelectionAnswer) Contains(idx int) bool {
	for _, v := range s {
		if v == idx {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with idx added or removed, sorted.
func (s SelectionAnswer) Toggle(idx int) SelectionAnswer {
	out := make(SelectionAnswer, 0, len(s)+1)
	found := false
	for _, v := range s {
		if v == idx {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy.
func (m MatchingAnswer) Clone() MatchingAnswer {
	out := make(MatchingAnswer, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AnswerSnapshot is the JSON form of one question's answer, stored with the attempt.
type AnswerSnapshot struct {
	QuestionID string      `json:"question_id"`
	Kind       string      `json:"kind"`
	Choice     *int        `json:"choice,omitempty"`
	Selection  []int       `json:"selection,omitempty"`
	Text       *string     `json:"text,omitempty"`
	Matches    map[int]int `json:"matches,omitempty"`
	Gaps       []string    `json:"gaps,omitempty"`
}
