package quiz

import (
	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// editable resolves a question that may currently take input: the current
// question in sequential mode, any question in an unlocked feed.
func (s Session) editable(questionID string) (models.Question, error) {
	idx := s.quiz.QuestionIndex(questionID)
	if idx < 0 {
		return models.Question{}, ErrUnknownQuestion
	}
	switch s.phase {
	case PhaseQuestion:
		if idx != s.current {
			return models.Question{}, ErrAnswersLocked
		}
	case PhaseFeed:
		if s.reviewing {
			return models.Question{}, ErrAnswersLocked
		}
	default:
		return models.Question{}, ErrAnswersLocked
	}
	return s.quiz.Questions[idx], nil
}

// SelectChoice selects one option of a single choice question.
func (s Session) SelectChoice(questionID string, option int) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if !q.Type.IsChoice() {
		return s, ErrWrongAnswerKind
	}
	if !optionInRange(q, option) {
		return s, ErrOptionOutOfRange
	}
	s.answers = s.answers.WithAnswer(q.ID, models.ChoiceAnswer(option))
	return s, nil
}

// ToggleChoice adds or removes an option of a multiple choice question. An
// emptied selection counts as unanswered.
func (s Session) ToggleChoice(questionID string, option int) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if q.Type != models.MultipleChoice {
		return s, ErrWrongAnswerKind
	}
	if !optionInRange(q, option) {
		return s, ErrOptionOutOfRange
	}
	current, _ := s.answers.Answer(q.ID)
	selection, _ := current.(models.SelectionAnswer)
	selection = selection.Toggle(option)
	if len(selection) == 0 {
		s.answers = s.answers.Without(q.ID)
		return s, nil
	}
	s.answers = s.answers.WithAnswer(q.ID, selection)
	return s, nil
}

// SetText stores typed text for a free-text question.
func (s Session) SetText(questionID, text string) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if !q.Type.IsFreeText() {
		return s, ErrWrongAnswerKind
	}
	s.answers = s.answers.WithAnswer(q.ID, models.TextAnswer(text))
	return s, nil
}

// SetGap stores the text typed into one gap.
func (s Session) SetGap(questionID string, gap int, text string) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if !q.Type.IsGapped() {
		return s, ErrWrongAnswerKind
	}
	count := s.cfg.Gaps.CountItems(q)
	if gap < 0 || gap >= count {
		return s, ErrGapOutOfRange
	}
	s.answers = s.answers.WithGapAnswer(q.ID, gap, text, count)
	return s, nil
}

// Match pairs a left item with a right item, both in canonical pair order.
func (s Session) Match(questionID string, left, right int) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if q.Type != models.Matching {
		return s, ErrWrongAnswerKind
	}
	n := len(q.MatchingPairs)
	if left < 0 || left >= n || right < 0 || right >= n {
		return s, ErrOptionOutOfRange
	}
	s.answers = s.answers.WithMatch(q.ID, left, right)
	return s, nil
}

// Unmatch clears the pairing of a left item.
func (s Session) Unmatch(questionID string, left int) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if q.Type != models.Matching {
		return s, ErrWrongAnswerKind
	}
	next := s.answers.WithoutMatch(q.ID, left)
	if v, ok := next.Answer(q.ID); ok {
		if m, _ := v.(models.MatchingAnswer); len(m) == 0 {
			next = next.Without(q.ID)
		}
	}
	s.answers = next
	return s, nil
}

// SetAnswer stores a complete answer value of the right variant.
func (s Session) SetAnswer(questionID string, v models.AnswerValue) (Session, error) {
	q, err := s.editable(questionID)
	if err != nil {
		return s, err
	}
	if !AcceptsAnswer(q, v) {
		return s, ErrWrongAnswerKind
	}
	s.answers = s.answers.WithAnswer(q.ID, v)
	return s, nil
}

// RevealAnswers fills in the correct answers of every editable question.
// Only available when the session was configured with AllowAnswerReveal.
func (s Session) RevealAnswers() (Session, error) {
	if !s.cfg.AllowAnswerReveal {
		return s, ErrRevealDisabled
	}

	var targets []models.Question
	switch {
	case s.phase == PhaseQuestion:
		targets = s.quiz.Questions[s.current : s.current+1]
	case s.phase == PhaseFeed && !s.reviewing:
		targets = s.quiz.Questions
	default:
		return s, ErrAnswersLocked
	}

	answers := s.answers
	for _, q := range targets {
		v, gaps, ok := s.cfg.Gaps.CorrectAnswer(q)
		if !ok {
			continue
		}
		if gaps != nil {
			for i, text := range gaps {
				answers = answers.WithGapAnswer(q.ID, i, text, len(gaps))
			}
			continue
		}
		answers = answers.WithAnswer(q.ID, v)
	}
	s.answers = answers
	return s, nil
}

// optionInRange accepts any non-negative index when the question carries no
// option list.
func optionInRange(q models.Question, option int) bool {
	if option < 0 {
		return false
	}
	return len(q.Options) == 0 || option < len(q.Options)
}
