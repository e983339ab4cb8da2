package models

type QuestionType string

const (
	SingleChoice      QuestionType = "single_choice"
	MultipleChoice    QuestionType = "multiple_choice"
	ShortAnswer       QuestionType = "short_answer"
	LongText          QuestionType = "long_text"
	FillBlank         QuestionType = "fill_blank"
	TextCompletion    QuestionType = "text_completion"
	Matching          QuestionType = "matching"
	MediaQuestion     QuestionType = "media_question"
	MediaOpenQuestion QuestionType = "media_open_question"
	ImageContent      QuestionType = "image_content"
)

// QuestionTypes lists every supported question type.
var QuestionTypes = []QuestionType{
	SingleChoice,
	MultipleChoice,
	ShortAnswer,
	LongText,
	FillBlank,
	TextCompletion,
	Matching,
	MediaQuestion,
	MediaOpenQuestion,
	ImageContent,
}

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsGapped reports whether answers are stored per gap.
func (t QuestionType) IsGapped() bool {
	return t == FillBlank || t == TextCompletion
}

// IsManual reports whether the type needs a teacher to grade it.
func (t QuestionType) IsManual() bool {
	return t == LongText
}

// IsContentOnly reports whether the type carries no answer at all.
func (t QuestionType) IsContentOnly() bool {
	return t == ImageContent
}

// IsChoice reports whether the answer is a single option index.
func (t QuestionType) IsChoice() bool {
	return t == SingleChoice || t == MediaQuestion
}

// IsFreeText reports whether the answer is typed text.
func (t QuestionType) IsFreeText() bool {
	return t == ShortAnswer || t == LongText || t == MediaOpenQuestion
}

type DisplayMode string

const (
	DisplaySequential DisplayMode = "sequential"
	DisplayAllAtOnce  DisplayMode = "all_at_once"
)

type AudioMode string

const (
	AudioFlexible AudioMode = "flexible"
	AudioStrict   AudioMode = "strict"
)

type Option struct {
	Letter   string  `json:"letter"`
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	ImageURL *string `json:"image_url,omitempty"`
}

type MatchingPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

// Question is a read-only quiz question as delivered by the content backend.
type Question struct {
	ID            string         `json:"id" validate:"required"`
	Type          QuestionType   `json:"question_type" validate:"required,question_type"`
	QuestionText  string         `json:"question_text"`
	ContentText   *string        `json:"content_text,omitempty"`
	Options       []Option       `json:"options,omitempty"`
	CorrectAnswer CorrectAnswer  `json:"correct_answer,omitempty"`
	MatchingPairs []MatchingPair `json:"matching_pairs,omitempty" validate:"omitempty,dive"`
	Explanation   *string        `json:"explanation,omitempty"`

	// Media
	MediaURL  *string   `json:"media_url,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	AudioURL  *string   `json:"audio_url,omitempty"`
	AudioMode AudioMode `json:"audio_mode,omitempty" validate:"omitempty,audio_mode"`
	MaxPlays  int       `json:"max_plays,omitempty" validate:"omitempty,min=1,max=10"`
}

// GapSource returns the text that carries the gap markers: content_text when
// present, question_text otherwise.
func (q Question) GapSource() string {
	if q.ContentText != nil {
		return *q.ContentText
	}
	return q.QuestionText
}

// Quiz is one quiz step of a lesson.
type Quiz struct {
	StepID      string      `json:"step_id" validate:"required"`
	Title       string      `json:"title"`
	DisplayMode DisplayMode `json:"display_mode" validate:"required,display_mode"`
	Questions   []Question  `json:"questions" validate:"required,min=1,dive"`
}

// HasManualQuestions reports whether any question needs manual grading.
func (q Quiz) HasManualQuestions() bool {
	for _, question := range q.Questions {
		if question.Type.IsManual() {
			return true
		}
	}
	return false
}

// QuestionIndex returns the position of the question with the given id, or -1.
func (q Quiz) QuestionIndex(id string) int {
	for i, question := range q.Questions {
		if question.ID == id {
			return i
		}
	}
	return -1
}
