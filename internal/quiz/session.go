package quiz

import (
	"math"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

type Phase string

const (
	PhaseTitle     Phase = "title"
	PhaseQuestion  Phase = "question"
	PhaseFeed      Phase = "feed"
	PhaseResult    Phase = "result"
	PhaseCompleted Phase = "completed"
)

type Action string

const (
	ActionStart    Action = "start"
	ActionCheck    Action = "check"
	ActionNext     Action = "next"
	ActionFinish   Action = "finish"
	ActionReview   Action = "review"
	ActionReset    Action = "reset"
	ActionContinue Action = "continue"
)

type EffectKind string

const (
	// EffectSubmitAttempt asks the host to persist the score. Emitted exactly
	// once per completion transition.
	EffectSubmitAttempt EffectKind = "submit_attempt"
	// EffectLoadHistory asks the host to (re)load attempt history. A newer
	// load supersedes any still in flight.
	EffectLoadHistory EffectKind = "load_history"
	// EffectMarkVisited is a fire-and-forget completion signal.
	EffectMarkVisited EffectKind = "mark_visited"
	// EffectGoToNextStep hands control back to the host navigation.
	EffectGoToNextStep EffectKind = "go_to_next_step"
)

// Effect is a side effect requested by a transition. The session never
// performs I/O itself.
type Effect struct {
	Kind       EffectKind
	Score      int
	Total      int
	Percentage int
	Minutes    int
	Answers    []models.AnswerSnapshot
}

// Config carries the explicit engine options.
type Config struct {
	// AllowAnswerReveal enables RevealAnswers (teacher preview, development).
	AllowAnswerReveal bool
	Gaps              *GapCounter
	Seed              func() uint64
	Clock             func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Gaps == nil {
		c.Gaps = DefaultGapCounter()
	}
	if c.Seed == nil {
		c.Seed = RandomSeed
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}

// GradeRecord is an authoritative score from manual grading.
type GradeRecord struct {
	Percentage int
	Feedback   *string
}

// GradeFromTrend returns the latest graded attempt as a grade record, if any.
func GradeFromTrend(t Trend) *GradeRecord {
	if t.LatestGrade == nil {
		return nil
	}
	return &GradeRecord{Percentage: t.LatestGrade.Percentage, Feedback: t.LatestGrade.Feedback}
}

// Outcome is what the completed screen shows.
type Outcome struct {
	Stats           Stats   `json:"stats"`
	Percentage      int     `json:"percentage"`
	Passed          bool    `json:"passed"`
	PendingReview   bool    `json:"pending_review"`
	Authoritative   bool    `json:"authoritative"`
	CanRetake       bool    `json:"can_retake"`
	RetakeSuggested bool    `json:"retake_suggested"`
	Feedback        *string `json:"feedback,omitempty"`
}

// Session is the state of one student working through one quiz. It is a
// value; every transition returns the next session and leaves the receiver
// unchanged.
type Session struct {
	quiz      models.Quiz
	cfg       Config
	phase     Phase
	current   int
	answers   AnswerStore
	reviewing bool
	submitted bool
	attempt   int
	seeds     map[string]uint64
	startedAt time.Time
}

// NewSession opens a quiz in the title phase.
func NewSession(q models.Quiz, cfg Config) (Session, error) {
	if len(q.Questions) == 0 {
		return Session{}, ErrNoQuestions
	}
	cfg = cfg.withDefaults()
	return Session{
		quiz:    q,
		cfg:     cfg,
		phase:   PhaseTitle,
		answers: NewAnswerStore(),
		attempt: 1,
		seeds:   drawSeeds(q.Questions, cfg.Seed),
	}, nil
}

func drawSeeds(questions []models.Question, seed func() uint64) map[string]uint64 {
	seeds := make(map[string]uint64)
	for _, q := range questions {
		if q.Type == models.Matching {
			seeds[q.ID] = seed()
		}
	}
	return seeds
}

func (s Session) Quiz() models.Quiz    { return s.quiz }
func (s Session) Phase() Phase         { return s.phase }
func (s Session) Current() int         { return s.current }
func (s Session) Answers() AnswerStore { return s.answers }
func (s Session) Reviewing() bool      { return s.reviewing }
func (s Session) Submitted() bool      { return s.submitted }
func (s Session) Attempt() int         { return s.attempt }
func (s Session) Gaps() *GapCounter    { return s.cfg.Gaps }
func (s Session) StartedAt() time.Time { return s.startedAt }
func (s Session) Mode() models.DisplayMode {
	if s.quiz.DisplayMode == models.DisplayAllAtOnce {
		return models.DisplayAllAtOnce
	}
	return models.DisplaySequential
}

// CurrentQuestion is the question shown in sequential mode.
func (s Session) CurrentQuestion() (models.Question, bool) {
	if s.phase != PhaseQuestion && s.phase != PhaseResult {
		return models.Question{}, false
	}
	return s.quiz.Questions[s.current], true
}

// IsLast reports whether the current question is the last one.
func (s Session) IsLast() bool {
	return s.current == len(s.quiz.Questions)-1
}

// IsComplete applies the completeness predicate to one question.
func (s Session) IsComplete(questionID string) bool {
	idx := s.quiz.QuestionIndex(questionID)
	if idx < 0 {
		return false
	}
	return s.cfg.Gaps.IsComplete(s.quiz.Questions[idx], s.answers)
}

// AllComplete reports whether every question passes the completeness predicate.
func (s Session) AllComplete() bool {
	for _, q := range s.quiz.Questions {
		if !s.cfg.Gaps.IsComplete(q, s.answers) {
			return false
		}
	}
	return true
}

// CanCheck is the enabled state of the sequential "check" control.
func (s Session) CanCheck() bool {
	if s.phase != PhaseQuestion {
		return false
	}
	return s.cfg.Gaps.IsComplete(s.quiz.Questions[s.current], s.answers)
}

// CanFinish is the enabled state of "Check All Answers" in feed mode.
func (s Session) CanFinish() bool {
	if s.phase != PhaseFeed {
		return false
	}
	return s.reviewing || s.AllComplete()
}

// CanRetake reports whether a completed quiz may be reset. Quizzes with
// manually graded questions are never retakable once submitted.
func (s Session) CanRetake() bool {
	return s.phase == PhaseCompleted && !s.quiz.HasManualQuestions()
}

// Stats evaluates the whole answer store.
func (s Session) Stats() Stats {
	return s.cfg.Gaps.Evaluate(s.quiz.Questions, s.answers)
}

// Results evaluates every question, in quiz order.
func (s Session) Results() []QuestionResult {
	out := make([]QuestionResult, len(s.quiz.Questions))
	for i, q := range s.quiz.Questions {
		out[i] = s.cfg.Gaps.EvaluateQuestion(q, s.answers)
	}
	return out
}

// CurrentResult is the evaluation shown in the sequential result phase.
func (s Session) CurrentResult() (QuestionResult, bool) {
	if s.phase != PhaseResult {
		return QuestionResult{}, false
	}
	return s.cfg.Gaps.EvaluateQuestion(s.quiz.Questions[s.current], s.answers), true
}

// DisplayOrder is the shuffled right-column order of a matching question. It
// only changes when the session is reset.
func (s Session) DisplayOrder(questionID string) []int {
	idx := s.quiz.QuestionIndex(questionID)
	if idx < 0 || s.quiz.Questions[idx].Type != models.Matching {
		return nil
	}
	return ShuffleOrder(len(s.quiz.Questions[idx].MatchingPairs), s.seeds[questionID])
}

// Outcome computes the completed-screen result. grade is the latest graded
// attempt, if history has one.
func (s Session) Outcome(grade *GradeRecord) Outcome {
	stats := s.Stats()
	out := Outcome{Stats: stats, CanRetake: s.CanRetake()}

	if s.quiz.HasManualQuestions() {
		if grade == nil {
			out.PendingReview = true
			return out
		}
		out.Authoritative = true
		out.Percentage = grade.Percentage
		out.Feedback = grade.Feedback
	} else {
		out.Percentage = stats.Percentage()
	}

	out.Passed = Passed(out.Percentage)
	out.RetakeSuggested = out.CanRetake && !out.Passed
	return out
}

// ===== TRANSITIONS =====

// Apply runs one navigation action.
func (s Session) Apply(a Action) (Session, []Effect, error) {
	switch a {
	case ActionStart:
		return s.start()
	case ActionCheck:
		return s.check()
	case ActionNext:
		return s.next()
	case ActionFinish:
		return s.finish()
	case ActionReview:
		return s.review()
	case ActionReset:
		return s.reset()
	case ActionContinue:
		return s.cont()
	default:
		return s, nil, ErrInvalidTransition
	}
}

func (s Session) Start() (Session, []Effect, error)    { return s.Apply(ActionStart) }
func (s Session) Check() (Session, []Effect, error)    { return s.Apply(ActionCheck) }
func (s Session) Next() (Session, []Effect, error)     { return s.Apply(ActionNext) }
func (s Session) Finish() (Session, []Effect, error)   { return s.Apply(ActionFinish) }
func (s Session) Review() (Session, []Effect, error)   { return s.Apply(ActionReview) }
func (s Session) Reset() (Session, []Effect, error)    { return s.Apply(ActionReset) }
func (s Session) Continue() (Session, []Effect, error) { return s.Apply(ActionContinue) }

func (s Session) start() (Session, []Effect, error) {
	if s.phase != PhaseTitle {
		return s, nil, ErrInvalidTransition
	}
	s.startedAt = s.cfg.Clock()
	s.current = 0
	if s.Mode() == models.DisplayAllAtOnce {
		s.phase = PhaseFeed
	} else {
		s.phase = PhaseQuestion
	}
	return s, nil, nil
}

func (s Session) check() (Session, []Effect, error) {
	if s.phase != PhaseQuestion {
		return s, nil, ErrInvalidTransition
	}
	if !s.CanCheck() {
		return s, nil, ErrIncomplete
	}
	s.phase = PhaseResult

	var effects []Effect
	if s.IsLast() && !s.submitted {
		s.submitted = true
		effects = append(effects, s.submitEffect())
	}
	return s, effects, nil
}

func (s Session) next() (Session, []Effect, error) {
	if s.phase != PhaseResult {
		return s, nil, ErrInvalidTransition
	}
	if !s.IsLast() {
		s.current++
		s.phase = PhaseQuestion
		return s, nil, nil
	}
	s.phase = PhaseCompleted
	return s, []Effect{{Kind: EffectLoadHistory}}, nil
}

func (s Session) finish() (Session, []Effect, error) {
	if s.phase != PhaseFeed {
		return s, nil, ErrInvalidTransition
	}
	if s.reviewing {
		s.reviewing = false
		s.phase = PhaseCompleted
		return s, []Effect{{Kind: EffectLoadHistory}}, nil
	}
	if !s.AllComplete() {
		return s, nil, ErrIncomplete
	}
	s.phase = PhaseCompleted

	var effects []Effect
	if !s.submitted {
		s.submitted = true
		effects = append(effects, s.submitEffect())
	}
	effects = append(effects, Effect{Kind: EffectLoadHistory})
	return s, effects, nil
}

func (s Session) review() (Session, []Effect, error) {
	if s.phase != PhaseCompleted || s.Mode() != models.DisplayAllAtOnce {
		return s, nil, ErrInvalidTransition
	}
	s.phase = PhaseFeed
	s.reviewing = true
	return s, nil, nil
}

func (s Session) reset() (Session, []Effect, error) {
	if s.phase != PhaseCompleted {
		return s, nil, ErrInvalidTransition
	}
	if !s.CanRetake() {
		return s, nil, ErrRetakeNotAllowed
	}
	s.answers = NewAnswerStore()
	s.seeds = drawSeeds(s.quiz.Questions, s.cfg.Seed)
	s.attempt++
	s.submitted = false
	s.reviewing = false
	s.current = 0
	s.startedAt = s.cfg.Clock()
	if s.Mode() == models.DisplayAllAtOnce {
		s.phase = PhaseFeed
	} else {
		s.phase = PhaseQuestion
	}
	return s, nil, nil
}

func (s Session) cont() (Session, []Effect, error) {
	if s.phase != PhaseCompleted {
		return s, nil, ErrInvalidTransition
	}
	return s, []Effect{
		{Kind: EffectMarkVisited, Minutes: s.minutesSpent()},
		{Kind: EffectGoToNextStep},
	}, nil
}

func (s Session) submitEffect() Effect {
	stats := s.Stats()
	return Effect{
		Kind:       EffectSubmitAttempt,
		Score:      stats.CorrectItems,
		Total:      stats.TotalItems,
		Percentage: stats.Percentage(),
		Answers:    s.answers.Snapshot(s.quiz.Questions),
	}
}

// minutesSpent rounds the time since start up to whole minutes.
func (s Session) minutesSpent() int {
	if s.startedAt.IsZero() {
		return 0
	}
	elapsed := s.cfg.Clock().Sub(s.startedAt)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Minutes()))
}
