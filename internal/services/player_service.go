package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/audio"
	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlayerConfig carries the engine options of hosted sessions.
type PlayerConfig struct {
	AllowAnswerReveal bool
	AudioMaxPlays     int
	Gaps              *quiz.GapCounter
	IdleTTL           time.Duration

	// Seed and Clock default to the engine's own.
	Seed  func() uint64
	Clock func() time.Time
}

type playerService struct {
	repo      repositories.Repository
	history   HistoryService
	publisher events.EventPublisher
	navigator Navigator
	validator *validator.Validator
	logger    *slog.Logger
	opLogger  *ServiceLogger
	config    PlayerConfig

	mu       sync.RWMutex
	sessions map[string]*playerSession
}

// playerSession is one open quiz view. Every field is guarded by mu; effects
// run with mu released and re-check state before writing their results.
type playerSession struct {
	mu        sync.Mutex
	id        string
	studentID string
	session   quiz.Session
	gates     map[string]*audio.Gate
	warnings  []validator.Warning

	submitting bool
	submitDone chan struct{}
	attemptGen uint64
	attemptID  *uint
	saved      bool

	historyGen    uint64
	history       *HistoryView
	nextStepReady bool
	touchedAt     time.Time
}

func NewQuizPlayerService(
	repo repositories.Repository,
	history HistoryService,
	publisher events.EventPublisher,
	navigator Navigator,
	validator *validator.Validator,
	logger *slog.Logger,
	config PlayerConfig,
) QuizPlayerService {
	if config.Gaps == nil {
		config.Gaps = quiz.DefaultGapCounter()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &playerService{
		repo:      repo,
		history:   history,
		publisher: publisher,
		navigator: navigator,
		validator: validator,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "quiz-engine", Component: "player"}),
		config:    config,
		sessions:  make(map[string]*playerSession),
	}
}

// ===== SESSION LIFECYCLE =====

func (s *playerService) Open(ctx context.Context, req *OpenSessionRequest, studentID string) (*SessionView, error) {
	op := s.opLogger.WithOperation(ctx, "open_session", studentID)

	if req == nil {
		op.LogResult("", "quiz_session", ErrBadRequest)
		return nil, ErrBadRequest
	}

	s.logger.Info("Opening quiz session",
		"step_id", req.Quiz.StepID,
		"student_id", studentID,
		"questions", len(req.Quiz.Questions))

	warnings, err := s.validator.ValidateQuiz(&req.Quiz)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrQuizInvalid, err)
		op.LogResult(req.Quiz.StepID, "quiz", err)
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn("Quiz content warning",
			"step_id", req.Quiz.StepID,
			"question_id", w.QuestionID,
			"code", w.Code,
			"message", w.Message)
	}

	session, err := quiz.NewSession(req.Quiz, quiz.Config{
		AllowAnswerReveal: s.config.AllowAnswerReveal,
		Gaps:              s.config.Gaps,
		Seed:              s.config.Seed,
		Clock:             s.config.Clock,
	})
	if err != nil {
		op.LogResult(req.Quiz.StepID, "quiz", err)
		return nil, err
	}

	ps := &playerSession{
		id:        uuid.NewString(),
		studentID: studentID,
		session:   session,
		gates:     s.newGates(req.Quiz),
		warnings:  warnings,
		touchedAt: s.config.Clock(),
	}

	s.mu.Lock()
	s.sessions[ps.id] = ps
	s.mu.Unlock()

	ps.mu.Lock()
	defer ps.mu.Unlock()

	op.LogResult(ps.id, "quiz_session", nil)
	return s.buildView(ps), nil
}

func (s *playerService) Get(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	ps, err := s.lookup(sessionID, studentID)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	return s.buildView(ps), nil
}

func (s *playerService) Close(ctx context.Context, sessionID, studentID string) error {
	if _, err := s.lookup(sessionID, studentID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info("Closed quiz session", "session_id", sessionID, "student_id", studentID)
	return nil
}

// lookup hides sessions of other students behind ErrSessionNotFound.
func (s *playerService) lookup(sessionID, studentID string) (*playerSession, error) {
	s.mu.RLock()
	ps, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || ps.studentID != studentID {
		return nil, ErrSessionNotFound
	}
	return ps, nil
}

// ===== NAVIGATION =====

func (s *playerService) Start(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionStart)
}

func (s *playerService) Check(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionCheck)
}

func (s *playerService) Next(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionNext)
}

func (s *playerService) Finish(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionFinish)
}

func (s *playerService) Review(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionReview)
}

func (s *playerService) Reset(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionReset)
}

func (s *playerService) Continue(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.Act(ctx, sessionID, studentID, quiz.ActionContinue)
}

// Act runs one navigation action and applies the effects it requests, in
// order, before returning the resulting view.
func (s *playerService) Act(ctx context.Context, sessionID, studentID string, action quiz.Action) (*SessionView, error) {
	op := s.opLogger.WithOperation(ctx, string(action), studentID)

	ps, err := s.lookup(sessionID, studentID)
	if err != nil {
		op.LogResult(sessionID, "quiz_session", err)
		return nil, err
	}

	ps.mu.Lock()
	if action == quiz.ActionReset && ps.submitting {
		// a retake must not start before the last attempt is stored
		ps.mu.Unlock()
		op.LogResult(sessionID, "quiz_session", ErrAttemptInFlight)
		return nil, ErrAttemptInFlight
	}
	next, effects, err := ps.session.Apply(action)
	if err != nil {
		ps.mu.Unlock()
		op.LogResult(sessionID, "quiz_session", err)
		return nil, err
	}

	left := ps.session.Phase() == quiz.PhaseCompleted && next.Phase() != quiz.PhaseCompleted
	ps.session = next
	ps.touchedAt = s.config.Clock()
	if left {
		// outstanding history loads belong to the completion we just left
		ps.historyGen++
		ps.history = nil
	}
	if action == quiz.ActionReset {
		ps.attemptGen++
		ps.attemptID = nil
		ps.saved = false
		ps.nextStepReady = false
		ps.gates = s.newGates(next.Quiz())
	}
	plan := s.planEffects(ps, effects)
	ps.mu.Unlock()

	s.runEffects(ctx, ps, plan)

	ps.mu.Lock()
	defer ps.mu.Unlock()

	op.LogResult(sessionID, "quiz_session", nil)
	return s.buildView(ps), nil
}

// ===== INPUT =====

func (s *playerService) Answer(ctx context.Context, sessionID, studentID string, req *AnswerRequest) (*SessionView, error) {
	if req == nil {
		return nil, ErrBadRequest
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, studentID, "answer", func(session quiz.Session) (quiz.Session, error) {
		return applyAnswer(session, req)
	})
}

func (s *playerService) Reveal(ctx context.Context, sessionID, studentID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, studentID, "reveal_answers", func(session quiz.Session) (quiz.Session, error) {
		return session.RevealAnswers()
	})
}

func (s *playerService) mutate(ctx context.Context, sessionID, studentID, operation string, fn func(quiz.Session) (quiz.Session, error)) (*SessionView, error) {
	ps, err := s.lookup(sessionID, studentID)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	next, err := fn(ps.session)
	if err != nil {
		s.logger.Debug("Session input rejected",
			"operation", operation,
			"session_id", sessionID,
			"error", err)
		return nil, err
	}
	ps.session = next
	ps.touchedAt = s.config.Clock()
	return s.buildView(ps), nil
}

func applyAnswer(session quiz.Session, req *AnswerRequest) (quiz.Session, error) {
	missing := func(field string) error {
		return ValidationErrors{*NewValidationError(field, fmt.Sprintf("%s is required for %s answers", field, req.Kind), nil)}
	}

	switch req.Kind {
	case AnswerKindChoice:
		if req.Option == nil {
			return session, missing("option")
		}
		return session.SelectChoice(req.QuestionID, *req.Option)

	case AnswerKindToggle:
		if req.Option == nil {
			return session, missing("option")
		}
		return session.ToggleChoice(req.QuestionID, *req.Option)

	case AnswerKindSelection:
		if len(req.Selection) == 0 {
			return session, missing("selection")
		}
		selection := uniqueSorted(req.Selection)
		return session.SetAnswer(req.QuestionID, models.SelectionAnswer(selection))

	case AnswerKindText:
		if req.Text == nil {
			return session, missing("text")
		}
		return session.SetText(req.QuestionID, *req.Text)

	case AnswerKindGap:
		if req.Gap == nil {
			return session, missing("gap")
		}
		if req.Text == nil {
			return session, missing("text")
		}
		return session.SetGap(req.QuestionID, *req.Gap, *req.Text)

	case AnswerKindMatch:
		if req.Left == nil {
			return session, missing("left")
		}
		if req.Right == nil {
			return session, missing("right")
		}
		return session.Match(req.QuestionID, *req.Left, *req.Right)

	case AnswerKindUnmatch:
		if req.Left == nil {
			return session, missing("left")
		}
		return session.Unmatch(req.QuestionID, *req.Left)

	default:
		return session, fmt.Errorf("%w: unknown answer kind %q", ErrBadRequest, req.Kind)
	}
}

func uniqueSorted(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// ===== AUDIO =====

func (s *playerService) Audio(ctx context.Context, sessionID, studentID, questionID string, cmd audio.Command) (*AudioResponse, error) {
	if err := s.validator.Validate(&cmd); err != nil {
		return nil, err
	}

	ps, err := s.lookup(sessionID, studentID)
	if err != nil {
		return nil, err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.session.Quiz().QuestionIndex(questionID) < 0 {
		return nil, quiz.ErrUnknownQuestion
	}
	gate, ok := ps.gates[questionID]
	if !ok {
		return nil, ErrNoAudio
	}

	accepted, err := gate.Apply(cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if !accepted {
		s.logger.Debug("Audio command refused",
			"session_id", sessionID,
			"question_id", questionID,
			"command", cmd.Type,
			"play_count", gate.PlayCount())
	}
	ps.touchedAt = s.config.Clock()

	return &AudioResponse{
		QuestionID: questionID,
		Accepted:   accepted,
		State:      gate.Snapshot(),
	}, nil
}

func (s *playerService) newGates(q models.Quiz) map[string]*audio.Gate {
	gates := make(map[string]*audio.Gate)
	for _, question := range q.Questions {
		if !hasAudio(question) {
			continue
		}
		maxPlays := question.MaxPlays
		if maxPlays <= 0 {
			maxPlays = s.config.AudioMaxPlays
		}
		gate := audio.NewGate(question.AudioMode, maxPlays)
		gate.SetClock(s.config.Clock)
		gates[question.ID] = gate
	}
	return gates
}

// hasAudio ignores MediaURL, which may point at an image or a video.
func hasAudio(q models.Question) bool {
	return q.AudioURL != nil || q.AudioMode != ""
}

// ===== EFFECTS =====

type effectPlan struct {
	stepID    string
	studentID string

	submit     *quiz.Effect
	submitDone chan struct{}
	submitGen  uint64

	loadHistory bool
	loadGen     uint64
	waitSubmit  chan struct{}

	markVisited *quiz.Effect
	goNext      bool
}

// planEffects records the bookkeeping of effects while the session lock is
// held. The I/O itself happens in runEffects.
func (s *playerService) planEffects(ps *playerSession, effects []quiz.Effect) effectPlan {
	plan := effectPlan{
		stepID:    ps.session.Quiz().StepID,
		studentID: ps.studentID,
	}

	for i := range effects {
		effect := effects[i]
		switch effect.Kind {
		case quiz.EffectSubmitAttempt:
			if ps.submitting {
				s.logger.Warn("Attempt submission already in flight",
					"session_id", ps.id,
					"error", ErrAttemptInFlight)
				continue
			}
			ps.submitting = true
			ps.submitDone = make(chan struct{})
			plan.submit = &effect
			plan.submitDone = ps.submitDone
			plan.submitGen = ps.attemptGen

		case quiz.EffectLoadHistory:
			ps.historyGen++
			plan.loadHistory = true
			plan.loadGen = ps.historyGen
			plan.waitSubmit = ps.submitDone

		case quiz.EffectMarkVisited:
			plan.markVisited = &effect

		case quiz.EffectGoToNextStep:
			plan.goNext = true
		}
	}
	return plan
}

func (s *playerService) runEffects(ctx context.Context, ps *playerSession, plan effectPlan) {
	// persistence outlives the request that triggered it
	bg := context.WithoutCancel(ctx)

	if plan.submit != nil {
		s.submitAttempt(bg, ps, plan)
	}
	if plan.loadHistory {
		s.loadHistory(ctx, ps, plan)
	}
	if plan.markVisited != nil {
		s.markVisited(bg, ps, plan)
	}
	if plan.goNext {
		s.goToNextStep(ctx, ps, plan)
	}
}

func (s *playerService) submitAttempt(ctx context.Context, ps *playerSession, plan effectPlan) {
	effect := plan.submit
	manual := ps.quizContent().HasManualQuestions()

	attempt := &models.QuizAttempt{
		StepID:         plan.stepID,
		StudentID:      plan.studentID,
		Score:          effect.Score,
		TotalQuestions: effect.Total,
		Percentage:     effect.Percentage,
		Passed:         !manual && quiz.Passed(effect.Percentage),
		CompletedAt:    s.config.Clock(),
	}

	err := func() error {
		answers, err := json.Marshal(effect.Answers)
		if err != nil {
			return fmt.Errorf("failed to encode answers: %w", err)
		}
		attempt.Answers = datatypes.JSON(answers)

		if err := s.repo.Attempt().Create(ctx, nil, attempt); err != nil {
			return fmt.Errorf("failed to create attempt: %w", err)
		}
		return nil
	}()

	ps.mu.Lock()
	ps.submitting = false
	// a result that arrives after a retake belongs to the previous attempt
	if err == nil && ps.attemptGen == plan.submitGen {
		id := attempt.ID
		ps.attemptID = &id
		ps.saved = true
	}
	close(plan.submitDone)
	ps.mu.Unlock()

	if err != nil {
		s.opLogger.LogEffectFailure(ctx, string(quiz.EffectSubmitAttempt), ps.id, err,
			"step_id", plan.stepID,
			"student_id", plan.studentID)
		return
	}

	s.logger.Info("Attempt submitted",
		"attempt_id", attempt.ID,
		"step_id", plan.stepID,
		"student_id", plan.studentID,
		"percentage", attempt.Percentage)

	s.history.Invalidate(ctx, plan.stepID, plan.studentID)

	s.publish(ctx, events.NewQuizEvent(events.EventAttemptSubmitted, events.AttemptSubmittedEvent{
		AttemptID:     attempt.ID,
		StepID:        plan.stepID,
		StudentID:     plan.studentID,
		Score:         attempt.Score,
		Total:         attempt.TotalQuestions,
		Percentage:    attempt.Percentage,
		Passed:        attempt.Passed,
		PendingReview: manual,
		CompletedAt:   attempt.CompletedAt,
	}))

	if manual {
		var questionIDs []string
		for _, q := range ps.quizContent().Questions {
			if q.Type.IsManual() {
				questionIDs = append(questionIDs, q.ID)
			}
		}
		s.publish(ctx, events.NewQuizEvent(events.EventManualGradingRequired, events.ManualGradingRequiredEvent{
			AttemptID:   attempt.ID,
			StepID:      plan.stepID,
			StudentID:   plan.studentID,
			QuestionIDs: questionIDs,
		}))
	}
}

// loadHistory waits for a submission still in flight so the new attempt is
// part of the history, then stores the result only if it is still current.
func (s *playerService) loadHistory(ctx context.Context, ps *playerSession, plan effectPlan) {
	if plan.waitSubmit != nil {
		select {
		case <-plan.waitSubmit:
		case <-ctx.Done():
			return
		}
	}

	attempts := s.history.Fetch(ctx, plan.stepID, plan.studentID)
	trend := quiz.BuildTrend(attempts)

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.historyGen != plan.loadGen || ps.session.Phase() != quiz.PhaseCompleted {
		s.logger.Debug("Discarding stale history load",
			"session_id", ps.id,
			"generation", plan.loadGen,
			"current_generation", ps.historyGen)
		return
	}
	ps.history = &HistoryView{Loaded: true, Trend: trend}
}

func (s *playerService) markVisited(ctx context.Context, ps *playerSession, plan effectPlan) {
	progress := &models.StepProgress{
		StepID:           plan.stepID,
		StudentID:        plan.studentID,
		Visited:          true,
		TimeSpentMinutes: plan.markVisited.Minutes,
		VisitedAt:        s.config.Clock(),
	}

	if err := s.repo.StepProgress().MarkVisited(ctx, nil, progress); err != nil {
		s.opLogger.LogEffectFailure(ctx, string(quiz.EffectMarkVisited), ps.id, err,
			"step_id", plan.stepID,
			"student_id", plan.studentID)
		return
	}

	s.publish(ctx, events.NewQuizEvent(events.EventStepVisited, events.StepVisitedEvent{
		StepID:           plan.stepID,
		StudentID:        plan.studentID,
		TimeSpentMinutes: progress.TimeSpentMinutes,
		VisitedAt:        progress.VisitedAt,
	}))
}

func (s *playerService) goToNextStep(ctx context.Context, ps *playerSession, plan effectPlan) {
	if s.navigator != nil {
		if err := s.navigator.GoToNextStep(ctx, plan.stepID, plan.studentID); err != nil {
			s.opLogger.LogEffectFailure(ctx, string(quiz.EffectGoToNextStep), ps.id, err,
				"step_id", plan.stepID)
		}
	}

	ps.mu.Lock()
	ps.nextStepReady = true
	ps.mu.Unlock()
}

func (s *playerService) publish(ctx context.Context, event *events.QuizEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish quiz event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}

func (ps *playerSession) quizContent() models.Quiz {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.session.Quiz()
}

// ===== HOUSEKEEPING =====

// EvictIdle drops sessions untouched for longer than the idle TTL and
// returns how many were removed.
func (s *playerService) EvictIdle(ctx context.Context) int {
	if s.config.IdleTTL <= 0 {
		return 0
	}
	cutoff := s.config.Clock().Add(-s.config.IdleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, ps := range s.sessions {
		ps.mu.Lock()
		idle := ps.touchedAt.Before(cutoff) && !ps.submitting
		ps.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.InfoContext(ctx, "Evicted idle quiz sessions", "count", evicted)
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (s *playerService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle(ctx)
		}
	}
}

// ===== VIEWS =====

// buildView expects ps.mu to be held.
func (s *playerService) buildView(ps *playerSession) *SessionView {
	session := ps.session
	q := session.Quiz()
	gaps := session.Gaps()
	phase := session.Phase()

	view := &SessionView{
		ID:            ps.id,
		StepID:        q.StepID,
		Title:         q.Title,
		DisplayMode:   session.Mode(),
		Phase:         phase,
		Current:       session.Current(),
		Attempt:       session.Attempt(),
		Reviewing:     session.Reviewing(),
		TotalItems:    gaps.TotalItems(q.Questions),
		CanCheck:      session.CanCheck(),
		CanFinish:     session.CanFinish(),
		CanRetake:     session.CanRetake(),
		IsLast:        session.IsLast(),
		AttemptID:     ps.attemptID,
		AttemptSaved:  ps.saved,
		NextStepReady: ps.nextStepReady,
		Warnings:      ps.warnings,
		History:       ps.history,
	}

	answers := make(map[string]models.AnswerSnapshot)
	for _, snap := range session.Answers().Snapshot(q.Questions) {
		answers[snap.QuestionID] = snap
	}

	if result, ok := session.CurrentResult(); ok {
		view.Result = &result
	}
	checked := phase == quiz.PhaseCompleted || (phase == quiz.PhaseFeed && session.Reviewing())
	if checked {
		view.Results = session.Results()
	}
	if phase == quiz.PhaseCompleted {
		var grade *quiz.GradeRecord
		if ps.history != nil {
			grade = quiz.GradeFromTrend(ps.history.Trend)
		}
		outcome := session.Outcome(grade)
		view.Outcome = &outcome
	}

	view.Questions = make([]QuestionView, len(q.Questions))
	for i, question := range q.Questions {
		qv := QuestionView{
			ID:            question.ID,
			Type:          question.Type,
			QuestionText:  question.QuestionText,
			Options:       question.Options,
			DisplayNumber: gaps.DisplayNumber(q.Questions, i),
			DisplayLabel:  gaps.DisplayLabel(q.Questions, i),
			Items:         gaps.CountItems(question),
			Complete:      session.IsComplete(question.ID),
			MediaURL:      question.MediaURL,
			ImageURL:      question.ImageURL,
			AudioURL:      question.AudioURL,
		}
		if snap, ok := answers[question.ID]; ok {
			qv.Answer = &snap
		}
		if question.Type.IsGapped() {
			qv.Segments = gaps.Segments(question.GapSource())
		}
		if question.Type == models.Matching {
			qv.LeftItems = make([]string, len(question.MatchingPairs))
			for j, pair := range question.MatchingPairs {
				qv.LeftItems[j] = pair.Left
			}
			for _, idx := range session.DisplayOrder(question.ID) {
				qv.RightItems = append(qv.RightItems, MatchingItem{Index: idx, Text: question.MatchingPairs[idx].Right})
			}
		}
		if gate, ok := ps.gates[question.ID]; ok {
			snapshot := gate.Snapshot()
			qv.Audio = &snapshot
		}
		if checked || (view.Result != nil && i == session.Current()) {
			qv.Explanation = question.Explanation
		}
		view.Questions[i] = qv
	}

	return view
}
