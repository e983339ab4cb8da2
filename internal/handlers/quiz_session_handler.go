package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-engine/internal/audio"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizSessionHandler struct {
	BaseHandler
	playerService services.QuizPlayerService
}

func NewQuizSessionHandler(playerService services.QuizPlayerService, logger utils.Logger) *QuizSessionHandler {
	return &QuizSessionHandler{
		BaseHandler:   NewBaseHandler(logger),
		playerService: playerService,
	}
}

// OpenSession opens a quiz for the calling student
// @Summary Open quiz session
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Param session body services.OpenSessionRequest true "Quiz content"
// @Success 201 {object} SuccessResponse{data=services.SessionView}
// @Failure 400 {object} ErrorResponse
// @Router /quiz-sessions [post]
func (h *QuizSessionHandler) OpenSession(c *gin.Context) {
	var req services.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Opening quiz session", "step_id", req.Quiz.StepID)

	view, err := h.playerService.Open(c.Request.Context(), &req, studentID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Quiz session opened", view)
}

// GetSession returns the current state of a session
// @Router /quiz-sessions/{id} [get]
func (h *QuizSessionHandler) GetSession(c *gin.Context) {
	sessionID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	view, err := h.playerService.Get(c.Request.Context(), sessionID, studentID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Quiz session retrieved", view)
}

// CloseSession discards a session
// @Router /quiz-sessions/{id} [delete]
func (h *QuizSessionHandler) CloseSession(c *gin.Context) {
	sessionID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	if err := h.playerService.Close(c.Request.Context(), sessionID, studentID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Action returns a handler running one navigation action
// @Router /quiz-sessions/{id}/{action} [post]
func (h *QuizSessionHandler) Action(action quiz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := h.parseStringParam(c, "id")
		if !ok {
			return
		}

		view, err := h.playerService.Act(c.Request.Context(), sessionID, studentID(c), action)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}

		h.RespondWithSuccess(c, http.StatusOK, "Quiz session updated", view)
	}
}

// SubmitAnswer stores one answer edit
// @Summary Answer a question
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body services.AnswerRequest true "Answer edit"
// @Success 200 {object} SuccessResponse{data=services.SessionView}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quiz-sessions/{id}/answers [post]
func (h *QuizSessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	view, err := h.playerService.Answer(c.Request.Context(), sessionID, studentID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer saved", view)
}

// RevealAnswers fills in correct answers when the deployment allows it
// @Router /quiz-sessions/{id}/reveal [post]
func (h *QuizSessionHandler) RevealAnswers(c *gin.Context) {
	sessionID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	view, err := h.playerService.Reveal(c.Request.Context(), sessionID, studentID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answers revealed", view)
}

// AudioCommand forwards a player event to the question's audio gate
// @Router /quiz-sessions/{id}/questions/{question_id}/audio [post]
func (h *QuizSessionHandler) AudioCommand(c *gin.Context) {
	sessionID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}
	questionID, ok := h.parseStringParam(c, "question_id")
	if !ok {
		return
	}

	var cmd audio.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	res, err := h.playerService.Audio(c.Request.Context(), sessionID, studentID(c), questionID, cmd)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Audio command applied", res)
}
