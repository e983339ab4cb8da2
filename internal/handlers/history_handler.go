package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type HistoryHandler struct {
	BaseHandler
	historyService services.HistoryService
	exportService  services.ExportService
}

func NewHistoryHandler(historyService services.HistoryService, exportService services.ExportService, logger utils.Logger) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler:    NewBaseHandler(logger),
		historyService: historyService,
		exportService:  exportService,
	}
}

// GetAttempts returns the calling student's attempts on a step with the trend
// @Summary Attempt history
// @Tags history
// @Produce json
// @Param step_id path string true "Step ID"
// @Success 200 {object} SuccessResponse{data=services.HistorySummary}
// @Router /steps/{step_id}/attempts [get]
func (h *HistoryHandler) GetAttempts(c *gin.Context) {
	stepID, ok := h.parseStringParam(c, "step_id")
	if !ok {
		return
	}

	summary, err := h.historyService.Summary(c.Request.Context(), stepID, studentID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempt history retrieved", summary)
}

// ExportAttempts downloads the history as an xlsx workbook
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /steps/{step_id}/attempts/export [get]
func (h *HistoryHandler) ExportAttempts(c *gin.Context) {
	stepID, ok := h.parseStringParam(c, "step_id")
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting attempt history", "step_id", stepID)

	data, err := h.exportService.ExportAttempts(c.Request.Context(), stepID, studentID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attempts_%s.xlsx", stepID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GradeAttempt records a manual grade
// @Summary Grade attempt
// @Tags grading
// @Accept json
// @Produce json
// @Param X-Grader-ID header string true "Grader ID"
// @Param attempt_id path uint true "Attempt ID"
// @Param grade body services.GradeAttemptRequest true "Grade"
// @Success 200 {object} SuccessResponse{data=models.QuizAttempt}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/grade [put]
func (h *HistoryHandler) GradeAttempt(c *gin.Context) {
	attemptID, ok := h.parseIDParam(c, "attempt_id")
	if !ok {
		return
	}

	var req services.GradeAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Grading attempt", "attempt_id", attemptID, "grader_id", graderID(c))

	attempt, err := h.historyService.Grade(c.Request.Context(), attemptID, graderID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempt graded", attempt)
}
