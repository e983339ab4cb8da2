package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type ErrorReportHandler struct {
	BaseHandler
	reportService services.ErrorReportService
}

func NewErrorReportHandler(reportService services.ErrorReportService, logger utils.Logger) *ErrorReportHandler {
	return &ErrorReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// ReportError accepts a report about a faulty question. Storage failures do
// not fail the request.
// @Router /question-errors [post]
func (h *ErrorReportHandler) ReportError(c *gin.Context) {
	var req services.QuestionErrorReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	result, err := h.reportService.Report(c.Request.Context(), &req, studentID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusAccepted, "Report received", result)
}

// ListReports lists reports of one question
// @Router /question-errors [get]
func (h *ErrorReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.ListByQuestion(
		c.Request.Context(),
		c.Query("question_id"),
		queryInt(c, "limit", 20),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Reports retrieved", reports)
}
