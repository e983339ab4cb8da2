package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const (
	attemptsSheet = "Attempts"
	summarySheet  = "Summary"
)

type exportService struct {
	history HistoryService
	logger  *slog.Logger
}

func NewExportService(history HistoryService, logger *slog.Logger) ExportService {
	return &exportService{
		history: history,
		logger:  logger,
	}
}

// ExportAttempts renders a student's history on a step as an xlsx workbook
// with one row per attempt and a summary sheet.
func (s *exportService) ExportAttempts(ctx context.Context, stepID, studentID string) ([]byte, error) {
	s.logger.Info("Exporting attempt history", "step_id", stepID, "student_id", studentID)

	summary, err := s.history.Summary(ctx, stepID, studentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(attemptsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []interface{}{
		"Attempt", "Completed At", "Score", "Total", "Percentage", "Passed", "Graded", "Feedback",
	}
	if err := setRow(f, attemptsSheet, 1, headers); err != nil {
		return nil, err
	}

	for i, attempt := range summary.Attempts {
		feedback := ""
		if attempt.Feedback != nil {
			feedback = *attempt.Feedback
		}
		row := []interface{}{
			i + 1,
			attempt.CompletedAt.Format("2006-01-02 15:04:05"),
			attempt.Score,
			attempt.TotalQuestions,
			attempt.Percentage,
			yesNo(attempt.Passed),
			yesNo(attempt.IsGraded),
			feedback,
		}
		if err := setRow(f, attemptsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Step", stepID},
		{"Student", studentID},
		{"Attempts", len(summary.Attempts)},
	}
	if summary.Trend.Latest != nil {
		rows = append(rows, []interface{}{"Latest Percentage", summary.Trend.Latest.Percentage})
	}
	if summary.Trend.Delta != nil {
		rows = append(rows, []interface{}{"Change From Previous", *summary.Trend.Delta})
	}
	if summary.Stats != nil {
		rows = append(rows,
			[]interface{}{"Best Percentage", summary.Stats.BestPercentage},
			[]interface{}{"Average Percentage", summary.Stats.AveragePercent},
			[]interface{}{"Pass Rate", summary.Stats.PassRate},
		)
	}
	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
