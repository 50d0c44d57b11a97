// Package importer parses editorial content workbooks. Content editors
// deliver topics and questions as an Excel file with one sheet per
// collection; valid rows are applied to the store, invalid rows are reported
// back per row.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/petalhealth/content-service/internal/models"
)

// Sheet names and column layouts. Row 1 is the header row.
const (
	SheetTopics    = "Topics"
	SheetQuestions = "Questions"

	topicColumns    = 6 // id, title, summary, body, category, order
	questionColumns = 5 // id, question, answer, category, order
)

// RowError reports a rejected workbook row.
type RowError struct {
	Sheet string `json:"sheet"`
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Result holds the outcome of parsing a workbook.
type Result struct {
	Topics    []models.Topic    `json:"topics,omitempty"`
	Questions []models.Question `json:"questions,omitempty"`
	Errors    []RowError        `json:"errors,omitempty"`
}

// Parse reads an editorial workbook. A missing sheet is not an error; a
// workbook with neither known sheet is.
func Parse(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	result := &Result{}
	found := 0

	if rows, sheetErr := f.GetRows(SheetTopics); sheetErr == nil {
		found++
		result.Topics = parseTopics(rows, result)
	}
	if rows, sheetErr := f.GetRows(SheetQuestions); sheetErr == nil {
		found++
		result.Questions = parseQuestions(rows, result)
	}

	if found == 0 {
		return nil, fmt.Errorf("workbook has neither a %q nor a %q sheet", SheetTopics, SheetQuestions)
	}
	return result, nil
}

func parseTopics(rows [][]string, result *Result) []models.Topic {
	topics := make([]models.Topic, 0, len(rows))
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		excelRow := i + 1

		topic := models.Topic{
			ID:       cell(row, 0),
			Title:    cell(row, 1),
			Summary:  cell(row, 2),
			Body:     cell(row, 3),
			Category: cell(row, 4),
		}
		order, err := parseOrder(cell(row, 5))
		if err != nil {
			result.Errors = append(result.Errors, RowError{Sheet: SheetTopics, Row: excelRow, Error: err.Error()})
			continue
		}
		topic.Order = order

		if err := topic.Validate(); err != nil {
			result.Errors = append(result.Errors, RowError{Sheet: SheetTopics, Row: excelRow, Error: err.Error()})
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}

func parseQuestions(rows [][]string, result *Result) []models.Question {
	questions := make([]models.Question, 0, len(rows))
	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		excelRow := i + 1

		question := models.Question{
			ID:       cell(row, 0),
			Question: cell(row, 1),
			Answer:   cell(row, 2),
			Category: cell(row, 3),
		}
		order, err := parseOrder(cell(row, 4))
		if err != nil {
			result.Errors = append(result.Errors, RowError{Sheet: SheetQuestions, Row: excelRow, Error: err.Error()})
			continue
		}
		question.Order = order

		if err := question.Validate(); err != nil {
			result.Errors = append(result.Errors, RowError{Sheet: SheetQuestions, Row: excelRow, Error: err.Error()})
			continue
		}
		questions = append(questions, question)
	}
	return questions
}

// cell returns a trimmed cell value, tolerating short rows: excelize omits
// trailing empty cells.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, val := range row {
		if strings.TrimSpace(val) != "" {
			return false
		}
	}
	return true
}

func parseOrder(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	order, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("order must be a whole number, got %q", raw)
	}
	if order < 0 {
		return 0, fmt.Errorf("order must be non-negative, got %d", order)
	}
	return order, nil
}
