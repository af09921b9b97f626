package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

const (
	QuestionsSheet = "Questions"
	LegendSheet    = "Legend"

	tokenSeparator = "|"
)

var (
	questionColumns = []string{"question", "answer", "tokens", "legends", "display_pref"}
	legendColumns   = []string{"id", "name", "color"}
)

// ImportService turns authoring spreadsheets into question sets and back.
type ImportService interface {
	ParseQSetFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error)
	ParseQSetFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error)
	ExportQSetToExcel(ctx context.Context, qset models.QSet) ([]byte, error)
}

type ImportResult struct {
	QSet         models.QSet      `json:"qset"`
	TotalRows    int              `json:"total_rows"`
	SuccessCount int              `json:"success_count"`
	ErrorCount   int              `json:"error_count"`
	Errors       []ImportRowError `json:"errors,omitempty"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type importService struct {
	logger *slog.Logger
}

func NewImportService(logger *slog.Logger) ImportService {
	return &importService{logger: logger}
}

// ===== IMPORT OPERATIONS =====

func (s *importService) ParseQSetFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnsupportedFormat, err)
	}
	defer f.Close()

	questionsSheet, legendSheet := "", ""
	for _, name := range f.GetSheetList() {
		switch {
		case strings.EqualFold(name, QuestionsSheet):
			questionsSheet = name
		case strings.EqualFold(name, LegendSheet):
			legendSheet = name
		}
	}
	if questionsSheet == "" {
		return nil, ErrImportMissingSheet
	}

	rows, err := f.GetRows(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	result, err := s.parseQuestionRows(rows)
	if err != nil {
		return nil, err
	}

	if legendSheet != "" {
		legendRows, err := f.GetRows(legendSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read legend rows: %w", err)
		}
		result.QSet.Options.Legend = parseLegendRows(legendRows)
	}

	s.logger.InfoContext(ctx, "Excel question set import completed",
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
		"legend_entries", len(result.QSet.Options.Legend))

	return result, nil
}

func (s *importService) ParseQSetFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnsupportedFormat, err)
	}

	result, err := s.parseQuestionRows(rows)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "CSV question set import completed",
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)

	return result, nil
}

func (s *importService) parseQuestionRows(rows [][]string) (*ImportResult, error) {
	if len(rows) < 2 {
		return nil, NewValidationError("file", "question sheet must have a header row and at least one data row", len(rows))
	}

	headerMap := headerIndex(rows[0])
	for _, required := range []string{"question", "answer"} {
		if _, ok := headerMap[required]; !ok {
			return nil, NewValidationError("file", fmt.Sprintf("missing required column %q", required), rows[0])
		}
	}

	result := &ImportResult{TotalRows: len(rows) - 1}
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			result.TotalRows--
			continue
		}
		item, rowErrors := parseQuestionRow(row, headerMap, i+2)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorCount++
			continue
		}
		result.QSet.Items = append(result.QSet.Items, item)
		result.SuccessCount++
	}

	if result.SuccessCount == 0 {
		return nil, NewValidationError("file", "no valid question rows", result.Errors)
	}
	if result.QSet.Options.Legend == nil {
		result.QSet.Options.Legend = []models.LegendEntry{}
	}
	return result, nil
}

func parseQuestionRow(row []string, headerMap map[string]int, rowNumber int) (models.QSetItem, []ImportRowError) {
	var errs []ImportRowError
	addError := func(field, message string) {
		errs = append(errs, ImportRowError{Row: rowNumber, Field: field, Message: message})
	}

	question := cell(row, headerMap, "question")
	if question == "" {
		addError("question", "question text is required")
	}
	answer := cell(row, headerMap, "answer")
	if answer == "" {
		addError("answer", "answer text is required")
	}

	values := splitCell(cell(row, headerMap, "tokens"))
	legends := splitLegends(cell(row, headerMap, "legends"))
	if len(legends) > len(values) {
		addError("legends", fmt.Sprintf("%d legends given for %d tokens", len(legends), len(values)))
	}

	var displayPref datatypes.JSON
	if raw := cell(row, headerMap, "display_pref"); raw != "" {
		if json.Valid([]byte(raw)) {
			displayPref = datatypes.JSON(raw)
		} else {
			encoded, _ := json.Marshal(raw)
			displayPref = datatypes.JSON(encoded)
		}
	}

	if len(errs) > 0 {
		return models.QSetItem{}, errs
	}

	phrase := make([]models.QSetToken, len(values))
	for i, value := range values {
		phrase[i] = models.QSetToken{Value: value}
		if i < len(legends) {
			phrase[i].Legend = legends[i]
		}
	}

	return models.QSetItem{
		Questions: []models.QSetText{{Text: question}},
		Answers: []models.QSetAnswer{{
			Text:    answer,
			Options: models.QSetAnswerOptions{Phrase: phrase},
		}},
		Options: models.QSetItemOptions{DisplayPref: displayPref},
	}, nil
}

// parseLegendRows keeps every non-empty column of a legend row as a JSON
// object keyed by its header.
func parseLegendRows(rows [][]string) []models.LegendEntry {
	legend := []models.LegendEntry{}
	if len(rows) < 2 {
		return legend
	}

	headers := rows[0]
	for _, row := range rows[1:] {
		entry := make(map[string]string)
		for i, value := range row {
			value = strings.TrimSpace(value)
			if i >= len(headers) || value == "" {
				continue
			}
			entry[strings.ToLower(strings.TrimSpace(headers[i]))] = value
		}
		if len(entry) == 0 {
			continue
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		legend = append(legend, datatypes.JSON(encoded))
	}
	return legend
}

// ===== EXPORT OPERATIONS =====

// ExportQSetToExcel writes the first question and answer of each item in the
// layout ParseQSetFromExcel reads.
func (s *importService) ExportQSetToExcel(ctx context.Context, qset models.QSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", QuestionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeRow(f, QuestionsSheet, 1, questionColumns); err != nil {
		return nil, err
	}

	for i, item := range qset.Items {
		row := make([]string, len(questionColumns))
		if len(item.Questions) > 0 {
			row[0] = item.Questions[0].Text
		}
		if len(item.Answers) > 0 {
			row[1] = item.Answers[0].Text
			values := make([]string, len(item.Answers[0].Options.Phrase))
			legends := make([]string, len(values))
			for j, token := range item.Answers[0].Options.Phrase {
				values[j] = token.Value
				legends[j] = token.Legend
			}
			row[2] = strings.Join(values, tokenSeparator)
			row[3] = strings.TrimRight(strings.Join(legends, tokenSeparator), tokenSeparator)
		}
		row[4] = string(item.Options.DisplayPref)
		if err := writeRow(f, QuestionsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if len(qset.Options.Legend) > 0 {
		if _, err := f.NewSheet(LegendSheet); err != nil {
			return nil, fmt.Errorf("failed to create legend sheet: %w", err)
		}
		if err := writeRow(f, LegendSheet, 1, legendColumns); err != nil {
			return nil, err
		}
		for i, entry := range qset.Options.Legend {
			var fields map[string]interface{}
			if err := json.Unmarshal(entry, &fields); err != nil {
				return nil, NewValidationError(fmt.Sprintf("legend[%d]", i), "legend entry must be a JSON object", string(entry))
			}
			row := make([]string, len(legendColumns))
			for j, column := range legendColumns {
				if value, ok := fields[column]; ok {
					row[j] = fmt.Sprint(value)
				}
			}
			if err := writeRow(f, LegendSheet, i+2, row); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Question set exported to Excel", "items", len(qset.Items))
	return buf.Bytes(), nil
}

// ===== HELPERS =====

func writeRow(f *excelize.File, sheet string, rowNumber int, values []string) error {
	for i, value := range values {
		name, err := excelize.CoordinatesToCellName(i+1, rowNumber)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", name, err)
		}
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	headerMap := make(map[string]int, len(headers))
	for i, header := range headers {
		key := strings.ToLower(strings.TrimSpace(header))
		key = strings.ReplaceAll(key, " ", "_")
		headerMap[key] = i
	}
	return headerMap
}

func cell(row []string, headerMap map[string]int, column string) string {
	i, ok := headerMap[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitCell(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, tokenSeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitLegends keeps empty positions so legends stay aligned with tokens.
func splitLegends(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, tokenSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isBlankRow(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}
