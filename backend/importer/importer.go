// Package importer loads glossary entries in bulk from spreadsheets.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"readquest/backend/models"
	"readquest/backend/utils"

	"github.com/xuri/excelize/v2"
)

// TermStore is where imported terms end up.
type TermStore interface {
	UpsertTerm(ctx context.Context, term *models.GlossaryTerm) (bool, error)
}

// ImportConfig maps spreadsheet columns to glossary fields.
type ImportConfig struct {
	TermColumn       string
	DefinitionColumn string
	CategoryColumn   string
	ExampleColumn    string
	ChapterColumn    string
	SheetName        string // empty means the first sheet
	StartRow         int    // 1-based
	DefaultCategory  string
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TermColumn:       "A",
		DefinitionColumn: "B",
		CategoryColumn:   "C",
		ExampleColumn:    "D",
		ChapterColumn:    "E",
		StartRow:         2,
		DefaultCategory:  "general",
	}
}

type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")
	ErrUnreadableFile    = errors.New("unreadable file")
)

type Importer struct {
	store TermStore
	cfg   ImportConfig
	log   *utils.Logger
}

func New(store TermStore, cfg ImportConfig, log *utils.Logger) *Importer {
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}
	return &Importer{store: store, cfg: cfg, log: log.With("component", "GlossaryImporter")}
}

// Import reads rows from r. The format is picked from the file name's
// extension. Row-level problems are collected in the result; only unreadable
// input or a failing store aborts the import.
func (im *Importer) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = im.excelRows(r)
	case ".csv":
		rows, err = csvRows(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < im.cfg.StartRow {
			continue
		}
		if blank(row) {
			result.Skipped++
			continue
		}
		result.TotalProcessed++

		term, err := im.termFromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		created, err := im.store.UpsertTerm(ctx, term)
		if err != nil {
			return result, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	im.log.Info("glossary import finished",
		"file", filename,
		"processed", result.TotalProcessed,
		"created", result.Created,
		"updated", result.Updated,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (im *Importer) excelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open Excel file: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheet := im.cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: get rows: %v", ErrUnreadableFile, err)
	}
	return rows, nil
}

func csvRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read CSV: %v", ErrUnreadableFile, err)
	}
	return rows, nil
}

func (im *Importer) termFromRow(row []string) (*models.GlossaryTerm, error) {
	term := &models.GlossaryTerm{
		Term:       cell(row, im.cfg.TermColumn),
		Definition: cell(row, im.cfg.DefinitionColumn),
		Category:   cell(row, im.cfg.CategoryColumn),
		Example:    cell(row, im.cfg.ExampleColumn),
	}
	if term.Term == "" {
		return nil, errors.New("term cannot be empty")
	}
	if term.Definition == "" {
		return nil, errors.New("definition cannot be empty")
	}
	if term.Category == "" {
		term.Category = im.cfg.DefaultCategory
	}
	if raw := cell(row, im.cfg.ChapterColumn); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid chapter reference %q", raw)
		}
		term.ChapterRef = &n
	}
	return term, nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx, err := excelize.ColumnNameToNumber(column)
	if err != nil || idx > len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx-1])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
