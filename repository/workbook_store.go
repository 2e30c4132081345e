package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cluesbot/models"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	workbookStore = "workbook"

	// DefaultWorkbookSheet is the sheet holding submission rows
	DefaultWorkbookSheet = "Submissions"
)

// WorkbookStore keeps records as rows of an xlsx sheet under a header row.
// One mutex serialises the existence check and the append, so a key is
// written at most once by this process.
type WorkbookStore struct {
	path  string
	sheet string

	mu sync.RWMutex
}

// NewWorkbookStore creates a store backed by the workbook at path
func NewWorkbookStore(path, sheet string) (*WorkbookStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &models.ConfigError{
			Store:  workbookStore,
			Detail: "WORKBOOK_PATH is empty",
			Err:    models.ErrStoreNotConfigured,
		}
	}
	if sheet == "" {
		sheet = DefaultWorkbookSheet
	}
	return &WorkbookStore{path: path, sheet: sheet}, nil
}

// sheetView is the decoded content of the submissions sheet
type sheetView struct {
	header map[string]int
	rows   [][]string
}

func (v *sheetView) hasHeader() bool {
	return len(v.header) > 0
}

func (v *sheetView) cell(row []string, header string) string {
	idx, ok := v.header[header]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (v *sheetView) requireColumns(headers ...string) error {
	for _, h := range headers {
		if _, ok := v.header[h]; !ok {
			return models.NewMissingColumnError(workbookStore, h)
		}
	}
	return nil
}

// EnsureSchema writes the header row when the sheet is empty and validates it otherwise
func (s *WorkbookStore) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	view, err := s.read(f)
	if err != nil {
		return err
	}
	if view.hasHeader() {
		return view.requireColumns(models.RecordHeaders()...)
	}

	if err := s.writeHeader(f); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":  s.path,
		"sheet": s.sheet,
	}).Info("Initialised workbook header row")
	return s.save(f)
}

// Exists reports whether a row is stored for the date and player
func (s *WorkbookStore) Exists(ctx context.Context, date models.PuzzleDate, playerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, err := s.load()
	if err != nil {
		return false, err
	}
	return view.contains(date, playerID)
}

// Append writes record as a new row unless its key is already present
func (s *WorkbookStore) Append(ctx context.Context, record *models.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	view, err := s.read(f)
	if err != nil {
		return false, err
	}
	if !view.hasHeader() {
		if err := s.writeHeader(f); err != nil {
			return false, err
		}
		if view, err = s.read(f); err != nil {
			return false, err
		}
	}

	taken, err := view.contains(record.PuzzleDate, record.PlayerID)
	if err != nil {
		return false, err
	}
	if taken {
		return false, nil
	}
	if err := view.requireColumns(models.RecordHeaders()...); err != nil {
		return false, err
	}

	// Cells follow the sheet's header order, which may differ from ours
	width := 0
	for _, idx := range view.header {
		if idx+1 > width {
			width = idx + 1
		}
	}
	cells := make([]interface{}, width)
	for i := range cells {
		cells[i] = ""
	}
	values := record.Values()
	for i, column := range models.RecordColumns {
		cells[view.header[column.Header]] = values[i]
	}

	axis, err := excelize.CoordinatesToCellName(1, len(view.rows)+1)
	if err != nil {
		return false, fmt.Errorf("failed to address workbook row: %w", err)
	}
	if err := f.SetSheetRow(s.sheet, axis, &cells); err != nil {
		return false, fmt.Errorf("failed to write workbook row %s: %w", record.Key(), err)
	}
	if err := s.save(f); err != nil {
		return false, err
	}
	return true, nil
}

// All decodes every data row into a record. A missing workbook yields no records.
func (s *WorkbookStore) All(ctx context.Context) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view, err := s.load()
	if err != nil {
		return nil, err
	}
	if !view.hasHeader() {
		return nil, nil
	}
	if err := view.requireColumns(models.RecordHeaders()...); err != nil {
		return nil, err
	}

	records := make([]*models.Record, 0, len(view.rows))
	for _, row := range view.rows[1:] {
		if len(row) == 0 {
			continue
		}
		records = append(records, view.decode(row))
	}
	return records, nil
}

func (v *sheetView) contains(date models.PuzzleDate, playerID string) (bool, error) {
	if !v.hasHeader() {
		return false, nil
	}
	if err := v.requireColumns("puzzleDate", "playerId"); err != nil {
		return false, err
	}
	for _, row := range v.rows[1:] {
		if v.cell(row, "puzzleDate") == string(date) && v.cell(row, "playerId") == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (v *sheetView) decode(row []string) *models.Record {
	record := &models.Record{
		PuzzleDate:      models.PuzzleDate(v.cell(row, "puzzleDate")),
		Difficulty:      v.cell(row, "difficulty"),
		PlayerID:        v.cell(row, "playerId"),
		Username:        v.cell(row, "username"),
		DisplayName:     v.cell(row, "displayName"),
		TimeSeconds:     optionalCellInt(v.cell(row, "timeSeconds")),
		TimeBandMinutes: optionalCellInt(v.cell(row, "timeBandMinutes")),
		Greens:          cellInt(v.cell(row, "greens")),
		Clues:           cellInt(v.cell(row, "clues")),
		Retries:         cellInt(v.cell(row, "retries")),
		QualityScore:    cellInt(v.cell(row, "qualityScore")),
		SpeedScore:      optionalCellInt(v.cell(row, "speedScore")),
		BaseScore:       cellInt(v.cell(row, "baseScore")),
		TotalScore:      cellInt(v.cell(row, "totalScore")),
	}
	if m, err := strconv.ParseFloat(v.cell(row, "difficultyMultiplier"), 64); err == nil {
		record.DifficultyMultiplier = m
	}
	if ts, err := time.Parse(time.RFC3339, v.cell(row, "submittedAt")); err == nil {
		record.SubmittedAt = ts.UTC()
	}
	return record
}

// cellInt reads a numeric cell, tolerating the "12.0" form some editors write
func cellInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func optionalCellInt(s string) *int {
	if s == "" {
		return nil
	}
	n := cellInt(s)
	return &n
}

// load reads the sheet, treating a missing file as an empty sheet
func (s *WorkbookStore) load() (*sheetView, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return &sheetView{}, nil
	}
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.read(f)
}

func (s *WorkbookStore) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	return f, nil
}

func (s *WorkbookStore) read(f *excelize.File) (*sheetView, error) {
	idx, err := f.GetSheetIndex(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", s.sheet, err)
	}
	if idx < 0 {
		return &sheetView{}, nil
	}

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", s.sheet, err)
	}

	view := &sheetView{rows: rows}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return view, nil
	}
	view.header = make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if h = strings.TrimSpace(h); h != "" {
			view.header[h] = i
		}
	}
	return view, nil
}

func (s *WorkbookStore) writeHeader(f *excelize.File) error {
	idx, err := f.GetSheetIndex(s.sheet)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %q: %w", s.sheet, err)
	}
	if idx < 0 {
		if idx, err = f.NewSheet(s.sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", s.sheet, err)
		}
		f.SetActiveSheet(idx)
	}

	headers := models.RecordHeaders()
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(s.sheet, "A1", &cells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	return nil
}

func (s *WorkbookStore) save(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}
