// Package survey reads field survey files into profile record tables.
package survey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/chrissnell/streamprofile/pkg/profile"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
var ErrUnsupportedFormat = errors.New("unsupported survey format")

// Reader converts survey sheets into record tables. Headers are renamed
// through the column relations; only standard profile columns are kept.
type Reader struct {
	columns map[string]string
	sheet   string
	logger  *zap.SugaredLogger
}

// NewReader creates a reader. columns maps a file header to a standard
// column name; sheet selects the worksheet of .xlsx files.
func NewReader(columns map[string]string, sheet string, logger *zap.SugaredLogger) *Reader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Reader{
		columns: columns,
		sheet:   sheet,
		logger:  logger,
	}
}

// ReadFile reads a .csv or .xlsx survey
func (r *Reader) ReadFile(path string) (*profile.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return r.ReadCSV(f)
	case ".xlsx", ".xlsm":
		return r.ReadXLSX(path)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// ReadCSV reads a comma separated survey with a header row
func (r *Reader) ReadCSV(in io.Reader) (*profile.Table, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return r.fromRecords(records)
}

// ReadXLSX reads a survey worksheet
func (r *Reader) ReadXLSX(path string) (*profile.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s has no worksheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	r.logger.Debugw("read survey sheet", "file", path, "sheet", sheet, "rows", len(rows))

	return r.fromRecords(rows)
}

func (r *Reader) fromRecords(records [][]string) (*profile.Table, error) {
	if len(records) == 0 {
		return nil, errors.New("survey has no header row")
	}

	// position of each kept column in the file
	keep := make(map[string]int)
	for i, header := range records[0] {
		header = strings.TrimSpace(header)
		name := header
		if mapped, ok := r.columns[header]; ok {
			name = mapped
		}
		if !standardColumn(name) {
			r.logger.Debugw("skipping survey column", "header", header)
			continue
		}
		if _, dup := keep[name]; dup {
			return nil, fmt.Errorf("survey maps more than one header to %q", name)
		}
		keep[name] = i
	}

	columns := make(map[string][]float64, len(keep))
	for name := range keep {
		columns[name] = []float64{}
	}

	for line, record := range records[1:] {
		if blank(record) {
			continue
		}
		for name, i := range keep {
			cell := ""
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			v, err := parseCell(name, cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", line+2, name, err)
			}
			columns[name] = append(columns[name], v)
		}
	}

	return profile.NewTable(columns)
}

// standardColumn reports whether name is one of the record table columns
func standardColumn(name string) bool {
	switch name {
	case profile.ColX, profile.ColY, profile.ColThalweg, profile.ColStation:
		return true
	}
	for _, fill := range profile.FillColumns {
		if name == fill {
			return true
		}
	}
	return profile.Morphology(name).Known()
}

// parseCell converts a cell. Empty cells are missing. Tag columns also
// accept marker words such as "x" or "yes".
func parseCell(name, cell string) (float64, error) {
	if cell == "" {
		return profile.Missing, nil
	}

	if profile.Morphology(name).Known() {
		switch strings.ToLower(cell) {
		case "x", "y", "yes", "true":
			return 1, nil
		case "n", "no", "false":
			return profile.Missing, nil
		}
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
