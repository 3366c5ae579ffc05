package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dukkan/backoffice/internal/application/trade"
	"github.com/dukkan/backoffice/internal/domain/shared"
)

var (
	// ErrEmptyFile indicates the uploaded file has no content
	ErrEmptyFile = shared.NewDomainError("EMPTY_FILE", "Uploaded file is empty")
	// ErrInvalidEncoding indicates the file is not valid UTF-8
	ErrInvalidEncoding = shared.NewDomainError("INVALID_ENCODING", "File must be UTF-8 encoded")
	// ErrInvalidColumn indicates a column letter could not be parsed
	ErrInvalidColumn = shared.NewDomainError("INVALID_COLUMN", "Column must be a spreadsheet letter like A or BC")
)

// ReturnsColumns addresses the interesting cells of a returns sheet by
// spreadsheet column letter, the way the carrier exports label them.
// Either Cost alone, or Charged and Refunded whose difference yields the
// cost, should be set; Cost wins when both are present.
type ReturnsColumns struct {
	Phone    string
	Cost     string
	Charged  string
	Refunded string
}

// DefaultReturnsColumns matches the layout of the carrier's standard export
func DefaultReturnsColumns() ReturnsColumns {
	return ReturnsColumns{Phone: "A", Charged: "D", Refunded: "E"}
}

// ReturnsCSVReader parses an uploaded returns sheet into return records
type ReturnsCSVReader struct {
	columns   ReturnsColumns
	hasHeader bool
}

// ReaderOption is a functional option for ReturnsCSVReader configuration
type ReaderOption func(*ReturnsCSVReader)

// WithColumns overrides the column layout
func WithColumns(cols ReturnsColumns) ReaderOption {
	return func(r *ReturnsCSVReader) {
		r.columns = cols
	}
}

// WithoutHeader treats the first row as data
func WithoutHeader() ReaderOption {
	return func(r *ReturnsCSVReader) {
		r.hasHeader = false
	}
}

// NewReturnsCSVReader creates a reader with the default column layout
func NewReturnsCSVReader(opts ...ReaderOption) *ReturnsCSVReader {
	reader := &ReturnsCSVReader{
		columns:   DefaultReturnsColumns(),
		hasHeader: true,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Parse reads the whole sheet and returns one record per non-empty row.
// Rows whose phone cell is blank are skipped; the reconciler decides what
// counts as a plausible phone.
func (p *ReturnsCSVReader) Parse(r io.Reader) ([]trade.ReturnRecord, error) {
	phoneIdx, err := ColumnIndex(p.columns.Phone)
	if err != nil {
		return nil, err
	}
	costIdx, chargedIdx, refundedIdx := -1, -1, -1
	if p.columns.Cost != "" {
		if costIdx, err = ColumnIndex(p.columns.Cost); err != nil {
			return nil, err
		}
	}
	if p.columns.Charged != "" {
		if chargedIdx, err = ColumnIndex(p.columns.Charged); err != nil {
			return nil, err
		}
	}
	if p.columns.Refunded != "" {
		if refundedIdx, err = ColumnIndex(p.columns.Refunded); err != nil {
			return nil, err
		}
	}

	bufReader := bufio.NewReader(r)
	if err := stripBOM(bufReader); err != nil {
		return nil, err
	}
	if err := validateUTF8(bufReader); err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(bufReader)
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	var records []trade.ReturnRecord
	row := 0
	for {
		fields, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row+1, err)
		}
		row++
		if p.hasHeader && row == 1 {
			continue
		}

		phone := cell(fields, phoneIdx)
		if phone == "" {
			continue
		}

		record := trade.ReturnRecord{
			Phone:    phone,
			Charged:  parseAmount(cell(fields, chargedIdx)),
			Refunded: parseAmount(cell(fields, refundedIdx)),
		}
		if costIdx >= 0 {
			if raw := cell(fields, costIdx); raw != "" {
				if cost, ok := parseFloat(raw); ok {
					record.Cost = &cost
				}
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// ColumnIndex converts a spreadsheet column letter ("A", "Z", "AA") to a
// zero-based index.
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return 0, ErrInvalidColumn
	}
	index := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return 0, ErrInvalidColumn
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1, nil
}

func cell(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// parseAmount reads a money cell, tolerating the comma decimal separator the
// carrier exports use. Unparseable cells count as zero.
func parseAmount(raw string) float64 {
	value, _ := parseFloat(raw)
	return value
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func stripBOM(r *bufio.Reader) error {
	content, err := r.Peek(3)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return nil
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}
