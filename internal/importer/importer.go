// Package importer turns supplier files (spreadsheets, CSV exports and NF-e
// XML) into batch line items. A file with any malformed row is rejected as
// a whole.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file has no items")
)

// Item is one parsed row. Row is the 1-based row in the source (sheet row,
// CSV line or NF-e item number).
type Item struct {
	Row              int
	Code             string
	Description      string
	Quantity         int
	AcquisitionValue decimal.Decimal
	Freight          decimal.Decimal
	ContractDuration int
	Margin           *decimal.Decimal
}

// Document is a parsed file. Header fields are only filled by formats that
// carry them (NF-e).
type Document struct {
	Format     model.SourceFormat
	Code       string
	Supplier   string
	IssueDate  *time.Time
	TotalValue *decimal.Decimal
	Items      []Item
}

type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

type ParseError struct {
	Rows []RowError
}

func (e *ParseError) Error() string {
	if len(e.Rows) == 0 {
		return "import failed"
	}
	first := e.Rows[0]
	msg := fmt.Sprintf("row %d", first.Row)
	if first.Column != "" {
		msg += " (" + first.Column + ")"
	}
	msg += ": " + first.Message
	if extra := len(e.Rows) - 1; extra > 0 {
		msg += fmt.Sprintf(" and %d more", extra)
	}
	return msg
}

func (e *ParseError) add(row int, column, format string, args ...interface{}) {
	e.Rows = append(e.Rows, RowError{Row: row, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (e *ParseError) orNil() error {
	if len(e.Rows) == 0 {
		return nil
	}
	return e
}

// DetectFormat picks the parser from the file extension, falling back to
// sniffing the content.
func DetectFormat(fileName string, content []byte) (model.SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return model.SourceFormatXLSX, nil
	case ".csv", ".txt":
		return model.SourceFormatCSV, nil
	case ".xml":
		return model.SourceFormatNFe, nil
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(content, utf8BOM))
	switch {
	case bytes.HasPrefix(trimmed, []byte("PK")):
		return model.SourceFormatXLSX, nil
	case bytes.HasPrefix(trimmed, []byte("<")):
		return model.SourceFormatNFe, nil
	case len(trimmed) > 0:
		return model.SourceFormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
}

func Parse(fileName string, content []byte) (*Document, error) {
	format, err := DetectFormat(fileName, content)
	if err != nil {
		return nil, err
	}

	var doc *Document
	switch format {
	case model.SourceFormatXLSX:
		doc, err = ParseXLSX(content)
	case model.SourceFormatCSV:
		doc, err = ParseCSV(content)
	case model.SourceFormatNFe:
		doc, err = ParseNFe(content)
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, ErrEmptyFile
	}
	return doc, nil
}

// checkDuplicates reports every code that already appeared on an earlier row.
func checkDuplicates(items []Item, perr *ParseError) {
	seen := make(map[string]int, len(items))
	for _, item := range items {
		key := strings.ToUpper(item.Code)
		if first, ok := seen[key]; ok {
			perr.add(item.Row, "codigo", "duplicate code %q (first on row %d)", item.Code, first)
			continue
		}
		seen[key] = item.Row
	}
}
