package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type column int

const (
	colCode column = iota
	colDescription
	colQuantity
	colAcquisition
	colFreight
	colContract
	colMargin
)

var columnNames = map[column]string{
	colCode:        "codigo",
	colDescription: "descricao",
	colQuantity:    "quantidade",
	colAcquisition: "valor_aquisicao",
	colFreight:     "frete",
	colContract:    "prazo_contrato",
	colMargin:      "margem",
}

var headerAliases = map[string]column{
	"codigo":           colCode,
	"code":             colCode,
	"cod":              colCode,
	"descricao":        colDescription,
	"description":      colDescription,
	"produto":          colDescription,
	"quantidade":       colQuantity,
	"qtd":              colQuantity,
	"quantity":         colQuantity,
	"valoraquisicao":   colAcquisition,
	"valorcompra":      colAcquisition,
	"custo":            colAcquisition,
	"valorunitario":    colAcquisition,
	"acquisitionvalue": colAcquisition,
	"frete":            colFreight,
	"freight":          colFreight,
	"prazocontrato":    colContract,
	"meses":            colContract,
	"contractduration": colContract,
	"margem":           colMargin,
	"margin":           colMargin,
}

func ParseXLSX(content []byte) (*Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open workbook: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return parseTable(model.SourceFormatXLSX, rows)
}

func ParseCSV(content []byte) (*Document, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Rows: []RowError{{Row: len(rows) + 1, Message: err.Error()}}}
		}
		rows = append(rows, record)
	}
	return parseTable(model.SourceFormatCSV, rows)
}

func detectDelimiter(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}
	if bytes.Count(header, []byte(";")) >= bytes.Count(header, []byte(",")) && bytes.Contains(header, []byte(";")) {
		return ';'
	}
	return ','
}

func headerKey(raw string) string {
	key := listview.Normalize(raw)
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(key)
}

func parseTable(format model.SourceFormat, rows [][]string) (*Document, error) {
	headerRow := -1
	for i, row := range rows {
		if !blank(row) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, ErrEmptyFile
	}

	perr := &ParseError{}
	index := make(map[column]int)
	for i, cell := range rows[headerRow] {
		col, ok := headerAliases[headerKey(cell)]
		if !ok {
			continue
		}
		if _, dup := index[col]; dup {
			perr.add(headerRow+1, columnNames[col], "column appears more than once")
			continue
		}
		index[col] = i
	}
	for _, required := range []column{colCode, colQuantity, colAcquisition} {
		if _, ok := index[required]; !ok {
			perr.add(headerRow+1, columnNames[required], "required column is missing")
		}
	}
	if err := perr.orNil(); err != nil {
		return nil, err
	}

	doc := &Document{Format: format}
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		line := i + 1
		cell := func(col column) string {
			pos, ok := index[col]
			if !ok || pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		item := Item{Row: line, Code: cell(colCode), Description: cell(colDescription)}
		if item.Code == "" {
			perr.add(line, columnNames[colCode], "code is required")
		}

		qty, err := ParseInt(cell(colQuantity))
		switch {
		case err != nil:
			perr.add(line, columnNames[colQuantity], "%v", err)
		case qty <= 0:
			perr.add(line, columnNames[colQuantity], "quantity must be positive")
		default:
			item.Quantity = qty
		}

		if value, err := ParseNumber(cell(colAcquisition)); err != nil {
			perr.add(line, columnNames[colAcquisition], "%v", err)
		} else if value.IsNegative() {
			perr.add(line, columnNames[colAcquisition], "value must not be negative")
		} else {
			item.AcquisitionValue = value
		}

		if raw := cell(colFreight); raw != "" {
			if value, err := ParseNumber(raw); err != nil || value.IsNegative() {
				perr.add(line, columnNames[colFreight], "invalid freight %q", raw)
			} else {
				item.Freight = value
			}
		}

		if raw := cell(colContract); raw != "" {
			if months, err := ParseInt(raw); err != nil || months <= 0 {
				perr.add(line, columnNames[colContract], "invalid contract duration %q", raw)
			} else {
				item.ContractDuration = months
			}
		}

		if raw := strings.TrimSuffix(cell(colMargin), "%"); raw != "" {
			value, err := ParseNumber(raw)
			if err == nil {
				err = model.ValidateMargin(value)
			}
			if err != nil {
				perr.add(line, columnNames[colMargin], "invalid margin %q", raw)
			} else {
				item.Margin = &value
			}
		}

		doc.Items = append(doc.Items, item)
	}

	checkDuplicates(doc.Items, perr)
	if err := perr.orNil(); err != nil {
		return nil, err
	}
	return doc, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseNumber accepts plain ("1234.56") and Brazilian ("R$ 1.234,56")
// notation.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("value is required")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return decimal.Zero, fmt.Errorf("invalid number %q", raw)
		}
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", raw)
	}
	return value, nil
}

// ParseInt reads whole quantities. A single dot followed by exactly three
// digits ("1.000") is Brazilian thousands grouping, not a decimal point.
func ParseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if thousandsGrouped(s) {
		s = strings.Replace(s, ".", "", 1)
	}
	value, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if !value.Equal(value.Truncate(0)) {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	if value.Abs().GreaterThan(maxWholeNumber) {
		return 0, fmt.Errorf("%q is out of range", raw)
	}
	return int(value.IntPart()), nil
}

var maxWholeNumber = decimal.NewFromInt(math.MaxInt32)

func thousandsGrouped(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if strings.Contains(s, ",") || strings.Count(s, ".") != 1 {
		return false
	}
	dot := strings.Index(s, ".")
	if dot < 1 || dot > 3 || len(s)-dot-1 != 3 {
		return false
	}
	for i, r := range s {
		if i != dot && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
