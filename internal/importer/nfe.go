package importer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/model"
)

type nfeInfo struct {
	Ide struct {
		Number   string `xml:"nNF"`
		IssuedAt string `xml:"dhEmi"`
		IssuedOn string `xml:"dEmi"`
	} `xml:"ide"`
	Emitter struct {
		Name string `xml:"xNome"`
	} `xml:"emit"`
	Details []struct {
		Number  int `xml:"nItem,attr"`
		Product struct {
			Code        string `xml:"cProd"`
			Description string `xml:"xProd"`
			Quantity    string `xml:"qCom"`
			UnitValue   string `xml:"vUnCom"`
			Freight     string `xml:"vFrete"`
		} `xml:"prod"`
	} `xml:"det"`
	Total struct {
		Value string `xml:"ICMSTot>vNF"`
	} `xml:"total"`
}

// ParseNFe reads an NF-e, either the signed NFe element or the authorized
// nfeProc envelope.
func ParseNFe(content []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))

	var info *nfeInfo
	for info == nil {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no NFe element", ErrUnsupportedFormat)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed xml: %v", ErrUnsupportedFormat, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "nfeProc":
			var envelope struct {
				Info nfeInfo `xml:"NFe>infNFe"`
			}
			if err := dec.DecodeElement(&envelope, &start); err != nil {
				return nil, fmt.Errorf("%w: malformed xml: %v", ErrUnsupportedFormat, err)
			}
			info = &envelope.Info
		case "NFe":
			var nfe struct {
				Info nfeInfo `xml:"infNFe"`
			}
			if err := dec.DecodeElement(&nfe, &start); err != nil {
				return nil, fmt.Errorf("%w: malformed xml: %v", ErrUnsupportedFormat, err)
			}
			info = &nfe.Info
		default:
			return nil, fmt.Errorf("%w: unexpected root element %s", ErrUnsupportedFormat, start.Name.Local)
		}
	}
	return info.document()
}

func (n *nfeInfo) document() (*Document, error) {
	perr := &ParseError{}
	doc := &Document{
		Format:   model.SourceFormatNFe,
		Code:     strings.TrimSpace(n.Ide.Number),
		Supplier: strings.TrimSpace(n.Emitter.Name),
	}
	if issued, ok := parseIssueDate(n.Ide.IssuedAt, n.Ide.IssuedOn); ok {
		doc.IssueDate = &issued
	}
	if raw := strings.TrimSpace(n.Total.Value); raw != "" {
		total, err := decimal.NewFromString(raw)
		if err != nil {
			perr.add(0, "vNF", "invalid total %q", raw)
		} else {
			doc.TotalValue = &total
		}
	}

	for i, det := range n.Details {
		row := det.Number
		if row == 0 {
			row = i + 1
		}
		prod := det.Product
		item := Item{
			Row:         row,
			Code:        strings.TrimSpace(prod.Code),
			Description: strings.TrimSpace(prod.Description),
		}
		if item.Code == "" {
			perr.add(row, "cProd", "code is required")
		}

		qty, err := decimal.NewFromString(strings.TrimSpace(prod.Quantity))
		switch {
		case err != nil:
			perr.add(row, "qCom", "invalid quantity %q", prod.Quantity)
		case !qty.IsPositive() || !qty.Equal(qty.Truncate(0)):
			perr.add(row, "qCom", "quantity must be a positive whole number")
		default:
			item.Quantity = int(qty.IntPart())
		}

		unit, err := decimal.NewFromString(strings.TrimSpace(prod.UnitValue))
		if err != nil || unit.IsNegative() {
			perr.add(row, "vUnCom", "invalid unit value %q", prod.UnitValue)
		} else {
			item.AcquisitionValue = unit.Round(2)
		}

		if raw := strings.TrimSpace(prod.Freight); raw != "" {
			freight, err := decimal.NewFromString(raw)
			if err != nil || freight.IsNegative() {
				perr.add(row, "vFrete", "invalid freight %q", raw)
			} else if item.Quantity > 0 {
				item.Freight = freight.Div(decimal.NewFromInt(int64(item.Quantity))).Round(2)
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

func parseIssueDate(values ...string) (time.Time, bool) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
