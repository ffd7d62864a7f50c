package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"csv-insight-service/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser reads uploads into rows. Delimited text is detected by extension
// (.csv, .txt or none for commas, .tsv for tabs); .xlsx workbooks contribute
// the rows of their first sheet.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(fileName string, content []byte) (domain.TabularDataset, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case "", ".csv", ".txt":
		return parseDelimited(content, ',')
	case ".tsv":
		return parseDelimited(content, '\t')
	case ".xlsx":
		return parseWorkbook(content)
	default:
		return domain.TabularDataset{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

func parseDelimited(content []byte, comma rune) (domain.TabularDataset, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	r.Comma = comma
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return domain.TabularDataset{}, fmt.Errorf("%w: %v", domain.ErrDatasetParse, err)
	}
	return domain.TabularDataset{Rows: rows}, nil
}

func parseWorkbook(content []byte) (domain.TabularDataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return domain.TabularDataset{}, fmt.Errorf("%w: open workbook: %v", domain.ErrDatasetParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.TabularDataset{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.TabularDataset{}, fmt.Errorf("%w: read sheet %q: %v", domain.ErrDatasetParse, sheets[0], err)
	}

	// GetRows keeps blank rows inside the used range
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		out = append(out, row)
	}
	return domain.TabularDataset{Rows: out}, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
