package importer

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/regnskap/internal/model"
)

// XLSXParser reads a trial balance from an Excel workbook. The first sheet
// is used unless Sheet is set.
type XLSXParser struct {
	Sheet string
	Log   zerolog.Logger
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return FormatXLSX }

// Parse reads the workbook and returns Balances.
func (p *XLSXParser) Parse(r io.Reader) ([]model.Balance, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return fromRecords(rows, p.Log)
}
