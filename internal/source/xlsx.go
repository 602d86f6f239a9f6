package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"importpipe/pkg/records"
)

// ReadXLSX reads one sheet of an Excel workbook. An empty sheet name selects
// the first sheet. The first row is the header; data rows are fitted to the
// header width like the CSV reader.
func ReadXLSX(path, sheet string) ([]string, []records.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	headers := stripUTF8BOM(raw[0])
	rows := make([]records.Record, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		rec = fitRowToWidth(rec, len(headers))
		row := make(records.Record, len(headers))
		for i, h := range headers {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
