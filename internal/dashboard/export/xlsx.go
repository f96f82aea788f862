package export

import (
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// XLSX writes a single-sheet workbook: the header row followed by one row per record.
func XLSX(req Request) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := SheetName(req.sheet())
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	header := make([]any, len(req.Columns))
	for i, col := range req.Columns {
		header[i] = col
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, rec := range req.Records {
		row := make([]any, len(req.Columns))
		for j, col := range req.Columns {
			row[j] = cellValue(rec[col])
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// SheetName makes name acceptable to Excel: no []:*?/\ characters, no
// leading or trailing apostrophe, at most 31 characters, never empty.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), "'")

	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}
