package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var supportedExtensions = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
	".xltx": {},
	".xltm": {},
}

// Supported reports whether the file name carries a workbook extension
// this package can read. Legacy binary .xls files are not supported.
func Supported(filename string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// BaseName strips directory and extension from a file name.
func BaseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Row is one data row keyed by header text.
type Row struct {
	// Number is the 1-based row number inside the sheet.
	Number int
	Values map[string]string
}

// Get returns the trimmed cell under header.
func (r Row) Get(header string) string {
	return strings.TrimSpace(r.Values[header])
}

// Empty reports whether every cell is blank.
func (r Row) Empty() bool {
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Sheet is the header and data rows of one worksheet.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

// ReadFirstSheet reads the first worksheet of a workbook. The first
// non-blank row is the header; blank rows after it are skipped.
func ReadFirstSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]
	raw, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}

	sheet := &Sheet{Name: name}
	for i, cells := range raw {
		if sheet.Header == nil {
			if blank(cells) {
				continue
			}
			sheet.Header = make([]string, len(cells))
			for j, c := range cells {
				sheet.Header[j] = strings.TrimSpace(c)
			}
			continue
		}
		row := Row{Number: i + 1, Values: make(map[string]string, len(sheet.Header))}
		for j, header := range sheet.Header {
			if header == "" || j >= len(cells) {
				continue
			}
			row.Values[header] = cells[j]
		}
		if row.Empty() {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	if sheet.Header == nil {
		return nil, fmt.Errorf("sheet %s has no header row", name)
	}
	return sheet, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
