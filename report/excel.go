package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"saudicars/locale"
	"saudicars/models"
)

// Workbook sheet names.
const (
	SheetOverview = "Overview"
	SheetPreview  = "Preview"
	SheetDescribe = "Describe"
	SheetTypes    = "Data Types"
	SheetFiltered = "Filtered"
)

// WriteWorkbook writes the overview as an .xlsx document to w.
func WriteWorkbook(w io.Writer, ov Overview, s *locale.Strings) error {
	f, err := buildWorkbook(ov, s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the overview as an .xlsx file at path.
func SaveWorkbook(path string, ov Overview, s *locale.Strings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	f, err := buildWorkbook(ov, s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

// sheetWriter remembers the first error so the cell writes stay readable.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (sw *sheetWriter) set(col, row int, value any) {
	if sw.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		sw.err = err
		return
	}
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		value = ""
	}
	sw.err = sw.f.SetCellValue(sw.sheet, cell, value)
}

func (sw *sheetWriter) header(names []string, width float64) {
	for i, name := range names {
		sw.set(i+1, 1, name)
		if sw.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			sw.err = err
			return
		}
		sw.err = sw.f.SetColWidth(sw.sheet, col, col, width)
	}
}

func buildWorkbook(ov Overview, s *locale.Strings) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		f.Close()
		return nil, fmt.Errorf("report: %w", err)
	}
	for _, name := range []string{SheetPreview, SheetDescribe, SheetTypes, SheetFiltered} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("report: new sheet %s: %w", name, err)
		}
	}

	writers := []func(*excelize.File, Overview, *locale.Strings) error{
		writeOverviewSheet,
		writePreviewSheet,
		writeDescribeSheet,
		writeTypesSheet,
		writeFilteredSheet,
	}
	for _, write := range writers {
		if err := write(f, ov, s); err != nil {
			f.Close()
			return nil, fmt.Errorf("report: %w", err)
		}
	}
	return f, nil
}

func writeOverviewSheet(f *excelize.File, ov Overview, s *locale.Strings) error {
	sw := &sheetWriter{f: f, sheet: SheetOverview}
	sw.header([]string{s.AppTitle, ""}, 40)

	rows := []struct {
		label string
		value any
	}{
		{s.MetricRaw, ov.Metrics.Raw},
		{s.MetricCleaned, ov.Metrics.Cleaned},
		{s.MetricRemoved, ov.Metrics.Removed},
		{s.MetricYears, fmt.Sprintf("%d-%d", ov.YearMin, ov.YearMax)},
		{"", ""},
		{s.Caption(ov.Selection.YearMin, ov.Selection.YearMax, ov.Selection.MakeLabel(), ov.Filtered.Len()), ""},
	}
	for i, r := range rows {
		sw.set(1, i+2, r.label)
		sw.set(2, i+2, r.value)
	}

	next := len(rows) + 3
	sw.set(1, next, s.LabelMake)
	sw.set(2, next, s.LabelCount)
	for i, c := range ov.TopMakes {
		sw.set(1, next+1+i, c.Value)
		sw.set(2, next+1+i, c.N)
	}
	return sw.err
}

func writePreviewSheet(f *excelize.File, ov Overview, _ *locale.Strings) error {
	return writeRows(f, SheetPreview, ov.Preview)
}

func writeFilteredSheet(f *excelize.File, ov Overview, _ *locale.Strings) error {
	return writeRows(f, SheetFiltered, ov.Filtered)
}

func writeRows(f *excelize.File, sheet string, ds *models.Dataset) error {
	sw := &sheetWriter{f: f, sheet: sheet}
	names := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		names[i] = c.Name
	}
	sw.header(names, 16)

	for r, rec := range ds.Records {
		for c, col := range ds.Columns {
			if c >= len(rec.Values) {
				break
			}
			sw.set(c+1, r+2, cellValue(col, rec.Values[c]))
		}
	}
	return sw.err
}

func cellValue(col models.Column, raw string) any {
	if col.Type.Numeric() {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return raw
}

func writeDescribeSheet(f *excelize.File, ov Overview, s *locale.Strings) error {
	sw := &sheetWriter{f: f, sheet: SheetDescribe}
	sw.header([]string{s.DescribeTitle, "count", "mean", "std", "min", "25%", "50%", "75%", "max"}, 16)

	for i, d := range ov.Describe {
		row := i + 2
		sw.set(1, row, d.Column)
		sw.set(2, row, d.Count)
		for j, v := range []float64{d.Mean, d.Std, d.Min, d.Q25, d.Median, d.Q75, d.Max} {
			sw.set(3+j, row, v)
		}
	}
	return sw.err
}

func writeTypesSheet(f *excelize.File, ov Overview, s *locale.Strings) error {
	sw := &sheetWriter{f: f, sheet: SheetTypes}
	sw.header([]string{s.TypesTitle, s.TypeHeader}, 20)

	for i, c := range ov.Types {
		sw.set(1, i+2, c.Name)
		sw.set(2, i+2, string(c.Type))
	}
	return sw.err
}
