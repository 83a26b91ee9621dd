// Package excel renders tabular data sources into xlsx workbooks.
package excel

import (
	"bytes"
	"context"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the sheet name length limit imposed by Excel.
const maxSheetName = 31

// DataSource yields one sheet worth of rows.
type DataSource interface {
	SheetName() string
	Headers() []string
	Rows(ctx context.Context) ([][]interface{}, error)
}

type ExportOptions struct {
	IncludeHeaders bool
	AutoFilter     bool
	FreezeHeader   bool
}

type StyleOptions struct {
	BoldHeaders bool
}

func DefaultOptions() ExportOptions {
	return ExportOptions{IncludeHeaders: true, AutoFilter: true, FreezeHeader: true}
}

func DefaultStyle() StyleOptions {
	return StyleOptions{BoldHeaders: true}
}

type ExcelExporter struct {
	opts  ExportOptions
	style StyleOptions
}

func NewExcelExporter(opts ExportOptions, style StyleOptions) *ExcelExporter {
	return &ExcelExporter{opts: opts, style: style}
}

// Export writes every source to its own sheet, in order, and returns the workbook bytes.
func (e *ExcelExporter) Export(ctx context.Context, sources ...DataSource) ([]byte, error) {
	if len(sources) == 0 {
		return nil, gerrors.New("excel: no data sources")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle := 0
	if e.style.BoldHeaders {
		id, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, gerrors.Wrap(err, "excel: header style")
		}
		headerStyle = id
	}

	defaultSheet := f.GetSheetName(0)
	for i, src := range sources {
		name := sheetName(src.SheetName(), i)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, gerrors.Wrapf(err, "excel: rename sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, gerrors.Wrapf(err, "excel: create sheet %q", name)
		}

		rows, err := src.Rows(ctx)
		if err != nil {
			return nil, gerrors.Wrapf(err, "excel: rows of sheet %q", name)
		}
		if err := e.writeSheet(f, name, src.Headers(), rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, gerrors.Wrap(err, "excel: write workbook")
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	row := 1
	if e.opts.IncludeHeaders && len(headers) > 0 {
		values := make([]interface{}, len(headers))
		for i, h := range headers {
			values[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
			return gerrors.Wrapf(err, "excel: headers of sheet %q", sheet)
		}
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		if headerStyle != 0 {
			if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
				return gerrors.Wrapf(err, "excel: style headers of sheet %q", sheet)
			}
		}
		if e.opts.AutoFilter {
			if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
				return gerrors.Wrapf(err, "excel: auto filter on sheet %q", sheet)
			}
		}
		if e.opts.FreezeHeader {
			if err := f.SetPanes(sheet, &excelize.Panes{
				Freeze:      true,
				YSplit:      1,
				TopLeftCell: "A2",
				ActivePane:  "bottomLeft",
			}); err != nil {
				return gerrors.Wrapf(err, "excel: freeze header of sheet %q", sheet)
			}
		}
		row++
	}

	for _, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return gerrors.Wrapf(err, "excel: row %d of sheet %q", row, sheet)
		}
		row++
	}
	return nil
}

func sheetName(name string, index int) string {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// SliceDataSource serves rows that are already in memory.
type SliceDataSource struct {
	name    string
	headers []string
	rows    [][]interface{}
}

func NewSliceDataSource(name string, headers []string, rows [][]interface{}) *SliceDataSource {
	return &SliceDataSource{name: name, headers: headers, rows: rows}
}

func (s *SliceDataSource) SheetName() string { return s.name }

func (s *SliceDataSource) Headers() []string { return s.headers }

func (s *SliceDataSource) Rows(context.Context) ([][]interface{}, error) {
	return s.rows, nil
}
