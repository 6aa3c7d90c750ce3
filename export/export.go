// Package export writes the radial displacement table for inspection in
// spreadsheets.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gogpu/glass"
)

// ErrUnsupportedFormat is returned for table paths that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("export: unsupported table format")

// Sheet is the worksheet name used for XLSX output.
const Sheet = "Sheet1"

// Header lists the exported columns.
var Header = []string{"distance", "magnitude", "angle", "x", "y"}

func row(s glass.RadialSample) []float64 {
	v := s.Vector()
	return []float64{float64(s.Distance), s.Magnitude, s.Angle, v.X, v.Y}
}

// WriteXLSX writes field to an .xlsx workbook at path.
func WriteXLSX(path string, field *glass.DisplacementField) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sw, err := f.NewStreamWriter(Sheet)
	if err != nil {
		return fmt.Errorf("export: stream writer: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, s := range field.Samples {
		cells := row(s)
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	if err := f.SaveAs(filepath.Clean(path)); err != nil {
		return fmt.Errorf("export: save: %w", err)
	}
	return nil
}

// WriteCSV writes field as comma-separated values.
func WriteCSV(w io.Writer, field *glass.DisplacementField) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range field.Samples {
		cells := row(s)
		rec := make([]string, len(cells))
		for i, c := range cells {
			rec[i] = strconv.FormatFloat(c, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile picks the format from the file extension: .xlsx or .csv.
func WriteFile(path string, field *glass.DisplacementField) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return WriteXLSX(path, field)
	case ".csv":
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("export: create file: %w", err)
		}
		if err := WriteCSV(f, field); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
