// Package sheetio reads and writes grids as plain cell text in xlsx, csv and
// tsv files. Styles, formulas and extra sheets are not preserved.
package sheetio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gridedit/grid"
)

type Format int

const (
	XLSX Format = iota
	CSV
	TSV
)

func (f Format) String() string {
	switch f {
	case XLSX:
		return "xlsx"
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	}
	return "unknown"
}

const maxFileSize = 100 * 1024 * 1024

type Options struct {
	// Sheet names the workbook sheet to read or write. Empty means the first
	// sheet on load and "Sheet1" on save.
	Sheet string
	// Quoted enables quoted cells in tsv files.
	Quoted bool
}

// DetectFormat picks a codec from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return XLSX, nil
	case ".csv":
		return CSV, nil
	case ".tsv", ".tab", ".txt":
		return TSV, nil
	}
	return 0, fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// Load reads the file at path into a trimmed grid.
func Load(path string, opts Options) (grid.Grid, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "load", Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = ErrFileNotFound
		}
		return nil, &FileError{Path: path, Op: "load", Err: err}
	}
	if info.Size() > maxFileSize {
		return nil, &FileError{Path: path, Op: "load",
			Err: fmt.Errorf("file too large (%d MB), max supported is 100 MB", info.Size()/(1024*1024))}
	}

	var rows [][]string
	switch format {
	case XLSX:
		rows, err = readXLSX(path, opts.Sheet)
	case CSV:
		rows, err = readCSV(path)
	case TSV:
		rows, err = readTSV(path, opts.Quoted)
	}
	if err != nil {
		return nil, &FileError{Path: path, Op: "load", Err: err}
	}
	return grid.Trim(grid.FromRows(rows)), nil
}

// Save writes g to path in the format its extension names.
func Save(path string, g grid.Grid, opts Options) error {
	format, err := DetectFormat(path)
	if err != nil {
		return &FileError{Path: path, Op: "save", Err: err}
	}
	rows := grid.Trim(g).Rows()
	switch format {
	case XLSX:
		err = writeXLSX(path, opts.Sheet, rows)
	case CSV:
		err = writeCSV(path, rows)
	case TSV:
		err = writeTSV(path, rows, opts.Quoted)
	}
	if err != nil {
		return &FileError{Path: path, Op: "save", Err: err}
	}
	return nil
}
