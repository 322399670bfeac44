package sheetio

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the sheet file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates a file extension no codec handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrSheetNotFound indicates a workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// FileError records a failed load or save of a sheet file.
type FileError struct {
	Path string
	Op   string // "load" or "save"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
