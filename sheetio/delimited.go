package sheetio

import (
	"bytes"
	"encoding/csv"
	"os"

	"gridedit/clipboardx"
)

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func writeCSV(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func readTSV(path string, quoted bool) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, ok := clipboardx.Decode(string(data), quoted)
	if !ok {
		return nil, nil
	}
	return p, nil
}

func writeTSV(path string, rows [][]string, quoted bool) error {
	text := clipboardx.Encode(rows, quoted)
	if len(rows) > 0 {
		text += "\n"
	}
	return os.WriteFile(path, []byte(text), 0644)
}
