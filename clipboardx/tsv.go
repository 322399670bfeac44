package clipboardx

import (
	"strings"

	"gridedit/grid"
)

// Encode serializes a payload the way spreadsheets put cell blocks on the
// clipboard: cells separated by tabs, rows by newlines, no trailing separator.
// With escape set, cells holding a tab, a line break or a leading quote are
// wrapped in double quotes and inner quotes are doubled.
func Encode(p grid.Payload, escape bool) string {
	var b strings.Builder
	for r, row := range p {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				b.WriteByte('\t')
			}
			if escape && needsQuote(cell) {
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
				b.WriteByte('"')
				continue
			}
			b.WriteString(cell)
		}
	}
	return b.String()
}

func needsQuote(cell string) bool {
	return strings.ContainsAny(cell, "\t\n\r") || strings.HasPrefix(cell, `"`)
}

// Decode parses clipboard text into a row-major payload. A single trailing
// line break is ignored and CRLF line endings are accepted. Rows may come out
// ragged; they are not padded. With quoted set, a cell that starts with a
// double quote and is properly closed is unescaped; anything else is taken
// literally. Decode reports false for empty text.
func Decode(text string, quoted bool) (grid.Payload, bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, false
	}
	if !quoted {
		lines := strings.Split(text, "\n")
		p := make(grid.Payload, len(lines))
		for i, line := range lines {
			p[i] = strings.Split(line, "\t")
		}
		return p, true
	}
	return decodeQuoted(text), true
}

func decodeQuoted(text string) grid.Payload {
	var p grid.Payload
	var row []string
	for {
		cell, end, ok := readQuoted(text)
		if !ok {
			cell, end = readPlain(text)
		}
		row = append(row, cell)
		if end >= len(text) {
			return append(p, row)
		}
		sep := text[end]
		text = text[end+1:]
		if sep == '\n' {
			p = append(p, row)
			row = nil
		}
	}
}

// readPlain returns the text up to the next tab or newline and the index of
// that separator (len(text) when there is none).
func readPlain(text string) (string, int) {
	end := strings.IndexAny(text, "\t\n")
	if end < 0 {
		end = len(text)
	}
	return text[:end], end
}

// readQuoted reads a quoted cell at the start of text. The closing quote must
// be followed by a separator or the end of the text.
func readQuoted(text string) (string, int, bool) {
	if !strings.HasPrefix(text, `"`) {
		return "", 0, false
	}
	var b strings.Builder
	i := 1
	for {
		j := strings.IndexByte(text[i:], '"')
		if j < 0 {
			return "", 0, false
		}
		j += i
		b.WriteString(text[i:j])
		if j+1 < len(text) && text[j+1] == '"' {
			b.WriteByte('"')
			i = j + 2
			continue
		}
		end := j + 1
		if end == len(text) || text[end] == '\t' || text[end] == '\n' {
			return b.String(), end, true
		}
		return "", 0, false
	}
}
