package sheets

import "strings"

// ParserOption is a functional option for Parse configuration
type ParserOption func(*parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d byte) ParserOption {
	return func(p *parser) {
		p.delimiter = d
	}
}

type parser struct {
	delimiter byte
}

// Parse tokenizes delimited text into rows of string cells. It is total:
// any input yields a row list without error, including unterminated quotes
// (end of input closes the quote).
//
// Rules, matching spreadsheet exports in the wild:
//   - double-quoted fields may contain delimiters and newlines
//   - two consecutive quotes inside a quoted field emit a literal quote
//   - \r\n and bare \r normalize to \n before tokenizing
//   - each finished cell is trimmed of surrounding whitespace
//   - rows whose every cell is empty after trimming are dropped
//   - a missing trailing newline still yields the final row
func Parse(text string, opts ...ParserOption) [][]string {
	p := &parser{delimiter: ','}
	for _, opt := range opts {
		opt(p)
	}

	// Strip a UTF-8 BOM; spreadsheet exports from Windows tools carry one.
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var (
		rows        [][]string
		currentRow  []string
		currentCell strings.Builder
		insideQuote bool
	)

	endCell := func() {
		currentRow = append(currentRow, strings.TrimSpace(currentCell.String()))
		currentCell.Reset()
	}
	endRow := func() {
		endCell()
		for _, cell := range currentRow {
			if cell != "" {
				rows = append(rows, currentRow)
				break
			}
		}
		currentRow = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if insideQuote && i+1 < len(text) && text[i+1] == '"' {
				currentCell.WriteByte('"')
				i++ // skip the escaped quote
			} else {
				insideQuote = !insideQuote
			}
		case ch == p.delimiter && !insideQuote:
			endCell()
		case ch == '\n' && !insideQuote:
			endRow()
		default:
			currentCell.WriteByte(ch)
		}
	}

	// Flush whatever is pending; an open quote is implicitly closed here.
	if currentCell.Len() > 0 || len(currentRow) > 0 {
		endRow()
	}

	return rows
}
