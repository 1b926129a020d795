package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "quoted field with embedded comma",
			input: "a,\"b,c\",d\n1,2,3",
			want:  [][]string{{"a", "b,c", "d"}, {"1", "2", "3"}},
		},
		{
			name:  "escaped quotes",
			input: `"he said ""hi"""`,
			want:  [][]string{{`he said "hi"`}},
		},
		{
			name:  "newline inside quotes",
			input: "\"line one\nline two\",x",
			want:  [][]string{{"line one\nline two", "x"}},
		},
		{
			name:  "crlf and bare cr line endings",
			input: "a,b\r\nc,d\re,f",
			want:  [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
		{
			name:  "cells trimmed and blank rows dropped",
			input: " a , b \n   \n\nc,d\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "trailing comma yields empty final cell",
			input: "1,2,3,",
			want:  [][]string{{"1", "2", "3", ""}},
		},
		{
			name:  "missing trailing newline still yields final row",
			input: "a,b\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "unterminated quote closes at end of input",
			input: `a,"unfinished`,
			want:  [][]string{{"a", "unfinished"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only quotes",
			input: `""`,
			want:  nil,
		},
		{
			name:  "utf8 bom stripped",
			input: "\uFEFFSKU,Name",
			want:  [][]string{{"SKU", "Name"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseWithDelimiter(t *testing.T) {
	got := Parse("a;b,c;d", WithDelimiter(';'))
	assert.Equal(t, [][]string{{"a", "b,c", "d"}}, got)
}

// quoteCell re-quotes a cell the way a spreadsheet export would
func quoteCell(cell string) string {
	if strings.ContainsAny(cell, ",\"\n") {
		return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return cell
}

func TestParseRoundTripIdempotence(t *testing.T) {
	inputs := []string{
		"a,\"b,c\",d\n1,2,3",
		`"he said ""hi""",x`,
		"n a m e,\"multi\nline\",tail",
	}
	for _, input := range inputs {
		first := Parse(input)

		var sb strings.Builder
		for _, row := range first {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = quoteCell(c)
			}
			sb.WriteString(strings.Join(cells, ","))
			sb.WriteByte('\n')
		}

		assert.Equal(t, first, Parse(sb.String()), "re-joining and re-parsing must be stable for %q", input)
	}
}

func FuzzParse(f *testing.F) {
	f.Add("a,b,c\n1,2,3")
	f.Add(`"unterminated`)
	f.Add("\"a\"\"b\",c\r\n")
	f.Add(",,,\n")
	f.Add("\uFEFF\"\n\"")
	f.Fuzz(func(t *testing.T, input string) {
		rows := Parse(input)
		for _, row := range rows {
			if len(row) == 0 {
				t.Fatalf("parser emitted an empty row for %q", input)
			}
			nonEmpty := false
			for _, cell := range row {
				if cell != "" {
					nonEmpty = true
				}
				if cell != strings.TrimSpace(cell) {
					t.Fatalf("cell %q not trimmed for input %q", cell, input)
				}
			}
			if !nonEmpty {
				t.Fatalf("blank row survived for input %q", input)
			}
		}
	})
}
