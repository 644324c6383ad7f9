// Package delimited reads the quoted, comma-delimited extracts published by
// OurAirports and NASR.
//
// Quoting is handled by toggling an "inside quotes" flag on every quote
// character; doubled quotes inside a quoted field are not an escape and simply
// toggle twice. The sources never use them.
package delimited

import (
	"bufio"
	"io"
	"strings"
)

const maxLineBytes = 1 << 20

// SplitLine splits one line into trimmed fields with quote characters removed.
func SplitLine(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	return append(fields, strings.TrimSpace(field.String()))
}

// Reader yields a header row followed by data rows normalized to the header's
// width: short rows are padded with empty strings and long rows truncated.
// Blank lines produce no row. Reader satisfies csvutil.Reader.
type Reader struct {
	sc     *bufio.Scanner
	width  int
	header []string
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{sc: sc}
}

// Read returns the next row. The first row returned is the header. It returns
// io.EOF when the input is exhausted.
func (r *Reader) Read() ([]string, error) {
	for r.sc.Scan() {
		line := strings.TrimRight(r.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if r.header == nil {
			r.header = fields
			r.width = len(fields)
			return fields, nil
		}
		return fit(fields, r.width), nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Header returns the header row, or nil before the first Read.
func (r *Reader) Header() []string {
	return r.header
}

func fit(fields []string, width int) []string {
	switch {
	case len(fields) == width:
		return fields
	case len(fields) > width:
		return fields[:width]
	default:
		padded := make([]string, width)
		copy(padded, fields)
		return padded
	}
}

// ReadTable reads the whole input into a header and its rows.
func ReadTable(r io.Reader) (header []string, rows [][]string, err error) {
	dr := NewReader(r)
	for {
		row, err := dr.Read()
		if err == io.EOF {
			return dr.Header(), rows, nil
		}
		if err != nil {
			return nil, nil, err
		}
		if header == nil {
			header = row
			continue
		}
		rows = append(rows, row)
	}
}
