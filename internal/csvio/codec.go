// Package csvio reads and writes student records as delimited text.
//
// Two layouts are understood on input and detected from the first non-blank
// row:
//
//   - Header CSV: a first row of id,name,age,major (any case) followed by
//     one record per row. This is what Write produces.
//   - Raw lines: no header, one record per line as id,name,age,major,
//     split on every comma with no quoting.
//
// Bad rows never abort a read. They are returned as LineErrors next to the
// records that did parse.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/students/internal/student"
)

// Header is the column layout of the persisted store file.
var Header = []string{"id", "name", "age", "major"}

// Format identifies the layout detected by Read.
type Format string

const (
	FormatUnknown Format = ""
	FormatHeader  Format = "header"
	FormatRaw     Format = "raw"
)

// LineError describes a row that was skipped.
type LineError struct {
	Line int    // 1-indexed line number in the source
	Raw  string // Row text as read
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// ErrFieldCount is wrapped by LineErrors for rows without exactly four fields.
var ErrFieldCount = errors.New("wrong number of fields")

// Result is the outcome of reading one source.
type Result struct {
	Format   Format
	Students []student.Student
	Skipped  []LineError
}

// Read parses records from r. Rows with the wrong field count, a
// non-integer age, or an ID already seen earlier in the same source are
// skipped and reported in Result.Skipped. Only I/O errors are returned.
//
// Raw lines are split on commas one line at a time, so quote characters
// are ordinary text there and a bad line never affects its neighbours.
// Header files are proper CSV and go through encoding/csv.
func Read(r io.Reader) (Result, error) {
	br := bufio.NewReader(WrapReader(r))
	p := &parser{seen: make(map[string]int)}

	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if text != "" {
			text = strings.TrimRight(text, "\r\n")
			row := strings.Split(text, ",")

			switch {
			case isBlankRow(row):
			case p.res.Format == FormatUnknown && isHeaderRow(row):
				p.res.Format = FormatHeader
				return p.readCSV(br, line)
			default:
				p.res.Format = FormatRaw
				p.add(line, text, row)
			}
		}
		if err == io.EOF {
			return p.res, nil
		}
		if err != nil {
			return p.res, fmt.Errorf("read line %d: %w", line, err)
		}
	}
}

type parser struct {
	res  Result
	seen map[string]int // ID -> line of first occurrence
}

// readCSV parses the rows following a header. offset is the line number of
// the header, which the csv reader never sees.
func (p *parser) readCSV(r io.Reader, offset int) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return p.res, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				p.skip(offset+pe.StartLine, strings.Join(row, ","), pe.Err)
				continue
			}
			return p.res, fmt.Errorf("read csv: %w", err)
		}

		if isBlankRow(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		p.add(offset+line, strings.Join(row, ","), row)
	}
}

func (p *parser) add(line int, raw string, row []string) {
	s, err := parseRow(row)
	if err != nil {
		p.skip(line, raw, err)
		return
	}
	if first, dup := p.seen[s.ID]; dup {
		p.skip(line, raw, fmt.Errorf("%w %q (first on line %d)", student.ErrDuplicateID, s.ID, first))
		return
	}
	p.seen[s.ID] = line
	p.res.Students = append(p.res.Students, s)
}

func (p *parser) skip(line int, raw string, err error) {
	p.res.Skipped = append(p.res.Skipped, LineError{Line: line, Raw: raw, Err: err})
}

func parseRow(row []string) (student.Student, error) {
	if len(row) != len(Header) {
		return student.Student{}, fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, len(Header), len(row))
	}
	return student.New(row[0], row[1], row[2], row[3])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(row []string) bool {
	if len(row) != len(Header) {
		return false
	}
	for i, h := range Header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), h) {
			return false
		}
	}
	return true
}

// Write emits the header row followed by one row per record.
func Write(w io.Writer, students []student.Student) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range students {
		if err := cw.Write(s.Fields()); err != nil {
			return fmt.Errorf("write %q: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
