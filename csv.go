package quotes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteCSV writes quotes as CSV to w.
//
// The first row is the header, Fields, followed
// by one row per quote in the given order.
func WriteCSV(w io.Writer, quotes []Quote) error {
	var cw = csv.NewWriter(w)

	if err := cw.Write(Fields); err != nil {
		return fmt.Errorf("quotes: write header - %w", err)
	}

	for _, q := range quotes {
		if err := cw.Write(q.Record()); err != nil {
			return fmt.Errorf("quotes: write record - %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("quotes: flush - %w", err)
	}

	return nil
}

// WriteFile writes quotes as CSV to the file at path.
//
// The file is created or truncated, the method returns
// once the file is written and closed.
func WriteFile(path string, quotes []Quote) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("quotes: create %q - %w", path, err)
	}

	if err := WriteCSV(f, quotes); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("quotes: close %q - %w", path, err)
	}

	return nil
}

// ReadCSV reads quotes written by WriteCSV.
//
// The header row must equal Fields.
func ReadCSV(r io.Reader) ([]Quote, error) {
	var cr = csv.NewReader(r)
	var ret []Quote

	cr.FieldsPerRecord = len(Fields)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("quotes: read header - missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("quotes: read header - %w", err)
	}

	if strings.Join(header, ",") != strings.Join(Fields, ",") {
		return nil, fmt.Errorf("quotes: unexpected header %q", header)
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("quotes: read record - %w", err)
		}

		tags, err := ParseTagCell(row[2])
		if err != nil {
			return nil, err
		}

		ret = append(ret, Quote{
			Text:   row[0],
			Author: row[1],
			Tags:   tags,
		})
	}

	return ret, nil
}

// FormatTags formats tags into a single CSV cell.
//
// The cell is a bracketed, comma-separated list of quoted
// tags, for example `['love', 'life']`, or `[]` when there
// are no tags. Tags are single-quoted unless they contain a
// single quote and no double quote. A backslash escapes the
// quote character and itself.
func FormatTags(tags []string) string {
	var b strings.Builder

	b.WriteByte('[')
	for j, tag := range tags {
		if j > 0 {
			b.WriteString(", ")
		}
		quoteTag(&b, tag)
	}
	b.WriteByte(']')

	return b.String()
}

// QuoteTag writes tag as a quoted item.
func quoteTag(b *strings.Builder, tag string) {
	var q = '\''

	if strings.ContainsRune(tag, '\'') && !strings.ContainsRune(tag, '"') {
		q = '"'
	}

	b.WriteRune(q)
	for _, r := range tag {
		if r == q || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteRune(q)
}

// ParseTagCell parses a cell written by FormatTags.
func ParseTagCell(cell string) ([]string, error) {
	var tags = make([]string, 0)
	var s = strings.TrimSpace(cell)

	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("quotes: malformed tags %q", cell)
	}

	for s = s[1 : len(s)-1]; len(s) > 0; {
		switch c := s[0]; c {
		case ' ', ',':
			s = s[1:]

		case '\'', '"':
			var b strings.Builder
			var j = 1

			for ; j < len(s) && s[j] != c; j++ {
				if s[j] == '\\' && j+1 < len(s) {
					j++
				}
				b.WriteByte(s[j])
			}

			if j == len(s) {
				return nil, fmt.Errorf("quotes: unterminated tag in %q", cell)
			}

			tags = append(tags, b.String())
			s = s[j+1:]

		default:
			return nil, fmt.Errorf("quotes: unexpected %q in tags %q", c, cell)
		}
	}

	return tags, nil
}
