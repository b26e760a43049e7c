// Package csvimport parses the simple delimited files used for bulk loading
// customers and products.
//
// The format is deliberately naive: the delimiter is guessed from the header,
// quotes are stripped rather than interpreted and every row must have exactly
// as many fields as the header.
package csvimport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyFile is returned when the input has no data rows.
var ErrEmptyFile = errors.New("csvimport: file has no data rows")

// MsgEmptyFile is the user-facing text for ErrEmptyFile.
const MsgEmptyFile = "Il file CSV è vuoto o non contiene dati"

// DefaultErrorCap is how many errors are shown before collapsing the rest.
const DefaultErrorCap = 10

const bom = "\uFEFF"

// Column describes one expected header field.
type Column struct {
	Key      string
	Label    string
	Required bool
	Validate func(string) bool
}

// Result holds the rows that passed validation and the messages for those
// that did not.
type Result struct {
	Header    []string
	Delimiter rune
	Rows      []Row
	Errors    []string
}

// Row is one accepted record keyed by header name. Line is its 1-based line
// number in the file, the header being line 1.
type Row struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed value for key, or "".
func (r Row) Get(key string) string {
	return r.Values[key]
}

// DetectDelimiter picks ';' unless the header holds more commas than semicolons.
func DetectDelimiter(header string) rune {
	if strings.Count(header, ";") >= strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func splitFields(line string, delim rune) []string {
	parts := strings.Split(line, string(delim))
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"'`))
	}
	return parts
}

// Parse reads the whole input and validates every data row against columns.
// Row level problems are collected in Result.Errors; only I/O failures and an
// empty file are returned as errors.
func Parse(r io.Reader, columns []Column) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csvimport: read: %w", err)
	}
	text := strings.TrimPrefix(string(raw), bom)

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("csvimport: scan: %w", err)
	}
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}

	delim := DetectDelimiter(lines[0])
	res := &Result{
		Header:    splitFields(lines[0], delim),
		Delimiter: delim,
	}

	for i := 1; i < len(lines); i++ {
		lineNo := i + 1
		values := splitFields(lines[i], delim)
		if len(values) != len(res.Header) {
			res.Errors = append(res.Errors, fmt.Sprintf("Riga %d: numero colonne non corretto", lineNo))
			continue
		}

		row := Row{Line: lineNo, Values: make(map[string]string, len(values))}
		for j, key := range res.Header {
			row.Values[key] = values[j]
		}

		ok := true
		for _, col := range columns {
			v := row.Values[col.Key]
			if col.Required && v == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("Riga %d: campo %q obbligatorio mancante", lineNo, col.Label))
				ok = false
			}
			if col.Validate != nil && v != "" && !col.Validate(v) {
				res.Errors = append(res.Errors, fmt.Sprintf("Riga %d: campo %q non valido", lineNo, col.Label))
				ok = false
			}
		}
		if ok {
			res.Rows = append(res.Rows, row)
		}
	}

	return res, nil
}

// Template renders a downloadable template: the column keys as header plus
// the example rows, separated by semicolons.
func Template(columns []Column, examples ...[]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(bom)
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	buf.WriteString(strings.Join(keys, ";"))
	buf.WriteString("\n")
	for _, ex := range examples {
		buf.WriteString(strings.Join(ex, ";"))
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// RequiredKeys lists the keys of the mandatory columns.
func RequiredKeys(columns []Column) []string {
	var keys []string
	for _, c := range columns {
		if c.Required {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Summary caps errs at limit entries and reports how many were left out.
func Summary(errs []string, limit int) (shown []string, remaining int) {
	if limit <= 0 || len(errs) <= limit {
		return errs, 0
	}
	return errs[:limit], len(errs) - limit
}
