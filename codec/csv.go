package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"

	"github.com/GriffinCanCode/courier/media"
)

// Table is a parsed CSV document: the first row and the rows after it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Records pairs each row with the header, one map per row.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Header))
		for i, name := range t.Header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

// CSV parses and serializes text/csv bodies.
type CSV struct {
	// Comma is the field delimiter, ',' when zero.
	Comma rune
	// LazyQuotes tolerates quotes in unquoted fields.
	LazyQuotes bool
}

// NewCSV returns a comma-delimited CSV codec.
func NewCSV() *CSV {
	return &CSV{Comma: ','}
}

func (c *CSV) comma() rune {
	if c.Comma == 0 {
		return ','
	}
	return c.Comma
}

// Parse decodes body into a *Table. An empty body yields nil.
func (c *CSV) Parse(body []byte) (any, error) {
	body = StripBOM(body)
	if len(body) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.Comma = c.comma()
	r.LazyQuotes = c.LazyQuotes
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, newParseError(ErrCSVParse, media.CSV, err)
	}
	if len(rows) == 0 {
		return nil, newParseError(ErrCSVParse, media.CSV, errors.New("no rows"))
	}
	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

// Serialize writes a header row followed by one row per record. Records
// given as maps are emitted in the sorted key order of the first record.
func (c *CSV) Serialize(payload any) ([]byte, error) {
	rows, err := csvRows(payload)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.CSV, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = c.comma()
	if err := w.WriteAll(rows); err != nil {
		return nil, newSerializeError(ErrSerialize, media.CSV, err)
	}
	return buf.Bytes(), nil
}

func csvRows(payload any) ([][]string, error) {
	switch p := payload.(type) {
	case *Table:
		return append([][]string{p.Header}, p.Rows...), nil
	case Table:
		return append([][]string{p.Header}, p.Rows...), nil
	case [][]string:
		return p, nil
	case []map[string]string:
		if len(p) == 0 {
			return nil, nil
		}
		header := sortedKeys(p[0])
		rows := [][]string{header}
		for _, record := range p {
			row := make([]string, len(header))
			for i, name := range header {
				row[i] = record[name]
			}
			rows = append(rows, row)
		}
		return rows, nil
	case []map[string]any:
		if len(p) == 0 {
			return nil, nil
		}
		header := sortedKeys(p[0])
		rows := [][]string{header}
		for _, record := range p {
			row := make([]string, len(header))
			for i, name := range header {
				if v, ok := record[name]; ok {
					row[i] = string(Stringify(v))
				}
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported payload type %T", payload)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
