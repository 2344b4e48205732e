package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldCount is the number of fields every measurement row must carry
const FieldCount = 6

// Columns are assigned positionally to the fields of each row
var Columns = []string{"Operator", "DateTime", "WaferID", "R", "Resistance", "Other"}

// ErrNonNumericResistance is returned when a Resistance field cannot be read as a number
var ErrNonNumericResistance = errors.New("non-numeric resistance value")

// Record is one measurement row. All fields are kept as text; Resistance is
// only coerced when a histogram is built.
type Record struct {
	Index      int
	Operator   string
	DateTime   string
	WaferID    string
	R          string
	Resistance string
	Other      string
}

// NewRecord assigns fields positionally. fields must have FieldCount entries.
func NewRecord(index int, fields []string) (Record, error) {
	if len(fields) != FieldCount {
		return Record{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	return Record{
		Index:      index,
		Operator:   fields[0],
		DateTime:   fields[1],
		WaferID:    fields[2],
		R:          fields[3],
		Resistance: fields[4],
		Other:      fields[5],
	}, nil
}

// Fields returns the record in column order
func (r Record) Fields() []string {
	return []string{r.Operator, r.DateTime, r.WaferID, r.R, r.Resistance, r.Other}
}

// ResistanceValue coerces the Resistance field to a float
func (r Record) ResistanceValue() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Resistance), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d: %q", ErrNonNumericResistance, r.Index, r.Resistance)
	}
	return v, nil
}

// Table is an ordered set of measurement records loaded from one file
type Table struct {
	Source  string
	Records []Record
	Skipped int
}

// Len returns the number of records, zero for a nil table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// FilterByWafer returns the records whose WaferID equals waferID, keeping
// their original order and index.
func (t *Table) FilterByWafer(waferID string) []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, 0)
	for _, rec := range t.Records {
		if rec.WaferID == waferID {
			out = append(out, rec)
		}
	}
	return out
}

// Head returns at most n leading records
func (t *Table) Head(n int) []Record {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return t.Records[:n]
}

// Resistances coerces the Resistance field of every record, failing on the
// first value that is not numeric.
func Resistances(records []Record) ([]float64, error) {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		v, err := rec.ResistanceValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
