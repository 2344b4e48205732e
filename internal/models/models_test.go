package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, index int, wafer, resistance string) Record {
	t.Helper()
	rec, err := NewRecord(index, []string{"op", "2024-01-01 10:00", wafer, "r", resistance, "x"})
	require.NoError(t, err)
	return rec
}

func TestNewRecordRequiresSixFields(t *testing.T) {
	_, err := NewRecord(0, []string{"a", "b", "c"})
	assert.Error(t, err)

	rec, err := NewRecord(4, []string{"alice", "dt", "W1", "r", "10.5", "other"})
	require.NoError(t, err)
	assert.Equal(t, "W1", rec.WaferID)
	assert.Equal(t, 4, rec.Index)
	assert.Equal(t, []string{"alice", "dt", "W1", "r", "10.5", "other"}, rec.Fields())
}

func TestResistanceValue(t *testing.T) {
	v, err := record(t, 0, "W1", " 12.25 ").ResistanceValue()
	require.NoError(t, err)
	assert.InDelta(t, 12.25, v, 1e-12)

	_, err = record(t, 3, "W1", "n/a").ResistanceValue()
	assert.True(t, errors.Is(err, ErrNonNumericResistance))
	assert.Contains(t, err.Error(), "row 3")
}

func TestFilterByWaferKeepsOrderAndIndex(t *testing.T) {
	table := &Table{Records: []Record{
		record(t, 0, "A", "1"),
		record(t, 1, "B", "2"),
		record(t, 2, "A", "3"),
	}}

	got := table.FilterByWafer("A")
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 2, got[1].Index)

	assert.Empty(t, table.FilterByWafer("Z"))

	var nilTable *Table
	assert.Empty(t, nilTable.FilterByWafer("A"))
	assert.Zero(t, nilTable.Len())
}

func TestResistancesStopsOnBadValue(t *testing.T) {
	values, err := Resistances([]Record{record(t, 0, "A", "1"), record(t, 1, "A", "2.5")})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, values)

	_, err = Resistances([]Record{record(t, 0, "A", "1"), record(t, 1, "A", "abc")})
	assert.ErrorIs(t, err, ErrNonNumericResistance)
}

func TestHead(t *testing.T) {
	table := &Table{Records: []Record{record(t, 0, "A", "1"), record(t, 1, "B", "2")}}
	assert.Len(t, table.Head(5), 2)
	assert.Len(t, table.Head(1), 1)
	assert.Nil(t, table.Head(0))
}

func TestSessionGuardsBeforeLoad(t *testing.T) {
	s := NewSession()
	assert.Equal(t, NoDataLoaded, s.State())

	_, err := s.Table()
	assert.ErrorIs(t, err, ErrNoDataLoaded)
	assert.ErrorIs(t, s.Select("A"), ErrNoDataLoaded)
	_, err = s.Selected()
	assert.ErrorIs(t, err, ErrNoDataLoaded)
}

func TestSessionLoadReplacesTableAndClearsSelection(t *testing.T) {
	s := NewSession()
	first := &Table{Source: "a.csv", Records: []Record{record(t, 0, "A", "1")}}
	s.Load(first, []string{"A"})
	require.NoError(t, s.Select("A"))

	second := &Table{Source: "b.csv", Skipped: 2}
	s.Load(second, nil)

	got, err := s.Table()
	require.NoError(t, err)
	assert.Same(t, second, got)

	selected, err := s.Selected()
	require.NoError(t, err)
	assert.Empty(t, selected)

	snap := s.Snapshot()
	assert.Equal(t, DataLoaded, snap.State)
	assert.Equal(t, "b.csv", snap.Source)
	assert.Equal(t, 0, snap.Rows)
	assert.Equal(t, 2, snap.Skipped)
	assert.Equal(t, "DataLoaded", snap.State.String())
}

func TestHistogramHelpers(t *testing.T) {
	h := &Histogram{Edges: []float64{0, 1, 2}, Counts: []int{3, 5}}
	assert.Equal(t, 2, h.Bins())
	assert.Equal(t, 5, h.MaxCount())
	assert.Equal(t, 8, h.Total())
	lo, hi := h.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)

	var empty *Histogram
	assert.Zero(t, empty.Bins())
	assert.Zero(t, empty.Total())
}
