package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAppendRow(t *testing.T) {
	tbl := NewTable("Name", "Score")
	require.NoError(t, tbl.AppendRow("A", 3.0))

	err := tbl.AppendRow("B")
	assert.ErrorIs(t, err, ErrMalformedTable)
	assert.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, 2, tbl.ColumnCount())
}

func TestTableGrid(t *testing.T) {
	tbl := NewTable("Name", "Score")
	require.NoError(t, tbl.AppendRow("A", 3.0))

	grid := tbl.Grid()
	assert.Equal(t, [][]any{{"Name", "Score"}, {"A", 3.0}}, grid)
}

func TestEventRecords(t *testing.T) {
	tbl := NewTable("Date", "Name", "Standard", "Version", "Score", "Remark", "Extra")
	require.NoError(t, tbl.AppendRow("2017-01-02", "Ann", "S1", "V1", "4", "", "ignored"))

	records, err := EventRecords(tbl)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, EventRecord{
		Row:      2,
		Name:     "Ann",
		Standard: "S1",
		Version:  "V1",
		Date:     "2017-01-02",
		Score:    "4",
	}, records[0])
}

func TestEventRecordsMissingColumn(t *testing.T) {
	tbl := NewTable("Name", "Standard", "Version", "Date", "Score")

	_, err := EventRecords(tbl)
	assert.ErrorIs(t, err, ErrMalformedTable)
	assert.Contains(t, err.Error(), `"Remark"`)
}

func TestDerivedSet(t *testing.T) {
	var set DerivedSet
	first := NewTable("Name")
	second := NewTable("Standard")
	replacement := NewTable("Name", "S1")

	set.Add(TabSummary, first)
	set.Add(TabStandard, second)
	set.Add(TabSummary, replacement)

	assert.Equal(t, []string{TabSummary, TabStandard}, set.Tags())
	got, ok := set.Get(TabSummary)
	require.True(t, ok)
	assert.Same(t, replacement, got)

	_, ok = set.Get(TabIndividual)
	assert.False(t, ok)
}
