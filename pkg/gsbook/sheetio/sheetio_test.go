package sheetio

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSheet is an in-memory Sheet that logs every call.
type recordingSheet struct {
	tabs    map[string][2]int
	calls   []string
	updates map[string][][]any
	shrink  bool
}

func newRecordingSheet(tabs ...string) *recordingSheet {
	s := &recordingSheet{tabs: map[string][2]int{}, updates: map[string][][]any{}}
	for _, t := range tabs {
		s.tabs[t] = [2]int{1000, 26}
	}
	return s
}

func (s *recordingSheet) Key() string   { return "mem" }
func (s *recordingSheet) Title() string { return "mem" }
func (s *recordingSheet) Close() error  { return nil }

func (s *recordingSheet) Tabs(ctx context.Context) ([]string, error) {
	var out []string
	for t := range s.tabs {
		out = append(out, t)
	}
	return out, nil
}

func (s *recordingSheet) ReadTab(ctx context.Context, title string) ([][]string, error) {
	return nil, spreadsheet.ErrTabNotFound
}

func (s *recordingSheet) AddTab(ctx context.Context, title string, rows, cols int) error {
	s.calls = append(s.calls, fmt.Sprintf("add %s %dx%d", title, rows, cols))
	if s.shrink {
		rows, cols = 1, 1
	}
	s.tabs[title] = [2]int{rows, cols}
	return nil
}

func (s *recordingSheet) DeleteTab(ctx context.Context, title string) error {
	s.calls = append(s.calls, "delete "+title)
	if _, ok := s.tabs[title]; !ok {
		return spreadsheet.NewTabError("mem", title, spreadsheet.ErrTabNotFound)
	}
	delete(s.tabs, title)
	return nil
}

func (s *recordingSheet) TabSize(ctx context.Context, title string) (int, int, error) {
	size, ok := s.tabs[title]
	if !ok {
		return 0, 0, spreadsheet.ErrTabNotFound
	}
	return size[0], size[1], nil
}

func (s *recordingSheet) UpdateRange(ctx context.Context, title, rng string, values [][]any) error {
	s.calls = append(s.calls, "update "+title+" "+rng)
	s.updates[rng] = values
	return nil
}

func summaryTable() *models.Table {
	return &models.Table{
		Header: []string{"Name", "S1", "S2"},
		Rows: [][]any{
			{"A", 5.0, nil},
			{"B", 2.6, 3.4},
		},
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]string{
		{" Name ", "Score", ""},
		{"A", "3"},
		{"B"},
		{},
		{"C", "4", "", ""},
	}

	got, err := FromRows(rows)
	require.NoError(t, err)

	want := &models.Table{
		Header: []string{"Name", "Score"},
		Rows: [][]any{
			{"A", "3"},
			{"B", ""},
			{"", ""},
			{"C", "4"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromRows mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRowsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"no rows", nil},
		{"blank header", [][]string{{"", " "}}},
		{"duplicate header", [][]string{{"Name", "Score", "Name"}}},
		{"overflow value", [][]string{{"Name"}, {"A", "extra"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			assert.ErrorIs(t, err, models.ErrMalformedTable)
		})
	}
}

func TestReadPropagatesTabNotFound(t *testing.T) {
	_, err := Read(context.Background(), newRecordingSheet(), "Event")
	assert.ErrorIs(t, err, spreadsheet.ErrTabNotFound)
}

func TestWriteSequence(t *testing.T) {
	sheet := newRecordingSheet("Event", "Summary")

	err := Write(context.Background(), sheet, "Summary", summaryTable(), WriteOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"delete Summary",
		"add Summary 7x7",
		"update Summary A1:C1",
		"update Summary A2:C3",
	}, sheet.calls)
	assert.Equal(t, [][]any{{"Name", "S1", "S2"}}, sheet.updates["A1:C1"])
	assert.Equal(t, [][]any{{"A", 5.0, nil}, {"B", 2.6, 3.4}}, sheet.updates["A2:C3"])
}

func TestWriteMissingTabIsNoop(t *testing.T) {
	sheet := newRecordingSheet("Event")

	err := Write(context.Background(), sheet, "Summary", summaryTable(), WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "delete Summary", sheet.calls[0])
}

func TestWriteRoundsNumbers(t *testing.T) {
	sheet := newRecordingSheet()

	err := Write(context.Background(), sheet, "Summary", summaryTable(), WriteOptions{RoundNumbers: true})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"A", 5.0, nil}, {"B", 3.0, 3.0}}, sheet.updates["A2:C3"])
}

func TestWriteRoundsLargeNumbers(t *testing.T) {
	sheet := newRecordingSheet()
	tbl := &models.Table{
		Header: []string{"Name", "S1", "S2"},
		Rows:   [][]any{{"A", 1e300, -2.5e19}},
	}

	err := Write(context.Background(), sheet, "Summary", tbl, WriteOptions{RoundNumbers: true})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"A", 1e300, -2.5e19}}, sheet.updates["A2:C2"])
}

func TestWriteRejectsBadTableBeforeTouchingTab(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]any
		wantErr error
	}{
		{"short row", [][]any{{"A", 1.0}}, models.ErrMalformedTable},
		{"long row", [][]any{{"A", 1.0, 2.0, 3.0}}, models.ErrMalformedTable},
		{"NaN", [][]any{{"A", math.NaN(), nil}}, spreadsheet.ErrWriteFailed},
		{"+Inf", [][]any{{"A", math.Inf(1), nil}}, spreadsheet.ErrWriteFailed},
		{"-Inf", [][]any{{"A", nil, math.Inf(-1)}}, spreadsheet.ErrWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := newRecordingSheet("Summary")
			tbl := &models.Table{Header: []string{"Name", "S1", "S2"}, Rows: tt.rows}

			err := Write(context.Background(), sheet, "Summary", tbl, WriteOptions{RoundNumbers: true})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, sheet.calls)
			assert.Contains(t, sheet.tabs, "Summary")
		})
	}
}

func TestWriteHeaderOnly(t *testing.T) {
	sheet := newRecordingSheet()

	err := Write(context.Background(), sheet, "Standard", models.NewTable("Standard"), WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"delete Standard",
		"add Standard 5x5",
		"update Standard A1:A1",
	}, sheet.calls)
}

func TestWriteGuardsUndersizedGrid(t *testing.T) {
	sheet := newRecordingSheet()
	sheet.shrink = true

	err := Write(context.Background(), sheet, "Summary", summaryTable(), WriteOptions{})
	assert.ErrorIs(t, err, spreadsheet.ErrWriteFailed)
	for _, c := range sheet.calls {
		assert.NotContains(t, c, "update")
	}
}

func TestWriteRejectsEmptyHeader(t *testing.T) {
	err := Write(context.Background(), newRecordingSheet(), "Summary", &models.Table{}, WriteOptions{})
	assert.ErrorIs(t, err, models.ErrMalformedTable)
}

func openWorkbook(t *testing.T) spreadsheet.Sheet {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, xlsx.Create(path, "Event", [][]any{{"Name"}, {"A"}}))

	sheet, err := xlsx.New().Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { sheet.Close() })
	return sheet
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	sheet := openWorkbook(t)

	require.NoError(t, Write(ctx, sheet, "Summary", summaryTable(), WriteOptions{RoundNumbers: true}))

	got, err := Read(ctx, sheet, "Summary")
	require.NoError(t, err)
	want := &models.Table{
		Header: []string{"Name", "S1", "S2"},
		Rows: [][]any{
			{"A", "5", ""},
			{"B", "3", "3"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTwiceKeepsOneTab(t *testing.T) {
	ctx := context.Background()
	sheet := openWorkbook(t)

	require.NoError(t, Write(ctx, sheet, "Summary", summaryTable(), WriteOptions{}))
	first, err := Read(ctx, sheet, "Summary")
	require.NoError(t, err)

	require.NoError(t, Write(ctx, sheet, "Summary", summaryTable(), WriteOptions{}))
	second, err := Read(ctx, sheet, "Summary")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	tabs, err := sheet.Tabs(ctx)
	require.NoError(t, err)
	count := 0
	for _, tab := range tabs {
		if tab == "Summary" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "2.6", second.Rows[1][1])
}
