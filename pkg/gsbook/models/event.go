package models

// Column names of the event tab.
const (
	ColName     = "Name"
	ColStandard = "Standard"
	ColVersion  = "Version"
	ColDate     = "Date"
	ColScore    = "Score"
	ColRemark   = "Remark"
)

// EventColumns lists the columns an event tab must carry.
var EventColumns = []string{ColName, ColStandard, ColVersion, ColDate, ColScore, ColRemark}

// EventRecord is one row of the event tab, as text.
type EventRecord struct {
	// Row is the 1-based sheet row the record was read from.
	Row      int    `json:"row"`
	Name     string `json:"name"`
	Standard string `json:"standard"`
	Version  string `json:"version"`
	Date     string `json:"date"`
	Score    string `json:"score"`
	Remark   string `json:"remark"`
}

// EventRecords projects an event table into records.
// It fails with ErrMalformedTable when a required column is absent.
func EventRecords(t *Table) ([]EventRecord, error) {
	idx := make(map[string]int, len(EventColumns))
	for _, name := range EventColumns {
		i, err := t.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		idx[name] = i
	}

	records := make([]EventRecord, 0, len(t.Rows))
	for r := range t.Rows {
		records = append(records, EventRecord{
			Row:      r + 2, // header is row 1
			Name:     t.Text(r, idx[ColName]),
			Standard: t.Text(r, idx[ColStandard]),
			Version:  t.Text(r, idx[ColVersion]),
			Date:     t.Text(r, idx[ColDate]),
			Score:    t.Text(r, idx[ColScore]),
			Remark:   t.Text(r, idx[ColRemark]),
		})
	}
	return records, nil
}
