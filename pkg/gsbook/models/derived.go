package models

// Tab titles used by a run. They are fixed, not configurable.
const (
	TabEvent      = "Event"
	TabSummary    = "Summary"
	TabStandard   = "Standard"
	TabIndividual = "Individual"
)

// DerivedTable is an aggregate computed from the event table.
type DerivedTable struct {
	// Tag names the aggregate and the tab it is written to.
	Tag string `json:"tag"`
	// Table holds the aggregate, row key in the first column.
	Table *Table `json:"table"`
}

// DerivedSet is an ordered mapping from tag to derived table.
type DerivedSet struct {
	Tables []DerivedTable `json:"tables"`
}

// Add appends a derived table, replacing any previous table with the same tag.
func (s *DerivedSet) Add(tag string, t *Table) {
	for i := range s.Tables {
		if s.Tables[i].Tag == tag {
			s.Tables[i].Table = t
			return
		}
	}
	s.Tables = append(s.Tables, DerivedTable{Tag: tag, Table: t})
}

// Get returns the table for a tag.
func (s *DerivedSet) Get(tag string) (*Table, bool) {
	for _, d := range s.Tables {
		if d.Tag == tag {
			return d.Table, true
		}
	}
	return nil, false
}

// Tags returns the tags in insertion order.
func (s *DerivedSet) Tags() []string {
	tags := make([]string, len(s.Tables))
	for i, d := range s.Tables {
		tags[i] = d.Tag
	}
	return tags
}
