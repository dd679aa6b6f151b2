package transform

import (
	"slices"
	"sort"
	"strings"

	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/montanaflynn/stats"
)

// summary pivots the max score of each (Name, Standard) group.
func summary(events []event) *models.Table {
	scores := make(map[[2]string]stats.Float64Data)
	names := newKeySet()
	standards := newKeySet()

	for _, e := range events {
		names.add(e.Name)
		standards.add(e.Standard)
		if e.hasScore {
			key := [2]string{e.Name, e.Standard}
			scores[key] = append(scores[key], e.score)
		}
	}

	cols := standards.sorted()
	t := models.NewTable(append([]string{models.ColName}, cols...)...)
	for _, name := range names.sorted() {
		row := make([]any, 0, len(cols)+1)
		row = append(row, name)
		for _, std := range cols {
			row = append(row, maxOrNil(scores[[2]string{name, std}]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// standard pivots the count of dated events in each (Standard, Version) group.
func standard(events []event) *models.Table {
	counts := make(map[[2]string]int)
	standards := newKeySet()
	versions := newKeySet()

	for _, e := range events {
		standards.add(e.Standard)
		versions.add(e.Version)
		if strings.TrimSpace(e.Date) != "" {
			counts[[2]string{e.Standard, e.Version}]++
		}
	}

	cols := versions.sorted()
	t := models.NewTable(append([]string{models.ColStandard}, cols...)...)
	for _, std := range standards.sorted() {
		row := make([]any, 0, len(cols)+1)
		row = append(row, std)
		for _, ver := range cols {
			row = append(row, counts[[2]string{std, ver}])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

type individualGroup struct {
	scores  stats.Float64Data
	remarks []string
}

// individual aggregates each (Name, Standard, Version, Date) group.
func individual(events []event) *models.Table {
	groups := make(map[[4]string]*individualGroup)
	var keys [][4]string

	for _, e := range events {
		key := [4]string{e.Name, e.Standard, e.Version, e.Date}
		g, ok := groups[key]
		if !ok {
			g = &individualGroup{}
			groups[key] = g
			keys = append(keys, key)
		}
		if e.hasScore {
			g.scores = append(g.scores, e.score)
		}
		g.remarks = append(g.remarks, e.Remark)
	}

	slices.SortFunc(keys, func(a, b [4]string) int {
		return slices.Compare(a[:], b[:])
	})

	t := models.NewTable(
		models.ColName, models.ColStandard, models.ColVersion, models.ColDate,
		ColMaxScore, ColScoreCount, ColRemarkSum,
	)
	for _, key := range keys {
		g := groups[key]
		t.Rows = append(t.Rows, []any{
			key[0], key[1], key[2], key[3],
			maxOrNil(g.scores),
			len(g.scores),
			sumRemarks(g.remarks),
		})
	}
	return t
}

// maxOrNil returns the largest value, or nil for an empty group.
func maxOrNil(data stats.Float64Data) any {
	if len(data) == 0 {
		return nil
	}
	m, err := stats.Max(data)
	if err != nil {
		return nil
	}
	return m
}

// sumRemarks adds numeric remarks. When any non-blank remark is text the
// non-blank remarks are joined with RemarkSeparator instead.
func sumRemarks(remarks []string) any {
	var nums stats.Float64Data
	var texts []string
	numeric := true

	for _, r := range remarks {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		texts = append(texts, r)
		if v, err := parseNumber(r); err == nil {
			nums = append(nums, v)
		} else {
			numeric = false
		}
	}

	if !numeric {
		return strings.Join(texts, RemarkSeparator)
	}
	if len(nums) == 0 {
		return 0.0
	}
	sum, err := stats.Sum(nums)
	if err != nil {
		return 0.0
	}
	return sum
}

// keySet collects distinct group keys.
type keySet map[string]struct{}

func newKeySet() keySet {
	return make(keySet)
}

func (s keySet) add(k string) {
	s[k] = struct{}{}
}

func (s keySet) sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
