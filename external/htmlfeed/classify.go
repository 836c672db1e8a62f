package htmlfeed

import "strings"

// shapeMatchers is evaluated in fixed order; the first matching variant
// wins. Every recognized shape requires a name column.
var shapeMatchers = []struct {
	shape   Shape
	matches func(t *Table) bool
}{
	{ShapeStandings, matchStandings},
	{ShapeRankedScorer, matchRankedScorer},
	{ShapeSquadAppearances, matchSquadAppearances},
}

func classify(t *Table) {
	t.Headers, t.HeaderRow = resolveHeaders(t.Rows)

	if NameColumn(t.Headers) < 0 {
		t.Shape = ShapeUnrecognized
		return
	}

	for _, matcher := range shapeMatchers {
		if matcher.matches(t) {
			t.Shape = matcher.shape
			return
		}
	}

	t.Shape = ShapeUnrecognized
}

// resolveHeaders picks the header row. A first row with two or fewer
// header cells is a spanning title row; in that case the second row is
// tried and whichever yields the larger header set wins.
func resolveHeaders(rows [][]Cell) ([]string, int) {
	first := headerCells(rows[0])
	if len(first) > 2 || len(rows) < 2 {
		return first, 0
	}

	second := headerCells(rows[1])
	if len(second) > len(first) {
		return second, 1
	}
	return first, 0
}

func headerCells(row []Cell) []string {
	var out []string
	for _, cell := range row {
		if cell.Header {
			out = append(out, cell.Text)
		}
	}
	return out
}

func matchStandings(t *Table) bool {
	return findColumn(t.Headers, "pts") >= 0
}

func matchRankedScorer(t *Table) bool {
	if RankColumn(t.Headers) < 0 {
		return false
	}
	return TotalColumn(t.Headers) >= 0 || GoalsColumn(t.Headers) >= 0
}

// matchSquadAppearances recognizes squad tables by their sub-header row:
// no rank column, and a second row advertising paired Apps|Goals
// sub-columns under each competition header.
func matchSquadAppearances(t *Table) bool {
	if RankColumn(t.Headers) >= 0 {
		return false
	}
	if len(t.Rows) < 2 {
		return false
	}

	var b strings.Builder
	for _, cell := range t.Rows[1] {
		b.WriteString(strings.ToLower(cell.Text))
		b.WriteByte(' ')
	}
	joined := b.String()

	return strings.Contains(joined, "apps") && strings.Contains(joined, "goals")
}
