package htmlfeed

import (
	"regexp"
	"strconv"
	"strings"
)

var digitsRegex = regexp.MustCompile(`\d+`)

// aggregateLabels marks rows that summarize instead of naming an entity:
// table totals and squad section headings.
var aggregateLabels = map[string]struct{}{
	"total":       {},
	"totals":      {},
	"goalkeepers": {},
	"defenders":   {},
	"midfielders": {},
	"forwards":    {},
}

// EntityRow is one located data row: the entity display name and the
// value of the relevant total metric.
type EntityRow struct {
	Name  string
	Value int
}

func findColumn(headers []string, names ...string) int {
	for i, header := range headers {
		folded := strings.ToLower(strings.TrimSpace(header))
		for _, name := range names {
			if folded == name {
				return i
			}
		}
	}
	return -1
}

func NameColumn(headers []string) int {
	return findColumn(headers, "player", "name")
}

func RankColumn(headers []string) int {
	return findColumn(headers, "rank", "rk.", "#")
}

// TotalColumn resolves the usable total column, preferring the plain
// season-scoped header over career aggregates.
func TotalColumn(headers []string) int {
	if i := findColumn(headers, "total"); i >= 0 {
		return i
	}
	if i := findColumn(headers, "season total"); i >= 0 {
		return i
	}
	return findColumn(headers, "career club total")
}

func GoalsColumn(headers []string) int {
	return findColumn(headers, "goals", "gls")
}

// PhysicalIndex compensates for rows that collapsed a leading cell under a
// row-span (tied-rank rows): the logical header index shifts left by the
// number of missing cells.
func PhysicalIndex(headerCount, rowCells, logical int) (int, bool) {
	if logical < 0 {
		return 0, false
	}

	offset := headerCount - rowCells
	if offset < 0 {
		offset = 0
	}

	idx := logical - offset
	if idx < 0 || idx >= rowCells {
		return 0, false
	}
	return idx, true
}

// SquadGoalsIndex maps a header index to the goals sub-column in a squad
// table, where every header past the information columns spans an
// appearances cell and a goals cell.
func SquadGoalsIndex(headerIdx, infoCols, rowCells int) (int, bool) {
	if headerIdx < infoCols || infoCols < 1 {
		return 0, false
	}

	idx := infoCols + (headerIdx-infoCols)*2 + 1
	if idx >= rowCells {
		return 0, false
	}
	return idx, true
}

// sumOddCells is the squad-table fallback: treat every cell pair after the
// information columns as Apps|Goals and sum the goals halves. Best effort;
// it can overcount when a competition block breaks the two-sub-column
// assumption.
func sumOddCells(row []Cell, infoCols int) (int, bool) {
	sum := 0
	found := false
	for i := infoCols + 1; i < len(row); i += 2 {
		if v, ok := parseCellInt(row[i].Text); ok {
			sum += v
			found = true
		}
	}
	return sum, found
}

func parseCellInt(text string) (int, bool) {
	match := digitsRegex.FindString(text)
	if match == "" {
		return 0, false
	}
	v, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isAggregateRow(row []Cell) bool {
	if len(row) == 0 {
		return true
	}
	_, ok := aggregateLabels[strings.ToLower(strings.TrimSpace(row[0].Text))]
	return ok
}

// EntityRows walks a classified table's data rows and yields the entity
// name plus total metric for every row that resolves. Unresolvable rows
// are skipped, not errors.
func EntityRows(t Table) []EntityRow {
	nameCol := NameColumn(t.Headers)
	if nameCol < 0 || t.Shape == ShapeUnrecognized {
		return nil
	}

	dataStart := t.HeaderRow + 1
	if t.Shape == ShapeSquadAppearances {
		// Row after the headers is the Apps|Goals sub-header.
		dataStart++
	}
	if dataStart >= len(t.Rows) {
		return nil
	}

	var out []EntityRow
	for _, row := range t.Rows[dataStart:] {
		if isAggregateRow(row) {
			continue
		}

		nameIdx, ok := PhysicalIndex(len(t.Headers), len(row), nameCol)
		if !ok {
			continue
		}
		name := strings.TrimSpace(row[nameIdx].Text)
		if name == "" {
			continue
		}

		value, ok := locateValue(t, row, nameCol)
		if !ok {
			continue
		}

		out = append(out, EntityRow{Name: name, Value: value})
	}

	return out
}

func locateValue(t Table, row []Cell, nameCol int) (int, bool) {
	switch t.Shape {
	case ShapeStandings:
		return cellValueAt(t, row, findColumn(t.Headers, "pts"))
	case ShapeRankedScorer:
		if col := TotalColumn(t.Headers); col >= 0 {
			return cellValueAt(t, row, col)
		}
		return cellValueAt(t, row, GoalsColumn(t.Headers))
	case ShapeSquadAppearances:
		infoCols := nameCol + 1
		if col := TotalColumn(t.Headers); col >= 0 {
			if idx, ok := SquadGoalsIndex(col, infoCols, len(row)); ok {
				if v, ok := parseCellInt(row[idx].Text); ok {
					return v, true
				}
			}
		}
		return sumOddCells(row, infoCols)
	default:
		return 0, false
	}
}

func cellValueAt(t Table, row []Cell, logical int) (int, bool) {
	idx, ok := PhysicalIndex(len(t.Headers), len(row), logical)
	if !ok {
		return 0, false
	}
	return parseCellInt(row[idx].Text)
}
