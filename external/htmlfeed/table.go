package htmlfeed

// Shape is the classified structural pattern of a source table. It decides
// how physical columns map to logical fields downstream.
type Shape string

const (
	ShapeStandings        Shape = "standings"
	ShapeRankedScorer     Shape = "ranked-scorer"
	ShapeSquadAppearances Shape = "squad-appearances"
	ShapeUnrecognized     Shape = "unrecognized"
)

type Cell struct {
	Text   string
	Header bool
}

// Table is one tabular block lifted out of a document: the raw cell grid
// plus the resolved header row and shape tag.
type Table struct {
	Shape     Shape
	Headers   []string
	HeaderRow int
	Rows      [][]Cell
}

// Document is a fetched page reduced to its candidate tables. Most pages
// carry tables irrelevant to scoring; those end up tagged unrecognized and
// are skipped, which is not an error.
type Document struct {
	URL    string
	Tables []Table
}

// RecognizedTables filters out unrecognized blocks.
func (d *Document) RecognizedTables() []Table {
	var out []Table
	for _, table := range d.Tables {
		if table.Shape != ShapeUnrecognized {
			out = append(out, table)
		}
	}
	return out
}
