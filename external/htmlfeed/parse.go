package htmlfeed

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html"
)

// ParseDocument reduces an HTML body to its candidate tables and
// classifies each one.
func ParseDocument(url string, body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse document %s", url)
	}

	out := &Document{URL: url}
	doc.Find("table").Each(func(_ int, tableSel *goquery.Selection) {
		var rows [][]Cell
		tableSel.Find("tr").Each(func(_ int, rowSel *goquery.Selection) {
			var row []Cell
			rowSel.ChildrenFiltered("th, td").Each(func(_ int, cellSel *goquery.Selection) {
				row = append(row, Cell{
					Text:   cellText(cellSel),
					Header: goquery.NodeName(cellSel) == "th",
				})
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})
		if len(rows) == 0 {
			return
		}

		table := Table{Rows: rows}
		classify(&table)
		out.Tables = append(out.Tables, table)
	})

	return out, nil
}

// cellText flattens a cell's text nodes into one whitespace-collapsed
// string, dropping footnote markup noise along the way.
func cellText(sel *goquery.Selection) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, node := range sel.Nodes {
		collectText(node, buf)
	}

	return strings.Join(strings.Fields(buf.String()), " ")
}

func collectText(node *html.Node, buf *bytebufferpool.ByteBuffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buf.WriteString(node.Data)
		buf.WriteByte(' ')
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buf)
	}
}
