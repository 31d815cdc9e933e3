// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// WriteHTML renders res as <table class="display"> with a thead and tbody.
// Cell text is escaped by the renderer.
func WriteHTML(w io.Writer, res types.CartesianResult) error {
	table := element(atom.Table, html.Attribute{Key: "class", Val: "display"})

	thead := element(atom.Thead)
	thead.AppendChild(tableRow(atom.Th, Header(res)))
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, cells := range Cells(res) {
		tbody.AppendChild(tableRow(atom.Td, cells))
	}
	table.AppendChild(tbody)

	if err := html.Render(w, table); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func tableRow(cell atom.Atom, values []string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		c := element(cell)
		c.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		tr.AppendChild(c)
	}
	return tr
}

// ReadHTML parses the first table in r, taking th cells as headers and
// td rows as data.
func ReadHTML(r io.Reader) (types.CartesianResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return types.CartesianResult{}, fmt.Errorf("parsing html: %w", err)
	}
	table := find(doc, atom.Table)
	if table == nil {
		return types.CartesianResult{}, errors.New("reading html: no table element")
	}

	var header []string
	var rows [][]string
	walk(table, func(n *html.Node) {
		if n.DataAtom != atom.Tr {
			return
		}
		var ths, tds []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.DataAtom {
			case atom.Th:
				ths = append(ths, text(c))
			case atom.Td:
				tds = append(tds, text(c))
			}
		}
		if len(ths) > 0 && header == nil {
			header = ths
		}
		if len(tds) > 0 {
			rows = append(rows, tds)
		}
	})
	if header == nil {
		return types.CartesianResult{}, errors.New("reading html: table has no header")
	}
	return fromTable(header, rows)
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
