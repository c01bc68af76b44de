package blog

import (
	gmast "github.com/yuin/goldmark/ast"

	"github.com/pageturtle/pageturtle/internal/anchor"
	"github.com/pageturtle/pageturtle/internal/markdown"
)

// Heading is one entry of the flat, pre-order heading stream of a document.
type Heading struct {
	Level  int
	Title  string
	Anchor string
}

// TocEntry is a heading plus its nested sub-headings. A document's table of
// contents is a forest of TocEntry.
type TocEntry struct {
	Heading
	Children []TocEntry
}

// ExtractHeadings walks the document in pre-order and returns its heading
// stream. Titles are the concatenated immediate text children of each heading;
// headings with no direct text content are skipped. Anchors are assigned here,
// with per-document collision suffixes, and stamped onto the heading nodes so
// the HTML renderer emits matching ids.
func ExtractHeadings(source []byte, doc gmast.Node) []Heading {
	anchors := anchor.NewSet()
	headings := []Heading{}
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		title := markdown.HeadingText(h, source)
		if title == "" {
			return gmast.WalkContinue, nil
		}
		a := anchors.Anchor(title)
		h.SetAttributeString("id", []byte(a))
		headings = append(headings, Heading{Level: h.Level, Title: title, Anchor: a})
		return gmast.WalkContinue, nil
	})
	return headings
}

// BuildToc nests a flat heading stream into a forest.
//
// The nesting rule is recursive, not "parent = nearest preceding lower level":
// a node's children are the maximal contiguous run of following nodes with a
// strictly greater level, re-partitioned by the same rule. buildNode consumes
// entries from the front of the queue and pushes one back whenever it closes a
// subtree, so the caller resolves siblings and uncles. The early return after
// a push-back is load-bearing; see the regression cases in toc_test.go for
// jumps like [2,4,3,1].
func BuildToc(headings []Heading) []TocEntry {
	q := newTocQueue(headings)
	forest := []TocEntry{}
	for {
		root, ok := buildNode(q)
		if !ok {
			break
		}
		forest = append(forest, root)
	}
	return forest
}

func buildNode(q *tocQueue) (TocEntry, bool) {
	if q.empty() {
		return TocEntry{}, false
	}
	root := q.popFront()

	for !q.empty() {
		node := q.popFront()

		if node.Level > root.Level {
			if child, ok := buildNode(q); ok {
				if node.Level >= child.Level {
					// The subtree closed at or above node's level: node is
					// root's last child and root closes here.
					q.pushFront(child)
					root.Children = append(root.Children, node)
					return root, true
				}
				node.Children = append(node.Children, child)
			}
			root.Children = append(root.Children, node)
		}

		if node.Level <= root.Level {
			// Sibling or uncle; hand it back for the caller to place.
			q.pushFront(node)
			return root, true
		}
	}

	return root, true
}

// tocQueue is a double-ended view over the heading stream. Front removal is
// the primary operation; pushFront only ever restores an entry into a slot
// that a pop vacated, so a cursor over a copied slice is enough and no
// pointer splicing is involved.
type tocQueue struct {
	entries []TocEntry
	head    int
}

func newTocQueue(headings []Heading) *tocQueue {
	entries := make([]TocEntry, len(headings))
	for i, h := range headings {
		entries[i] = TocEntry{Heading: h}
	}
	return &tocQueue{entries: entries}
}

func (q *tocQueue) empty() bool { return q.head >= len(q.entries) }

func (q *tocQueue) popFront() TocEntry {
	e := q.entries[q.head]
	q.head++
	return e
}

func (q *tocQueue) pushFront(e TocEntry) {
	q.head--
	q.entries[q.head] = e
}
