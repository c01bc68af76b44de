package blog

import (
	"math"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// WordsPerMinute is the assumed reading speed for the reading-time estimate.
const WordsPerMinute = 225

// descriptionWords is how many tokens of the first paragraph make up an
// auto-derived description.
const descriptionWords = 25

// ReadingTime estimates reading minutes, rounded up, from the word count of
// all text and code-block content in document order.
func ReadingTime(source []byte, doc gmast.Node) int {
	words := 0
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			words += len(strings.Fields(string(node.Segment.Value(source))))
		case *gmast.FencedCodeBlock:
			words += codeBlockWords(source, node)
		case *gmast.CodeBlock:
			words += codeBlockWords(source, node)
		}
		return gmast.WalkContinue, nil
	})
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

func codeBlockWords(source []byte, n gmast.Node) int {
	words := 0
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		words += len(strings.Fields(string(seg.Value(source))))
	}
	return words
}

// BuildDescription derives a short description from the first paragraph in
// pre-order: its direct text children space-joined, truncated to the first 25
// whitespace-delimited tokens, with a trailing ellipsis. Documents with no
// paragraph get an empty description.
func BuildDescription(source []byte, doc gmast.Node) string {
	var para *gmast.Paragraph
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if p, ok := n.(*gmast.Paragraph); ok {
			para = p
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	if para == nil {
		return ""
	}

	var parts []string
	for c := para.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			parts = append(parts, string(t.Segment.Value(source)))
		}
	}

	tokens := strings.Fields(strings.Join(parts, " "))
	if len(tokens) > descriptionWords {
		tokens = tokens[:descriptionWords]
	}
	return strings.Join(tokens, " ") + "..."
}
