// Package markdown wraps the Goldmark engine used for post bodies.
//
// Parsing and rendering are split on purpose: the publish step mutates the
// parsed tree (asset rewriting) between the two, so rendering must always
// read the tree as it is at render time.
package markdown

import (
	"io"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// HighlightStyle is the Chroma style applied to fenced code blocks.
const HighlightStyle = "base16-snazzy"

// Engine is a configured Goldmark instance. One Engine serves a whole build
// pass; the (source, tree) pairs it produces are discarded with the pass.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine builds the blog's Markdown engine: GFM, emoji shortcodes,
// syntax-highlighted code fences, and anchored headings.
func NewEngine() *Engine {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			emoji.Emoji,
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newHeadingHTMLRenderer(), 100),
			),
		),
	)
	return &Engine{md: md}
}

// Parse parses a Markdown body (front-matter already removed) into a tree.
// Nodes reference segments of source, so source must outlive the tree.
func (e *Engine) Parse(source []byte) gmast.Node {
	return e.md.Parser().Parse(text.NewReader(source))
}

// Render writes the HTML for a previously parsed tree.
func (e *Engine) Render(w io.Writer, source []byte, doc gmast.Node) error {
	return e.md.Renderer().Render(w, source, doc)
}
