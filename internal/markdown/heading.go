package markdown

import (
	"fmt"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/pageturtle/pageturtle/internal/anchor"
)

// headingHTMLRenderer replaces the stock heading renderer with an anchored
// variant: the whole heading becomes a self-link and carries a stable id,
// so TOC entries and in-page links land on the right section.
type headingHTMLRenderer struct{}

func newHeadingHTMLRenderer() renderer.NodeRenderer {
	return &headingHTMLRenderer{}
}

func (r *headingHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindHeading, r.renderHeading)
}

func (r *headingHTMLRenderer) renderHeading(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	h := node.(*gmast.Heading)
	if !entering {
		_, _ = fmt.Fprintf(w, "</h%d></a>", h.Level)
		return gmast.WalkContinue, nil
	}

	id := headingAnchor(h, source)
	_, _ = fmt.Fprintf(w, `<a class="heading-link" href="#%s"><h%d id="%s"><span class="heading-marker">#</span>`, id, h.Level, id)
	return gmast.WalkContinue, nil
}

// headingAnchor prefers the id assigned during TOC extraction; headings the
// extractor never saw fall back to a plain slug of their text children.
func headingAnchor(h *gmast.Heading, source []byte) string {
	if v, ok := h.AttributeString("id"); ok {
		switch id := v.(type) {
		case string:
			return id
		case []byte:
			return string(id)
		}
	}
	return anchor.Slugify(HeadingText(h, source))
}

// HeadingText concatenates the immediate text children of a heading.
// Formatted spans (emphasis, code) are skipped, matching how TOC titles
// have always been derived.
func HeadingText(h *gmast.Heading, source []byte) string {
	var title string
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			title += string(t.Segment.Value(source))
		}
	}
	return title
}
