package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/pageturtle/pageturtle/internal/blog"
	"github.com/pageturtle/pageturtle/internal/config"
)

func publishPost(t *testing.T, src string) *blog.PublishablePost {
	t.Helper()
	c := blog.NewCompiler()
	post, err := c.Compile([]byte(src))
	require.NoError(t, err)
	pub, err := c.PreparePublish(post)
	require.NoError(t, err)
	return pub
}

func TestRenderPost_TocRenderedWhenEnabled(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	pub := publishPost(t, "---\ntitle: T\ndate: 2024-01-01\ntable_of_contents: true\n---\n# One\n\n## Two\n\n### Three\n")
	out, err := r.RenderPost(testConfig(), pub)
	require.NoError(t, err)

	require.Contains(t, out, `class="toc"`)
	require.Contains(t, out, `href="#one"`)
	require.Contains(t, out, `href="#two"`)
	require.Contains(t, out, `href="#three"`)
}

func TestRenderPost_TocOmittedByDefault(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	pub := publishPost(t, "---\ntitle: T\ndate: 2024-01-01\n---\n# One\n")
	out, err := r.RenderPost(testConfig(), pub)
	require.NoError(t, err)
	require.NotContains(t, out, `class="toc"`)
}

func TestRenderPost_ContentNotEscaped(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	pub := publishPost(t, "---\ntitle: T\ndate: 2024-01-01\n---\n**bold**\n")
	out, err := r.RenderPost(testConfig(), pub)
	require.NoError(t, err)
	require.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderIndex_IsParseableHTMLWithNav(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	cfg := testConfig()
	cfg.ExtraLinksStart = []config.Link{{Name: "About", Href: "/about.html"}}

	out, err := r.RenderIndex(cfg, nil)
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	require.Contains(t, hrefs, "/about.html")
	require.Contains(t, hrefs, "/tags.html")
	require.Contains(t, hrefs, "/atom.xml")
}

func TestRenderIndex_LiveReloadScriptOnlyInDevMode(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	cfg := testConfig()
	out, err := r.RenderIndex(cfg, nil)
	require.NoError(t, err)
	require.NotContains(t, out, "/livereload")

	cfg.IsDevServer = true
	out, err = r.RenderIndex(cfg, nil)
	require.NoError(t, err)
	require.Contains(t, out, "/livereload")
}

func TestRenderTags_ListsTags(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.RenderTags(testConfig(), []string{"blog", "go"})
	require.NoError(t, err)
	require.Contains(t, out, ">blog</li>")
	require.Contains(t, out, ">go</li>")
}
