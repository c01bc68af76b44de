package blog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func publishPost(t *testing.T, title, date, extra, body string) *PublishablePost {
	t.Helper()
	c := NewCompiler()
	src := fmt.Sprintf("---\ntitle: %s\ndate: %s\n%s---\n%s", title, date, extra, body)
	post, err := c.Compile([]byte(src))
	require.NoError(t, err)
	pub, err := c.PreparePublish(post)
	require.NoError(t, err)
	return pub
}

func TestPreparePublish_FilenameFromTitle(t *testing.T) {
	pub := publishPost(t, "My First Post!", "2024-01-01", "", "hello\n")
	require.Equal(t, "my-first-post.html", pub.Filename)
}

func TestPreparePublish_ExplicitSlugWins(t *testing.T) {
	pub := publishPost(t, "My First Post", "2024-01-01", "slug: Custom Slug\n", "hello\n")
	require.Equal(t, "custom-slug.html", pub.Filename)
}

func TestPreparePublish_ExplicitDescriptionWins(t *testing.T) {
	pub := publishPost(t, "P", "2024-01-01", "description: hand written\n", "auto words\n")
	require.Equal(t, "hand written", pub.Description)
}

func TestPreparePublish_DerivedDescription(t *testing.T) {
	pub := publishPost(t, "P", "2024-01-01", "", "some body words\n")
	require.Equal(t, "some body words...", pub.Description)
}

func TestPreparePublish_RendersHTML(t *testing.T) {
	pub := publishPost(t, "P", "2024-01-01", "", "# Hey\n\nbody\n")
	require.Contains(t, pub.RenderedHTML, `<h1 id="hey">`)
	require.Contains(t, pub.RenderedHTML, "<p>body</p>")
}

func TestResolveFilenames_CollisionGetsOrdinalSuffix(t *testing.T) {
	a := publishPost(t, "Same Name", "2024-01-01", "", "a\n")
	b := publishPost(t, "Same Name", "2024-02-01", "", "b\n")
	c := publishPost(t, "Same Name", "2024-03-01", "", "c\n")

	set := []*PublishablePost{a, b, c}
	ResolveFilenames(set)

	require.Equal(t, "same-name.html", a.Filename)
	require.Equal(t, "same-name-2.html", b.Filename)
	require.Equal(t, "same-name-3.html", c.Filename)
}

func TestSortPublishSet_DateDescending(t *testing.T) {
	set := []*PublishablePost{
		publishPost(t, "A", "2024-01-01", "", "a\n"),
		publishPost(t, "B", "2023-06-15", "", "b\n"),
		publishPost(t, "C", "2024-03-10", "", "c\n"),
	}
	SortPublishSet(set)

	var titles []string
	for _, p := range set {
		titles = append(titles, p.Post.Metadata.Title)
	}
	require.Equal(t, []string{"C", "A", "B"}, titles)
}

func TestSortPublishSet_StableOnTies(t *testing.T) {
	set := []*PublishablePost{
		publishPost(t, "First", "2024-01-01", "", "a\n"),
		publishPost(t, "Second", "2024-01-01", "", "b\n"),
	}
	SortPublishSet(set)
	require.Equal(t, "First", set[0].Post.Metadata.Title)
	require.Equal(t, "Second", set[1].Post.Metadata.Title)
}

func TestCollectTags_UniqueSorted(t *testing.T) {
	set := []*PublishablePost{
		publishPost(t, "A", "2024-01-01", "tags:\n  - go\n  - web\n", "a\n"),
		publishPost(t, "B", "2024-01-02", "tags:\n  - blog\n  - go\n", "b\n"),
	}
	require.Equal(t, []string{"blog", "go", "web"}, CollectTags(set))
}

func TestCompileThenPublish_TocAnchorsMatchRenderedIDs(t *testing.T) {
	c := NewCompiler()
	post, err := c.Compile([]byte("---\ntitle: T\ndate: 2024-01-01\n---\n## Setup\n\n## Setup\n"))
	require.NoError(t, err)

	pub, err := c.PreparePublish(post)
	require.NoError(t, err)

	require.Equal(t, "setup", post.Toc[0].Anchor)
	require.Equal(t, "setup-2", post.Toc[1].Anchor)
	require.Contains(t, pub.RenderedHTML, `id="setup"`)
	require.Contains(t, pub.RenderedHTML, `id="setup-2"`)
}
