package blog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteAssets_RewritesToAssetsRootAndRecordsReference(t *testing.T) {
	c := NewCompiler()
	source := []byte("![a photo](../img/photo.png)\n")
	doc := c.engine.Parse(source)

	refs := RewriteAssets(doc)
	require.Equal(t, []AssetReference{
		{OriginalPath: "../img/photo.png", FinalPath: "/img/photo.png"},
	}, refs)
}

func TestRewriteAssets_MutationVisibleToRenderer(t *testing.T) {
	c := NewCompiler()
	post, err := c.Compile([]byte("---\ntitle: Pics\ndate: 2024-01-01\n---\n![shot](assets/shot.jpg)\n"))
	require.NoError(t, err)

	pub, err := c.PreparePublish(post)
	require.NoError(t, err)
	require.Contains(t, pub.RenderedHTML, `src="/img/shot.jpg"`)
	require.NotContains(t, pub.RenderedHTML, "assets/shot.jpg")
}

func TestRewriteAssets_NoDeduplication(t *testing.T) {
	c := NewCompiler()
	source := []byte("![one](pics/x.png)\n\n![two](pics/x.png)\n")
	doc := c.engine.Parse(source)

	refs := RewriteAssets(doc)
	require.Len(t, refs, 2)
}

func TestRewriteAssets_NoImages(t *testing.T) {
	c := NewCompiler()
	doc := c.engine.Parse([]byte("plain text\n"))
	require.Empty(t, RewriteAssets(doc))
}
