package blog

import (
	"path"

	gmast "github.com/yuin/goldmark/ast"
)

// AssetsRoot is the directory under the site root where referenced images
// are published.
const AssetsRoot = "img"

// AssetReference records one image occurrence: the path as authored and the
// site-relative path it was rewritten to. Repeated references to the same
// original produce repeated entries; deduplication is a known gap.
type AssetReference struct {
	OriginalPath string
	FinalPath    string
}

// RewriteAssets rewrites every image destination in the tree to its final
// published location (/img/<basename>) and returns the copy manifest.
//
// This mutates the tree in place. It must run before the tree is rendered:
// rendering reads whatever destinations the nodes carry at that point.
func RewriteAssets(doc gmast.Node) []AssetReference {
	refs := []AssetReference{}
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		img, ok := n.(*gmast.Image)
		if !ok {
			return gmast.WalkContinue, nil
		}
		original := string(img.Destination)
		final := "/" + path.Join(AssetsRoot, path.Base(original))
		img.Destination = []byte(final)
		refs = append(refs, AssetReference{OriginalPath: original, FinalPath: final})
		return gmast.WalkContinue, nil
	})
	return refs
}
