package blog

import (
	"bytes"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pageturtle/pageturtle/internal/anchor"
)

// PublishablePost is a compiled post enriched with its rendered HTML and
// resolved output identity.
type PublishablePost struct {
	Post         *Post
	Filename     string
	Description  string
	RenderedHTML string
	Assets       []AssetReference
}

// PreparePublish renders a post for publishing.
//
// Ordering contract: RewriteAssets mutates image nodes and the renderer
// reads the mutated tree, so the rewrite happens strictly before Render.
func (c *Compiler) PreparePublish(p *Post) (*PublishablePost, error) {
	assets := RewriteAssets(p.Doc)

	var buf bytes.Buffer
	if err := c.engine.Render(&buf, p.Body, p.Doc); err != nil {
		return nil, fmt.Errorf("render post %q: %w", p.Metadata.Title, err)
	}

	name := p.Metadata.Slug
	if name == "" {
		name = p.Metadata.Title
	}

	description := p.Metadata.Description
	if description == "" {
		description = BuildDescription(p.Body, p.Doc)
	}

	return &PublishablePost{
		Post:         p,
		Filename:     anchor.Slugify(name) + ".html",
		Description:  description,
		RenderedHTML: buf.String(),
		Assets:       assets,
	}, nil
}

// ResolveFilenames disambiguates posts whose slugs collide on the same
// output filename: the first keeps the plain name, later ones get an
// ordinal suffix before the extension. Input order is the directory-walk
// order of the build.
func ResolveFilenames(set []*PublishablePost) {
	seen := map[string]int{}
	for _, p := range set {
		base := strings.TrimSuffix(p.Filename, ".html")
		seen[base]++
		if n := seen[base]; n > 1 {
			p.Filename = fmt.Sprintf("%s-%d.html", base, n)
			slog.Warn("output filename collision", "title", p.Post.Metadata.Title, "filename", p.Filename)
		}
	}
}

// SortPublishSet orders the set by publish date descending. Ties keep their
// pre-sort order, which is the directory-walk order.
func SortPublishSet(set []*PublishablePost) {
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].Post.Metadata.Date.After(set[j].Post.Metadata.Date.Time)
	})
}

// CollectTags returns the unique tags across the publish set, sorted.
func CollectTags(set []*PublishablePost) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, p := range set {
		for _, t := range p.Post.Metadata.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
