// Package feed maps the publish set to an Atom syndication feed.
//
// Building is a pure mapping: no I/O, no clock reads. Callers inject the
// feed-level timestamp so repeated builds of unchanged content stay
// byte-identical.
package feed

import (
	"time"

	"github.com/pageturtle/pageturtle/internal/blog"
	"github.com/pageturtle/pageturtle/internal/config"
)

// TimeLayout renders timestamps with an explicit +00:00 offset. Post dates
// carry no time-of-day, so entry timestamps are always midnight.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// Entry is one feed item.
type Entry struct {
	ID      string
	Title   string
	Author  string
	Content string
	Updated string
	Link    string
}

// Feed is the feed-level metadata plus one Entry per published post.
type Feed struct {
	Title   string
	Link    string
	Author  string
	Updated string
	Entries []Entry
}

// Build maps the publish set to a Feed. Entry ids and links are the post's
// absolute URL under the configured base URL.
func Build(set []*blog.PublishablePost, cfg *config.Config, now time.Time) Feed {
	entries := make([]Entry, 0, len(set))
	for _, p := range set {
		entries = append(entries, toEntry(p, cfg))
	}
	return Feed{
		Title:   cfg.BlogTitle,
		Link:    cfg.BaseURL,
		Author:  cfg.Author,
		Updated: FormatTime(now),
		Entries: entries,
	}
}

func toEntry(p *blog.PublishablePost, cfg *config.Config) Entry {
	url := cfg.BaseURL + "/" + p.Filename

	author := cfg.Author
	if len(p.Post.Metadata.Authors) > 0 {
		author = p.Post.Metadata.Authors[0]
	}

	return Entry{
		ID:      url,
		Title:   p.Post.Metadata.Title,
		Author:  author,
		Content: p.RenderedHTML,
		Updated: FormatTime(p.Post.Metadata.Date.Time),
		Link:    url,
	}
}

// FormatTime renders t in UTC with the feed's fixed-offset layout,
// e.g. 2024-03-10T00:00:00+00:00.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
