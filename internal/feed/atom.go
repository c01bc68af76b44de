package feed

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Atom serialization. encoding/xml is used directly (rather than a feed
// library) because the feed's timestamp format is a fixed +00:00 offset
// that pre-rendered strings preserve and time.Time-based libraries do not.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	Link    atomLink    `xml:"link"`
	Updated string      `xml:"updated"`
	Author  atomPerson  `xml:"author"`
	ID      string      `xml:"id"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

type atomPerson struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title   string      `xml:"title"`
	Link    atomLink    `xml:"link"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Author  atomPerson  `xml:"author"`
	Content atomContent `xml:"content"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// WriteAtom serializes the feed as Atom XML.
func WriteAtom(w io.Writer, f Feed) error {
	af := atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   f.Title,
		Link:    atomLink{Href: f.Link},
		Updated: f.Updated,
		Author:  atomPerson{Name: f.Author},
		ID:      f.Link + "/",
	}
	for _, e := range f.Entries {
		af.Entries = append(af.Entries, atomEntry{
			Title:   e.Title,
			Link:    atomLink{Href: e.Link},
			ID:      e.ID,
			Updated: e.Updated,
			Author:  atomPerson{Name: e.Author},
			Content: atomContent{Type: "html", Body: e.Content},
		})
	}

	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(af); err != nil {
		return fmt.Errorf("encode atom feed: %w", err)
	}
	return enc.Close()
}
