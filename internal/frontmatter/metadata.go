package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DateFormat is the only accepted publish date layout.
const DateFormat = "2006-01-02"

// Date is a calendar date with no time-of-day component. The underlying
// time.Time is midnight UTC.
type Date struct {
	time.Time
}

// UnmarshalYAML decodes a `YYYY-MM-DD` scalar.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("line %d: date must match %s: %q", value.Line, DateFormat, s)
	}
	d.Time = t
	return nil
}

// Metadata holds the typed fields of a post's front-matter block.
type Metadata struct {
	Title           string   `yaml:"title"`
	Authors         []string `yaml:"authors"`
	Slug            string   `yaml:"slug"`
	Description     string   `yaml:"description"`
	Date            Date     `yaml:"date"`
	Tags            []string `yaml:"tags"`
	TableOfContents bool     `yaml:"table_of_contents"`
}

// FormatDate renders the publish date for page display, e.g. "March 10, 2024".
func (m Metadata) FormatDate() string {
	return m.Date.Format("January 2, 2006")
}

// ParseMetadata decodes raw front-matter (delimiters already stripped) into
// Metadata. Title and date are required.
func ParseMetadata(raw []byte) (Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Metadata{}, err
	}
	if m.Title == "" {
		return Metadata{}, errors.New("missing required field: title")
	}
	if m.Date.IsZero() {
		return Metadata{}, errors.New("missing required field: date")
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m, nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// ErrorLine extracts a 1-based line number from a yaml decode error when the
// error text names one. Positions are best-effort: not every failure carries
// a location, and columns are never available.
func ErrorLine(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	n, convErr := strconv.Atoi(m[1])
	if convErr != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
