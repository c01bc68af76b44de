// Package frontmatter splits YAML front-matter from post bodies and decodes
// it into typed post metadata.
package frontmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter is returned when a front-matter block opens but
// never closes.
var ErrMissingClosingDelimiter = errors.New("frontmatter: missing closing --- delimiter")

// Split separates YAML front-matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a front-matter delimiter, had is false
// and body is the full input. Both LF and CRLF documents are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		// Empty block: `---\n---\n`.
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	fmEnd := idx + len(nl)
	bodyStart := idx + len(closeSeq)
	return rest[:fmEnd], rest[bodyStart:], true, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
