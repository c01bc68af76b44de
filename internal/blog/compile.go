// Package blog turns markdown post sources into publishable documents:
// metadata extraction, table-of-contents nesting, asset rewriting, derived
// fields and the globally ordered publish set.
package blog

import (
	"fmt"

	gmast "github.com/yuin/goldmark/ast"

	"github.com/pageturtle/pageturtle/internal/frontmatter"
	"github.com/pageturtle/pageturtle/internal/markdown"
)

// CompileError is a per-post failure with a best-effort source position.
// Lines are derived from the front-matter decoder when it names one;
// columns are never available. Positions are approximate by documented
// intent, not a contract.
type CompileError struct {
	Line    int
	Column  int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Post is a compiled document. Doc references segments of Body, so the two
// travel together; both belong to the Compiler that produced them and are
// discarded with the build pass.
type Post struct {
	Metadata    frontmatter.Metadata
	Raw         []byte
	Body        []byte
	Doc         gmast.Node
	Toc         []TocEntry
	ReadingTime int
}

// Compiler owns the markdown engine for one build pass. Every build creates
// a fresh Compiler; nothing it produces is reused across builds.
type Compiler struct {
	engine *markdown.Engine
}

func NewCompiler() *Compiler {
	return &Compiler{engine: markdown.NewEngine()}
}

// Compile parses one post source into a Post. A missing front-matter block
// and metadata decode failures are compile errors; no partial Post is
// returned for them.
//
// Asset rewriting is deliberately not part of compilation: it mutates the
// tree, and the description and reading-time scans here must see authored
// URLs. The rewrite happens in PreparePublish, after which the tree is
// rendered.
func (c *Compiler) Compile(content []byte) (*Post, error) {
	fm, body, had, err := frontmatter.Split(content)
	if err != nil {
		return nil, &CompileError{Line: 1, Message: err.Error()}
	}
	if !had {
		return nil, &CompileError{Line: 1, Message: "could not find frontmatter section in file"}
	}

	meta, err := frontmatter.ParseMetadata(fm)
	if err != nil {
		ce := &CompileError{Line: 1, Message: err.Error()}
		if line, ok := frontmatter.ErrorLine(err); ok {
			// Front-matter content starts on file line 2, after the opening
			// delimiter.
			ce.Line = line + 1
		}
		return nil, ce
	}

	doc := c.engine.Parse(body)
	headings := ExtractHeadings(body, doc)

	return &Post{
		Metadata:    meta,
		Raw:         content,
		Body:        body,
		Doc:         doc,
		Toc:         BuildToc(headings),
		ReadingTime: ReadingTime(body, doc),
	}, nil
}
