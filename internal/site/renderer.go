// Package site renders and writes the publishable output tree: per-post
// pages, index, tag listing, stylesheet and feed.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/pageturtle/pageturtle/internal/blog"
	"github.com/pageturtle/pageturtle/internal/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/styles.css
var stylesheet string

// Renderer fills the page templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// postView is the index entry for one published post.
type postView struct {
	Title       string
	Filename    string
	Date        string
	Description string
	ReadingTime int
	Tags        []string
}

type indexPage struct {
	Config *config.Config
	Posts  []postView
}

type tagsPage struct {
	Config *config.Config
	Tags   []string
}

type postPage struct {
	Config      *config.Config
	Title       string
	Date        string
	Description string
	ReadingTime int
	Authors     []string
	Tags        []string
	ShowToc     bool
	Toc         []blog.TocEntry
	Content     template.HTML
}

func (r *Renderer) RenderIndex(cfg *config.Config, set []*blog.PublishablePost) (string, error) {
	page := indexPage{Config: cfg}
	for _, p := range set {
		page.Posts = append(page.Posts, postView{
			Title:       p.Post.Metadata.Title,
			Filename:    p.Filename,
			Date:        p.Post.Metadata.FormatDate(),
			Description: p.Description,
			ReadingTime: p.Post.ReadingTime,
			Tags:        p.Post.Metadata.Tags,
		})
	}
	return r.execute("index", page)
}

func (r *Renderer) RenderTags(cfg *config.Config, tags []string) (string, error) {
	return r.execute("tags", tagsPage{Config: cfg, Tags: tags})
}

func (r *Renderer) RenderPost(cfg *config.Config, p *blog.PublishablePost) (string, error) {
	return r.execute("post", postPage{
		Config:      cfg,
		Title:       p.Post.Metadata.Title,
		Date:        p.Post.Metadata.FormatDate(),
		Description: p.Description,
		ReadingTime: p.Post.ReadingTime,
		Authors:     p.Post.Metadata.Authors,
		Tags:        p.Post.Metadata.Tags,
		ShowToc:     p.Post.Metadata.TableOfContents && len(p.Post.Toc) > 0,
		Toc:         p.Post.Toc,
		Content:     template.HTML(p.RenderedHTML),
	})
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s page: %w", name, err)
	}
	return sb.String(), nil
}

// Stylesheet returns the embedded site stylesheet.
func Stylesheet() string {
	return stylesheet
}
