package main

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"
)

func formatDate(d time.Time) string {
	return d.Format("January 2, 2006")
}

func formatDateShort(d time.Time) string {
	return d.Format("Jan 2, 2006")
}

type templateParam struct {
	SiteTitle          string
	BaseUrl            string
	PageTitle          string
	FrequentCategories []category
	// A short id such as a category name or "about"
	FileId string
	FeedId string
}

func (t templateParam) IdIs(id string) bool {
	return t.FileId == id
}

type postTemplateParam struct {
	templateParam
	*post
	RenderedBody template.HTML
}

type postListTemplateParam struct {
	templateParam
	PageHeading    string
	Posts          []*post
	ShowTopicsLink bool

	// Set on the paginated index only.
	Pager            *pager
	PrevUrl, NextUrl string
}

type topicsTemplateParam struct {
	templateParam
	PostsByCategory postsByCategory
}

func (t topicsTemplateParam) Eq(a, b int) bool {
	return a == b
}

type templateEngine struct {
	toHtml        renderer
	templateDir   string
	templateCache map[string]*template.Template
}

func newTemplateEngine(r renderer, dir string) *templateEngine {
	return &templateEngine{
		toHtml:        r,
		templateDir:   dir,
		templateCache: make(map[string]*template.Template),
	}
}

// renderPost writes the full page for p to w and returns the rendered
// body alone, for reuse in feeds.
func (te *templateEngine) renderPost(tp templateParam, p *post, w io.Writer) (string, error) {
	body, err := te.toHtml.render(p.Body)
	if err != nil {
		return "", fmt.Errorf("rendering %v: %w", p.Path, err)
	}

	t, err := te.getTemplate("post.html")
	if err != nil {
		return "", err
	}

	param := postTemplateParam{
		templateParam: tp,
		post:          p,
		RenderedBody:  template.HTML(body),
	}
	if err := t.Execute(w, param); err != nil {
		return "", fmt.Errorf("executing post.html for %v: %w", p.ID, err)
	}
	return body, nil
}

func (te *templateEngine) renderPostList(p postListTemplateParam, w io.Writer) error {
	t, err := te.getTemplate("list.html")
	if err != nil {
		return err
	}
	return t.Execute(w, p)
}

func (te *templateEngine) renderTopics(tp templateParam, topics postsByCategory, w io.Writer) error {
	t, err := te.getTemplate("topics.html")
	if err != nil {
		return err
	}
	return t.Execute(w, topicsTemplateParam{
		templateParam:   tp,
		PostsByCategory: topics,
	})
}

func (te *templateEngine) getTemplate(filename string) (*template.Template, error) {
	if t, ok := te.templateCache[filename]; ok {
		return t, nil
	}

	t, err := template.ParseFiles(
		filepath.Join(te.templateDir, "global.html"),
		filepath.Join(te.templateDir, filename))
	if err != nil {
		return nil, fmt.Errorf("loading template %v: %w", filename, err)
	}
	te.templateCache[filename] = t
	return t, nil
}
