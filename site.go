// Command jpospisil.com builds the blog: it reads date-stamped Markdown
// posts, renders them into HTML pages, category pages, a paginated
// index, Atom feeds and a sitemap, and copies the static files along.
//
// You need to provide your own templates: global.html wrapping
// post.html, list.html and topics.html.
package main

import (
	"bytes"
	"cmp"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/otiai10/copy"
)

type Site struct {
	posts       posts
	conf        *SiteConf
	renderCache map[string]string
}

func ReadSite(conf *SiteConf, drafts bool) (*Site, error) {
	files, err := findPostFiles(conf.WritingDir, conf.WritingFileExtension)
	if err != nil {
		return nil, err
	}

	thisSite := Site{
		posts:       make(posts, 0, len(files)),
		conf:        conf,
		renderCache: make(map[string]string),
	}

	for _, f := range files {
		p, err := readPostFromFile(f, conf.WritingFileDateStampFormat)
		if err != nil {
			return nil, err
		}
		if drafts || !p.IsDraft() {
			p.URL = thisSite.permalink(p)
			thisSite.posts = append(thisSite.posts, p)
		}
	}

	// Newest first; equal dates by id so rebuilds are stable.
	slices.SortStableFunc(thisSite.posts, func(a, b *post) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return &thisSite, nil
}

func (s *Site) categoriesDir() string {
	return filepath.Join(s.conf.OutDir, s.conf.CategoriesOutDir)
}

// writeOutput writes b to the site-relative URL path under OutDir.
// Directory URLs ending in "/" get an index.html.
func (s *Site) writeOutput(urlPath string, b []byte) error {
	rel := filepath.FromSlash(urlPath)
	if len(urlPath) > 0 && urlPath[len(urlPath)-1] == '/' {
		rel = filepath.Join(rel, "index.html")
	}
	outPath := filepath.Join(s.conf.OutDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), os.FileMode(0775)); err != nil {
		return err
	}
	return os.WriteFile(outPath, b, os.FileMode(0664))
}

func (s *Site) globalTemplateParam() templateParam {
	minPostDate := time.Now().AddDate(0, -s.conf.MaxAgeForFrequentCategoriesInMonths, 0)
	recent := s.posts.pruneOlderThan(minPostDate)
	return templateParam{
		SiteTitle: s.conf.SiteTitle,
		BaseUrl:   s.conf.BaseUrl,
		FrequentCategories: groupByCategory(recent).frequentCategories(
			s.conf.NumFrequentCategories,
			s.conf.MinArticlesForFrequentCategories),
	}
}

func (s *Site) RenderHtml() error {
	toHtml, err := newMarkdownRenderer(s.conf)
	if err != nil {
		return err
	}
	engine := newTemplateEngine(toHtml, s.conf.TemplateDir)

	// One global template parameter holder, re-used for all pages with
	// the title and ids overwritten.
	globalTP := s.globalTemplateParam()

	for _, p := range s.posts {
		var b bytes.Buffer
		globalTP.PageTitle = p.Title
		globalTP.FeedId = "index"
		globalTP.FileId = p.ID
		renderedBody, err := engine.renderPost(globalTP, p, &b)
		if err != nil {
			return err
		}
		if err := s.writeOutput(p.URL, b.Bytes()); err != nil {
			return err
		}
		s.renderCache[p.ID] = renderedBody
	}

	byCat := groupByCategory(s.posts.dated())

	if err := os.MkdirAll(s.categoriesDir(), os.FileMode(0775)); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	for _, c := range byCat {
		catId := c.Category.Id()
		globalTP.PageTitle = c.Category.String()
		globalTP.FeedId = catId
		globalTP.FileId = catId
		var b bytes.Buffer
		err := engine.renderPostList(postListTemplateParam{
			templateParam: globalTP,
			PageHeading:   c.Category.String(),
			Posts:         c.Posts,
		}, &b)
		if err != nil {
			return err
		}
		if err := s.writeOutput(s.conf.CategoriesOutDir+"/"+catId+".html", b.Bytes()); err != nil {
			return err
		}
	}

	var b bytes.Buffer
	globalTP.PageTitle = "Topics"
	globalTP.FeedId = "index"
	globalTP.FileId = "topics"
	if err := engine.renderTopics(globalTP, byCat, &b); err != nil {
		return err
	}
	if err := s.writeOutput("/topics.html", b.Bytes()); err != nil {
		return err
	}

	return s.renderIndex(engine, globalTP)
}

// renderIndex writes the paginated post list: index.html, then
// page2/index.html and so on.
func (s *Site) renderIndex(engine *templateEngine, globalTP templateParam) error {
	globalTP.PageTitle = s.conf.SiteTitle
	globalTP.FeedId = "index"
	globalTP.FileId = "index"

	for _, pg := range paginate(s.posts.dated(), s.conf.Paginate) {
		param := postListTemplateParam{
			templateParam:  globalTP,
			Posts:          pg.Posts,
			ShowTopicsLink: pg.HasNext(),
			Pager:          &pg,
		}
		if pg.HasPrev() {
			param.PrevUrl = pagerURL(s.conf.PaginatePath, pg.Number-1)
		}
		if pg.HasNext() {
			param.NextUrl = pagerURL(s.conf.PaginatePath, pg.Number+1)
		}

		var b bytes.Buffer
		if err := engine.renderPostList(param, &b); err != nil {
			return err
		}
		if err := s.writeOutput(pagerURL(s.conf.PaginatePath, pg.Number), b.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) RenderAll() error {
	if err := os.MkdirAll(s.conf.OutDir, os.FileMode(0775)); err != nil {
		return err
	}
	if err := s.RenderHtml(); err != nil {
		return err
	}
	if err := s.RenderAtom(); err != nil {
		return err
	}
	return s.RenderSitemap()
}

func (s *Site) CopyStaticFiles() error {
	srcDir := s.conf.StaticFilesDir
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		log.Println("No static files in " + srcDir)
		return nil
	}
	dest := filepath.Join(s.conf.OutDir, filepath.Base(srcDir))
	log.Println("Recursively copying", srcDir, "to", dest)
	return copy.Copy(srcDir, dest)
}
