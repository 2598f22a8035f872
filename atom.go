package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

func (s *Site) RenderAtom() error {
	filePath := filepath.Join(s.conf.OutDir, "index.xml")
	err := s.renderAndSaveFeed(s.conf.SiteTitle, "", filePath, s.posts)
	if err != nil {
		return err
	}

	return s.renderAndSaveCategoriesAtom()
}

func (s *Site) renderFeed(title, relUrl string, ps posts) ([]byte, error) {
	feed := atom.Feed{
		Title:   title,
		Link:    joinURL(s.conf.BaseUrl, relUrl),
		PubDate: s.feedDate(ps),
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Author,
		Uri:  s.conf.AuthorUri,
	})

	for _, p := range ps.dated() {
		feed.AddEntry(s.entryForPost(p))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		log.Printf("Atom feed %q is not valid!", title)
		for _, e := range errs {
			log.Println(e.Error())
		}
		return nil, fmt.Errorf("atom feed %q: %w", title, errs[0])
	}

	return feed.GenXml()
}

// feedDate is the newest post's date, so unchanged content gives an
// unchanged feed.
func (s *Site) feedDate(ps posts) time.Time {
	if latest := ps.dated().latestDate(); !latest.IsZero() {
		return latest
	}
	return time.Now()
}

func (s *Site) entryForPost(p *post) *atom.Entry {
	e := &atom.Entry{
		Title:       p.Title,
		Description: p.Blurb,
		Link:        joinURL(s.conf.BaseUrl, p.URL),
		PubDate:     p.Date,
	}

	for _, cat := range p.Categories {
		e.AddCategory(atom.Category{Term: cat.String()})
	}

	if renderedBody, ok := s.renderCache[p.ID]; ok {
		e.Content = renderedBody
	}

	return e
}

func (s *Site) renderAndSaveFeed(title, relUrl, filePath string, ps posts) error {
	atomXml, err := s.renderFeed(title, relUrl, ps)
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, atomXml, os.FileMode(0664))
}

func (s *Site) renderAndSaveCategoriesAtom() error {
	for _, catPosts := range groupByCategory(s.posts.dated()) {
		c := catPosts.Category
		title := s.conf.SiteTitle + ` Category "` + c.String() + `."`
		urlPath := s.conf.CategoriesOutDir + "/" + c.Id() + ".html"
		filePath := filepath.Join(s.categoriesDir(), c.Id()+".xml")

		if err := s.renderAndSaveFeed(title, urlPath, filePath, catPosts.Posts); err != nil {
			return err
		}
	}
	return nil
}
