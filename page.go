package main

import (
	"iter"
	"regexp"
	"time"
)

// A Page is one content document as the site sees it after reading the
// writing directory. PublicationDate is nil for pages without a date,
// such as static pages.
type Page struct {
	Identifier      string
	URL             string
	PublicationDate *time.Time
}

// Year-month prefix of dated posts, as in "2014-03-16-ninja".
var datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}`)

func isDatePrefixed(identifier string) bool {
	return datePrefixPattern.MatchString(identifier)
}

// collectPages yields the date-prefixed pages in input order.
func collectPages(pages []Page) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		for _, p := range pages {
			if !isDatePrefixed(p.Identifier) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// pages maps every post read for the site to a Page.
func (s *Site) pages() []Page {
	pages := make([]Page, 0, len(s.posts))
	for _, p := range s.posts {
		page := Page{
			Identifier: p.ID,
			URL:        p.URL,
		}
		if !p.IsStatic() {
			date := p.Date
			page.PublicationDate = &date
		}
		pages = append(pages, page)
	}
	return pages
}
