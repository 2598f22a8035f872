package main

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type changeFreq string

const (
	daily  changeFreq = "daily"
	weekly changeFreq = "weekly"
)

const (
	rootPriority = 1.0
	pagePriority = 0.9
)

type sitemapEntry struct {
	Location        string
	LastModified    *time.Time
	ChangeFrequency changeFreq
	Priority        float64
}

// FormatError reports a page that cannot be listed in the sitemap.
type FormatError struct {
	Identifier string
	Reason     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sitemap: page %q: %s", e.Identifier, e.Reason)
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Location   string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq changeFreq `xml:"changefreq"`
	Priority   string     `xml:"priority"`
}

// sitemapEntries returns the root entry followed by one entry per page.
func sitemapEntries(root string, pages iter.Seq[Page]) ([]sitemapEntry, error) {
	entries := []sitemapEntry{{
		Location:        root,
		ChangeFrequency: daily,
		Priority:        rootPriority,
	}}

	for p := range pages {
		if p.PublicationDate == nil {
			return nil, &FormatError{Identifier: p.Identifier, Reason: "no publication date"}
		}
		if p.URL == "" {
			return nil, &FormatError{Identifier: p.Identifier, Reason: "no url"}
		}
		entries = append(entries, sitemapEntry{
			Location:        joinURL(root, p.URL),
			LastModified:    p.PublicationDate,
			ChangeFrequency: weekly,
			Priority:        pagePriority,
		})
	}

	return entries, nil
}

func encodeSitemap(entries []sitemapEntry) ([]byte, error) {
	set := urlSet{
		XMLNS: sitemapNamespace,
		URLs:  make([]urlEntry, 0, len(entries)),
	}
	for _, e := range entries {
		u := urlEntry{
			Location:   e.Location,
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		if e.LastModified != nil {
			u.LastMod = e.LastModified.Format(time.DateOnly)
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}

	b := bytes.NewBufferString(xml.Header)
	b.Write(out)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// writeSitemap writes the complete document to w, or nothing at all.
func writeSitemap(w io.Writer, root string, pages iter.Seq[Page]) error {
	entries, err := sitemapEntries(root, pages)
	if err != nil {
		return err
	}

	doc, err := encodeSitemap(entries)
	if err != nil {
		return err
	}

	_, err = w.Write(doc)
	return err
}

func (s *Site) RenderSitemap() error {
	var b bytes.Buffer
	if err := writeSitemap(&b, s.conf.BaseUrl, collectPages(s.pages())); err != nil {
		return err
	}

	outPath := filepath.Join(s.conf.OutDir, s.conf.SitemapFile)
	log.Println("Writing sitemap to " + outPath)
	return os.WriteFile(outPath, b.Bytes(), os.FileMode(0664))
}

// joinURL appends a site-relative path to base with exactly one slash
// between them.
func joinURL(base, rel string) string {
	if rel == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
