package main

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeSitemap(t *testing.T, doc []byte) urlSet {
	t.Helper()
	var set urlSet
	if err := xml.Unmarshal(doc, &set); err != nil {
		t.Fatalf("failed to decode sitemap: %v\n%s", err, doc)
	}
	return set
}

func samplePages() []Page {
	ninja := time.Date(2014, 3, 16, 0, 0, 0, 0, time.UTC)
	return []Page{
		{Identifier: "2014-03-16-ninja", URL: "/2014/03/16/ninja.html", PublicationDate: &ninja},
		{Identifier: "about", URL: "/about.html"},
	}
}

func TestWriteSitemapExample(t *testing.T) {
	var b bytes.Buffer
	if err := writeSitemap(&b, "http://example.com", collectPages(samplePages())); err != nil {
		t.Fatalf("writeSitemap failed: %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>http://example.com</loc>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
  <url>
    <loc>http://example.com/2014/03/16/ninja.html</loc>
    <lastmod>2014-03-16</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.9</priority>
  </url>
</urlset>
`
	if got := b.String(); got != want {
		t.Errorf("unexpected sitemap.\nexpected:\n%s\ngot:\n%s", want, got)
	}
}

func TestWriteSitemapRoundTrip(t *testing.T) {
	d1 := time.Date(2014, 3, 16, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2015, 11, 2, 0, 0, 0, 0, time.UTC)
	pages := []Page{
		{Identifier: "2015-11-02-zsh", URL: "/2015/11/02/zsh.html", PublicationDate: &d2},
		{Identifier: "index", URL: "/index.html"},
		{Identifier: "2014-03-16-ninja", URL: "/2014/03/16/ninja.html", PublicationDate: &d1},
		{Identifier: "about", URL: "/about.html"},
		{Identifier: "topics", URL: "/topics.html"},
	}

	var b bytes.Buffer
	if err := writeSitemap(&b, "http://example.com/", collectPages(pages)); err != nil {
		t.Fatalf("writeSitemap failed: %v", err)
	}

	if !strings.HasPrefix(b.String(), xml.Header) {
		t.Errorf("expected XML declaration, got %q", b.String()[:40])
	}
	if !strings.Contains(b.String(), `<urlset xmlns="`+sitemapNamespace+`">`) {
		t.Errorf("expected urlset in the sitemap namespace:\n%s", b.String())
	}

	set := decodeSitemap(t, b.Bytes())
	if len(set.URLs) != 3 {
		t.Fatalf("expected 3 url entries, got %d", len(set.URLs))
	}

	var roots int
	for _, u := range set.URLs {
		if u.Location == "http://example.com/" {
			roots++
			if u.Priority != "1.0" || u.ChangeFreq != daily || u.LastMod != "" {
				t.Errorf("unexpected root entry %+v", u)
			}
		}
		for _, excluded := range []string{"index", "about", "topics"} {
			if strings.Contains(u.Location, excluded) {
				t.Errorf("expected no entry for %v, got %v", excluded, u.Location)
			}
		}
	}
	if roots != 1 {
		t.Errorf("expected exactly one root entry, got %d", roots)
	}

	if set.URLs[0].Location != "http://example.com/" {
		t.Errorf("expected root entry first, got %v", set.URLs[0].Location)
	}
	if u := set.URLs[1]; u.Location != "http://example.com/2015/11/02/zsh.html" || u.LastMod != "2015-11-02" {
		t.Errorf("unexpected second entry %+v", u)
	}
	if u := set.URLs[2]; u.Location != "http://example.com/2014/03/16/ninja.html" || u.LastMod != "2014-03-16" {
		t.Errorf("unexpected third entry %+v", u)
	}
	for _, u := range set.URLs[1:] {
		if u.Priority != "0.9" || u.ChangeFreq != weekly {
			t.Errorf("unexpected page entry %+v", u)
		}
	}
}

func TestSitemapLastModTruncatesToDay(t *testing.T) {
	berlin := time.FixedZone("CET", 60*60)
	late := time.Date(2014, 3, 16, 23, 59, 59, 999, berlin)
	pages := []Page{{Identifier: "2014-03-16-late", URL: "/late.html", PublicationDate: &late}}

	entries, err := sitemapEntries("http://example.com", collectPages(pages))
	if err != nil {
		t.Fatalf("sitemapEntries failed: %v", err)
	}

	doc, err := encodeSitemap(entries)
	if err != nil {
		t.Fatalf("encodeSitemap failed: %v", err)
	}
	set := decodeSitemap(t, doc)
	if got := set.URLs[1].LastMod; got != "2014-03-16" {
		t.Errorf("expected lastmod 2014-03-16, got %v", got)
	}
}

func TestSitemapEmptyPages(t *testing.T) {
	var b bytes.Buffer
	if err := writeSitemap(&b, "http://example.com", collectPages(nil)); err != nil {
		t.Fatalf("writeSitemap failed: %v", err)
	}

	set := decodeSitemap(t, b.Bytes())
	if len(set.URLs) != 1 {
		t.Fatalf("expected only the root entry, got %d entries", len(set.URLs))
	}
}

func TestSitemapMissingDateIsFormatError(t *testing.T) {
	pages := []Page{
		{Identifier: "2014-03-16-ninja", URL: "/2014/03/16/ninja.html"},
	}

	var b bytes.Buffer
	err := writeSitemap(&b, "http://example.com", collectPages(pages))
	if err == nil {
		t.Fatal("expected an error for a page without a date")
	}

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected a FormatError, got %T: %v", err, err)
	}
	if formatErr.Identifier != "2014-03-16-ninja" {
		t.Errorf("expected identifier 2014-03-16-ninja, got %v", formatErr.Identifier)
	}
	if b.Len() != 0 {
		t.Errorf("expected no partial output, got %q", b.String())
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct{ base, rel, want string }{
		{"http://example.com", "/a.html", "http://example.com/a.html"},
		{"http://example.com/", "/a.html", "http://example.com/a.html"},
		{"http://example.com/", "a.html", "http://example.com/a.html"},
		{"http://example.com/blog", "/2014/03/16/a.html", "http://example.com/blog/2014/03/16/a.html"},
		{"http://example.com/", "", "http://example.com/"},
	}
	for _, tt := range tests {
		if got := joinURL(tt.base, tt.rel); got != tt.want {
			t.Errorf("joinURL(%q, %q): expected %q, got %q", tt.base, tt.rel, tt.want, got)
		}
	}
}

func TestRenderSitemap(t *testing.T) {
	outDir := t.TempDir()
	s := &Site{
		conf: &SiteConf{
			BaseUrl:     "http://example.com/",
			OutDir:      outDir,
			SitemapFile: "sitemap.xml",
		},
		posts: posts{
			{ID: "2014-03-16-ninja", URL: "/2014/03/16/ninja.html", Date: time.Date(2014, 3, 16, 0, 0, 0, 0, time.UTC)},
			{ID: "about", URL: "/about.html", Flags: []string{"static"}},
		},
	}

	if err := s.RenderSitemap(); err != nil {
		t.Fatalf("RenderSitemap failed: %v", err)
	}

	doc, err := os.ReadFile(filepath.Join(outDir, "sitemap.xml"))
	if err != nil {
		t.Fatalf("failed to read sitemap: %v", err)
	}
	set := decodeSitemap(t, doc)
	if len(set.URLs) != 2 {
		t.Fatalf("expected 2 url entries, got %d", len(set.URLs))
	}
}

func TestRenderSitemapDatedStaticPageFails(t *testing.T) {
	outDir := t.TempDir()
	s := &Site{
		conf: &SiteConf{BaseUrl: "http://example.com/", OutDir: outDir, SitemapFile: "sitemap.xml"},
		posts: posts{
			{ID: "2014-03-notes", URL: "/2014-03-notes.html", Flags: []string{"static"}},
		},
	}

	err := s.RenderSitemap()
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected a FormatError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sitemap.xml")); !os.IsNotExist(err) {
		t.Errorf("expected no sitemap file, got stat error %v", err)
	}
}
