package main

import (
	"path"
	"strings"
)

const (
	permalinkDate = "date"
	permalinkFlat = "flat"
)

// permalink returns the site-relative URL of a post. In date style,
// "2014-03-16-ninja" becomes "/2014/03/16/ninja.html". Static pages and
// flat style use "/<id>.html".
func (s *Site) permalink(p *post) string {
	if s.conf.Permalink == permalinkFlat || p.IsStatic() {
		return "/" + p.ID + ".html"
	}

	stampLen := len(s.conf.WritingFileDateStampFormat)
	slug := strings.TrimLeft(p.ID[min(stampLen, len(p.ID)):], "-_")
	if slug == "" {
		slug = p.ID
	}
	return path.Join("/", p.Date.Format("2006/01/02"), slug+".html")
}
