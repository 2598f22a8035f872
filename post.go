package main

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"
)

type post struct {
	Title, ID, Blurb string
	Date             time.Time
	Path             string
	Body             []byte
	Categories       []category
	Flags            []string

	// Site-relative URL, set by ReadSite.
	URL string
}

func (p *post) hasFlag(flag string) bool {
	return slices.ContainsFunc(p.Flags, func(f string) bool {
		return strings.TrimSpace(f) == flag
	})
}

// Static posts are standalone pages like "about" with no date.
func (p *post) IsStatic() bool { return p.hasFlag("static") }

func (p *post) IsDraft() bool { return p.hasFlag("draft") }

// Called from templates
func (p *post) FormatDate() string {
	return formatDate(p.Date)
}

// Called from templates
func (p *post) FormatDateShort() string {
	return formatDateShort(p.Date)
}

func (p *post) String() string {
	b := new(bytes.Buffer)
	b.WriteString("title: ")
	b.WriteString(p.Title)
	b.WriteString("\ndate: ")
	b.WriteString(p.Date.String())
	b.WriteString("\nblurb: ")
	b.WriteString(p.Blurb)
	b.WriteString("\ncategories: ")
	fmt.Fprintln(b, p.Categories)

	body := p.Body
	if len(body) > 200 {
		body = append(body[:200:200], '.', '.', '.')
	}
	b.WriteString("\nbody: ")
	b.Write(body)

	return b.String()
}

type posts []*post

func (ps posts) earliestDate() time.Time {
	t := time.Now()
	for _, p := range ps {
		if p.Date.Before(t) {
			t = p.Date
		}
	}
	return t
}

func (ps posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Date.After(t) {
			t = p.Date
		}
	}
	return t
}

// pruneOlderThan returns the dated posts from the given time on.
func (ps posts) pruneOlderThan(from time.Time) posts {
	recent := make(posts, 0, len(ps))
	for _, p := range ps {
		if !p.IsStatic() && !p.Date.Before(from) {
			recent = append(recent, p)
		}
	}
	return recent
}

// dated drops the static pages.
func (ps posts) dated() posts {
	dated := make(posts, 0, len(ps))
	for _, p := range ps {
		if !p.IsStatic() {
			dated = append(dated, p)
		}
	}
	return dated
}
