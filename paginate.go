package main

import (
	"path"
	"strconv"
	"strings"
)

// A pager is one page of the paginated post index.
type pager struct {
	Number     int
	TotalPages int
	Posts      posts
}

func (p pager) HasPrev() bool { return p.Number > 1 }
func (p pager) HasNext() bool { return p.Number < p.TotalPages }

// paginate splits ps into pages of perPage posts. There is always at
// least one page, possibly empty.
func paginate(ps posts, perPage int) []pager {
	if perPage < 1 {
		perPage = 1
	}
	total := max(1, (len(ps)+perPage-1)/perPage)

	pagers := make([]pager, total)
	for i := range pagers {
		start := i * perPage
		end := min(start+perPage, len(ps))
		pagers[i] = pager{
			Number:     i + 1,
			TotalPages: total,
			Posts:      ps[min(start, len(ps)):end],
		}
	}
	return pagers
}

// pagerURL returns the site-relative directory URL of page number n.
// Page 1 is the site root; later pages expand ":num" in pathPattern,
// so "page:num" gives "/page2/".
func pagerURL(pathPattern string, n int) string {
	if n <= 1 {
		return "/"
	}
	p := strings.ReplaceAll(pathPattern, ":num", strconv.Itoa(n))
	return path.Join("/", p) + "/"
}
