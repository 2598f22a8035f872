package main

import (
	"cmp"
	"slices"
	"strings"
)

type category string

func (c category) String() string { return string(c) }

// Id is the category's file name stem, e.g. "build_tools".
func (c category) Id() string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(c.String()), " ", "_"))
}

type categoryWithPosts struct {
	Category category
	Posts    posts
}

func (c categoryWithPosts) EarliestDateFormatted() string {
	return formatDateShort(c.Posts.earliestDate())
}

func (c categoryWithPosts) LatestDateFormatted() string {
	return formatDateShort(c.Posts.latestDate())
}

// Posts grouped by category, most posts first, then newest post first.
// Build with groupByCategory.
type postsByCategory []categoryWithPosts

func (pc *postsByCategory) addPost(c category, p *post) {
	for i := range *pc {
		if (*pc)[i].Category == c {
			(*pc)[i].Posts = append((*pc)[i].Posts, p)
			return
		}
	}
	*pc = append(*pc, categoryWithPosts{Category: c, Posts: posts{p}})
}

func (pc postsByCategory) String() string {
	var b strings.Builder
	for _, c := range pc {
		b.WriteString(c.Category.String())
		b.WriteString(": ")
		for i, p := range c.Posts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// The most frequent n categories having at least minPosts posts.
func (pc postsByCategory) frequentCategories(n, minPosts int) []category {
	frequent := make([]category, 0, n)
	for i, c := range pc {
		if i == n || len(c.Posts) < minPosts {
			break
		}
		frequent = append(frequent, c.Category)
	}

	return frequent
}

func groupByCategory(ps posts) postsByCategory {
	byCat := make(postsByCategory, 0, 20)

	for _, p := range ps {
		for _, cat := range p.Categories {
			byCat.addPost(cat, p)
		}
	}

	slices.SortStableFunc(byCat, func(a, b categoryWithPosts) int {
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		return b.Posts.latestDate().Compare(a.Posts.latestDate())
	})

	return byCat
}
