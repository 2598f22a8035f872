package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	markdownBlackfriday = "blackfriday"
	markdownGoldmark    = "goldmark"
)

type renderer interface {
	render(in []byte) (string, error)
}

func newMarkdownRenderer(conf *SiteConf) (renderer, error) {
	switch conf.Markdown {
	case markdownBlackfriday, "":
		return newBlackfridayRenderer(), nil
	case markdownGoldmark:
		return newGoldmarkRenderer(conf.HighlightStyle), nil
	}
	return nil, fmt.Errorf("unknown markdown renderer %q", conf.Markdown)
}

const blackfridayFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const blackfridayExtensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough

type blackfridayHtmlRenderer struct {
	params     blackfriday.HTMLRendererParameters
	extensions blackfriday.Extensions
}

func newBlackfridayRenderer() renderer {
	return &blackfridayHtmlRenderer{
		params:     blackfriday.HTMLRendererParameters{Flags: blackfridayFlags},
		extensions: blackfridayExtensions,
	}
}

func (b *blackfridayHtmlRenderer) render(in []byte) (string, error) {
	// The HTML renderer keeps per-document state, so it can't be shared.
	r := blackfriday.NewHTMLRenderer(b.params)
	out := blackfriday.Run(stripHighlightDirectives(in),
		blackfriday.WithRenderer(r),
		blackfriday.WithExtensions(b.extensions))
	return string(out), nil
}

type goldmarkHtmlRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer(style string) renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML(), html.WithUnsafe()),
	)
	return &goldmarkHtmlRenderer{md}
}

func (g *goldmarkHtmlRenderer) render(in []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(stripHighlightDirectives(in), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stripHighlightDirectives drops the "!highlight" lines older posts
// carry in front of code blocks.
func stripHighlightDirectives(text []byte) []byte {
	newText := bytes.NewBuffer(make([]byte, 0, len(text)))
	r := bufio.NewReader(bytes.NewReader(text))

	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 && !bytes.HasPrefix(bytes.TrimSpace(line), []byte("!highlight")) {
			newText.Write(line)
		}
		if err == io.EOF {
			break
		}
	}

	return newText.Bytes()
}
