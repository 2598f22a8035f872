package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type SiteConf struct {
	Author, AuthorUri string
	BaseUrl           string
	SiteTitle         string

	TemplateDir string

	WritingDir                 string
	WritingFileExtension       string
	WritingFileDateStampFormat string
	StaticFilesDir             string

	OutDir string
	// Relative to OutDir.
	CategoriesOutDir string
	SitemapFile      string

	// Posts per index page, and the path of later index pages with
	// ":num" standing for the page number.
	Paginate     int
	PaginatePath string

	Permalink      string
	Markdown       string
	HighlightStyle string

	NumFrequentCategories               int
	MinArticlesForFrequentCategories    int
	MaxAgeForFrequentCategoriesInMonths int
}

func setConfDefaults(v *viper.Viper) {
	v.SetDefault("TemplateDir", "tmpl")
	v.SetDefault("WritingFileExtension", ".md")
	v.SetDefault("WritingFileDateStampFormat", "2006-01-02")
	v.SetDefault("CategoriesOutDir", "categories")
	v.SetDefault("SitemapFile", "sitemap.xml")
	v.SetDefault("Paginate", 10)
	v.SetDefault("PaginatePath", "page:num")
	v.SetDefault("Permalink", permalinkDate)
	v.SetDefault("Markdown", markdownBlackfriday)
	v.SetDefault("HighlightStyle", "monokai")
	v.SetDefault("NumFrequentCategories", 6)
	v.SetDefault("MinArticlesForFrequentCategories", 2)
	v.SetDefault("MaxAgeForFrequentCategoriesInMonths", 24)
}

// readConf loads the site configuration from fileName. The format
// follows the extension: json, yaml or toml.
func readConf(fileName string) (*SiteConf, error) {
	v := viper.New()
	setConfDefaults(v)
	v.SetConfigFile(fileName)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %v: %w", fileName, err)
	}

	conf := SiteConf{}
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("decoding %v: %w", fileName, err)
	}

	if len(conf.StaticFilesDir) == 0 {
		conf.StaticFilesDir = filepath.Join(conf.WritingDir, "static")
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", fileName, err)
	}

	// Normalize relative paths because the executable can be called from anywhere
	baseDir := filepath.Dir(fileName)
	conf.TemplateDir = normalizePath(conf.TemplateDir, baseDir)
	conf.WritingDir = normalizePath(conf.WritingDir, baseDir)
	conf.StaticFilesDir = normalizePath(conf.StaticFilesDir, baseDir)
	conf.OutDir = normalizePath(conf.OutDir, baseDir)

	return &conf, nil
}

func (c *SiteConf) validate() error {
	var errs []error

	if u, err := url.Parse(c.BaseUrl); err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("BaseUrl %q is not an absolute http(s) URL", c.BaseUrl))
	}
	if c.WritingDir == "" {
		errs = append(errs, errors.New("WritingDir is not set"))
	}
	if c.OutDir == "" {
		errs = append(errs, errors.New("OutDir is not set"))
	}
	if filepath.IsAbs(c.CategoriesOutDir) || strings.HasPrefix(filepath.Clean(c.CategoriesOutDir), "..") {
		errs = append(errs, fmt.Errorf("CategoriesOutDir %q must be inside OutDir", c.CategoriesOutDir))
	}
	if c.Paginate < 1 {
		errs = append(errs, fmt.Errorf("Paginate must be positive, got %d", c.Paginate))
	}
	if !strings.Contains(c.PaginatePath, ":num") {
		errs = append(errs, fmt.Errorf("PaginatePath %q has no :num", c.PaginatePath))
	}
	switch c.Permalink {
	case permalinkDate, permalinkFlat:
	default:
		errs = append(errs, fmt.Errorf("unknown Permalink style %q", c.Permalink))
	}
	switch c.Markdown {
	case markdownBlackfriday, markdownGoldmark:
	default:
		errs = append(errs, fmt.Errorf("unknown Markdown renderer %q", c.Markdown))
	}

	return errors.Join(errs...)
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		absPath := filepath.Join(baseDir, path)
		log.Println("Normalizing", path, "to", absPath)
		return absPath
	}
	return path
}
