package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func findPostFiles(dir, fileExtension string) ([]string, error) {
	files := make([]string, 0, 100)

	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("Skipping %v: %v", path, err)
			return nil
		}

		if !info.IsDir() && strings.HasSuffix(path, fileExtension) {
			files = append(files, path)
		}
		return nil
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("writing dir: %w", err)
	}
	err := filepath.Walk(dir, walkFunc)
	return files, err
}

func extractDateFromFilename(filename string, dateStampFormat string) (time.Time, error) {
	if len(filename) < len(dateStampFormat)+1 {
		return time.Time{}, fmt.Errorf("name %v too short for a date stamp", filename)
	}

	dateStr := filename[:len(dateStampFormat)]
	date, err := time.Parse(dateStampFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date stamp in %v, expected %v", filename, dateStampFormat)
	}
	return date, nil
}

func readPostFromFile(path, dateStampFormat string) (*post, error) {
	fileBaseName := filepath.Base(path)
	fileBaseName = fileBaseName[:len(fileBaseName)-len(filepath.Ext(fileBaseName))]

	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	headerEnd, bodyStart := bytes.Index(fileContent, []byte("\n\n")), 2
	if headerEnd == -1 {
		headerEnd, bodyStart = bytes.Index(fileContent, []byte("\r\n\r\n")), 4
		if headerEnd == -1 {
			return nil, fmt.Errorf("weird post %v: no empty line", path)
		}
	}

	p := &post{
		ID:         fileBaseName,
		Path:       path,
		Body:       fileContent[headerEnd+bodyStart:],
		Categories: make([]category, 0, 5),
	}

	headerLines := bytes.Split(fileContent[:headerEnd], []byte("\n"))
	for _, l := range headerLines {
		l = bytes.TrimRight(l, "\r")
		colon := bytes.Index(l, []byte(":"))
		if colon == -1 {
			return nil, fmt.Errorf("invalid header line in post %v: %s", path, l)
		}

		key, val := bytes.TrimSpace(l[:colon]), bytes.TrimSpace(l[colon+1:])
		switch string(key) {
		case "title":
			p.Title = string(val)
		case "blurb":
			p.Blurb = string(val)
		case "categories":
			for _, c := range bytes.Split(val, []byte(",")) {
				if c = bytes.TrimSpace(c); len(c) > 0 {
					p.Categories = append(p.Categories, category(c))
				}
			}
		case "flags":
			for _, f := range strings.Split(string(val), ",") {
				p.Flags = append(p.Flags, strings.TrimSpace(f))
			}
		default:
			log.Printf("Skipping unknown header field %s in post %v", key, fileBaseName)
		}
	}

	if !p.IsStatic() {
		p.Date, err = extractDateFromFilename(fileBaseName, dateStampFormat)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}
