package scraper

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document wraps a parsed page. Selections re-query the retained tree, so
// several extractors can scan the same document without re-parsing.
type Document struct {
	doc *goquery.Document
}

// ParseDocument builds a Document from raw page bytes. A parse error means
// the content is not markup at all; pages that merely lack the expected
// elements parse fine and yield empty selections downstream.
func ParseDocument(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, newError(KindParse, "parse", errEmptyDocument)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, newError(KindParse, "parse", err)
	}
	return &Document{doc: doc}, nil
}

var errEmptyDocument = &emptyDocumentError{}

type emptyDocumentError struct{}

func (*emptyDocumentError) Error() string { return "empty document" }

// Find returns the matches for a CSS selector, in document order. A
// missing selector is an empty selection, never an error.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Attr returns the named attribute of the first match, trimmed.
func (d *Document) Attr(selector string, name string) string {
	value, _ := d.doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(value)
}

// Text returns the collapsed text content of the first match.
func (d *Document) Text(selector string) string {
	return collapseWhitespace(d.doc.Find(selector).First().Text())
}

// EachText returns the collapsed text of every match, in document order.
func (d *Document) EachText(selector string) []string {
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := collapseWhitespace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// InlineScript returns the first inline <script> body containing marker.
// The provider site ships its episode and player data as script globals,
// not markup, so extractors fish them out by marker.
func (d *Document) InlineScript(marker string) string {
	var found string
	d.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if _, external := s.Attr("src"); external {
			return true
		}
		body := s.Text()
		if strings.Contains(body, marker) {
			found = body
			return false
		}
		return true
	})
	return found
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
