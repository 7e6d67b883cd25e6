// Package parser extracts Wikipedia article links from HTML.
package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wikirace/wikirace/internal/wikiurl"
)

// ExtractLinks parses doc, found at pageURL, and returns the canonical page
// identifiers of every article link in the main content area, in document
// order, duplicates included — deduplication is the search engine's
// responsibility, not the parser's. Links are canonicalized and filtered
// per the article URL grammar in wikiurl — this excludes namespace pages
// (Category:, File:, Talk:, ...) since their canonical form always
// contains a colon.
func ExtractLinks(doc *goquery.Document, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page url %q: %w", pageURL, err)
	}

	var links []string

	doc.Find("#mw-content-text a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}

		canon, ok := wikiurl.Canonicalize(base, href)
		if !ok {
			return
		}

		links = append(links, canon)
	})

	return links, nil
}

// ExtractLinksFromBytes parses raw HTML bytes fetched from pageURL.
func ExtractLinksFromBytes(html []byte, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML document: %w", err)
	}
	return ExtractLinks(doc, pageURL)
}

// ExtractLinksFromHTML parses an HTML string fetched from pageURL.
func ExtractLinksFromHTML(html, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML document: %w", err)
	}
	return ExtractLinks(doc, pageURL)
}
