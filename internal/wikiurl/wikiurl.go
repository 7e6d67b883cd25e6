// Package wikiurl canonicalizes Wikipedia article identifiers.
//
// A page identifier is the canonical article URL
// https://en.wikipedia.org/wiki/<Title> where <Title> contains no colon
// (filtering out namespace pages such as Category: or File:). Relative
// /wiki/<Title> references are joined against the base origin to produce
// the canonical form.
package wikiurl

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// BaseOrigin is the origin every canonical page identifier is rooted at.
const BaseOrigin = "https://en.wikipedia.org"

var articlePattern = regexp.MustCompile(`^https://en\.wikipedia\.org/wiki/[^:]+$`)

// IsArticleURL reports whether s matches the canonical article grammar.
func IsArticleURL(s string) bool {
	return articlePattern.MatchString(s)
}

// Canonicalize resolves href against base (the URL of the page it was found
// on) and returns the canonical page identifier if the result matches the
// article grammar. Fragments and queries are stripped before matching.
func Canonicalize(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	resolved.RawQuery = ""

	canon := resolved.String()
	if !IsArticleURL(canon) {
		return "", false
	}
	return canon, true
}

// BuildURL constructs the canonical page identifier for a bare title, the
// inverse of TitleFromURL. Spaces become underscores and the result is
// percent-encoded, matching Wikipedia's own URL convention.
func BuildURL(title string) string {
	encoded := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return fmt.Sprintf("%s/wiki/%s", BaseOrigin, encoded)
}

// TitleFromURL extracts the human-readable title from a canonical page
// identifier: the last path segment with underscores replaced by spaces.
func TitleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	path := strings.TrimPrefix(u.Path, "/wiki/")
	decoded, err := url.PathUnescape(path)
	if err != nil {
		decoded = path
	}
	return strings.ReplaceAll(decoded, "_", " ")
}

// Normalize accepts either a bare title or a full article URL and returns
// the canonical page identifier.
func Normalize(input string) string {
	if IsArticleURL(input) {
		return input
	}
	return BuildURL(input)
}
