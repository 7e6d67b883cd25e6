package wikiurl

import (
	"net/url"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Albert Einstein", "https://en.wikipedia.org/wiki/Albert_Einstein"},
		{"Schrödinger's cat", "https://en.wikipedia.org/wiki/Schr%C3%B6dinger%27s_cat"},
		{"C++", "https://en.wikipedia.org/wiki/C++"},
	}

	for _, tt := range tests {
		got := BuildURL(tt.title)
		if got != tt.want {
			t.Errorf("BuildURL(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://en.wikipedia.org/wiki/Albert_Einstein", "Albert Einstein"},
		{"https://en.wikipedia.org/wiki/C++", "C++"},
	}

	for _, tt := range tests {
		got := TitleFromURL(tt.url)
		if got != tt.want {
			t.Errorf("TitleFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestIsArticleURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://en.wikipedia.org/wiki/Physics", true},
		{"https://en.wikipedia.org/wiki/Category:Science", false},
		{"https://en.wikipedia.org/wiki/File:Example.jpg", false},
		{"https://example.com/wiki/Physics", false},
		{"https://en.wikipedia.org/wiki/", false},
	}

	for _, tt := range tests {
		got := IsArticleURL(tt.url)
		if got != tt.want {
			t.Errorf("IsArticleURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestCanonicalize(t *testing.T) {
	base, _ := url.Parse("https://en.wikipedia.org/wiki/Origin")

	tests := []struct {
		href    string
		want    string
		wantOK  bool
	}{
		{"/wiki/Physics", "https://en.wikipedia.org/wiki/Physics", true},
		{"/wiki/Physics#History", "https://en.wikipedia.org/wiki/Physics", true},
		{"/wiki/Category:Science", "", false},
		{"https://example.com/wiki/Physics", "", false},
		{"//example.com", "", false},
		{"/wiki/Article?action=edit", "https://en.wikipedia.org/wiki/Article", true},
	}

	for _, tt := range tests {
		got, ok := Canonicalize(base, tt.href)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Canonicalize(%q) = (%q, %v), want (%q, %v)", tt.href, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("Albert Einstein"); got != "https://en.wikipedia.org/wiki/Albert_Einstein" {
		t.Errorf("Normalize(bare title) = %q", got)
	}
	full := "https://en.wikipedia.org/wiki/Albert_Einstein"
	if got := Normalize(full); got != full {
		t.Errorf("Normalize(full url) = %q, want unchanged", got)
	}
}
