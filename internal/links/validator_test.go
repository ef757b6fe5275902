package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"allowed exact domain", "https://kdca.go.kr/board", true},
		{"allowed subdomain", "https://health.kdca.go.kr/healthinfo", true},
		{"allowed deep subdomain", "https://nedrug.mfds.go.kr/index", true},
		{"www prefix stripped", "https://www.google.com/search?q=site%3Akdca.go.kr+fever", true},
		{"pubmed", "https://pubmed.ncbi.nlm.nih.gov/?term=diabetes", true},
		{"medlineplus vsearch", "https://vsearch.nlm.nih.gov/vivisimo/cgi-bin/query-meta?query=fever", true},
		{"near-match prefix domain", "https://evilkdca.go.kr/", false},
		{"near-match suffix trick", "https://kdca.go.kr.evil.com/", false},
		{"not allow-listed", "https://example.com/", false},
		{"http scheme", "http://kdca.go.kr/", false},
		{"ftp scheme", "ftp://kdca.go.kr/", false},
		{"utm_source", "https://who.int/news?utm_source=x", false},
		{"utm_medium", "https://who.int/news?utm_medium=x", false},
		{"utm_campaign", "https://who.int/news?utm_campaign=x", false},
		{"other params fine", "https://who.int/news?page=2", true},
		{"empty host", "https:///path", false},
		{"garbage", "://not a url", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.url), "url: %s", tt.url)
		})
	}
}

func TestFilter(t *testing.T) {
	in := []string{
		"https://health.kdca.go.kr/healthinfo",
		"http://health.kdca.go.kr/healthinfo",
		"https://evil.example.com/",
		"https://who.int/news",
		"https://who.int/news?utm_source=mail",
	}

	got := Filter(in)
	assert.Equal(t, []string{
		"https://health.kdca.go.kr/healthinfo",
		"https://who.int/news",
	}, got)
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil))
	assert.Empty(t, Filter([]string{}))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]string{"https://health.kdca.go.kr/healthinfo"}))

	err := Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	err = Validate([]string{"http://kdca.go.kr/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-https")

	err = Validate([]string{"https://example.com/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain not allowed")

	err = Validate([]string{"https://who.int/?utm_campaign=x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracking parameter")
}
