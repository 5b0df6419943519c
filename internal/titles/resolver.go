// Package titles extracts a human-readable title for a shared link. An
// ordered chain of strategies is tried until one returns a non-empty,
// trimmed result; every strategy fails closed, so a broken or slow upstream
// only means the chain moves on.
package titles

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

// Credentials carries the optional yt-dlp credential hints from process
// configuration. CookiesFile wins over Browser when both are set.
type Credentials struct {
	CookiesFile string
	Browser     string
	Impersonate string
}

type strategy struct {
	name    string
	resolve func(ctx context.Context, rawURL string) string
}

type Resolver struct {
	client *http.Client
	runner CommandRunner
	creds  Credentials

	youtubeOEmbedURL string
	vimeoOEmbedURL   string

	strategies []strategy
}

func NewResolver(creds Credentials) *Resolver {
	r := &Resolver{
		client:           &http.Client{Timeout: 10 * time.Second},
		runner:           execRunner{},
		creds:            creds,
		youtubeOEmbedURL: "https://www.youtube.com/oembed",
		vimeoOEmbedURL:   "https://vimeo.com/api/oembed.json",
	}
	r.strategies = []strategy{
		{"yt-dlp", r.fromYtdlp},
		{"oembed", r.fromOEmbed},
		{"instagram", r.fromInstagram},
		{"open-graph", r.fromOpenGraph},
		{"title-tag", r.fromTitleTag},
		{"readability", r.fromReadability},
	}
	return r
}

// Resolve returns the first strategy's non-empty result, or "" when every
// strategy comes up empty. The caller substitutes the raw URL for display.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	for _, s := range r.strategies {
		title := strings.TrimSpace(s.resolve(ctx, rawURL))
		if title != "" {
			log.Printf("Resolved title for %s via %s", rawURL, s.name)
			return title
		}
	}
	log.Printf("No title strategy succeeded for %s", rawURL)
	return ""
}
