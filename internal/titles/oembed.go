package titles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const browserUserAgent = "Mozilla/5.0"

const oembedTimeout = 8 * time.Second

// fromOEmbed queries the provider's embed-metadata endpoint for recognized
// video platforms.
func (r *Resolver) fromOEmbed(ctx context.Context, rawURL string) string {
	switch {
	case strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be"):
		return r.oembedTitle(ctx, r.youtubeOEmbedURL, url.Values{"url": {rawURL}, "format": {"json"}})
	case strings.Contains(rawURL, "vimeo.com"):
		return r.oembedTitle(ctx, r.vimeoOEmbedURL, url.Values{"url": {rawURL}})
	}
	return ""
}

func (r *Resolver) oembedTitle(ctx context.Context, endpoint string, params url.Values) string {
	ctx, cancel := context.WithTimeout(ctx, oembedTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Title
}
