package titles

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)

	instagramBulletRE = regexp.MustCompile(`(?i)\s*•.*Instagram.*`)
	instagramOnRE     = regexp.MustCompile(`(?i)\s*on Instagram.*`)

	youtubeSuffixRE   = regexp.MustCompile(`(?i)\s*[-–—]\s*YouTube$`)
	vimeoOnSuffixRE   = regexp.MustCompile(`(?i)\s*on\s+Vimeo$`)
	vimeoDashSuffixRE = regexp.MustCompile(`(?i)\s*-\s*Vimeo$`)
)

func (r *Resolver) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// fromInstagram handles social-profile links: og:title carries the author
// name plus a platform suffix, which is stripped so only the name remains.
func (r *Resolver) fromInstagram(ctx context.Context, rawURL string) string {
	if !strings.Contains(rawURL, "instagram.com") {
		return ""
	}
	doc, err := r.fetchDocument(ctx, rawURL)
	if err != nil {
		return ""
	}
	raw, ok := doc.Find(`meta[property="og:title"]`).Attr("content")
	if !ok {
		return ""
	}
	return strings.TrimSpace(stripInstagramSuffix(raw))
}

func stripInstagramSuffix(raw string) string {
	raw = instagramBulletRE.ReplaceAllString(raw, "")
	return instagramOnRE.ReplaceAllString(raw, "")
}

// fromOpenGraph reads og:title, falling back to twitter:title. The HTML
// parser already decodes entities in attribute values.
func (r *Resolver) fromOpenGraph(ctx context.Context, rawURL string) string {
	doc, err := r.fetchDocument(ctx, rawURL)
	if err != nil {
		return ""
	}
	content, ok := doc.Find(`meta[property="og:title"]`).Attr("content")
	if !ok {
		content, ok = doc.Find(`meta[name="twitter:title"]`).Attr("content")
	}
	if !ok {
		return ""
	}
	return normalizeWhitespace(content)
}

// fromTitleTag falls back to the document title, trimming the site-name
// suffixes YouTube and Vimeo append.
func (r *Resolver) fromTitleTag(ctx context.Context, rawURL string) string {
	doc, err := r.fetchDocument(ctx, rawURL)
	if err != nil {
		return ""
	}
	title := normalizeWhitespace(doc.Find("title").First().Text())
	return StripSiteSuffix(title)
}

// StripSiteSuffix removes trailing " - YouTube" and " on Vimeo"/" - Vimeo"
// site names from a page title.
func StripSiteSuffix(title string) string {
	title = youtubeSuffixRE.ReplaceAllString(title, "")
	title = vimeoOnSuffixRE.ReplaceAllString(title, "")
	return vimeoDashSuffixRE.ReplaceAllString(title, "")
}

// fromReadability is the last resort: a full readability parse of the page,
// keeping only its title.
func (r *Resolver) fromReadability(_ context.Context, rawURL string) string {
	article, err := readability.FromURL(rawURL, 10*time.Second)
	if err != nil {
		return ""
	}
	return article.Title
}

func normalizeWhitespace(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}
