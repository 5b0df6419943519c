package titles

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFirstSuccessShortCircuits(t *testing.T) {
	calls := make([]string, 0, 3)
	r := &Resolver{}
	r.strategies = []strategy{
		{"first", func(ctx context.Context, url string) string {
			calls = append(calls, "first")
			return ""
		}},
		{"second", func(ctx context.Context, url string) string {
			calls = append(calls, "second")
			return "  Winner  "
		}},
		{"third", func(ctx context.Context, url string) string {
			calls = append(calls, "third")
			return "never reached"
		}},
	}

	title := r.Resolve(context.Background(), "https://example.com")
	assert.Equal(t, "Winner", title)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestResolveWhitespaceOnlyCountsAsEmpty(t *testing.T) {
	r := &Resolver{}
	r.strategies = []strategy{
		{"blank", func(ctx context.Context, url string) string { return "   \n\t " }},
	}
	assert.Equal(t, "", r.Resolve(context.Background(), "https://example.com"))
}

func TestStripSiteSuffix(t *testing.T) {
	cases := map[string]string{
		"My Post - YouTube":   "My Post",
		"My Post – YouTube":   "My Post",
		"My Post — youtube":   "My Post",
		"Short Film on Vimeo": "Short Film",
		"Short Film - Vimeo":  "Short Film",
		"No Suffix Here":      "No Suffix Here",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripSiteSuffix(in), "input %q", in)
	}
}

func TestFromOEmbedYouTube(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Mozilla/5.0", req.Header.Get("User-Agent"))
		assert.Equal(t, "https://youtu.be/abc123", req.URL.Query().Get("url"))
		assert.Equal(t, "json", req.URL.Query().Get("format"))
		w.Write([]byte(`{"title":"Epic Drone Reel"}`))
	}))
	defer srv.Close()

	r := NewResolver(Credentials{})
	r.youtubeOEmbedURL = srv.URL
	r.client = srv.Client()

	assert.Equal(t, "Epic Drone Reel", r.fromOEmbed(context.Background(), "https://youtu.be/abc123"))
}

func TestFromOEmbedUnrecognizedPlatform(t *testing.T) {
	r := NewResolver(Credentials{})
	assert.Equal(t, "", r.fromOEmbed(context.Background(), "https://example.com/video"))
}

func TestFromOEmbedFailsClosedOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewResolver(Credentials{})
	r.vimeoOEmbedURL = srv.URL
	r.client = srv.Client()

	assert.Equal(t, "", r.fromOEmbed(context.Background(), "https://vimeo.com/12345"))
}

func TestFromOpenGraphTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:title" content="Fire   &amp;  Ice"></head><body></body></html>`))
	}))
	defer srv.Close()

	r := NewResolver(Credentials{})
	r.client = srv.Client()

	assert.Equal(t, "Fire & Ice", r.fromOpenGraph(context.Background(), srv.URL))
}

func TestFromOpenGraphTwitterFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><head><meta name="twitter:title" content="Tweeted Title"></head></html>`))
	}))
	defer srv.Close()

	r := NewResolver(Credentials{})
	r.client = srv.Client()

	assert.Equal(t, "Tweeted Title", r.fromOpenGraph(context.Background(), srv.URL))
}

func TestFromOpenGraphFailsClosedWithoutMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><head><title>Plain</title></head></html>`))
	}))
	defer srv.Close()

	r := NewResolver(Credentials{})
	r.client = srv.Client()

	assert.Equal(t, "", r.fromOpenGraph(context.Background(), srv.URL))
}

func TestFromTitleTagStripsKnownSuffixes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("<html><head><title>\n  My Post - YouTube </title></head></html>"))
	}))
	defer srv.Close()

	r := NewResolver(Credentials{})
	r.client = srv.Client()

	assert.Equal(t, "My Post", r.fromTitleTag(context.Background(), srv.URL))
}

func TestStripInstagramSuffix(t *testing.T) {
	assert.Equal(t, "Jane Doe (@jane)",
		stripInstagramSuffix("Jane Doe (@jane) • Instagram photos and videos"))
	assert.Equal(t, "Jane Doe",
		stripInstagramSuffix("Jane Doe on Instagram: \"new reel\""))
}

func TestFromInstagramIgnoresOtherHosts(t *testing.T) {
	r := NewResolver(Credentials{})
	assert.Equal(t, "", r.fromInstagram(context.Background(), "https://example.com/profile"))
}

type fakeRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.output, f.err
}

func TestFromYtdlpParsesFirstJSONLine(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"title":"Epic Drone Reel"}` + "\n" + `{"title":"second entry"}`)}
	r := NewResolver(Credentials{})
	r.runner = runner

	title := r.fromYtdlp(context.Background(), "https://youtu.be/abc123")
	require.Equal(t, "Epic Drone Reel", title)
	assert.Equal(t, "yt-dlp", runner.name)
	assert.Equal(t, []string{"-j", "--skip-download", "https://youtu.be/abc123"}, runner.args)
}

func TestFromYtdlpFailsClosed(t *testing.T) {
	r := NewResolver(Credentials{})
	r.runner = &fakeRunner{err: errors.New("binary not found")}
	assert.Equal(t, "", r.fromYtdlp(context.Background(), "https://youtu.be/abc123"))

	r.runner = &fakeRunner{output: []byte("not json")}
	assert.Equal(t, "", r.fromYtdlp(context.Background(), "https://youtu.be/abc123"))
}

func TestMetadataArgsCookieFileWinsOverBrowser(t *testing.T) {
	r := NewResolver(Credentials{CookiesFile: "/tmp/cookies.txt", Browser: "chrome", Impersonate: "chrome-120"})
	assert.Equal(t, []string{"--cookies", "/tmp/cookies.txt", "--impersonate", "chrome-120"}, r.metadataArgs())

	r = NewResolver(Credentials{Browser: "safari"})
	assert.Equal(t, []string{"--cookies-from-browser", "safari"}, r.metadataArgs())

	r = NewResolver(Credentials{})
	assert.Empty(t, r.metadataArgs())
}
