package caption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeFullSubmission(t *testing.T) {
	got := Compose(
		"Epic Drone Reel",
		"https://youtu.be/abc123",
		Credits{Dir: "J. Smith", Dop: "A. Jones", Color: "", Prod: "Studio X"},
		"tech",
		[]string{"drone", "vfx"},
	)
	want := "<b><a href=\"https://youtu.be/abc123\">Epic Drone Reel</a></b>\n\n" +
		"dir: J. Smith\ndop: A. Jones\nprod: Studio X\n\n" +
		"#tech #drone #vfx"
	assert.Equal(t, want, got)
}

func TestComposeNoCreditsNoBlankBlock(t *testing.T) {
	got := Compose("Epic Drone Reel", "https://youtu.be/abc123", Credits{}, "tech", []string{"drone", "vfx"})
	assert.Equal(t, "<b><a href=\"https://youtu.be/abc123\">Epic Drone Reel</a></b>\n\n#tech #drone #vfx", got)
}

func TestComposeTitleFallsBackToURL(t *testing.T) {
	got := Compose("", "https://example.com/post", Credits{}, "", nil)
	assert.Equal(t, `<b><a href="https://example.com/post">https://example.com/post</a></b>`, got)
}

func TestComposeIsDeterministic(t *testing.T) {
	credits := Credits{Dir: "d", Dop: "p", Color: "c", Prod: "x"}
	tags := []string{"bw", "drone"}
	first := Compose("T", "https://e.com", credits, "film", tags)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compose("T", "https://e.com", credits, "film", tags))
	}
}

func TestComposeStripsMarkupInjection(t *testing.T) {
	got := Compose(`<script>alert(1)</script>`, `https://e.com/"><img>`, Credits{}, "", nil)
	assert.NotContains(t, got, "<script>")
	assert.NotContains(t, got, "<img>")
	assert.Contains(t, got, "%22")
}

func TestHashtagsReplaceHyphens(t *testing.T) {
	got := Hashtags("tech", []string{"mo-control", "transition-in"})
	assert.Equal(t, "#tech #mo_control #transition_in", got)
	assert.NotContains(t, got, "-")
}

func TestHashtagsWithoutCategory(t *testing.T) {
	assert.Equal(t, "#drone", Hashtags("", []string{"drone"}))
	assert.Equal(t, "", Hashtags("", nil))
}

func TestCreditLinesFixedOrderAndOmission(t *testing.T) {
	got := Compose("T", "https://e.com", Credits{Prod: "p", Dir: "d"}, "", nil)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "dir: d", lines[2])
	assert.Equal(t, "prod: p", lines[3])
	assert.NotContains(t, got, "dop:")
	assert.NotContains(t, got, "color:")
}
