package titles

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"time"
)

// CommandRunner abstracts the external metadata tool so tests can substitute
// canned output for the real binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (r *Resolver) metadataArgs() []string {
	var args []string
	if r.creds.CookiesFile != "" {
		args = append(args, "--cookies", r.creds.CookiesFile)
	} else if r.creds.Browser != "" {
		args = append(args, "--cookies-from-browser", r.creds.Browser)
	}
	if r.creds.Impersonate != "" {
		args = append(args, "--impersonate", r.creds.Impersonate)
	}
	return args
}

// fromYtdlp asks yt-dlp for metadata without downloading content and reads
// the title field from the first JSON line it prints.
func (r *Resolver) fromYtdlp(ctx context.Context, rawURL string) string {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	args := append([]string{"-j", "--skip-download", rawURL}, r.metadataArgs()...)
	out, err := r.runner.Run(ctx, "yt-dlp", args...)
	if err != nil {
		return ""
	}
	line, _, _ := bytes.Cut(out, []byte("\n"))
	var meta struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(line, &meta); err != nil {
		return ""
	}
	return meta.Title
}
