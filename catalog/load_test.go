package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const samplePostsYAML = `posts:
  - id: aws-free-tier-infrastructure
    title: Building Enterprise Infrastructure on AWS Free Tier
    date: 2024-12-15
    tags: [AWS, Terraform, DevOps]
    excerpt: How I built this website.
    stats:
      - label: $0-2/month cost
        icon: "💰"
    codeSnippet: |
      terraform init && terraform apply
      git push
  - id: kubernetes-development
    title: Setting Up Local Kubernetes Development
    date: "2024-11-28"
    timestamp: 2024-11-28T09:15:00Z
    tags: [Kubernetes, Docker]
    excerpt: A practical guide.
`

func TestParse(t *testing.T) {
	posts, err := Parse([]byte(samplePostsYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	p := posts[0]
	if p.Date != "2024-12-15" {
		t.Errorf("Date = %q", p.Date)
	}
	if len(p.Tags) != 3 || p.Tags[2] != "DevOps" {
		t.Errorf("Tags = %v", p.Tags)
	}
	if len(p.Stats) != 1 || p.Stats[0].Icon != "💰" {
		t.Errorf("Stats = %+v", p.Stats)
	}
	if !strings.HasPrefix(p.CodeSnippet, "terraform init") {
		t.Errorf("CodeSnippet = %q", p.CodeSnippet)
	}
	if posts[1].Timestamp == "" {
		t.Error("Timestamp should be decoded")
	}
	if _, err := ParseTime(posts[1].Timestamp); err != nil {
		t.Errorf("decoded timestamp %q does not parse: %v", posts[1].Timestamp, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	if err := os.WriteFile(path, []byte(samplePostsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	posts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d", len(posts))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-12-15", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-12-15T10:30:00Z", time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-12-15T10:30:00.123Z", time.Date(2024, 12, 15, 10, 30, 0, 123000000, time.UTC), true},
		{"2024-12-15 10:30:00", time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"15/12/2024", time.Time{}, false},
		{"2024-13-40", time.Time{}, false},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("ParseTime(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(Post{Date: "2024-12-05"}); got != "Dec 5, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(Post{Date: "someday"}); got != "someday" {
		t.Errorf("FormatDate = %q", got)
	}
}
