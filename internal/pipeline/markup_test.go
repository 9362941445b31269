package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testSourceDir() string {
	if runtime.GOOS == "windows" {
		return `C:\notes`
	}
	return "/notes"
}

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := testSourceDir()

	tests := []struct {
		name         string
		markup       string
		sourceDir    string
		wantContains []string
	}{
		{"relative image with dot slash", `<img src="./img/sketch.png">`, sourceDir, []string{`src="file://`, `sketch.png`}},
		{"relative image without dot slash", `<img src="img/sketch.png">`, sourceDir, []string{`src="file://`}},
		{"absolute path unchanged", `<img src="/abs/sketch.png">`, sourceDir, []string{`src="/abs/sketch.png"`}},
		{"https URL unchanged", `<img src="https://example.com/a.png">`, sourceDir, []string{`src="https://example.com/a.png"`}},
		{"data URI unchanged", `<img src="data:image/png;base64,AAAA">`, sourceDir, []string{`src="data:image/png;base64,AAAA"`}},
		{"protocol-relative unchanged", `<img src="//cdn.example.com/a.png">`, sourceDir, []string{`src="//cdn.example.com/a.png"`}},
		{"empty sourceDir returns unchanged", `<img src="./a.png">`, "", []string{`src="./a.png"`}},
		{"links are not rewritten", `<a href="./other.html">x</a>`, sourceDir, []string{`href="./other.html"`}},
		{"script src not rewritten", `<script src="./x.js"></script>`, sourceDir, []string{`src="./x.js"`}},
		{"nested image rewritten", `<div><p>text <img src="a.png"></p></div>`, sourceDir, []string{`src="file://`, `<p>text `}},
		{"text preserved", `Dear diary,<br>today`, sourceDir, []string{`Dear diary,<br/>today`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.markup, tt.sourceDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_Traversal(t *testing.T) {
	t.Parallel()

	sourceDir := testSourceDir()

	tests := []struct {
		name     string
		markup   string
		rewrites bool
	}{
		{"parent traversal blocked", `<img src="../../etc/passwd">`, false},
		{"traversal in middle blocked", `<img src="img/../../../etc/passwd">`, false},
		{"subdirectory allowed", `<img src="img/deep/a.png">`, true},
		{"dot segments staying inside allowed", `<img src="img/../a.png">`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.markup, sourceDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if rewritten := strings.Contains(got, "file://"); rewritten != tt.rewrites {
				t.Errorf("rewritten = %v, want %v (got %q)", rewritten, tt.rewrites, got)
			}
		})
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(testSourceDir(), "my image.png")
	got := pathToFileURL(abs)
	if !strings.HasPrefix(got, "file://") {
		t.Errorf("pathToFileURL(%q) = %q, want file:// prefix", abs, got)
	}
	if strings.Contains(got, " ") {
		t.Errorf("pathToFileURL(%q) = %q, want escaped space", abs, got)
	}
}

func TestHasImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		markup string
		want   bool
	}{
		{"", false},
		{"plain text", false},
		{"<p>no images</p>", false},
		{`<p>see <img src="a.png"></p>`, true},
		{`<IMG SRC="a.png"/>`, true},
		{`<imgur>not an image</imgur>`, false},
		{`text mentioning &lt;img&gt;`, false},
	}

	for _, tt := range tests {
		if got := HasImages(tt.markup); got != tt.want {
			t.Errorf("HasImages(%q) = %v, want %v", tt.markup, got, tt.want)
		}
	}
}

func TestTextBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{"empty", "", nil},
		{"plain text", "hello   world", []string{"hello world"}},
		{"paragraphs", "<p>one</p><p>two</p>", []string{"one", "two"}},
		{"line breaks", "a<br>b<br/>c", []string{"a", "b", "c"}},
		{"blank line from double break", "a<br>\n<br>\nb", []string{"a", "", "b"}},
		{"inline tags stay in block", "<p>some <b>bold</b> and <i>italic</i></p>", []string{"some bold and italic"}},
		{"entities decoded", "<p>fish &amp; chips</p>", []string{"fish & chips"}},
		{"script and style skipped", "<style>p{}</style><p>x</p><script>var a</script>", []string{"x"}},
		{"headings and lists", "<h1>Title</h1><ul><li>a</li><li>b</li></ul>", []string{"Title", "a", "b"}},
		{"break at end of block", "<p>a<br></p><p>b</p>", []string{"a", "b"}},
		{"text markup round trip", TextToMarkup("first\nsecond"), []string{"first", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TextBlocks(tt.markup)
			if len(got) != len(tt.want) {
				t.Fatalf("TextBlocks(%q) = %q, want %q", tt.markup, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("block %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
