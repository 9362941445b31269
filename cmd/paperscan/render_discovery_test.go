package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-paperscan"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{"no output dir", "docs/note.md", "", "", filepath.Join("docs", "note.pdf")},
		{"output pdf file", "docs/note.md", "out/final.pdf", "", "out/final.pdf"},
		{"output pdf uppercase", "docs/note.md", "out/FINAL.PDF", "", "out/FINAL.PDF"},
		{"output dir", "docs/note.txt", "out", "", filepath.Join("out", "note.pdf")},
		{"mirror subdirectory", "docs/a/b/note.html", "out", "docs", filepath.Join("out", "a", "b", "note.pdf")},
		{"mirror top level", "docs/note.md", "out", "docs", filepath.Join("out", "note.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.html", "sub/c.txt", "sub/skip.png", "sub/deeper/d.markdown"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(dir, filepath.Join(dir, "out"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var inputs []string
		for _, f := range files {
			rel, _ := filepath.Rel(dir, f.InputPath)
			inputs = append(inputs, filepath.ToSlash(rel))
		}
		slices.Sort(inputs)
		want := []string{"a.md", "b.html", "sub/c.txt", "sub/deeper/d.markdown"}
		if !slices.Equal(inputs, want) {
			t.Errorf("inputs = %v, want %v", inputs, want)
		}
		for _, f := range files {
			if filepath.Base(f.InputPath) == "d.markdown" {
				want := filepath.Join(dir, "out", "sub", "deeper", "d.pdf")
				if f.OutputPath != want {
					t.Errorf("OutputPath = %q, want %q", f.OutputPath, want)
				}
			}
		}
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(filepath.Join(dir, "a.md"), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "a.pdf") {
			t.Errorf("files = %+v", files)
		}
	})

	t.Run("unsupported file", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "sub", "skip.png"), "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("err = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "nope.md"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("url", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles("http://example.com/note.md", "")
		if !errors.Is(err, ErrRemoteInput) {
			t.Errorf("err = %v, want ErrRemoteInput", err)
		}
	})
}

func TestPNGPrefixFor(t *testing.T) {
	t.Parallel()

	f := FileToRender{InputPath: "docs/note.md", OutputPath: "out/note.pdf"}
	if got := pngPrefixFor(f, ""); got != "note" {
		t.Errorf("pngPrefixFor() = %q, want note", got)
	}
	if got := pngPrefixFor(f, "scan"); got != "scan" {
		t.Errorf("pngPrefixFor() = %q, want scan", got)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"auto", 0, false},
		{"one", 1, false},
		{"max", paperscan.MaxPoolSize, false},
		{"negative", -1, true},
		{"above max", paperscan.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if tt.wantErr != (err != nil) {
				t.Fatalf("validateWorkers(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("err = %v, want ErrInvalidWorkerCount", err)
			}
		})
	}
}
