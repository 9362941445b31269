package assets

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeAsset(t *testing.T, base, dir, file, content string) {
	t.Helper()

	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if got := resolver.Styles(); !slices.Equal(got, []string{"grid", "lined", "plain"}) {
			t.Errorf("Styles() = %v, want the built-in styles only", got)
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		writeAsset(t, base, "styles", "sepia.css", "")

		resolver, err := NewAssetResolver(base)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if got := resolver.Styles(); !slices.Contains(got, "sepia") {
			t.Errorf("Styles() = %v, want it to include the custom style", got)
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	customLined := "/* notebook override */ #paper { background: #fff; }"
	writeAsset(t, base, "styles", "lined.css", customLined)
	writeAsset(t, base, "styles", "sepia.css", "#paper { background: #f4ecd8; }")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		style   string
		wantSub string
		wantErr error
	}{
		{name: "custom overrides embedded", style: "lined", wantSub: "notebook override"},
		{name: "custom only style", style: "sepia", wantSub: "#f4ecd8"},
		{name: "falls back to embedded", style: "grid", wantSub: "to right"},
		{name: "missing everywhere", style: "parchment", wantErr: ErrStyleNotFound},
		{name: "validation error not fallen back", style: "../secret", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(got, tt.wantSub) {
				t.Errorf("LoadStyle(%q) = %q, want it to contain %q", tt.style, got, tt.wantSub)
			}
		})
	}
}

func TestAssetResolver_LoadTemplate(t *testing.T) {
	t.Parallel()

	t.Run("embedded surface without custom dir", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		got, err := resolver.LoadTemplate(SurfaceTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, `id="paper"`) {
			t.Error("embedded surface template missing #paper")
		}
	})

	t.Run("custom surface overrides embedded", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		custom := `<!DOCTYPE html><div id="paper" class="a5"></div>`
		writeAsset(t, base, "templates", "surface.html", custom)

		resolver, err := NewAssetResolver(base)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		got, err := resolver.LoadTemplate(SurfaceTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if got != custom {
			t.Errorf("LoadTemplate() = %q, want custom override", got)
		}
	})
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "style not found", err: ErrStyleNotFound, want: true},
		{name: "template not found", err: ErrTemplateNotFound, want: true},
		{name: "wrapped style not found", err: errors.Join(errors.New("ctx"), ErrStyleNotFound), want: true},
		{name: "invalid name", err: ErrInvalidAssetName, want: false},
		{name: "read error", err: ErrAssetRead, want: false},
		{name: "path traversal", err: ErrPathTraversal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestAssetResolver_Styles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "lined.css", "")
	writeAsset(t, base, "styles", "sepia.css", "")

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	want := []string{"grid", "lined", "plain", "sepia"}
	if got := resolver.Styles(); !slices.Equal(got, want) {
		t.Errorf("Styles() = %v, want %v", got, want)
	}
}
