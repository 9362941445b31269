package paperscan

import (
	"strings"
	"testing"
)

func TestBuildPaperCSS(t *testing.T) {
	t.Parallel()

	shadowed := DefaultPaperStyle()
	shadowed.Shadows = true
	shadowed.ShadowAngle = 90

	custom := DefaultPaperStyle()
	custom.Width = 600
	custom.LineHeight = 28.5
	custom.Margin = 40

	tests := []struct {
		name       string
		paper      *PaperStyle
		styleCSS   string
		wantSubstr []string
		notWant    []string
	}{
		{
			name:  "default geometry",
			paper: DefaultPaperStyle(),
			wantSubstr: []string{
				":root {",
				"--paper-width: 420px;",
				"--paper-height: 514px;",
				"--paper-padding: 16px;",
				"--paper-font-size: 16px;",
				"--paper-line-height: 24px;",
				"--paper-ink: #0f1a45;",
				"--paper-margin: 0px;",
			},
			notWant: []string{"--paper-overlay"},
		},
		{
			name:       "custom geometry",
			paper:      custom,
			wantSubstr: []string{"--paper-width: 600px;", "--paper-line-height: 28.5px;", "--paper-margin: 40px;"},
		},
		{
			name:       "shadows overlay",
			paper:      shadowed,
			wantSubstr: []string{"--paper-overlay: linear-gradient(90.0deg, #0008, #0000);"},
		},
		{
			name:       "style sheet appended",
			paper:      DefaultPaperStyle(),
			styleCSS:   "#paper { background: ivory; }",
			wantSubstr: []string{"}\n\n#paper { background: ivory; }"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPaperCSS(*tt.paper, tt.styleCSS)
			for _, want := range tt.wantSubstr {
				if !strings.Contains(got, want) {
					t.Errorf("buildPaperCSS() missing %q in:\n%s", want, got)
				}
			}
			for _, bad := range tt.notWant {
				if strings.Contains(got, bad) {
					t.Errorf("buildPaperCSS() should not contain %q", bad)
				}
			}
		})
	}
}

func TestBuildPaperCSS_EscapesInk(t *testing.T) {
	t.Parallel()

	p := DefaultPaperStyle()
	p.Ink = "red;} body { display: none"

	got := buildPaperCSS(*p, "")
	if strings.Contains(got, "red;}") {
		t.Errorf("ink not escaped:\n%s", got)
	}
	if strings.Count(got, "}") != 1 {
		t.Errorf("expected only the :root block to close, got:\n%s", got)
	}
}

func TestEscapeCSSValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "#0f1a45", want: "#0f1a45"},
		{in: "a;b", want: "ab"},
		{in: "{x}", want: "x"},
		{in: `"</style>'`, want: "/style"},
		{in: "line\nbreak\r", want: "linebreak"},
		{in: `back\slash`, want: "backslash"},
	}

	for _, tt := range tests {
		if got := escapeCSSValue(tt.in); got != tt.want {
			t.Errorf("escapeCSSValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
