package pipeline

import (
	"strings"
	"testing"
)

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		css      string
		want     string
	}{
		{
			name:     "empty CSS leaves document",
			document: "<html><head></head><body></body></html>",
			css:      "",
			want:     "<html><head></head><body></body></html>",
		},
		{
			name:     "before closing head",
			document: "<html><head><title>x</title></head><body></body></html>",
			css:      "p{color:red}",
			want:     "<html><head><title>x</title><style>p{color:red}</style></head><body></body></html>",
		},
		{
			name:     "after body when no head",
			document: `<body class="a"><div id="paper"></div></body>`,
			css:      "p{}",
			want:     `<body class="a"><style>p{}</style><div id="paper"></div></body>`,
		},
		{
			name:     "prepend as fallback",
			document: "<div></div>",
			css:      "p{}",
			want:     "<style>p{}</style><div></div>",
		},
		{
			name:     "uppercase head",
			document: "<HTML><HEAD></HEAD></HTML>",
			css:      "p{}",
			want:     "<HTML><HEAD><style>p{}</style></HEAD></HTML>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := InjectCSS(tt.document, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSS_Sanitizes(t *testing.T) {
	t.Parallel()

	got := InjectCSS("<head></head>", "p{}</style><script>alert(1)</script>")
	if strings.Contains(got, "</style><script>") {
		t.Errorf("style block not sanitized: %q", got)
	}
	if !strings.Contains(got, `<\/style>`) {
		t.Errorf("expected escaped closing tag in %q", got)
	}
}
