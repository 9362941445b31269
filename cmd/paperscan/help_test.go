package main

// Notes:
// - print*Usage: we test that required content strings are present in the
//   output, not exact formatting.
// - runHelp: we test routing to the correct help topic.

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, s := range []string{"Usage: paperscan", "Commands:", "render", "session", "doctor", "version", "help"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

func TestPrintRenderUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printRenderUsage(&buf)

	for _, s := range []string{"--output", "--workers", "--surface", "--effect", "--png", "PAPERSCAN_WORKERS"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("printRenderUsage output should contain %q", s)
		}
	}
}

func TestPrintSessionUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSessionUsage(&buf)

	output := buf.String()
	if strings.Contains(output, "--workers") {
		t.Error("session usage should not list --workers")
	}
	for _, s := range []string{"move <from> <to>", "pdf <path>", "--style"} {
		if !strings.Contains(output, s) {
			t.Errorf("printSessionUsage output should contain %q", s)
		}
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		wantCode int
		want     string
	}{
		{nil, ExitSuccess, "Commands:"},
		{[]string{"render"}, ExitSuccess, "Usage: paperscan render"},
		{[]string{"session"}, ExitSuccess, "Usage: paperscan session"},
		{[]string{"doctor"}, ExitSuccess, "Usage: paperscan doctor"},
		{[]string{"version"}, ExitSuccess, "Usage: paperscan version"},
		{[]string{"help"}, ExitSuccess, "Usage: paperscan help"},
		{[]string{"convert"}, ExitUsage, "Unknown command: convert"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("")
			code := runHelp(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String()+stderr.String(), tt.want) {
				t.Errorf("output should contain %q", tt.want)
			}
		})
	}
}
