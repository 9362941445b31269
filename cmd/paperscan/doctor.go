package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/fileutil"
	"github.com/alnah/go-paperscan/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo  `json:"chrome"`
	Surfaces surfaceInfo `json:"surfaces"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// surfaceInfo reports which render surfaces can run.
type surfaceInfo struct {
	Chrome bool `json:"chrome"`
	Canvas bool `json:"canvas"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{Status: "ready"}
	rt := hints.Detect(os.Getenv)
	result.Env = envInfo{
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		Container:     rt.Container,
		ContainerHint: rt.ContainerHint,
		CI:            rt.CI,
		NoSandbox:     os.Getenv("ROD_NO_SANDBOX"),
		BrowserBin:    rt.BrowserBin,
	}

	checkChrome(result, rt)
	checkCanvas(result)
	checkSystem(result)

	// Chrome is optional while the canvas surface works.
	if !result.Surfaces.Chrome && !result.Surfaces.Canvas {
		result.Errors = append(result.Errors, "no render surface available")
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome locates Chrome the way the chrome surface will, then asks
// it for its version.
func checkChrome(result *doctorResult, rt hints.Runtime) {
	chromePath := rt.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found. Install Chrome, set ROD_BROWSER_BIN, or use --surface canvas")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Surfaces.Chrome = true

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- detected browser binary
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = !rt.NoSandbox
	if rt.SandboxUnsafe() {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set; the chrome surface disables the sandbox itself, set ROD_NO_SANDBOX=1 to make it explicit")
	}
}

// checkCanvas verifies the pure Go surface can start.
func checkCanvas(result *doctorResult) {
	s, err := paperscan.NewSession(paperscan.WithSurfaceKind(paperscan.SurfaceCanvas))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("canvas surface unavailable: %v", err))
		return
	}
	_ = s.Close()
	result.Surfaces.Canvas = true
}

// checkSystem verifies the chrome surface can stage its shell document.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("paperscan-doctor-*", []byte("ok"))
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s (%v)", os.TempDir(), err))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "paperscan doctor")

	section(w, "Chrome/Chromium")
	if r.Chrome.Found {
		check(w, "OK", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			check(w, "OK", "Version: %s", r.Chrome.Version)
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		check(w, "OK", "Sandbox: %s", sandbox)
	} else {
		check(w, "WARN", "Not found")
	}

	section(w, "Surfaces")
	fmt.Fprintf(w, "  %s chrome\n", okMark(r.Surfaces.Chrome))
	fmt.Fprintf(w, "  %s canvas\n", okMark(r.Surfaces.Canvas))

	section(w, "Environment")
	check(w, "OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		check(w, "OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		check(w, "OK", "CI: detected")
	}

	section(w, "System")
	if r.System.TempWritable {
		check(w, "OK", "Temp directory: writable")
	} else {
		check(w, "ERROR", "Temp directory: not writable")
	}

	if len(r.Warnings) > 0 {
		section(w, "Warnings:")
		for _, warn := range r.Warnings {
			check(w, "WARN", "%s", warn)
		}
	}
	if len(r.Errors) > 0 {
		section(w, "Errors:")
		for _, msg := range r.Errors {
			check(w, "ERROR", "%s", msg)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Status:", statusLine[r.Status])
}

var statusLine = map[string]string{
	"ready":    "Ready to render",
	"warnings": "Ready with warnings",
	"errors":   "Not ready (see errors above)",
}

// section starts a titled block, separated from the previous one.
func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

func check(w io.Writer, level, format string, args ...any) {
	fmt.Fprintf(w, "  [%s] %s\n", level, fmt.Sprintf(format, args...))
}

func okMark(ok bool) string {
	if ok {
		return "[OK]"
	}
	return "[--]"
}
