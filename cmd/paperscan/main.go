package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/config"
	"github.com/alnah/go-paperscan/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrInvalidTimeout is returned for unparsable or out-of-range timeouts.
var ErrInvalidTimeout = errors.New("invalid timeout")

// commands lists the subcommand names.
var commands = []string{"render", "session", "doctor", "version", "help"}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	// Shorthand: "paperscan notes.md" renders the document.
	if !isCommand(cmd) && looksLikeDocument(cmd) {
		cmd, rest = "render", args[1:]
	}

	switch cmd {
	case "render":
		return runRenderCmd(rest, env)
	case "session":
		return runSessionCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "paperscan %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runRenderCmd parses render flags, sets up the runtime and runs a batch.
func runRenderCmd(args []string, env *Environment) int {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, errHelp) {
			printRenderUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	setupMaxprocs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = runRender(ctx, positional, flags, env)
	return reportError(err, env)
}

// runSessionCmd parses session flags and starts the interactive gallery.
func runSessionCmd(args []string, env *Environment) int {
	flags, _, err := parseSessionFlags(args)
	if err != nil {
		if errors.Is(err, errHelp) {
			printSessionUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	setupMaxprocs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = runSession(ctx, flags, env)
	return reportError(err, env)
}

// reportError prints err with an actionable hint and maps it to an exit code.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hintFor returns the hint matching err, or an empty string.
func hintFor(err error) string {
	switch {
	case errors.Is(err, paperscan.ErrBrowserConnect):
		return hints.ForBrowserConnect(hints.Detect(os.Getenv)) + hints.ForNoBrowser()
	case errors.Is(err, paperscan.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, paperscan.ErrStyleNotFound):
		return hints.ForStyleNotFound(paperscan.StyleNames())
	case errors.Is(err, errCanvasStyle):
		return hints.ForCanvasStyle()
	case errors.Is(err, errOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// notifyContext returns a context that is canceled when an interrupt
// or termination signal is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// setupMaxprocs configures GOMAXPROCS for container CPU quotas.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setupMaxprocs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return slices.Contains(commands, s)
}

// looksLikeDocument reports whether s has a renderable document extension.
func looksLikeDocument(s string) bool {
	_, err := formatForPath(s)
	return err == nil && !strings.HasPrefix(s, "-")
}

// formatForPath maps a file extension to a content format.
func formatForPath(path string) (paperscan.Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrInvalidExtension, path)
	}
	format, err := paperscan.ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return format, nil
}

// resolveTimeoutWithEnv picks the page load timeout.
// Priority: flag > env > config > 0 (library default).
func resolveTimeoutWithEnv(flagValue string, envValue, configValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use a duration like 30s or 2m)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 || d > config.MaxTimeout {
			return 0, fmt.Errorf("%w: %s (must be between 0 and %s)", ErrInvalidTimeout, d, config.MaxTimeout)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return configValue, nil
}
