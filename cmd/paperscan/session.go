package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-paperscan"
)

// errQuit ends the interactive loop.
var errQuit = errors.New("quit")

// replCommand is one interactive command.
type replCommand struct {
	usage string
	desc  string
	run   func(r *repl, ctx context.Context, args []string, line string) error
}

// replCommands maps command names to handlers. Filled in init since help reads it.
var replCommands map[string]replCommand

// replOrder fixes the order of the help listing.
var replOrder = []string{"add", "text", "list", "rm", "clear", "left", "right", "move", "pdf", "png", "help", "quit"}

func init() {
	replCommands = map[string]replCommand{
		"add":   {"add <file>", "render a document and append its pages", (*repl).add},
		"text":  {"text <markup>", "render inline markup and append its pages", (*repl).text},
		"list":  {"list", "show the gallery", (*repl).list},
		"rm":    {"rm <n>", "remove page n", (*repl).remove},
		"clear": {"clear", "remove every page", (*repl).clear},
		"left":  {"left <n>", "move page n one position left", (*repl).left},
		"right": {"right <n>", "move page n one position right", (*repl).right},
		"move":  {"move <from> <to>", "move a page, padding with empty slots past the end", (*repl).move},
		"pdf":   {"pdf <path>", "export the gallery as a PDF", (*repl).pdf},
		"png":   {"png <dir>", "export the gallery as PNG files", (*repl).png},
		"help":  {"help", "show this list", (*repl).help},
		"quit":  {"quit", "leave the session", (*repl).quit},
	}
}

// runSession runs the interactive gallery on env.Stdin.
func runSession(ctx context.Context, flags *renderFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeoutWithEnv(flags.browser.timeout, envCfg.Timeout, cfg.Browser.Timeout)
	if err != nil {
		return err
	}
	params, err := buildRenderParams(cfg, timeout, env)
	if err != nil {
		return err
	}
	params.quiet = flags.common.quiet
	params.verbose = flags.common.verbose

	g := &gallery{w: env.Stdout, quiet: params.quiet}
	opts := append(params.opts, paperscan.WithObserver(g), paperscan.WithWarnings(env.Stderr))

	s, err := paperscan.NewSession(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	r := &repl{session: s, gallery: g, params: params, env: env}
	return r.run(ctx)
}

// repl reads commands line by line and applies them to one session.
type repl struct {
	session *paperscan.Session
	gallery *gallery
	params  *renderParams
	env     *Environment
}

// run loops until quit, end of input, or cancellation.
// Command errors are printed and the loop continues.
func (r *repl) run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.env.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !r.params.quiet {
		fmt.Fprintln(r.env.Stdout, "paperscan session, type help for commands")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.params.quiet {
			fmt.Fprint(r.env.Stdout, "> ")
		}
		if !scanner.Scan() {
			if !r.params.quiet {
				fmt.Fprintln(r.env.Stdout)
			}
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := r.exec(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.env.Stderr, "error: %v%s\n", err, hintFor(err))
		}
	}
}

// exec runs one command line.
func (r *repl) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	cmd, ok := replCommands[name]
	if !ok {
		if name == "exit" {
			return errQuit
		}
		return fmt.Errorf("unknown command %q (type help)", name)
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, name))
	return cmd.run(r, ctx, args, rest)
}

func (r *repl) add(ctx context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return usageError("add")
	}
	path := args[0]
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided document path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	input, err := documentInput(r.params, path, string(content))
	if err != nil {
		return err
	}
	return r.generate(ctx, input, filepath.Base(path))
}

func (r *repl) text(ctx context.Context, _ []string, rest string) error {
	if rest == "" {
		return usageError("text")
	}
	input := r.params.input
	input.Content = rest
	input.Format = r.params.format
	if input.Format == "" {
		input.Format = paperscan.FormatHTML
	}
	if wd, err := os.Getwd(); err == nil {
		input.SourceDir = wd
	}
	return r.generate(ctx, input, "text")
}

// generate renders input and reports the pages it appended.
func (r *repl) generate(ctx context.Context, input paperscan.Input, label string) error {
	res, err := r.session.Generate(ctx, input)
	if err != nil {
		return err
	}
	if !r.params.quiet {
		fmt.Fprintf(r.env.Stdout, "added %d page(s) from %s", res.Pages, label)
		if r.params.verbose {
			fmt.Fprintf(r.env.Stdout, " in %v", res.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(r.env.Stdout)
	}
	return nil
}

func (r *repl) list(context.Context, []string, string) error {
	r.gallery.print(r.session.Collection().Images())
	return nil
}

func (r *repl) remove(_ context.Context, args []string, _ string) error {
	n, err := pageArg("rm", args)
	if err != nil {
		return err
	}
	if !r.session.Collection().RemoveAt(n - 1) {
		fmt.Fprintf(r.env.Stdout, "no page %d\n", n)
	}
	return nil
}

func (r *repl) clear(context.Context, []string, string) error {
	r.session.Collection().RemoveAll()
	return nil
}

func (r *repl) left(_ context.Context, args []string, _ string) error {
	n, err := pageArg("left", args)
	if err != nil {
		return err
	}
	r.session.Collection().MoveLeft(n - 1)
	return nil
}

func (r *repl) right(_ context.Context, args []string, _ string) error {
	n, err := pageArg("right", args)
	if err != nil {
		return err
	}
	r.session.Collection().MoveRight(n - 1)
	return nil
}

func (r *repl) move(_ context.Context, args []string, _ string) error {
	if len(args) != 2 {
		return usageError("move")
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || from < 1 || to < 1 {
		return usageError("move")
	}
	if !r.session.Collection().Move(from-1, to-1) && from != to {
		fmt.Fprintf(r.env.Stdout, "no page %d\n", from)
	}
	return nil
}

func (r *repl) pdf(_ context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return usageError("pdf")
	}
	path := args[0]

	var buf bytes.Buffer
	if err := r.session.WritePDF(&buf); err != nil {
		return err
	}
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return err
	}
	if !r.params.quiet {
		fmt.Fprintf(r.env.Stdout, "Created %s\n", path)
	}
	return nil
}

func (r *repl) png(_ context.Context, args []string, _ string) error {
	if len(args) != 1 {
		return usageError("png")
	}
	prefix := r.params.pngPrefix
	if prefix == "" {
		prefix = "page"
	}
	paths, err := r.session.WritePNGs(args[0], prefix)
	if err != nil {
		return err
	}
	if !r.params.quiet {
		for _, p := range paths {
			fmt.Fprintf(r.env.Stdout, "Created %s\n", p)
		}
	}
	return nil
}

func (r *repl) help(context.Context, []string, string) error {
	printSessionCommands(r.env.Stdout)
	return nil
}

func (r *repl) quit(context.Context, []string, string) error {
	return errQuit
}

// pageArg parses the single 1-based page number of a command.
func pageArg(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, usageError(name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, usageError(name)
	}
	return n, nil
}

// usageError reports the expected syntax of a command.
func usageError(name string) error {
	return fmt.Errorf("usage: %s", replCommands[name].usage)
}

// printSessionCommands lists the interactive commands.
func printSessionCommands(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	for _, name := range replOrder {
		cmd := replCommands[name]
		fmt.Fprintf(w, "  %-18s %s\n", cmd.usage, cmd.desc)
	}
	fmt.Fprintln(w, "Pages are numbered from 1.")
}

// gallery prints the collection after every change.
type gallery struct {
	w     io.Writer
	quiet bool
}

// Compile-time interface implementation check.
var _ paperscan.Observer = (*gallery)(nil)

// Render implements paperscan.Observer.
func (g *gallery) Render(images []paperscan.Image) {
	if g.quiet {
		return
	}
	g.print(images)
}

// print writes one line per slot, numbered from 1.
func (g *gallery) print(images []paperscan.Image) {
	if len(images) == 0 {
		fmt.Fprintln(g.w, "gallery: empty")
		return
	}
	fmt.Fprintf(g.w, "gallery: %d slot(s)\n", len(images))
	for i, img := range images {
		if img.IsEmpty() {
			fmt.Fprintf(g.w, "  [%d] (empty)\n", i+1)
			continue
		}
		b := img.Bitmap.Bounds()
		line := fmt.Sprintf("  [%d] page %d, %dx%d", i+1, img.Page, b.Dx(), b.Dy())
		if img.Oversized {
			line += ", oversized"
		}
		fmt.Fprintln(g.w, line)
	}
}
