package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperscan <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render documents as paper page images (PDF, PNG)")
	fmt.Fprintln(w, "  session    Build a gallery of pages interactively")
	fmt.Fprintln(w, "  doctor     Check Chrome and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'paperscan help <command>' for details on a specific command.")
}

// printSharedFlags prints the flags of render and session.
func printSharedFlags(w io.Writer) {
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -f, --format <s>          Content format: html, markdown, text (default: from extension)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paper:")
	fmt.Fprintln(w, "  -s, --style <s>           Paper style (plain, lined, grid) or CSS file path")
	fmt.Fprintln(w, "      --width <px>          Sheet width")
	fmt.Fprintln(w, "      --height <px>         Empty sheet height")
	fmt.Fprintln(w, "      --padding <px>        Sheet padding")
	fmt.Fprintln(w, "      --font-size <px>      Font size")
	fmt.Fprintln(w, "      --line-height <px>    Line height and ruling pitch")
	fmt.Fprintln(w, "      --ink <hex>           Ink color")
	fmt.Fprintln(w, "      --margin <px>         Margin rule offset (0 = none)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding built-in styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --surface <s>         Render surface: chrome, canvas")
	fmt.Fprintln(w, "      --scale <f>           Resolution multiplier (0.25-8)")
	fmt.Fprintln(w, "  -e, --effect <s>          Effect: none, shadows, scanner")
	fmt.Fprintln(w, "      --contrast <f>        Scanner contrast level (0-1)")
	fmt.Fprintln(w, "      --shadow-angle <deg>  Fixed shadow angle (default: random)")
	fmt.Fprintln(w, "      --cross-origin        Load images with crossorigin=anonymous")
	fmt.Fprintln(w, "      --scroll-x <px>       Horizontal capture offset")
	fmt.Fprintln(w, "      --scroll-y <px>       Vertical capture offset")
	fmt.Fprintln(w, "      --max-height <px>     Page height budget (0 = empty sheet)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --png                 Also write one PNG per page")
	fmt.Fprintln(w, "      --png-prefix <s>      PNG file prefix")
	fmt.Fprintln(w, "      --no-pdf              Skip the PDF (requires --png)")
	fmt.Fprintln(w, "      --title <s>           PDF title")
	fmt.Fprintln(w, "      --author <s>          PDF author")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperscan render <input...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render html, markdown or text documents as paper page images.")
	fmt.Fprintln(w, "Content taller than the sheet is split across pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Files or directories (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printSharedFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PAPERSCAN_CONFIG, PAPERSCAN_STYLE, PAPERSCAN_TIMEOUT, PAPERSCAN_SCALE,")
	fmt.Fprintln(w, "  PAPERSCAN_EFFECT, PAPERSCAN_SURFACE, PAPERSCAN_INPUT_DIR,")
	fmt.Fprintln(w, "  PAPERSCAN_OUTPUT_DIR, PAPERSCAN_WORKERS")
}

// printSessionUsage prints usage for the session command.
func printSessionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperscan session [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read commands from stdin and keep a reorderable gallery of pages.")
	fmt.Fprintln(w)
	printSessionCommands(w)
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "session":
		printSessionUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: paperscan doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, render surfaces, and the environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: paperscan version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: paperscan help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
