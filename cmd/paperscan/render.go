package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/config"
	"github.com/alnah/go-paperscan/internal/fileutil"
	"github.com/alnah/go-paperscan/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadCSS     = errors.New("failed to read CSS file")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrRemoteInput = errors.New("remote inputs are not supported")

	errOutputDir   = errors.New("failed to create output directory")
	errCanvasStyle = errors.New("style not available on the canvas surface")
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// writeOutput writes an exported document, creating parent directories.
func writeOutput(path string, data []byte) error {
	err := fileutil.WriteFileAtomic(path, data, filePermissions)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fileutil.ErrCreateDir):
		return fmt.Errorf("%w: %v", errOutputDir, err)
	default:
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
}

// runRender orchestrates a batch rendering.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

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

	inputPaths, err := resolveInputPaths(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	var files []FileToRender
	for _, p := range inputPaths {
		found, err := discoverFiles(p, outputDir)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no html, markdown or text files found in %v", ErrNoInput, inputPaths)
	}
	if len(files) > 1 && isPDFPath(outputDir) {
		return fmt.Errorf("%w: output %s must be a directory when rendering %d files", ErrInvalidExtension, outputDir, len(files))
	}

	params, err := buildRenderParams(cfg, timeout, env)
	if err != nil {
		return err
	}
	params.quiet = flags.common.quiet
	params.verbose = flags.common.verbose

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(paperscan.ResolvePoolSize(workers), len(files))
	if params.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := newPoolAdapter(paperscan.NewSessionPool(poolSize, params.opts...))
	defer pool.Close()

	start := env.Now()
	results := renderBatch(ctx, pool, files, params)

	failed := printResults(results, params.quiet, params.verbose, env)
	if params.verbose {
		fmt.Fprintf(env.Stderr, "Total: %v\n", env.since(start))
	}
	if failed > 0 {
		return fmt.Errorf("%d render(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// resolveConfig loads the config file and applies env vars, then flags.
// Priority: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *renderFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Input.Format = flags.format
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	// Output flags
	if flags.out.png {
		cfg.Output.PNG = true
	}
	if flags.out.pngPrefix != "" {
		cfg.Output.PNGPrefix = flags.out.pngPrefix
	}
	if flags.out.noPDF {
		cfg.Output.NoPDF = true
	}
	if flags.out.title != "" {
		cfg.Output.Title = flags.out.title
	}
	if flags.out.author != "" {
		cfg.Output.Author = flags.out.author
	}

	// Paper flags
	if flags.paper.style != "" {
		cfg.Paper.Style = flags.paper.style
	}
	if flags.paper.width != 0 {
		cfg.Paper.Width = flags.paper.width
	}
	if flags.paper.height != 0 {
		cfg.Paper.Height = flags.paper.height
	}
	if flags.paper.padding != 0 {
		cfg.Paper.Padding = flags.paper.padding
	}
	if flags.paper.fontSize != 0 {
		cfg.Paper.FontSize = flags.paper.fontSize
	}
	if flags.paper.lineHeight != 0 {
		cfg.Paper.LineHeight = flags.paper.lineHeight
	}
	if flags.paper.ink != "" {
		cfg.Paper.Ink = flags.paper.ink
	}
	if flags.paper.margin != 0 {
		cfg.Paper.Margin = flags.paper.margin
	}

	// Capture flags
	if flags.capture.surface != "" {
		cfg.Render.Surface = flags.capture.surface
	}
	if flags.capture.scale != 0 {
		cfg.Render.Scale = flags.capture.scale
	}
	if flags.capture.effect != "" {
		cfg.Render.Effect = flags.capture.effect
	}
	if flags.capture.contrast != 0 {
		cfg.Render.Contrast = flags.capture.contrast
	}
	if flags.capture.shadowAngle != shadowAngleSentinel {
		cfg.Render.ShadowAngle = flags.capture.shadowAngle
		cfg.Render.FixedAngle = true
	}
	if flags.capture.crossOrigin {
		cfg.Render.CrossOrigin = true
	}
	if flags.capture.scrollX != 0 {
		cfg.Render.ScrollX = flags.capture.scrollX
	}
	if flags.capture.scrollY != 0 {
		cfg.Render.ScrollY = flags.capture.scrollY
	}
	if flags.capture.maxHeight != 0 {
		cfg.Render.MaxHeight = flags.capture.maxHeight
	}

	// Browser flags
	if flags.browser.bin != "" {
		cfg.Browser.Bin = flags.browser.bin
	}
	if flags.browser.noSandbox {
		cfg.Browser.NoSandbox = true
	}
}

// resolveInputPaths returns positional args, or the configured default directory.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir returns the output flag, or the configured default directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// firstError returns the first failed result's error.
func firstError(results []RenderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
