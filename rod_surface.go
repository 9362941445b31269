package paperscan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-paperscan/internal/assets"
	"github.com/alnah/go-paperscan/internal/fileutil"
	"github.com/alnah/go-paperscan/internal/hints"
	"github.com/alnah/go-paperscan/internal/pipeline"
)

// Compile-time interface check.
var _ Surface = (*rodSurface)(nil)

// Browser viewport used for layout. The sheet width comes from the paper
// style, the viewport only needs to be wide enough to hold it.
const (
	viewportWidth  = 1280
	viewportHeight = 1024
)

// Scripts evaluated in the surface shell. Element ids match templates/surface.html.
const (
	jsSetContent = `(html) => { document.getElementById('paper-content').innerHTML = html; }`

	jsContentHeight = `async () => {
  const imgs = Array.from(document.querySelectorAll('#paper-content img'));
  await Promise.all(imgs.map((img) => img.complete ? null : new Promise((done) => {
    img.addEventListener('load', done, { once: true });
    img.addEventListener('error', done, { once: true });
  })));
  const paper = document.getElementById('paper');
  return Math.max(paper.scrollHeight, paper.getBoundingClientRect().height);
}`

	jsApplyStyles = `(id, css) => {
  let el = document.getElementById(id);
  if (!el) {
    el = document.createElement('style');
    el.id = id;
    document.head.appendChild(el);
  }
  el.textContent = css;
}`

	jsRemoveStyles = `(id) => { const el = document.getElementById(id); if (el) el.remove(); }`

	jsResetScroll = `() => { window.scrollTo(0, 0); }`

	jsHasImages = `() => document.querySelectorAll('#paper-content img').length > 0`

	jsCrossOrigin = `async () => {
  const imgs = Array.from(document.querySelectorAll('#paper-content img'));
  await Promise.all(imgs.map((img) => {
    if (img.crossOrigin === 'anonymous' && img.complete) return null;
    return new Promise((done) => {
      img.addEventListener('load', done, { once: true });
      img.addEventListener('error', done, { once: true });
      const src = img.src;
      img.crossOrigin = 'anonymous';
      img.src = src;
    });
  }));
}`

	jsPaperBox = `() => {
  const r = document.getElementById('paper').getBoundingClientRect();
  return { x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height };
}`
)

// rodConfig configures the browser surface.
type rodConfig struct {
	loader    assets.AssetLoader
	timeout   time.Duration
	bin       string
	noSandbox bool
	extraCSS  string
}

// rodSurface renders the sheet in headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodSurface struct {
	cfg      rodConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	cleanup  func()
	closed   bool
}

// newRodSurface creates a browser surface. Chrome starts on first use.
func newRodSurface(cfg rodConfig) *rodSurface {
	if cfg.loader == nil {
		cfg.loader = assets.NewEmbeddedLoader()
	}
	if cfg.timeout <= 0 {
		cfg.timeout = defaultTimeout
	}
	return &rodSurface{cfg: cfg}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodSurface) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	rt := hints.Detect(os.Getenv)

	bin := r.cfg.bin
	if bin == "" {
		bin = rt.BrowserBin
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// Chrome's sandbox needs kernel features CI runners and containers
	// usually lack.
	if r.cfg.noSandbox || rt.NoSandbox || rt.CI || rt.Container || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		stopLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// ensurePage opens the surface shell on first use and returns the page
// bound to ctx.
func (r *rodSurface) ensurePage(ctx context.Context) (*rod.Page, error) {
	if r.closed {
		return nil, ErrSurfaceClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.page != nil {
		return r.page.Context(ctx), nil
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	shell, err := r.cfg.loader.LoadTemplate(assets.SurfaceTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading surface template: %w", err)
	}
	shell = pipeline.InjectCSS(shell, pipeline.HighlightCSS()+r.cfg.extraCSS)

	path, cleanup, err := fileutil.WriteTempFile("paperscan-surface-*.html", []byte(shell))
	if err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	timeout, err := r.loadTimeout(ctx)
	if err != nil {
		_ = page.Close()
		cleanup()
		return nil, err
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		cleanup()
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageLoad, err)
	}

	r.page = page
	r.cleanup = cleanup
	return page.Context(ctx), nil
}

// loadTimeout uses the context deadline when set, the configured timeout otherwise.
func (r *rodSurface) loadTimeout(ctx context.Context) (time.Duration, error) {
	timeout := r.cfg.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return 0, context.DeadlineExceeded
		}
	}
	return timeout, nil
}

// eval runs js with args in the shell page.
func (r *rodSurface) eval(ctx context.Context, js string, args ...any) (*proto.RuntimeRemoteObject, error) {
	page, err := r.ensurePage(ctx)
	if err != nil {
		return nil, err
	}
	return page.Eval(js, args...)
}

// SetContent writes markup into the sheet.
func (r *rodSurface) SetContent(ctx context.Context, markup string) error {
	_, err := r.eval(ctx, jsSetContent, markup)
	return err
}

// ContentHeight waits for pending images and returns the sheet height.
func (r *rodSurface) ContentHeight(ctx context.Context) (float64, error) {
	res, err := r.eval(ctx, jsContentHeight)
	if err != nil {
		return 0, err
	}
	return res.Value.Num(), nil
}

// ApplyPaperStyles installs the geometry and the named style sheet.
func (r *rodSurface) ApplyPaperStyles(ctx context.Context, style PaperStyle) error {
	styleCSS, err := r.cfg.loader.LoadStyle(style.Name)
	if err != nil {
		return err
	}
	_, err = r.eval(ctx, jsApplyStyles, paperStyleElementID, buildPaperCSS(style, styleCSS))
	return err
}

// RemovePaperStyles removes the style element installed by ApplyPaperStyles.
func (r *rodSurface) RemovePaperStyles(ctx context.Context) error {
	if r.page == nil {
		return nil
	}
	_, err := r.eval(ctx, jsRemoveStyles, paperStyleElementID)
	return err
}

// ResetScroll scrolls the window to the origin.
func (r *rodSurface) ResetScroll(ctx context.Context) error {
	_, err := r.eval(ctx, jsResetScroll)
	return err
}

// HasImages reports whether the sheet contains <img> elements.
func (r *rodSurface) HasImages(ctx context.Context) (bool, error) {
	res, err := r.eval(ctx, jsHasImages)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// Capture screenshots the sheet. The clip follows the sheet box shifted by
// the scroll offsets; Scale multiplies the output resolution.
func (r *rodSurface) Capture(ctx context.Context, opts CaptureOptions) (image.Image, error) {
	page, err := r.ensurePage(ctx)
	if err != nil {
		return nil, err
	}

	if opts.CrossOrigin {
		if _, err := page.Eval(jsCrossOrigin); err != nil {
			return nil, fmt.Errorf("loading cross-origin images: %w", err)
		}
	}

	box, err := page.Eval(jsPaperBox)
	if err != nil {
		return nil, fmt.Errorf("locating sheet: %w", err)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.Value.Get("x").Num() + float64(opts.ScrollX),
			Y:      box.Value.Get("y").Num() + float64(opts.ScrollY),
			Width:  box.Value.Get("width").Num(),
			Height: box.Value.Get("height").Num(),
			Scale:  scale,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}
	return img, nil
}

// Close releases the page, the browser and its process group.
func (r *rodSurface) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if r.page != nil {
		if err := r.page.Close(); err != nil {
			errs = append(errs, err)
		}
		r.page = nil
	}
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			errs = append(errs, err)
		}
		r.browser = nil
	}
	if r.launcher != nil {
		stopLauncher(r.launcher)
		r.launcher = nil
	}
	return errors.Join(errs...)
}

// stopLauncher kills the browser process tree, then lets the launcher reap
// whatever is left.
func stopLauncher(l *launcher.Launcher) {
	killBrowserTree(l.PID())
	l.Kill()
}
