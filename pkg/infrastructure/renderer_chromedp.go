package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromedpRenderer prints a self-contained HTML page to PDF with headless
// Chrome. Only the print media rules apply, so the page chrome around the
// resume is left out.
type ChromedpRenderer struct {
	execPath string
	timeout  time.Duration
	// Margin is applied on every side, in inches.
	Margin float64
}

// NewChromedpRenderer uses the Chrome binary at execPath, or the one
// chromedp finds on its own when execPath is empty.
func NewChromedpRenderer(execPath string) *ChromedpRenderer {
	return &ChromedpRenderer{execPath: execPath, timeout: 60 * time.Second, Margin: 0.4}
}

func (r *ChromedpRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	return opts
}

// RenderHTMLToPDF starts a fresh browser per call; the page is loaded into
// about:blank so nothing touches the filesystem.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	var out []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#resume", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(r.Margin).
				WithMarginBottom(r.Margin).
				WithMarginLeft(r.Margin).
				WithMarginRight(r.Margin).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp print: %w", err)
	}
	return out, nil
}
