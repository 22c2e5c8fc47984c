package validation

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Letter paper in inches
const (
	PaperWidthInches  = 8.5
	PaperHeightInches = 11.0
)

// DefaultMeasureTimeout bounds one render-and-print cycle
const DefaultMeasureTimeout = 30 * time.Second

// PageFit is the result of measuring a rendered document
type PageFit struct {
	ExceedsOnePage bool `json:"exceeds_one_page"`
	Pages          int  `json:"pages"`
}

// PageMeasurer renders markup and reports how many printed pages it occupies
type PageMeasurer interface {
	Measure(ctx context.Context, markup string) (*PageFit, error)
}

// ChromeMeasurer prints markup to PDF in a headless Chrome and counts the pages.
// Every call starts its own browser. Requires Chrome/Chromium to be installed.
type ChromeMeasurer struct {
	timeout          time.Duration
	allocatorOptions []chromedp.ExecAllocatorOption
	logger           *zap.Logger
}

// NewChromeMeasurer creates a measurer; a non-positive timeout uses DefaultMeasureTimeout
func NewChromeMeasurer(timeout time.Duration, logger *zap.Logger) *ChromeMeasurer {
	if timeout <= 0 {
		timeout = DefaultMeasureTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeMeasurer{
		timeout: timeout,
		allocatorOptions: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		),
		logger: logger,
	}
}

// Measure loads markup into a blank page, prints it on Letter paper and counts the pages
func (m *ChromeMeasurer) Measure(ctx context.Context, markup string) (*PageFit, error) {
	pdf, err := m.PrintPDF(ctx, markup)
	if err != nil {
		return nil, err
	}

	pages, err := CountPDFBytes(pdf)
	if err != nil {
		return nil, &MeasureError{Message: "failed to count pages", Cause: err}
	}

	m.logger.Debug("measured document",
		zap.Int("pages", pages),
		zap.Int("pdf_bytes", len(pdf)))
	return &PageFit{ExceedsOnePage: pages > 1, Pages: pages}, nil
}

// PrintPDF renders markup in headless Chrome and returns the printed PDF
func (m *ChromeMeasurer) PrintPDF(ctx context.Context, markup string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, m.allocatorOptions...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, m.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPaperWidth(PaperWidthInches).
				WithPaperHeight(PaperHeightInches).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, &MeasureError{Message: "browser rendering failed", Cause: err}
	}
	return pdf, nil
}
