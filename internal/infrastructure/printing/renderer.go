// Package printing renders quotation documents to PDF using a headless
// Chrome instance over the DevTools protocol.
package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	financeapp "github.com/OpianKyle/opianrer-sub001/internal/application/finance"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second

	// A4 in inches, the only paper size quotations use
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.59 // 15mm
)

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// DefaultTimeout for rendering operations
	DefaultTimeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional)
	// If empty, chromedp will launch a new browser instance
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpRenderer renders quotation HTML to PDF via Chrome DevTools
type ChromedpRenderer struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(config *ChromedpConfig) (*ChromedpRenderer, error) {
	if config == nil {
		config = &ChromedpConfig{}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer := &ChromedpRenderer{
		config: config,
		logger: logger,
	}
	renderer.initAllocator()
	return renderer, nil
}

func (r *ChromedpRenderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// RenderQuotation renders the quotation document as an A4 PDF
func (r *ChromedpRenderer) RenderQuotation(ctx context.Context, doc financeapp.QuotationDocument) ([]byte, error) {
	html, err := buildQuotationHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build quotation HTML: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.DefaultTimeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	started := time.Now()
	var pdfData []byte

	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginInches).
				WithMarginRight(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", r.config.DefaultTimeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated PDF is empty")
	}

	r.logger.Info("Quotation PDF rendered",
		zap.String("quotation_id", doc.Quotation.ID.String()),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(started)))

	return pdfData, nil
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

var quotationTemplate = template.Must(template.New("quotation").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Investment Quotation</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1a202c; }
h1 { font-size: 22px; border-bottom: 2px solid #2b6cb0; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
td, th { padding: 10px 12px; border: 1px solid #cbd5e0; text-align: left; }
th { background: #ebf8ff; }
.maturity { font-size: 18px; font-weight: bold; color: #2b6cb0; }
.footer { margin-top: 40px; font-size: 11px; color: #718096; }
</style>
</head>
<body>
<h1>Investment Quotation</h1>
<p>Prepared for <strong>{{.ClientName}}</strong></p>
<table>
<tr><th>Investment amount</th><td>{{.Quotation.Amount.StringFixed 2}}</td></tr>
<tr><th>Term</th><td>{{.Quotation.TermMonths}} months</td></tr>
<tr><th>Annual interest rate</th><td>{{.Quotation.AnnualRate.StringFixed 2}}%</td></tr>
<tr><th>Value at maturity</th><td class="maturity">{{.Quotation.MaturityValue.StringFixed 2}}</td></tr>
</table>
<p class="footer">Interest compounds monthly. This quotation is indicative and
subject to acceptance; rates may change until the investment is confirmed.</p>
</body>
</html>`))

// buildQuotationHTML fills the quotation template
func buildQuotationHTML(doc financeapp.QuotationDocument) (string, error) {
	var buf bytes.Buffer
	if err := quotationTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Ensure ChromedpRenderer implements DocumentRenderer
var _ financeapp.DocumentRenderer = (*ChromedpRenderer)(nil)
