package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/guttosm/print-quote-service/internal/catalog"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

//go:embed templates/quote.html
var templateFS embed.FS

// PDFContentType is the media type of exported quotes.
const PDFContentType = "application/pdf"

// DocumentRenderer turns a stored quote into a downloadable document.
type DocumentRenderer interface {
	Render(ctx context.Context, quote *model.Quote) ([]byte, error)
}

// PDFConverter prints an HTML page to PDF.
type PDFConverter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// DocumentConfig configures quote rendering.
type DocumentConfig struct {
	// Currency is an ISO 4217 code.
	Currency string
	// Locale selects number formatting, e.g. "en-AU".
	Locale string
}

// QuoteDocumentRenderer fills the quote template and hands it to a PDFConverter.
type QuoteDocumentRenderer struct {
	tmpl      *template.Template
	converter PDFConverter
	unit      currency.Unit
	lang      language.Tag
	printer   *message.Printer
}

// NewQuoteDocumentRenderer parses the embedded template. An unknown currency or
// locale is a configuration error.
func NewQuoteDocumentRenderer(cfg DocumentConfig, converter PDFConverter) (*QuoteDocumentRenderer, error) {
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", cfg.Currency, err)
	}
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}
	lang, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	tmpl, err := template.New("quote.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/quote.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote template: %w", err)
	}

	return &QuoteDocumentRenderer{
		tmpl:      tmpl,
		converter: converter,
		unit:      unit,
		lang:      lang,
		printer:   message.NewPrinter(lang),
	}, nil
}

type quoteView struct {
	Quote           *model.Quote
	Lang            string
	Created         string
	Sides           string
	Quantity        string
	UnitCost        string
	PrintCost       string
	HasDiscount     bool
	DiscountPercent string
	Discount        string
	Delivery        string
	Total           string
}

// RenderHTML returns the filled template.
func (r *QuoteDocumentRenderer) RenderHTML(quote *model.Quote) ([]byte, error) {
	b := quote.Breakdown
	sides := "Single sided"
	if quote.Sidedness == catalog.SideDouble {
		sides = "Double sided"
	}

	view := quoteView{
		Quote:           quote,
		Lang:            r.lang.String(),
		Created:         quote.CreatedAt.UTC().Format("2 January 2006"),
		Sides:           sides,
		Quantity:        r.printer.Sprint(quote.Quantity),
		UnitCost:        r.money(b.UnitCost),
		PrintCost:       r.money(b.PrintCost),
		HasDiscount:     b.DiscountRate > 0,
		DiscountPercent: r.printer.Sprintf("%.0f%%", b.DiscountRate*100),
		Discount:        r.money(b.Discount),
		Delivery:        r.money(b.DeliveryCost),
		Total:           r.money(quote.EstimatedCost),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute quote template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render produces the PDF.
func (r *QuoteDocumentRenderer) Render(ctx context.Context, quote *model.Quote) ([]byte, error) {
	html, err := r.RenderHTML(quote)
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(ctx, html)
}

func (r *QuoteDocumentRenderer) money(v float64) string {
	return r.printer.Sprint(currency.Symbol(r.unit)) + r.printer.Sprintf("%.2f", v)
}

// ChromePDFConverter prints HTML with a headless Chrome started per conversion.
type ChromePDFConverter struct {
	chromePath string
	timeout    time.Duration
}

// NewChromePDFConverter uses chromePath when set, otherwise the first browser found
// in the usual install locations, otherwise chromedp's own lookup.
func NewChromePDFConverter(chromePath string, timeout time.Duration) *ChromePDFConverter {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromePDFConverter{chromePath: chromePath, timeout: timeout}
}

var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

func detectChromePath() string {
	for _, p := range chromeCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Convert loads html into a blank page and prints it on A4.
func (c *ChromePDFConverter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Warn().Err(err).Str("chrome_path", c.chromePath).Msg("PDF conversion failed")
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdf, nil
}
