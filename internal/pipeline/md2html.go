package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// DefaultHighlightStyle is the chroma style used for LaTeX listings.
const DefaultHighlightStyle = "github"

// Sentinel errors for HTML rendering.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPageTemplate   = errors.New("invalid preview page template")
)

// Page is the input of one preview rendering.
type Page struct {
	Title    string
	CSS      string // page style, chroma classes are appended
	Markdown string
}

// HTMLConverter abstracts Markdown to HTML page conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, page Page) (string, error)
}

// GoldmarkConverter converts Markdown to a full HTML page using goldmark
// with chroma highlighting for fenced code blocks.
type GoldmarkConverter struct {
	md        goldmark.Markdown
	page      *template.Template
	chromaCSS string
}

// pageData is what the page template sees.
type pageData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// NewGoldmarkConverter parses pageTemplate (html/template syntax with
// .Title, .CSS and .Body) and prepares goldmark with the given chroma style.
// An empty style selects DefaultHighlightStyle.
func NewGoldmarkConverter(pageTemplate, style string) (*GoldmarkConverter, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}

	page, err := template.New("preview").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}

	css, err := HighlightCSS(style)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &GoldmarkConverter{md: md, page: page, chromaCSS: css}, nil
}

// ToHTML renders page. Goldmark has no context support, so the conversion
// runs in a goroutine and the call returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, page Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var body bytes.Buffer
		if err := c.md.Convert([]byte(page.Markdown), &body); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}

		var out bytes.Buffer
		// Both values are trusted: CSS comes from assets and goldmark
		// escapes raw HTML unless WithUnsafe is set.
		data := pageData{
			Title: page.Title,
			CSS:   template.CSS(strings.TrimSpace(page.CSS) + "\n" + c.chromaCSS),
			Body:  template.HTML(body.String()),
		}
		if err := c.page.Execute(&out, data); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: out.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the CSS classes of a chroma style. Unknown names get
// chroma's fallback style.
func HighlightCSS(style string) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing %s highlight CSS: %w", style, err)
	}
	return buf.String(), nil
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
