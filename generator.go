package examples2pdf

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-examples2pdf/internal/assets"
	"github.com/alnah/go-examples2pdf/internal/fileutil"
	"github.com/alnah/go-examples2pdf/internal/pipeline"
)

var (
	_ CommandRunner          = (*ExecRunner)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
)

// Generator turns LaTeX package sources into example documents.
// Create with NewGenerator. A Generator holds no per-run state and is safe
// for concurrent use when its runner is.
type Generator struct {
	toolchain   Toolchain
	runner      CommandRunner
	log         zerolog.Logger
	timeout     time.Duration
	strict      bool
	now         func() time.Time
	assetPath   string
	assetLoader AssetLoader
	shell       *Shell
	html        pipeline.HTMLConverter
	previewCSS  string
}

// NewGenerator creates a Generator. By default it compiles with rubber,
// logs nothing, and uses the embedded templates.
func NewGenerator(opts ...Option) (*Generator, error) {
	rubber, _ := Preset(DefaultPreset)
	g := &Generator{
		toolchain:   rubber,
		runner:      &ExecRunner{},
		log:         zerolog.Nop(),
		timeout:     DefaultCompileTimeout,
		now:         time.Now,
		assetLoader: embeddedAssets(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.assetPath != "" {
		loader, err := NewAssetLoader(g.assetPath)
		if err != nil {
			return nil, err
		}
		g.assetLoader = loader
	}

	preamble, err := g.assetLoader.LoadTemplate(assets.PreambleTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading preamble template: %w", convertAssetError(err))
	}
	if g.shell, err = NewShell(preamble); err != nil {
		return nil, err
	}

	if g.html == nil {
		if err := g.initPreview(); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Generator) initPreview() error {
	page, err := g.assetLoader.LoadTemplate(assets.PreviewTemplate)
	if err != nil {
		return fmt.Errorf("loading preview template: %w", convertAssetError(err))
	}
	css, err := g.assetLoader.LoadStyle(assets.PreviewStyle)
	if err != nil {
		return fmt.Errorf("loading preview style: %w", convertAssetError(err))
	}
	conv, err := pipeline.NewGoldmarkConverter(page, pipeline.DefaultHighlightStyle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	g.html = conv
	g.previewCSS = css
	return nil
}

// WithToolchain selects the LaTeX toolchain.
func WithToolchain(tc Toolchain) Option {
	return func(g *Generator) {
		g.toolchain = tc
	}
}

// WithRunner replaces the process runner used for the toolchain.
func WithRunner(r CommandRunner) Option {
	return func(g *Generator) {
		g.runner = r
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithAssetPath loads templates and styles from dir, falling back to the
// embedded ones.
func WithAssetPath(dir string) Option {
	return func(g *Generator) {
		g.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It has no effect when
// WithAssetPath is also given.
func WithAssetLoader(l AssetLoader) Option {
	return func(g *Generator) {
		if l != nil {
			g.assetLoader = l
		}
	}
}

// WithStrict makes a failed or missing toolchain an error instead of a
// warning.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithClock sets the time source used for document dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// withHTMLConverter injects the preview converter (tests).
func withHTMLConverter(c pipeline.HTMLConverter, css string) Option {
	return func(g *Generator) {
		g.html = c
		g.previewCSS = css
	}
}

// Toolchain returns the configured toolchain.
func (g *Generator) Toolchain() Toolchain {
	return g.toolchain
}

// OutputPath returns where Generate writes the document for in.
func (g *Generator) OutputPath(in Input) (string, error) {
	return fileutil.DerivedPath(in.Source, in.OutputDir, in.suffix(), in.format().Extension())
}

// Generate reads in.Source, writes the document next to it (or into
// in.OutputDir) and, for LaTeX output, runs the toolchain on it.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	outPath, err := g.OutputPath(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	res := &Result{Source: in.Source, Output: outPath, Format: in.format()}

	log := g.log.With().Str("source", in.Source).Logger()
	log.Debug().Str("output", outPath).Str("format", string(res.Format)).Msg("generating")

	if res.Stats, err = g.writeDocument(ctx, in, outPath); err != nil {
		return nil, err
	}

	if res.Format == FormatLaTeX && !g.toolchain.Disabled() {
		if err := g.compile(ctx, log, outPath, !in.NoClean, res); err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// writeDocument renders in.Source into outPath. A partial output file is
// removed on failure.
func (g *Generator) writeDocument(ctx context.Context, in Input, outPath string) (stats Stats, err error) {
	src, err := os.Open(in.Source)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(outPath) // #nosec G304 -- path derived from the user's source
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(outPath)
		}
	}()

	if stats, err = g.Render(ctx, src, out, in); err != nil {
		return stats, err
	}
	if err = out.Close(); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return stats, nil
}

// Render writes the document for the source read from src into w. Only
// in.Source's name is used, to derive the document defaults.
func (g *Generator) Render(ctx context.Context, src io.Reader, w io.Writer, in Input) (Stats, error) {
	if err := in.Validate(); err != nil {
		return Stats{}, err
	}

	bw := bufio.NewWriter(w)
	stats, err := g.render(ctx, src, bw, in)
	if err != nil {
		return stats, err
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return stats, nil
}

func (g *Generator) render(ctx context.Context, src io.Reader, w io.Writer, in Input) (Stats, error) {
	stem := fileutil.Stem(in.Source)
	now := g.now()
	opts := TranscodeOptions{CloseDangling: in.CloseDangling, Logger: &g.log}

	switch in.format() {
	case FormatMarkdown:
		return g.renderMarkdown(ctx, src, w, in, stem, now, opts)

	case FormatHTML:
		var md bytes.Buffer
		stats, err := g.renderMarkdown(ctx, src, &md, in, stem, now, opts)
		if err != nil {
			return stats, err
		}
		page, err := g.html.ToHTML(ctx, pipeline.Page{
			Title:    in.Document.resolve(stem).Title,
			CSS:      g.previewCSS,
			Markdown: md.String(),
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			return stats, fmt.Errorf("%w: %v", ErrHTMLPreview, err)
		}
		if _, err := io.WriteString(w, page); err != nil {
			return stats, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return stats, nil

	default:
		if err := g.shell.WritePreamble(w, in.Document, stem, now); err != nil {
			return Stats{}, err
		}
		stats, err := Transcode(ctx, src, NewLaTeXEmitter(w, in.Layout), opts)
		if err != nil {
			return stats, err
		}
		return stats, g.shell.WritePostamble(w)
	}
}

func (g *Generator) renderMarkdown(ctx context.Context, src io.Reader, w io.Writer, in Input, stem string, now time.Time, opts TranscodeOptions) (Stats, error) {
	if err := WriteMarkdownHeader(w, in.Document, stem, now); err != nil {
		return Stats{}, err
	}
	return Transcode(ctx, src, NewMarkdownEmitter(w, in.Layout), opts)
}

// compile runs the build step and then the clean step in the directory of
// texPath. Exit statuses are logged; they only fail the call in strict mode.
func (g *Generator) compile(ctx context.Context, log zerolog.Logger, texPath string, clean bool, res *Result) error {
	dir, file := filepath.Dir(texPath), filepath.Base(texPath)

	argv := g.toolchain.BuildCommand(file)
	log.Debug().Strs("args", argv).Str("dir", dir).Msg("building")
	res.Build = runStep(ctx, g.runner, dir, argv, g.timeout)
	if err := ctx.Err(); err != nil {
		return err
	}

	if res.Build.notFound() {
		if g.strict {
			return fmt.Errorf("%w: %s", ErrCompilerNotFound, g.toolchain.Command)
		}
		log.Warn().Str("command", g.toolchain.Command).Msg("toolchain not found, PDF not built")
		return nil
	}
	if res.Build.Failed() {
		if g.strict {
			return fmt.Errorf("%w: %s: %v", ErrCompile, strings.Join(argv, " "), res.Build.Err)
		}
		log.Warn().Err(res.Build.Err).Strs("args", argv).Msg("build step failed")
	}

	pdf := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	if fileutil.FileExists(pdf) {
		res.PDF = pdf
	}

	if !clean || !g.toolchain.HasClean() {
		return nil
	}
	argv = g.toolchain.CleanCommand(file)
	log.Debug().Strs("args", argv).Msg("cleaning")
	res.Clean = runStep(ctx, g.runner, dir, argv, g.timeout)
	if err := ctx.Err(); err != nil {
		return err
	}
	if res.Clean.Failed() {
		log.Warn().Err(res.Clean.Err).Strs("args", argv).Msg("clean step failed")
	}
	return nil
}

// IsCompileError reports whether err comes from the toolchain.
func IsCompileError(err error) bool {
	return errors.Is(err, ErrCompile) || errors.Is(err, ErrCompilerNotFound)
}
