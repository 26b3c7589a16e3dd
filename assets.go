package examples2pdf

import (
	"errors"
	"fmt"

	"github.com/alnah/go-examples2pdf/internal/assets"
)

// Built-in asset names.
const (
	// PreambleTemplate is the LaTeX preamble template.
	PreambleTemplate = assets.PreambleTemplate

	// PreviewTemplate is the HTML page wrapping the preview body.
	PreviewTemplate = assets.PreviewTemplate

	// PreviewStyle is the CSS style of the HTML preview.
	PreviewStyle = assets.PreviewStyle
)

// Asset errors.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// AssetLoader defines the contract for loading the preamble template and the
// preview assets. Implementations may load from anywhere.
//
// NewAssetLoader provides filesystem loading with fallback to the embedded
// defaults.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a template by name (without .tmpl extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - templates/{name}.tmpl for the preamble and preview templates
//   - styles/{name}.css for preview styles
//
// Returns ErrInvalidAsset if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// embeddedAssets serves only the built-in assets.
func embeddedAssets() AssetLoader {
	return &assetLoaderAdapter{loader: assets.NewEmbeddedLoader()}
}

// assetLoaderAdapter exposes an internal loader with public errors.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	return a.load(assets.Style, name)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	return a.load(assets.Template, name)
}

func (a *assetLoaderAdapter) load(kind assets.Kind, name string) (string, error) {
	content, err := a.loader.Load(kind, name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrInvalidAssetName),
		errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrInvalidAsset, err)
	default:
		return err
	}
}

// wrapError keeps the internal message under a public sentinel.
func wrapError(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}
