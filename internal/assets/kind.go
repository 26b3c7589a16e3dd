package assets

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Names of the built-in assets.
const (
	PreambleTemplate = "preamble"
	PreviewTemplate  = "preview"
	PreviewStyle     = "preview"
)

// Kind describes where assets of one sort live inside an asset directory.
type Kind struct {
	Dir      string
	Ext      string
	notFound error
}

// Asset kinds.
var (
	Template = Kind{Dir: "templates", Ext: ".tmpl", notFound: ErrTemplateNotFound}
	Style    = Kind{Dir: "styles", Ext: ".css", notFound: ErrStyleNotFound}
)

// File returns the slash-separated path of the named asset, relative to the
// asset directory. Names are bare stems: no separators, no dots.
func (k Kind) File(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return path.Join(k.Dir, name+k.Ext), nil
}

func (k Kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}

// AssetLoader loads the raw text of an asset.
type AssetLoader interface {
	// Load returns the asset content. A missing asset yields
	// ErrTemplateNotFound or ErrStyleNotFound depending on kind.
	Load(kind Kind, name string) (string, error)
}

// IsNotFound reports whether err means the asset does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrStyleNotFound)
}
