package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader returns a loader over the built-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

func (e *EmbeddedLoader) Load(kind Kind, name string) (string, error) {
	file, err := kind.File(name)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(e.fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return "", kind.missing(name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
