package assets

// AssetResolver asks each layer in turn and returns the first asset found.
// Any error other than "not found" stops the lookup.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver layers the directory at customDir, when set, over the
// embedded assets.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	if customDir == "" {
		return Layered(NewEmbeddedLoader()), nil
	}
	dir, err := NewDirLoader(customDir)
	if err != nil {
		return nil, err
	}
	return Layered(dir, NewEmbeddedLoader()), nil
}

// Layered returns a resolver over the given loaders, first one wins.
func Layered(layers ...AssetLoader) *AssetResolver {
	return &AssetResolver{layers: layers}
}

func (r *AssetResolver) Load(kind Kind, name string) (string, error) {
	if _, err := kind.File(name); err != nil {
		return "", err
	}
	for _, l := range r.layers {
		content, err := l.Load(kind, name)
		if IsNotFound(err) {
			continue
		}
		return content, err
	}
	return "", kind.missing(name)
}

var _ AssetLoader = (*AssetResolver)(nil)
