package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates a name that is empty or not a bare stem.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the asset directory is missing or not a
	// directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead covers every other read failure, including links that
	// leave the asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)
