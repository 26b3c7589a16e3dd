// Package yamlutil wraps YAML encoding so callers never import the YAML
// library directly.
package yamlutil

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded input (1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// SyntaxError is a decoding failure with the offending source excerpt.
type SyntaxError struct {
	Detail string // goccy's message with line numbers and a caret
	err    error
}

func (e *SyntaxError) Error() string { return "yamlutil: " + e.err.Error() }
func (e *SyntaxError) Unwrap() error { return e.err }

// UnmarshalStrict decodes data into v and rejects unknown or duplicate keys,
// so a misspelled config key fails instead of being dropped.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return &SyntaxError{Detail: yaml.FormatError(err, false, true), err: err}
	}
	return nil
}

// Marshal encodes v with two-space indentation.
func Marshal(v any) ([]byte, error) {
	return MarshalCommented(v, nil)
}

// MarshalCommented encodes v and places a head comment above each key in
// comments. Keys are YAML paths such as "$.compiler" or "$.document.intro".
func MarshalCommented(v any, comments map[string]string) ([]byte, error) {
	opts := []yaml.EncodeOption{yaml.Indent(2)}
	if len(comments) > 0 {
		paths := make([]string, 0, len(comments))
		for p := range comments {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		cm := make(yaml.CommentMap, len(paths))
		for _, p := range paths {
			cm[p] = []*yaml.Comment{yaml.HeadComment(" " + comments[p])}
		}
		opts = append(opts, yaml.WithComment(cm))
	}
	out, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
