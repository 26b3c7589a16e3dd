// Package fileutil provides file and path helpers shared by the library and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ValidateExtension checks that an extension (without leading dot) is safe
// to append to a generated file name.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// Stem returns the base name of path without its extension.
//
//	"pkg/tikzircuit.tex" -> "tikzircuit"
//	"archive.tar.gz"     -> "archive.tar"
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DerivedPath builds the path of a file generated from source:
// {dir}/{stem}{suffix}.{extension}. An empty dir means the source directory.
func DerivedPath(source, dir, suffix, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, Stem(source)+suffix+"."+extension), nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirWritable reports whether a file can be created in dir.
func DirWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".examples2pdf-probe-*")
	if err != nil {
		return fmt.Errorf("creating probe file: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
//	"tikzircuit"         -> false (name)
//	"./examples2pdf.yml" -> true
//	"C:\cfg\a.yaml"      -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
