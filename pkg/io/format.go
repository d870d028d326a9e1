package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/rowgrid/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings.
var Formats = []string{string(FormatJSON), string(FormatYAML), string(FormatTOML)}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "yml" {
		s = string(FormatYAML)
	}
	if err := errors.ValidateFormat(s, Formats...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "%s has no extension (want .json, .yaml or .toml)", path)
	}
	return ParseFormat(ext)
}
