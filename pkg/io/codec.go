package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
)

// Read decodes a document from r.
func Read(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(data, f)
}

// Decode decodes a document from data.
func Decode(data []byte, f Format) (*Document, error) {
	var d Document
	switch f {
	case FormatJSON:
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &d.Components); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode json")
			}
			return &d, nil
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode json")
		}

	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode yaml")
		}
		if len(root.Content) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "decode yaml: empty document")
		}
		node := root.Content[0]
		var err error
		if node.Kind == yaml.SequenceNode {
			err = node.Decode(&d.Components)
		} else {
			err = node.Decode(&d)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode yaml")
		}

	case FormatTOML:
		if _, err := toml.Decode(string(data), &d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode toml")
		}

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	return &d, nil
}

// Write encodes d to w.
func Write(w io.Writer, d *Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	return nil
}

// Encode returns the encoding of d.
func Encode(d *Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import reads the document at path, choosing the format by extension.
func Import(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ImportLayout reads the document at path and validates its layout.
func ImportLayout(path string, opts ...grid.Option) (*Document, *grid.Layout, error) {
	d, err := Import(path)
	if err != nil {
		return nil, nil, err
	}
	l, err := d.Layout(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, l, nil
}

// Export writes d to path atomically, choosing the format by extension.
func Export(d *Document, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(d, f)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
