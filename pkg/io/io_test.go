package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
)

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	l, err := grid.New(grid.Sample())
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return NewDocument("landing", l)
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			d := sampleDocument(t)

			var buf bytes.Buffer
			if err := Write(&buf, d, f); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}

			if got.ID != d.ID || got.Name != d.Name || got.Base != d.Base {
				t.Errorf("metadata = %q %q %d, want %q %q %d", got.ID, got.Name, got.Base, d.ID, d.Name, d.Base)
			}
			if !got.UpdatedAt.Equal(d.UpdatedAt) {
				t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, d.UpdatedAt)
			}
			if len(got.Components) != len(d.Components) {
				t.Fatalf("components = %d, want %d", len(got.Components), len(d.Components))
			}
			for i := range d.Components {
				if got.Components[i] != d.Components[i] {
					t.Errorf("component %d = %+v, want %+v", i, got.Components[i], d.Components[i])
				}
			}
		})
	}
}

func TestDecodeBareList(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `[{"id":1,"kind":"image","size":9},{"id":2,"kind":"text","size":15}]`},
		{"yaml", FormatYAML, "- {id: 1, kind: image, size: 9}\n- {id: 2, kind: text, size: 15}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode([]byte(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			l, err := d.Layout()
			if err != nil {
				t.Fatalf("Layout: %v", err)
			}
			if l.Len() != 2 || l.Base() != grid.Base || len(l.Malformed()) != 0 {
				t.Errorf("layout len=%d base=%d malformed=%v", l.Len(), l.Base(), l.Malformed())
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"bad json", FormatJSON, `{"components": [`, errors.ErrCodeInvalidLayout},
		{"bad yaml", FormatYAML, "components: [", errors.ErrCodeInvalidLayout},
		{"empty yaml", FormatYAML, "", errors.ErrCodeInvalidLayout},
		{"bad toml", FormatTOML, "components = ", errors.ErrCodeInvalidLayout},
		{"unknown format", Format("xml"), "<a/>", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDocumentLayoutValidates(t *testing.T) {
	d := &Document{Name: "broken", Components: []grid.Component{
		{ID: 1, Kind: "a", Size: 9},
		{ID: 1, Kind: "b", Size: 15},
	}}
	_, err := d.Layout()
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("Layout error = %v, want INVALID_LAYOUT", err)
	}
	if err != nil && !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the document: %v", err)
	}
}

func TestDocumentKeepsMalformedRows(t *testing.T) {
	d := &Document{Base: 12, Components: []grid.Component{
		{ID: 1, Kind: "a", Size: 5},
		{ID: 2, Kind: "b", Size: 5},
	}}
	l, err := d.Layout()
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if l.Base() != 12 {
		t.Errorf("Base = %d, want 12", l.Base())
	}
	if len(l.Malformed()) != 1 {
		t.Errorf("Malformed = %v, want one row", l.Malformed())
	}
}

func TestDocumentBaseOverridesOptions(t *testing.T) {
	d := &Document{Base: 12, Components: []grid.Component{{ID: 1, Kind: "a", Size: 12}}}
	l, err := d.Layout(grid.WithBase(24), grid.WithCorrection(grid.CorrectClamped))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if l.Base() != 12 || l.Correction() != grid.CorrectClamped {
		t.Errorf("base=%d correction=%v, want 12 clamped", l.Base(), l.Correction())
	}

	d.Base = 0
	if l, _ := d.Layout(grid.WithBase(6)); l.Base() != 6 {
		t.Errorf("base without document base = %d, want 6", l.Base())
	}
}

func TestEnsureID(t *testing.T) {
	d := &Document{}
	if err := d.EnsureID(); err != nil || d.ID == "" {
		t.Errorf("EnsureID on empty = %q, %v", d.ID, err)
	}
	d.ID = "../etc"
	if err := d.EnsureID(); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("EnsureID(%q) = %v, want INVALID_ID", d.ID, err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"layout.json", FormatJSON, false},
		{"layout.YAML", FormatYAML, false},
		{"dir/layout.yml", FormatYAML, false},
		{"layout.toml", FormatTOML, false},
		{"layout.xml", "", true},
		{"layout", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	d := sampleDocument(t)

	for _, name := range []string{"a.json", "a.yaml", "a.toml"} {
		path := filepath.Join(dir, name)
		if err := Export(d, path); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		got, l, err := ImportLayout(path)
		if err != nil {
			t.Fatalf("ImportLayout(%s): %v", name, err)
		}
		if got.ID != d.ID || l.Len() != 6 {
			t.Errorf("%s: id=%q len=%d", name, got.ID, l.Len())
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("Export left temporary files: %d entries", len(entries))
	}
}

func TestImportMissing(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import error = %v, want FILE_NOT_FOUND", err)
	}
}
