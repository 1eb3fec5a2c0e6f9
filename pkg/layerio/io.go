package layerio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/mappingtree"
)

// Format is a layer document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatForFilename picks the format from the file extension.
func FormatForFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%s: unknown layer file extension (want .yaml, .yml or .json)", filename)
}

// Decode reads a layer document.
func Decode(in io.Reader, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(in).Decode(&f)
	case FormatJSON:
		err = json.NewDecoder(in).Decode(&f)
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal %v: empty document", format)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %v: %w", format, err)
	}
	return &f, nil
}

// Encode writes a layer document.
func Encode(out io.Writer, format Format, f *File) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported format: %v", format)
}

// DecodeLayer reads a layer document and builds its layer. name is used
// when the document does not name itself.
func DecodeLayer(in io.Reader, format Format, name string, options ...Option) (*mapping.Layer, error) {
	f, err := Decode(in, format)
	if err != nil {
		return nil, err
	}
	return f.Layer(name, options...)
}

// EncodeLayer writes layer as a document.
func EncodeLayer(out io.Writer, format Format, layer *mapping.Layer) error {
	return Encode(out, format, NewFile(layer.Name(), layer.CoveredNamespaces(), layer.Records()))
}

// EncodeTree writes a merged tree as a single layer document.
func EncodeTree(out io.Writer, format Format, name string, tree *mappingtree.Tree) error {
	return Encode(out, format, NewFile(name, tree.Namespaces(), tree.Records()))
}

// ReadLayerFile reads a layer file. A document without a name takes the
// file's base name without extension.
func ReadLayerFile(filename string, options ...Option) (*mapping.Layer, error) {
	format, err := FormatForFilename(filename)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", filename, err)
	}
	defer in.Close()

	base := filepath.Base(filename)
	layer, err := DecodeLayer(in, format, strings.TrimSuffix(base, filepath.Ext(base)), options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return layer, nil
}

// WriteLayerFile writes layer in the format named by the file extension.
func WriteLayerFile(filename string, layer *mapping.Layer) error {
	return writeFile(filename, func(out io.Writer, format Format) error {
		return EncodeLayer(out, format, layer)
	})
}

// WriteTreeFile writes a merged tree as a layer file.
func WriteTreeFile(filename, name string, tree *mappingtree.Tree) error {
	return writeFile(filename, func(out io.Writer, format Format) error {
		return EncodeTree(out, format, name, tree)
	})
}

func writeFile(filename string, encode func(io.Writer, Format) error) error {
	format, err := FormatForFilename(filename)
	if err != nil {
		return err
	}
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("write %q: %w", filename, err)
	}
	if err := encode(out, format); err != nil {
		out.Close()
		return fmt.Errorf("write %q: %w", filename, err)
	}
	return out.Close()
}
