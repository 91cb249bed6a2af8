package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and validates it.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := Validate(l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the discriminator, the frame and the tile references.
func Validate(l Layout) error {
	switch l.Kind {
	case KindTreemap, KindMosaic:
	case "":
		return errors.New(errors.ErrCodeInvalidKind, "layout kind is required")
	default:
		return errors.New(errors.ErrCodeInvalidKind, "unknown layout kind %q", l.Kind)
	}
	if err := errors.ValidateDimension("layout width", l.Width); err != nil {
		return err
	}
	if math.IsNaN(l.Height) || math.IsInf(l.Height, 0) {
		return errors.New(errors.ErrCodeInvalidSize, "layout height must be finite, got %v", l.Height)
	}
	for ri, r := range l.Rows {
		for _, ti := range r.Tiles {
			if ti < 0 || ti >= len(l.Tiles) {
				return errors.New(errors.ErrCodeInvalidInput, "row %d references tile %d of %d", ri, ti, len(l.Tiles))
			}
		}
	}
	return nil
}

// Read decodes a Layout from r.
func Read(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	return Unmarshal(data)
}

// Write encodes l as JSON to w.
func Write(l Layout, w io.Writer) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
