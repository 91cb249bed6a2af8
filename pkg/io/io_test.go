package io

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{
			name:  "Object",
			input: `{"items": [{"id": "a", "weight": 3}, {"id": "b", "label": "Bee", "weight": 1.5}]}`,
			want:  []Record{{ID: "a", Weight: 3}, {ID: "b", Label: "Bee", Weight: 1.5}},
		},
		{
			name:  "Array",
			input: ` [{"id": "p", "width": 400, "height": 300, "source": "p.jpg"}]`,
			want:  []Record{{ID: "p", Width: 400, Height: 300, Source: "p.jpg"}},
		},
		{
			name:  "Empty",
			input: `{"items": []}`,
			want:  []Record{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{
			name:  "Object",
			input: "items:\n  - id: a\n    weight: 3\n  - id: b\n    weight: 1\n",
			want:  []Record{{ID: "a", Weight: 3}, {ID: "b", Weight: 1}},
		},
		{
			name:  "Sequence",
			input: "- id: p\n  width: 640\n  height: 480\n",
			want:  []Record{{ID: "p", Width: 640, Height: 480}},
		},
		{
			name:  "Blank",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadYAML(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadYAML: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"BadJSON", `{"items": [`, FormatJSON},
		{"WrongJSONType", `{"items": {"id": "a"}}`, FormatJSON},
		{"BadYAML", "items: [", FormatYAML},
		{"UnknownFormat", `[]`, Format("csv")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	recs := []Record{
		{ID: "a", Label: "Alpha", Weight: 2},
		{ID: "p", Width: 100, Height: 50, Source: "p.png"},
	}
	dir := t.TempDir()
	for _, name := range []string{"items.json", "items.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := ExportFile(recs, path); err != nil {
				t.Fatalf("ExportFile: %v", err)
			}
			got, err := ImportFile(path)
			if err != nil {
				t.Fatalf("ImportFile: %v", err)
			}
			if !reflect.DeepEqual(got, recs) {
				t.Errorf("got %+v, want %+v", got, recs)
			}
		})
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(nil, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "{\n  \"items\": []\n}" {
		t.Errorf("WriteJSON(nil) = %q", got)
	}
}

func TestImportFileErrors(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg":
		err = jpeg.Encode(f, img, nil)
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		t.Fatalf("unsupported test image %s", path)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "b.jpg"), 40, 30)
	writeImage(t, filepath.Join(dir, "a.png"), 20, 10)
	writeImage(t, filepath.Join(dir, "c.gif"), 5, 8)
	writeImage(t, filepath.Join(dir, "d.bmp"), 12, 12)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	recs, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}

	want := []struct {
		id   string
		w, h float64
	}{
		{"a", 20, 10},
		{"b", 40, 30},
		{"c", 5, 8},
		{"d", 12, 12},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(recs), len(want), recs)
	}
	for i, w := range want {
		r := recs[i]
		if r.ID != w.id || r.Width != w.w || r.Height != w.h {
			t.Errorf("record %d = %+v, want id=%s %vx%v", i, r, w.id, w.w, w.h)
		}
		if r.Source != filepath.Join(dir, r.Label) {
			t.Errorf("record %d source = %q", i, r.Source)
		}
	}

	// ImportFile dispatches directories to the scanner.
	viaImport, err := ImportFile(dir)
	if err != nil {
		t.Fatalf("ImportFile(dir): %v", err)
	}
	if !reflect.DeepEqual(viaImport, recs) {
		t.Error("ImportFile(dir) differs from ScanImages(dir)")
	}
}

func TestScanImagesCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ScanImages(dir)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestScanImagesMissingDir(t *testing.T) {
	_, err := ScanImages(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]Record{{ID: "x"}, {}, {ID: "y"}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if !reflect.DeepEqual(ids, []string{"x", "item-1", "y"}) {
		t.Errorf("ids = %v", ids)
	}

	if _, err := Normalize([]Record{{ID: "bad\x00id"}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("control character err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestItems(t *testing.T) {
	recs := []Record{{ID: "a", Weight: 2, Width: 30, Height: 20}}

	tm, err := TreemapItems(recs)
	if err != nil {
		t.Fatalf("TreemapItems: %v", err)
	}
	if tm[0].ID != "a" || tm[0].Weight != 2 {
		t.Errorf("treemap item = %+v", tm[0])
	}

	mo, err := MosaicItems(recs)
	if err != nil {
		t.Fatalf("MosaicItems: %v", err)
	}
	if mo[0].Natural != (geom.Size{W: 30, H: 20}) {
		t.Errorf("mosaic item = %+v", mo[0])
	}
}
