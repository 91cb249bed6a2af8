package cli

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	mio "github.com/matzehuels/mosaic/pkg/io"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestRunScan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wide.png"), 40, 20)
	writePNG(t, filepath.Join(dir, "tall.png"), 10, 30)

	out := filepath.Join(t.TempDir(), "photos.yaml")
	c := New(io.Discard, LogInfo)
	if err := c.runScan(t.Context(), dir, out); err != nil {
		t.Fatalf("runScan: %v", err)
	}

	recs, err := mio.ImportFile(out)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ID != "tall" || recs[0].Width != 10 || recs[0].Height != 30 {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].ID != "wide" || recs[1].Width != 40 || recs[1].Height != 20 {
		t.Errorf("second record = %+v", recs[1])
	}
}

func TestRunScanMissingDir(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if err := c.runScan(t.Context(), filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
