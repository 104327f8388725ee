package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assetpipe/codec"
)

func rasterEntries(t *testing.T, dir string) []FileEntry {
	t.Helper()
	files, err := Discover(dir, RasterPattern)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return files
}

func TestOptimizeWritesOriginalAndDerivatives(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeJPEG(t, filepath.Join(in, "a", "b.jpg"))
	writePNG(t, filepath.Join(in, "logo.png"))

	var log bytes.Buffer
	enc := &stubEncoder{}
	opt := &Optimizer{Encoder: enc, Console: newTestConsole(&log)}

	stats := opt.Optimize(context.Background(), rasterEntries(t, in), Task{InputDir: in, OutputDir: out})

	if stats.Processed != 2 || stats.Errors != 0 || stats.Copied != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	assertExists(t,
		filepath.Join(out, "a", "b.jpg"),
		filepath.Join(out, "a", "b.webp"),
		filepath.Join(out, "a", "b.avif"),
		filepath.Join(out, "logo.png"),
		filepath.Join(out, "logo.webp"),
		filepath.Join(out, "logo.avif"),
	)

	data, err := os.ReadFile(filepath.Join(out, "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png" {
		t.Errorf("logo.png re-encoded as %q, want png", data)
	}

	want := []codec.Format{
		codec.FormatJPEG, codec.FormatWebP, codec.FormatAVIF,
		codec.FormatPNG, codec.FormatWebP, codec.FormatAVIF,
	}
	if len(enc.calls) != len(want) {
		t.Fatalf("encode calls = %v, want %v", enc.calls, want)
	}
	for i := range want {
		if enc.calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, enc.calls[i], want[i])
		}
	}
	if !strings.Contains(log.String(), "Processed: a/b.jpg") {
		t.Errorf("missing progress line:\n%s", log.String())
	}
}

func TestOptimizeKeepsOriginalExtensionCase(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeJPEG(t, filepath.Join(in, "Photo.JPEG"))

	var log bytes.Buffer
	opt := &Optimizer{Encoder: &stubEncoder{}, Console: newTestConsole(&log)}
	stats := opt.Optimize(context.Background(), rasterEntries(t, in), Task{InputDir: in, OutputDir: out})

	if stats.Processed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	assertExists(t,
		filepath.Join(out, "Photo.JPEG"),
		filepath.Join(out, "Photo.webp"),
		filepath.Join(out, "Photo.avif"),
	)
}

func TestOptimizeCorruptImageCountsOneError(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeBytes(t, filepath.Join(in, "a_broken.jpg"), []byte("not really a jpeg"))
	writeJPEG(t, filepath.Join(in, "b_good.jpg"))

	var log bytes.Buffer
	enc := &stubEncoder{}
	opt := &Optimizer{Encoder: enc, Console: newTestConsole(&log)}
	stats := opt.Optimize(context.Background(), rasterEntries(t, in), Task{InputDir: in, OutputDir: out})

	if stats.Errors != 1 || stats.Processed != 1 {
		t.Fatalf("stats = %+v, want 1 error and 1 processed", stats)
	}
	assertMissing(t,
		filepath.Join(out, "a_broken.jpg"),
		filepath.Join(out, "a_broken.webp"),
		filepath.Join(out, "a_broken.avif"),
	)
	assertExists(t, filepath.Join(out, "b_good.jpg"), filepath.Join(out, "b_good.avif"))
	if !strings.Contains(log.String(), "Error processing a_broken.jpg") {
		t.Errorf("missing error line:\n%s", log.String())
	}
}

func TestOptimizeEncodeFailureStopsRemainingFormats(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writePNG(t, filepath.Join(in, "hero.png"))

	var log bytes.Buffer
	enc := &stubEncoder{failOn: map[codec.Format]bool{codec.FormatWebP: true}}
	opt := &Optimizer{Encoder: enc, Console: newTestConsole(&log)}
	stats := opt.Optimize(context.Background(), rasterEntries(t, in), Task{InputDir: in, OutputDir: out})

	if stats.Errors != 1 || stats.Processed != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(enc.calls) != 2 {
		t.Fatalf("avif should not be attempted after webp fails, calls = %v", enc.calls)
	}
	assertExists(t, filepath.Join(out, "hero.png"))
	assertMissing(t, filepath.Join(out, "hero.webp"), filepath.Join(out, "hero.avif"))

	leftovers, err := filepath.Glob(filepath.Join(out, ".assetpipe-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestOptimizeStopsOnCancel(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeJPEG(t, filepath.Join(in, "a.jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	opt := &Optimizer{Encoder: &stubEncoder{}, Console: newTestConsole(&log)}
	stats := opt.Optimize(ctx, rasterEntries(t, in), Task{InputDir: in, OutputDir: out})

	if stats != (Stats{}) {
		t.Fatalf("stats = %+v, want zero", stats)
	}
}

func TestOptimizeRejectsVerbatimKind(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	path := filepath.Join(in, "icon.svg")
	writeBytes(t, path, []byte("<svg/>"))

	var log bytes.Buffer
	opt := &Optimizer{Encoder: &stubEncoder{}, Console: newTestConsole(&log)}
	stats := opt.Optimize(context.Background(),
		[]FileEntry{{Path: path, RelPath: "icon.svg", Kind: KindSVG}},
		Task{InputDir: in, OutputDir: out})

	if stats.Errors != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}
