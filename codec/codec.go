// Package codec adapts the third-party image encoders behind one Encode call
// per output format.
package codec

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/jpegli"
	"github.com/gen2brain/webp"
	_ "golang.org/x/image/webp"
)

type Codec struct {
	Settings Settings
}

func New(settings Settings) (*Codec, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Codec{Settings: settings}, nil
}

// Decode reads any format registered with the image package: JPEG, PNG,
// WebP and AVIF.
func (c *Codec) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}
	return img, nil
}

func (c *Codec) Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatJPEG:
		err = jpegli.Encode(w, img, c.jpegOptions())
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: pngLevel(c.Settings.PNG.CompressionLevel)}
		err = enc.Encode(w, img)
	case FormatWebP:
		err = webp.Encode(w, img, webp.Options{Quality: c.Settings.WebP.Quality, Method: c.Settings.WebP.Method})
	case FormatAVIF:
		err = avif.Encode(w, img, c.avifOptions())
	default:
		return fmt.Errorf("unsupported output format %v", f)
	}
	if err != nil {
		return fmt.Errorf("error encoding to %s: %w", f, err)
	}
	return nil
}

func (c *Codec) jpegOptions() *jpegli.EncodingOptions {
	level := 0
	if c.Settings.JPEG.Progressive {
		level = 2
	}
	return &jpegli.EncodingOptions{
		Quality:          c.Settings.JPEG.Quality,
		ProgressiveLevel: level,
		OptimizeCoding:   true,
	}
}

func (c *Codec) avifOptions() avif.Options {
	return avif.Options{
		Quality:           c.Settings.AVIF.Quality,
		QualityAlpha:      c.Settings.AVIF.Quality,
		Speed:             c.Settings.AVIF.Speed,
		ChromaSubsampling: chromaSubsampling,
	}
}

// pngLevel maps a zlib-style 0-9 level onto image/png's four presets.
func pngLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
