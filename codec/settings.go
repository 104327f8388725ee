package codec

import (
	"fmt"
	"image"
)

// Format is an output encoding the codec can produce.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatWebP
	FormatAVIF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	case FormatAVIF:
		return "avif"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Ext is the canonical file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatWebP:
		return ".webp"
	case FormatAVIF:
		return ".avif"
	default:
		return ""
	}
}

type JPEGSettings struct {
	Quality     int
	Progressive bool
}

type PNGSettings struct {
	// Quality has no effect on lossless PNG output.
	Quality          int
	CompressionLevel int
}

type WebPSettings struct {
	Quality int
	Method  int
}

type AVIFSettings struct {
	Quality int
	Speed   int
}

// Settings holds the encode parameters for every output format.
type Settings struct {
	JPEG JPEGSettings
	PNG  PNGSettings
	WebP WebPSettings
	AVIF AVIFSettings
}

func DefaultSettings() Settings {
	return Settings{
		JPEG: JPEGSettings{Quality: 80, Progressive: true},
		PNG:  PNGSettings{Quality: 80, CompressionLevel: 9},
		WebP: WebPSettings{Quality: 75, Method: 4},
		AVIF: AVIFSettings{Quality: 65, Speed: 6},
	}
}

func (s Settings) Validate() error {
	for name, q := range map[string]int{
		"jpeg": s.JPEG.Quality,
		"png":  s.PNG.Quality,
		"webp": s.WebP.Quality,
		"avif": s.AVIF.Quality,
	} {
		if q < 0 || q > 100 {
			return fmt.Errorf("error: %s quality must be in range 0-100", name)
		}
	}
	if s.PNG.CompressionLevel < 0 || s.PNG.CompressionLevel > 9 {
		return fmt.Errorf("error: png compression level must be in range 0-9")
	}
	if s.WebP.Method < 0 || s.WebP.Method > 6 {
		return fmt.Errorf("error: webp method must be in range 0-6")
	}
	if s.AVIF.Speed < 0 || s.AVIF.Speed > 10 {
		return fmt.Errorf("error: avif encoding speed must be in range 0-10")
	}
	return nil
}

// AVIF output is always 4:2:0.
var chromaSubsampling = image.YCbCrSubsampleRatio420
