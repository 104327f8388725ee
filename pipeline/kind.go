package pipeline

import (
	"path/filepath"
	"strings"

	"assetpipe/codec"
)

// Kind identifies how a discovered asset is handled. It is decided once from
// the file extension and never re-derived.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindSVG
	KindGIF
	KindICO
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindSVG:
		return "svg"
	case KindGIF:
		return "gif"
	case KindICO:
		return "ico"
	default:
		return "unknown"
	}
}

var kindsByExt = map[string]Kind{
	".jpg":  KindJPEG,
	".jpeg": KindJPEG,
	".png":  KindPNG,
	".svg":  KindSVG,
	".gif":  KindGIF,
	".ico":  KindICO,
}

// KindOf classifies path by its extension, ignoring case.
func KindOf(path string) Kind {
	return kindsByExt[strings.ToLower(filepath.Ext(path))]
}

func (k Kind) IsRaster() bool {
	return k == KindJPEG || k == KindPNG
}

func (k Kind) IsVerbatim() bool {
	return k == KindSVG || k == KindGIF || k == KindICO
}

// Format returns the encoding a raster kind is re-encoded into. ok is false
// for kinds that are copied verbatim.
func (k Kind) Format() (f codec.Format, ok bool) {
	switch k {
	case KindJPEG:
		return codec.FormatJPEG, true
	case KindPNG:
		return codec.FormatPNG, true
	case KindSVG, KindGIF, KindICO, KindUnknown:
		return 0, false
	}
	return 0, false
}
