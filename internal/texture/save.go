package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/ftrvxmtrx/tga"
)

// ErrUnsupportedFormat is returned by Save for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// JPEGQuality is used for jpg output.
const JPEGQuality = 95

var encoders = map[string]imgio.Encoder{
	"png":  imgio.PNGEncoder(),
	"jpg":  imgio.JPEGEncoder(JPEGQuality),
	"jpeg": imgio.JPEGEncoder(JPEGQuality),
	"bmp":  imgio.BMPEncoder(),
	"tga":  func(w io.Writer, img image.Image) error { return tga.Encode(w, img) },
	"dds":  EncodeDDS,
	"webp": func(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) },
}

// Supported reports whether format can be written by Save.
func Supported(format string) bool {
	_, ok := encoders[strings.ToLower(format)]
	return ok
}

// Save encodes img to path in the given format. The parent directory must
// already exist.
func Save(img image.Image, path, format string) error {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("texture: save %s: %q: %w", path, format, ErrUnsupportedFormat)
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("texture: save %s: %w", path, err)
	}
	return nil
}
