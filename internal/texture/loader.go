// Package texture is the image codec layer: decoding source textures,
// splitting them into single-channel bands, recombining bands and encoding
// the result.
package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// decoders is keyed by lower-cased file extension. The TGA format has no
// magic number, so sniffing through image.Decode is not reliable.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
	".dds":  decodeDDS,
}

// Codec decodes texture files from disk.
type Codec struct{}

// NewCodec returns the default codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode reads and decodes an image file, choosing the decoder from the
// file extension. PNG, JPEG, GIF, BMP, TGA and uncompressed DDS are
// understood.
func (c *Codec) Decode(path string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: decode %s: %q: %w", path, ext, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// toNRGBA converts any image to 8-bit non-premultiplied NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch s := src.(type) {
	case *image.RGBA:
		// Straight copy is only exact for opaque pixels.
		if s.Opaque() {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				si := s.PixOffset(b.Min.X, y)
				di := dst.PixOffset(b.Min.X, y)
				copy(dst.Pix[di:di+4*b.Dx()], s.Pix[si:si+4*b.Dx()])
			}
			return dst
		}
	case *image.Gray, *image.YCbCr:
		// No alpha: draw and set alpha to 255
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x, y)
			dst.Pix[i] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
	return dst
}
