package texture

import (
	"fmt"
	"image"
)

// ChannelCount reports how many bands Split produces for img: 1 for
// grayscale, 3 for color sources without an alpha channel, 4 otherwise.
func ChannelCount(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.RGBA, *image.RGBA64, *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	return 4
}

// Split returns one band per channel of img, in R, G, B, A order.
// 16-bit grayscale sources keep their depth as *image.Gray16; every other
// band is *image.Gray.
func Split(img image.Image) []image.Image {
	switch m := img.(type) {
	case *image.Gray:
		return []image.Image{m}
	case *image.Gray16:
		return []image.Image{m}
	}

	n := ChannelCount(img)
	src := toNRGBA(img)
	b := src.Bounds()

	bands := make([]*image.Gray, n)
	for c := range bands {
		bands[c] = image.NewGray(b)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := bands[0].PixOffset(x, y)
			for c := 0; c < n; c++ {
				bands[c].Pix[di] = src.Pix[si+c]
			}
		}
	}

	out := make([]image.Image, n)
	for i, g := range bands {
		out[i] = g
	}
	return out
}

// To8Bit returns band as 8-bit grayscale. 16-bit values are scaled down by
// 256; *image.Gray is returned as is.
func To8Bit(band image.Image) *image.Gray {
	switch m := band.(type) {
	case *image.Gray:
		return m
	case *image.Gray16:
		b := m.Bounds()
		dst := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)] = m.Pix[m.PixOffset(x, y)]
			}
		}
		return dst
	}
	b := band.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)] = uint8(toGray16(band, x, y) >> 8)
		}
	}
	return dst
}

// IsHighPrecision reports whether band carries more than 8 bits per pixel.
func IsHighPrecision(band image.Image) bool {
	_, ok := band.(*image.Gray16)
	return ok
}

func toGray16(img image.Image, x, y int) uint16 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint16((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
}

// Invert returns the value complement of band.
func Invert(band *image.Gray) *image.Gray {
	dst := image.NewGray(band.Bounds())
	b := band.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := band.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = 255 - band.Pix[si+x]
		}
	}
	return dst
}

// Black returns an all-zero band.
func Black(bounds image.Rectangle) *image.Gray {
	return image.NewGray(bounds)
}

// Merge composes bands into one image: 1 band gives *image.Gray, 3 bands an
// opaque *image.RGBA, 4 bands an *image.NRGBA with the last band as alpha.
// All bands must share the same bounds.
func Merge(bands []*image.Gray) (image.Image, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("texture: merge: no bands")
	}
	b := bands[0].Bounds()
	for i, band := range bands[1:] {
		if band.Bounds() != b {
			return nil, fmt.Errorf("texture: merge: band %d is %v, want %v", i+1, band.Bounds(), b)
		}
	}

	switch len(bands) {
	case 1:
		dst := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := bands[0].PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			copy(dst.Pix[di:di+b.Dx()], bands[0].Pix[si:si+b.Dx()])
		}
		return dst, nil
	case 3:
		dst := image.NewRGBA(b)
		interleave(dst.Pix, dst.Stride, b, bands, 255)
		return dst, nil
	case 4:
		dst := image.NewNRGBA(b)
		interleave(dst.Pix, dst.Stride, b, bands, 0)
		return dst, nil
	}
	return nil, fmt.Errorf("texture: merge: unsupported band count %d", len(bands))
}

// interleave writes bands into a 4-byte-per-pixel buffer. With 3 bands the
// fourth byte is set to fill.
func interleave(pix []uint8, stride int, b image.Rectangle, bands []*image.Gray, fill uint8) {
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := y*stride + x*4
			for c, band := range bands {
				pix[i+c] = band.Pix[band.PixOffset(b.Min.X+x, b.Min.Y+y)]
			}
			if len(bands) == 3 {
				pix[i+3] = fill
			}
		}
	}
}
