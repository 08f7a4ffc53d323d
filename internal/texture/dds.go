package texture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"math/bits"
)

// Uncompressed DirectDraw Surface support. Block-compressed (DXTn/BCn)
// surfaces are rejected on decode; encode always writes 32-bit BGRA.

const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 124
	ddsPFSize     = 32

	ddsdCaps        = 0x1
	ddsdHeight      = 0x2
	ddsdWidth       = 0x4
	ddsdPitch       = 0x8
	ddsdPixelFormat = 0x1000

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40
	ddpfLuminance   = 0x20000

	ddsCapsTexture = 0x1000
)

// ErrDDSCompressed is returned for block-compressed DDS files.
var ErrDDSCompressed = errors.New("dds: compressed surfaces are not supported")

// ddsMaxSide bounds the surface size accepted on decode.
const ddsMaxSide = 16384

type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type ddsHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

func readDDSHeader(r io.Reader) (ddsHeader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return ddsHeader{}, fmt.Errorf("dds: read magic: %w", err)
	}
	if string(magic[:]) != ddsMagic {
		return ddsHeader{}, fmt.Errorf("dds: bad magic %q", magic[:])
	}
	var h ddsHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return ddsHeader{}, fmt.Errorf("dds: read header: %w", err)
	}
	if h.Size != ddsHeaderSize || h.PixelFormat.Size != ddsPFSize {
		return ddsHeader{}, fmt.Errorf("dds: bad header size %d/%d", h.Size, h.PixelFormat.Size)
	}
	if h.PixelFormat.Flags&ddpfFourCC != 0 {
		return ddsHeader{}, fmt.Errorf("%w (%q)", ErrDDSCompressed, h.PixelFormat.FourCC[:])
	}
	switch h.PixelFormat.RGBBitCount {
	case 8, 16, 24, 32:
	default:
		return ddsHeader{}, fmt.Errorf("dds: unsupported bit count %d", h.PixelFormat.RGBBitCount)
	}
	if h.Width == 0 || h.Height == 0 || h.Width > ddsMaxSide || h.Height > ddsMaxSide {
		return ddsHeader{}, fmt.Errorf("dds: bad size %dx%d", h.Width, h.Height)
	}
	return h, nil
}

func decodeDDS(r io.Reader) (image.Image, error) {
	h, err := readDDSHeader(r)
	if err != nil {
		return nil, err
	}
	pf := h.PixelFormat
	w, ht := int(h.Width), int(h.Height)
	bpp := int(pf.RGBBitCount / 8)

	row := make([]byte, w*bpp)
	rect := image.Rect(0, 0, w, ht)

	if pf.Flags&ddpfLuminance != 0 && pf.Flags&ddpfAlphaPixels == 0 && bpp == 1 {
		dst := image.NewGray(rect)
		for y := 0; y < ht; y++ {
			if _, err := io.ReadFull(r, dst.Pix[y*dst.Stride:y*dst.Stride+w]); err != nil {
				return nil, fmt.Errorf("dds: read pixels: %w", err)
			}
		}
		return dst, nil
	}

	dst := image.NewNRGBA(rect)
	hasAlpha := pf.Flags&ddpfAlphaPixels != 0 && pf.ABitMask != 0
	lum := pf.Flags&ddpfLuminance != 0
	for y := 0; y < ht; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("dds: read pixels: %w", err)
		}
		for x := 0; x < w; x++ {
			var v uint32
			for i := 0; i < bpp; i++ {
				v |= uint32(row[x*bpp+i]) << (8 * i)
			}
			i := dst.PixOffset(x, y)
			if lum {
				l := maskValue(v, pf.RBitMask)
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = l, l, l
			} else {
				dst.Pix[i] = maskValue(v, pf.RBitMask)
				dst.Pix[i+1] = maskValue(v, pf.GBitMask)
				dst.Pix[i+2] = maskValue(v, pf.BBitMask)
			}
			dst.Pix[i+3] = 255
			if hasAlpha {
				dst.Pix[i+3] = maskValue(v, pf.ABitMask)
			}
		}
	}
	return dst, nil
}

// maskValue extracts a masked channel and scales it to 8 bits.
func maskValue(v, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask)
	c := (v & mask) >> shift
	if width >= 8 {
		return uint8(c >> (width - 8))
	}
	maxv := uint32(1)<<width - 1
	return uint8(c * 255 / maxv)
}

// EncodeDDS writes img as an uncompressed 32-bit BGRA DDS surface without
// mipmaps.
func EncodeDDS(w io.Writer, img image.Image) error {
	src := toNRGBA(img)
	b := src.Bounds()

	h := ddsHeader{
		Size:              ddsHeaderSize,
		Flags:             ddsdCaps | ddsdHeight | ddsdWidth | ddsdPitch | ddsdPixelFormat,
		Height:            uint32(b.Dy()),
		Width:             uint32(b.Dx()),
		PitchOrLinearSize: uint32(b.Dx() * 4),
		PixelFormat: ddsPixelFormat{
			Size:        ddsPFSize,
			Flags:       ddpfRGB | ddpfAlphaPixels,
			RGBBitCount: 32,
			RBitMask:    0x00ff0000,
			GBitMask:    0x0000ff00,
			BBitMask:    0x000000ff,
			ABitMask:    0xff000000,
		},
		Caps: ddsCapsTexture,
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(ddsMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return err
	}
	row := make([]byte, b.Dx()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := 0; x < b.Dx(); x++ {
			i := src.PixOffset(b.Min.X+x, y)
			row[x*4] = src.Pix[i+2]
			row[x*4+1] = src.Pix[i+1]
			row[x*4+2] = src.Pix[i]
			row[x*4+3] = src.Pix[i+3]
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
