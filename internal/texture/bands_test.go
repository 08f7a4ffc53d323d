package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 20), B: uint8(x + y), A: uint8(200 + x)})
		}
	}
	return img
}

func TestChannelCount(t *testing.T) {
	t.Parallel()

	r := image.Rect(0, 0, 2, 2)
	opaque := image.NewPaletted(r, color.Palette{color.Black, color.White})
	alpha := image.NewPaletted(r, color.Palette{color.Transparent, color.White})

	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(r), 1},
		{"gray16", image.NewGray16(r), 1},
		{"rgba", image.NewRGBA(r), 3},
		{"ycbcr", image.NewYCbCr(r, image.YCbCrSubsampleRatio444), 3},
		{"nrgba", image.NewNRGBA(r), 4},
		{"paletted opaque", opaque, 3},
		{"paletted alpha", alpha, 4},
	}
	for _, tt := range tests {
		if got := ChannelCount(tt.img); got != tt.want {
			t.Errorf("%s: ChannelCount() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	src := gradient(4, 3)
	bands := Split(src)
	if len(bands) != 4 {
		t.Fatalf("len(Split()) = %d, want 4", len(bands))
	}
	for c, band := range bands {
		g, ok := band.(*image.Gray)
		if !ok {
			t.Fatalf("band %d is %T, want *image.Gray", c, band)
		}
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				want := src.Pix[src.PixOffset(x, y)+c]
				if got := g.GrayAt(x, y).Y; got != want {
					t.Fatalf("band %d at (%d,%d) = %d, want %d", c, x, y, got, want)
				}
			}
		}
	}
}

func TestSplit_GrayPassesThrough(t *testing.T) {
	t.Parallel()

	g16 := image.NewGray16(image.Rect(0, 0, 2, 2))
	g16.SetGray16(1, 1, color.Gray16{Y: 0xabcd})

	bands := Split(g16)
	if len(bands) != 1 || bands[0] != image.Image(g16) {
		t.Fatalf("Split(gray16) = %v, want the source itself", bands)
	}
	if !IsHighPrecision(bands[0]) {
		t.Error("IsHighPrecision() = false for Gray16")
	}
	if got := To8Bit(bands[0]).GrayAt(1, 1).Y; got != 0xab {
		t.Errorf("To8Bit() = %#x, want 0xab", got)
	}
}

func TestInvert_Twice(t *testing.T) {
	t.Parallel()

	band := Split(gradient(5, 5))[0].(*image.Gray)
	once := Invert(band)
	if once.Pix[1] != 255-band.Pix[1] {
		t.Errorf("Invert() = %d, want %d", once.Pix[1], 255-band.Pix[1])
	}
	if twice := Invert(once); !bytes.Equal(twice.Pix, band.Pix) {
		t.Error("Invert(Invert(b)) != b")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	r := image.Rect(0, 0, 3, 2)
	fill := func(v uint8) *image.Gray {
		g := image.NewGray(r)
		for i := range g.Pix {
			g.Pix[i] = v
		}
		return g
	}

	one, err := Merge([]*image.Gray{fill(7)})
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := one.(*image.Gray); !ok || g.GrayAt(2, 1).Y != 7 {
		t.Errorf("Merge(1) = %T, want *image.Gray of 7", one)
	}

	three, err := Merge([]*image.Gray{fill(10), fill(20), fill(30)})
	if err != nil {
		t.Fatal(err)
	}
	rgba, ok := three.(*image.RGBA)
	if !ok {
		t.Fatalf("Merge(3) = %T, want *image.RGBA", three)
	}
	if got := rgba.RGBAAt(1, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("Merge(3) pixel = %v", got)
	}

	four, err := Merge([]*image.Gray{fill(10), fill(20), fill(30), fill(40)})
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := four.(*image.NRGBA)
	if !ok {
		t.Fatalf("Merge(4) = %T, want *image.NRGBA", four)
	}
	if got := nrgba.NRGBAAt(0, 0); got != (color.NRGBA{10, 20, 30, 40}) {
		t.Errorf("Merge(4) pixel = %v", got)
	}

	if _, err := Merge(nil); err == nil {
		t.Error("Merge(nil) error = nil")
	}
	if _, err := Merge([]*image.Gray{fill(1), fill(2)}); err == nil {
		t.Error("Merge(2 bands) error = nil")
	}
	if _, err := Merge([]*image.Gray{fill(1), image.NewGray(image.Rect(0, 0, 1, 1)), fill(3)}); err == nil {
		t.Error("Merge(mismatched bounds) error = nil")
	}
}

func TestMerge_SubImage(t *testing.T) {
	t.Parallel()

	full := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = uint8(i)
	}
	sub := full.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

	out, err := Merge([]*image.Gray{sub, sub, sub})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.(*image.RGBA).RGBAAt(2, 2).R, full.GrayAt(2, 2).Y; got != want {
		t.Errorf("Merge(sub) at (2,2) = %d, want %d", got, want)
	}
}

func TestDDS_RoundTrip(t *testing.T) {
	t.Parallel()

	src := gradient(3, 2)
	var buf bytes.Buffer
	if err := EncodeDDS(&buf, src); err != nil {
		t.Fatalf("EncodeDDS() error = %v", err)
	}

	img, err := decodeDDS(&buf)
	if err != nil {
		t.Fatalf("decodeDDS() error = %v", err)
	}
	got, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded %T, want *image.NRGBA", img)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("decoded pixels differ from source")
	}
}

func TestDDS_RejectsCompressed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeDDS(&buf, gradient(1, 1)); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	// The pixel format starts 72 bytes into the header, after the magic.
	pf := 4 + 72
	data[pf+4] = ddpfFourCC
	copy(data[pf+8:pf+12], "DXT5")

	if _, err := decodeDDS(bytes.NewReader(data)); !errors.Is(err, ErrDDSCompressed) {
		t.Errorf("decodeDDS() error = %v, want ErrDDSCompressed", err)
	}
}

func TestDDS_RejectsBadSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height uint32
	}{
		{"huge", 0x7fffffff, 0x7fffffff},
		{"wide", ddsMaxSide + 1, 1},
		{"zero", 0, 4},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := EncodeDDS(&buf, gradient(1, 1)); err != nil {
			t.Fatal(err)
		}
		data := buf.Bytes()
		// Height and Width follow the magic, Size and Flags.
		binary.LittleEndian.PutUint32(data[12:16], tt.height)
		binary.LittleEndian.PutUint32(data[16:20], tt.width)

		if _, err := decodeDDS(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: decodeDDS() error = nil", tt.name)
		}
	}

	if _, err := decodeDDS(bytes.NewReader([]byte("DDS "))); err == nil {
		t.Error("decodeDDS(truncated) error = nil")
	}
}

func TestMaskValue(t *testing.T) {
	t.Parallel()

	// 5:6:5 packed white.
	if got := maskValue(0xffff, 0xf800); got != 255 {
		t.Errorf("maskValue(r5) = %d, want 255", got)
	}
	if got := maskValue(0x07e0, 0x07e0); got != 255 {
		t.Errorf("maskValue(g6) = %d, want 255", got)
	}
	if got := maskValue(0x12345678, 0); got != 0 {
		t.Errorf("maskValue(no mask) = %d, want 0", got)
	}
}

func TestSaveAndDecode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	codec := NewCodec()
	src := Split(gradient(4, 4))

	rgb, err := Merge([]*image.Gray{src[0].(*image.Gray), src[1].(*image.Gray), src[2].(*image.Gray)})
	if err != nil {
		t.Fatal(err)
	}

	lossless := []string{"png", "bmp", "tga", "dds"}
	for _, format := range lossless {
		path := filepath.Join(dir, "out."+format)
		if err := Save(rgb, path, format); err != nil {
			t.Fatalf("Save(%s) error = %v", format, err)
		}
		img, err := codec.Decode(path)
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", format, err)
		}
		bands := Split(img)
		if len(bands) < 3 {
			t.Fatalf("%s: %d bands, want at least 3", format, len(bands))
		}
		for c := 0; c < 3; c++ {
			if got, want := To8Bit(bands[c]).GrayAt(3, 2).Y, src[c].(*image.Gray).GrayAt(3, 2).Y; got != want {
				t.Errorf("%s: channel %d = %d, want %d", format, c, got, want)
			}
		}
	}

	if !Supported("JPG") || !Supported("webp") || Supported("exr") {
		t.Error("Supported() reports the wrong format set")
	}
}

func TestSave_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Save(image.NewGray(image.Rect(0, 0, 1, 1)), filepath.Join(t.TempDir(), "x.exr"), "exr")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode_Missing(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec().Decode(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Decode(missing) error = nil")
	}
}

func TestCodec_DecodeByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := gradient(4, 4)
	gray := Split(src)[1].(*image.Gray)

	write := func(name string, encode func(*os.File) error) string {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := encode(f); err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		return path
	}
	save := func(name, format string) string {
		path := filepath.Join(dir, name)
		if err := Save(src, path, format); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		return path
	}

	paths := map[string]string{
		"png gray": write("gray.png", func(f *os.File) error { return png.Encode(f, gray) }),
		"jpeg":     write("photo.JPEG", func(f *os.File) error { return jpeg.Encode(f, src, nil) }),
		"gif":      write("anim.gif", func(f *os.File) error { return gif.Encode(f, src, nil) }),
		"jpg":      save("color.jpg", "jpg"),
		"bmp":      save("color.bmp", "bmp"),
		"tga":      save("color.TGA", "tga"),
		"dds":      save("color.dds", "dds"),
	}

	codec := NewCodec()
	for name, path := range paths {
		img, err := codec.Decode(path)
		if err != nil {
			t.Errorf("%s: Decode() error = %v", name, err)
			continue
		}
		if img.Bounds() != src.Bounds() {
			t.Errorf("%s: bounds = %v, want %v", name, img.Bounds(), src.Bounds())
		}
	}

	img, err := codec.Decode(paths["png gray"])
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := img.(*image.Gray); !ok || !bytes.Equal(g.Pix, gray.Pix) {
		t.Errorf("png gray decoded as %T, want identical *image.Gray", img)
	}

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := codec.Decode(other); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(.txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestChannelCount_GrayAlphaIsFourBands(t *testing.T) {
	t.Parallel()

	// Gray+alpha PNGs decode to NRGBA: luminance repeats in R, G and B and
	// alpha stays at index 3.
	la := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	la.SetNRGBA(0, 0, color.NRGBA{R: 90, G: 90, B: 90, A: 40})

	var buf bytes.Buffer
	if err := png.Encode(&buf, la); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	bands := Split(img)
	if len(bands) != 4 {
		t.Fatalf("len(Split()) = %d, want 4", len(bands))
	}
	if g, a := To8Bit(bands[1]).Pix[0], To8Bit(bands[3]).Pix[0]; g != 90 || a != 40 {
		t.Errorf("g, a = %d, %d, want 90, 40", g, a)
	}
}
