// Package pack assembles output textures from the bands of a material
// group according to a pack plan.
package pack

import (
	"image"
	"io"
	"os"

	"texture-packer/internal/config"
	"texture-packer/internal/texture"

	"github.com/charmbracelet/log"
)

// Decoder loads a source texture.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// Packer builds output images. Missing inputs never abort a pack: they are
// replaced by black channels and reported as warnings.
type Packer struct {
	Codec Decoder
	Log   *log.Logger
}

// New returns a Packer using codec and logger. A nil logger discards output.
func New(codec Decoder, logger *log.Logger) *Packer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Packer{Codec: codec, Log: logger}
}

// LoadBands decodes every source referenced by plan at most once.
// Suffixes without an existing member file are left out of the cache;
// decode failures are cached as failed so they are not retried.
func (p *Packer) LoadBands(members map[string]string, plan config.PackPlan) *BandCache {
	cache := NewBandCache()
	for _, entry := range plan {
		for _, it := range entry.Items {
			path, ok := members[it.Suffix]
			if !ok || cache.Has(it.Suffix) {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}
			img, err := p.Codec.Decode(path)
			if err != nil {
				p.Log.Warn("Image not loaded", "path", path, "err", err)
				cache.MarkFailed(it.Suffix)
				continue
			}
			cache.Put(it.Suffix, texture.Split(img))
		}
	}
	return cache
}

// PackOne composes one output image from cached bands. It returns nil when
// nothing usable was loaded; the caller must not write an output then.
func (p *Packer) PackOne(cache *BandCache, items []config.PackItem) image.Image {
	if cache.Len() == 0 {
		p.Log.Warn("No textures loaded for packing")
		return nil
	}
	canvas, ok := cache.canvas()
	if !ok {
		p.Log.Warn("No valid texture bands found")
		return nil
	}

	var black *image.Gray
	blackBand := func() *image.Gray {
		if black == nil {
			black = texture.Black(canvas)
		}
		return black
	}

	chBands := make([]*image.Gray, 0, len(items))
	for _, it := range items {
		bands, ok := cache.Bands(it.Suffix)
		if !ok || it.Channel < 0 || it.Channel >= len(bands) || bands[it.Channel] == nil {
			p.Log.Warn("Texture not found or channel missing, using black channel",
				"suffix", it.Suffix, "channel", it.Channel)
			chBands = append(chBands, blackBand())
			continue
		}
		band := bands[it.Channel]
		if band.Bounds() != canvas {
			p.Log.Warn("Band size differs from canvas, using black channel",
				"suffix", it.Suffix, "size", band.Bounds().Size(), "canvas", canvas.Size())
			chBands = append(chBands, blackBand())
			continue
		}
		if texture.IsHighPrecision(band) {
			p.Log.Debug("Converting 16-bit band to 8-bit", "suffix", it.Suffix)
		}
		g := texture.To8Bit(band)
		if it.Invert {
			g = texture.Invert(g)
		}
		chBands = append(chBands, g)
	}

	if len(chBands) == 0 {
		p.Log.Warn("No channels to pack")
		return nil
	}
	// Two-channel outputs are not supported; keep the first channel only.
	if len(chBands) == 2 {
		chBands = chBands[:1]
	}

	img, err := texture.Merge(chBands)
	if err != nil {
		p.Log.Warn("Merge failed", "err", err)
		return nil
	}
	return img
}

// PackGroup loads the group's bands once and packs every plan entry.
// Entries that could not be packed map to nil.
func (p *Packer) PackGroup(members map[string]string, plan config.PackPlan) map[string]image.Image {
	cache := p.LoadBands(members, plan)
	out := make(map[string]image.Image, len(plan))
	for _, entry := range plan {
		out[entry.Suffix] = p.PackOne(cache, entry.Items)
	}
	return out
}
