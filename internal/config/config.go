package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"texture-packer/internal/naming"
)

var (
	// ErrConfig is wrapped by every parse or validation failure.
	ErrConfig = errors.New("invalid config")
	// ErrConfigNotFound is wrapped when the config file cannot be read.
	ErrConfigNotFound = errors.New("config file not found")
)

// OutputFormats lists the accepted output_format values.
var OutputFormats = []string{"png", "jpg", "jpeg", "bmp", "tga", "dds", "webp"}

// Config holds every tunable setting for one packing run.
// Values are never mutated in place; Override returns a new Config.
type Config struct {
	// Paths
	SrcDir  string
	DestDir string

	// Output
	OutputFormat   string
	Overwrite      bool
	NamingScheme   string
	LowercaseNames bool
	Workers        int

	Extensions []string
	SuffixMap  SuffixMap
	Plan       PackPlan
}

// Default returns the built-in configuration: albedo passthrough, ORM
// packing and an OpenGL normal map with flipped green.
func Default() Config {
	return Config{
		SrcDir:       "",
		DestDir:      "dest",
		OutputFormat: "png",
		Overwrite:    true,
		NamingScheme: naming.Standard,
		Workers:      runtime.NumCPU(),
		Extensions:   []string{".png", ".jpg", ".tga", ".bmp"},
		SuffixMap: SuffixMap{
			"_base_color":        "_albedo",
			"_color":             "_albedo",
			"_ambient_occlusion": "_ao",
			"_albedo":            "",
			"_normal":            "",
			"_ao":                "",
			"_roughness":         "",
			"_metallic":          "",
			"_height":            "",
		},
		Plan: PackPlan{
			{Suffix: "_albedo", Items: []PackItem{Item("_albedo", ChannelR), Item("_albedo", ChannelG), Item("_albedo", ChannelB)}},
			{Suffix: "_orm", Items: []PackItem{Item("_ao", ChannelR), Item("_roughness", ChannelR), Item("_metallic", ChannelR)}},
			{Suffix: "_normal", Items: []PackItem{Item("_normal", ChannelR), Inverted("_normal", ChannelG), Item("_normal", ChannelB)}},
		},
	}
}

// Partial carries optional overrides. Nil fields are absent and never
// override anything.
type Partial struct {
	SrcDir         *string
	DestDir        *string
	OutputFormat   *string
	Overwrite      *bool
	NamingScheme   *string
	LowercaseNames *bool
	Workers        *int

	Extensions []string
	SuffixMap  SuffixMap
	Plan       PackPlan
}

// Override returns a copy of c with every present field of p applied.
func (c Config) Override(p Partial) Config {
	out := c.clone()
	if p.SrcDir != nil {
		out.SrcDir = *p.SrcDir
	}
	if p.DestDir != nil {
		out.DestDir = *p.DestDir
	}
	if p.OutputFormat != nil {
		out.OutputFormat = *p.OutputFormat
	}
	if p.Overwrite != nil {
		out.Overwrite = *p.Overwrite
	}
	if p.NamingScheme != nil {
		out.NamingScheme = *p.NamingScheme
	}
	if p.LowercaseNames != nil {
		out.LowercaseNames = *p.LowercaseNames
	}
	if p.Workers != nil {
		out.Workers = *p.Workers
	}
	if p.Extensions != nil {
		out.Extensions = slices.Clone(p.Extensions)
	}
	if p.SuffixMap != nil {
		out.SuffixMap = p.SuffixMap.Clone()
	}
	if p.Plan != nil {
		out.Plan = p.Plan.Clone()
	}
	return out
}

// WithPreset returns a copy of c using the given suffix table and plan.
func (c Config) WithPreset(m SuffixMap, plan PackPlan) Config {
	return c.Override(Partial{SuffixMap: m, Plan: plan})
}

// ApplyNamingScheme formats an output file stem for this config.
func (c Config) ApplyNamingScheme(baseName, outputSuffix string) string {
	return naming.Apply(c.NamingScheme, c.LowercaseNames, baseName, outputSuffix)
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("config: output format %q: %w", c.OutputFormat, ErrConfig)
	}
	if !naming.Known(c.NamingScheme) {
		return fmt.Errorf("config: naming scheme %q: %w", c.NamingScheme, ErrConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be >= 1, got %d: %w", c.Workers, ErrConfig)
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.Extensions = slices.Clone(c.Extensions)
	out.SuffixMap = c.SuffixMap.Clone()
	out.Plan = c.Plan.Clone()
	return out
}

// String, Bool and Int return pointers for building a Partial.
func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }
