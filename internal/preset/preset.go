// Package preset holds the built-in packing configurations.
package preset

import (
	"errors"
	"fmt"
	"strings"

	"texture-packer/internal/config"
)

// ErrUnknownPreset is returned for an unrecognized preset name.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset identifiers.
const (
	ORM    = "orm"
	ORD    = "ord"
	Unity  = "unity"
	Unreal = "unreal"
)

// Names lists the available presets.
func Names() []string {
	return []string{ORM, ORD, Unity, Unreal}
}

// Describe returns a one-line description of a preset.
func Describe(name string) string {
	switch strings.ToLower(name) {
	case ORM:
		return "ORM (Occlusion-Roughness-Metallic)"
	case ORD:
		return "ORD (Occlusion-Roughness-Displacement)"
	case Unity:
		return "Unity (Metallic-Smoothness)"
	case Unreal:
		return "Unreal Engine (ORM + separate normal and height)"
	}
	return ""
}

// Load returns the suffix table and pack plan for a preset. Every call
// returns fresh values.
func Load(name string) (config.SuffixMap, config.PackPlan, error) {
	var plan config.PackPlan
	suffixes := commonSuffixes()

	switch strings.ToLower(strings.TrimSpace(name)) {
	case ORM:
		plan = config.PackPlan{
			albedo(),
			{Suffix: "_orm", Items: []config.PackItem{config.Item("_ao", 0), config.Item("_roughness", 0), config.Item("_metallic", 0)}},
			glNormal(),
		}
	case ORD:
		plan = config.PackPlan{
			albedo(),
			{Suffix: "_ord", Items: []config.PackItem{config.Item("_ao", 0), config.Item("_roughness", 0), config.Item("_height", 0)}},
			glNormal(),
		}
	case Unity:
		suffixes["_smoothness"] = ""
		plan = config.PackPlan{
			albedo(),
			{Suffix: "_metallic", Items: []config.PackItem{
				config.Item("_metallic", 0),
				config.Item("_ao", 0),
				config.Item("_height", 0),
				config.Inverted("_roughness", 0),
			}},
			glNormal(),
		}
	case Unreal:
		plan = config.PackPlan{
			albedo(),
			{Suffix: "_orm", Items: []config.PackItem{config.Item("_ao", 0), config.Item("_roughness", 0), config.Item("_metallic", 0)}},
			{Suffix: "_normal", Items: []config.PackItem{config.Item("_normal", 0), config.Item("_normal", 1), config.Item("_normal", 2)}},
			{Suffix: "_height", Items: []config.PackItem{config.Item("_height", 0)}},
		}
	default:
		return nil, nil, fmt.Errorf("preset: %q: %w", name, ErrUnknownPreset)
	}

	return suffixes, plan, nil
}

// Apply returns cfg with the named preset installed. On error cfg is
// returned unchanged.
func Apply(cfg config.Config, name string) (config.Config, error) {
	m, plan, err := Load(name)
	if err != nil {
		return cfg, err
	}
	return cfg.WithPreset(m, plan), nil
}

func albedo() config.PackEntry {
	return config.PackEntry{Suffix: "_albedo", Items: []config.PackItem{
		config.Item("_albedo", 0), config.Item("_albedo", 1), config.Item("_albedo", 2),
	}}
}

// glNormal converts a DirectX normal map to OpenGL by flipping green.
func glNormal() config.PackEntry {
	return config.PackEntry{Suffix: "_normal", Items: []config.PackItem{
		config.Item("_normal", 0), config.Inverted("_normal", 1), config.Item("_normal", 2),
	}}
}

func commonSuffixes() config.SuffixMap {
	return config.SuffixMap{
		"_base_color":        "_albedo",
		"_basecolor":         "_albedo",
		"_color":             "_albedo",
		"_diffuse":           "_albedo",
		"_ambient_occlusion": "_ao",
		"_ambientocclusion":  "_ao",
		"_occlusion":         "_ao",
		"_displacement":      "_height",
		"_disp":              "_height",

		// Unreal-style single letters, for reading T_Asset_X textures.
		"_d": "_albedo",
		"_n": "_normal",
		"_r": "_roughness",
		"_o": "_ao",
		"_m": "_metallic",
		"_a": "_opacity",
		"_e": "_emissive",
		"_s": "_specular",

		"_albedo":    "",
		"_normal":    "",
		"_ao":        "",
		"_roughness": "",
		"_metallic":  "",
		"_height":    "",
		"_opacity":   "",
		"_emissive":  "",
		"_specular":  "",
	}
}
