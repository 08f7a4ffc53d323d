// Package naming builds output file stems from a material base name and an
// output suffix.
package naming

import "strings"

// Naming schemes.
const (
	Standard = "standard"
	Unreal   = "unreal"
)

// UnrealPrefix is prepended to every texture name under the Unreal scheme.
const UnrealPrefix = "T_"

// unrealSuffixes translates canonical suffixes to Unreal abbreviations.
var unrealSuffixes = map[string]string{
	"_albedo":    "_D",
	"_normal":    "_N",
	"_roughness": "_R",
	"_ao":        "_O",
	"_metallic":  "_M",
	"_height":    "_H",
	"_opacity":   "_A",
	"_emissive":  "_E",
	"_specular":  "_S",
	"_mask":      "_MASK",
	"_orm":       "_ORM",
	"_ord":       "_ORD",
	"_rm":        "_RM",
	"_om":        "_OM",
	"_nr":        "_NR",
}

// Known reports whether scheme is a supported naming scheme.
func Known(scheme string) bool {
	return scheme == Standard || scheme == Unreal
}

// Apply formats base+suffix for the given scheme.
//
// Standard appends the suffix and lower-cases the whole stem when lowercase
// is set. Unreal produces T_<Base><Abbrev>; its casing is fixed, so
// lowercase is ignored. Unknown schemes behave like Standard.
func Apply(scheme string, lowercase bool, base, suffix string) string {
	if scheme == Unreal {
		abbrev, ok := unrealSuffixes[strings.ToLower(suffix)]
		if !ok {
			abbrev = suffix
		}
		return UnrealPrefix + strings.TrimLeft(base, "_") + abbrev
	}

	name := base + suffix
	if lowercase {
		name = strings.ToLower(name)
	}
	return name
}
