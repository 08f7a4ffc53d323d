package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type an auto-typed setting value resolved to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Value is a setting value after auto-typing. Raw always keeps the original
// text so string settings can fall back to it.
type Value struct {
	Kind  Kind
	Raw   string
	Int   int
	Float float64
	Bool  bool
}

// ParseValue tries integer, then float, then true/false, and falls back to
// the raw string. It never fails.
func ParseValue(s string) Value {
	raw := strings.TrimSpace(s)
	v := strings.ToLower(raw)
	if i, err := strconv.Atoi(v); err == nil {
		return Value{Kind: KindInt, Raw: raw, Int: i}
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return Value{Kind: KindFloat, Raw: raw, Float: f}
	}
	if v == "true" || v == "false" {
		return Value{Kind: KindBool, Raw: raw, Bool: v == "true"}
	}
	return Value{Kind: KindString, Raw: raw}
}

type setting struct {
	kind  Kind
	apply func(p *Partial, v Value)
}

// settingsSchema lists the [settings] keys understood by the parser.
// "owerwrite" is the historical spelling and is still accepted.
var settingsSchema = map[string]setting{
	"src_dir":         {KindString, func(p *Partial, v Value) { p.SrcDir = String(v.Raw) }},
	"dest_dir":        {KindString, func(p *Partial, v Value) { p.DestDir = String(v.Raw) }},
	"output_format":   {KindString, func(p *Partial, v Value) { p.OutputFormat = String(strings.ToLower(v.Raw)) }},
	"naming_scheme":   {KindString, func(p *Partial, v Value) { p.NamingScheme = String(strings.ToLower(v.Raw)) }},
	"lowercase_names": {KindBool, func(p *Partial, v Value) { p.LowercaseNames = Bool(v.Bool) }},
	"overwrite":       {KindBool, func(p *Partial, v Value) { p.Overwrite = Bool(v.Bool) }},
	"owerwrite":       {KindBool, func(p *Partial, v Value) { p.Overwrite = Bool(v.Bool) }},
	"workers":         {KindInt, func(p *Partial, v Value) { p.Workers = Int(v.Int) }},
}

// applySetting stores one key/value pair. Unknown keys are ignored.
func applySetting(p *Partial, key string, v Value) error {
	s, ok := settingsSchema[strings.ToLower(key)]
	if !ok {
		return nil
	}
	if s.kind != KindString && s.kind != v.Kind {
		return fmt.Errorf("config: setting %q wants %s, got %q: %w", key, s.kind, v.Raw, ErrConfig)
	}
	s.apply(p, v)
	return nil
}
