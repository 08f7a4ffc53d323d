package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// DSL tokens.
const (
	AssignSign        = ">"
	ChannelSeparator  = ":"
	PipelineSeparator = "|"
	InversionSign     = '*'
	CommentSign       = "#"
)

// Section names.
const (
	SectionSettings = "settings"
	SectionFilters  = "filters"
	SectionSuffixes = "map suffixes"
	SectionPack     = "pack"
)

var requiredSections = []string{SectionSettings, SectionFilters, SectionSuffixes, SectionPack}

// Load reads a config file and returns the fields it sets.
func Load(path string) (Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Partial{}, fmt.Errorf("config: read %s: %w: %w", path, ErrConfigNotFound, err)
	}
	p, err := ParsePartial(string(data))
	if err != nil {
		return Partial{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

// Parse returns the defaults overridden by the given config text.
func Parse(text string) (Config, error) {
	p, err := ParsePartial(text)
	if err != nil {
		return Config{}, err
	}
	return Default().Override(p), nil
}

// ParsePartial parses the config DSL. All four sections must be present;
// [filters], [map suffixes] and [pack] replace the defaults wholesale,
// [settings] overrides key by key.
func ParsePartial(text string) (Partial, error) {
	sections := splitSections(text)
	for _, name := range requiredSections {
		if _, ok := sections[name]; !ok {
			return Partial{}, fmt.Errorf("config: missing section [%s]: %w", name, ErrConfig)
		}
	}

	var p Partial

	for _, ln := range sections[SectionSettings] {
		key, val, ok := strings.Cut(ln, AssignSign)
		if !ok {
			return Partial{}, fmt.Errorf("config: settings line %q: missing %q: %w", ln, AssignSign, ErrConfig)
		}
		if err := applySetting(&p, strings.TrimSpace(key), ParseValue(val)); err != nil {
			return Partial{}, err
		}
	}

	p.Extensions = []string{}
	for _, ln := range sections[SectionFilters] {
		p.Extensions = append(p.Extensions, normalizeExt(ln))
	}

	// Longest input suffix first so later lookups keep priority.
	mapLines := append([]string(nil), sections[SectionSuffixes]...)
	sort.SliceStable(mapLines, func(i, j int) bool { return len(mapLines[i]) > len(mapLines[j]) })
	p.SuffixMap = SuffixMap{}
	for _, ln := range mapLines {
		in, out, _ := strings.Cut(ln, AssignSign)
		in = strings.ToLower(strings.TrimSpace(in))
		if in == "" {
			return Partial{}, fmt.Errorf("config: map suffixes line %q: empty suffix: %w", ln, ErrConfig)
		}
		p.SuffixMap[in] = strings.TrimSpace(out)
	}

	p.Plan = PackPlan{}
	for _, ln := range sections[SectionPack] {
		out, pipeline, ok := strings.Cut(ln, AssignSign)
		if !ok {
			return Partial{}, fmt.Errorf("config: pack line %q: missing %q: %w", ln, AssignSign, ErrConfig)
		}
		items, err := ParsePipeline(pipeline)
		if err != nil {
			return Partial{}, fmt.Errorf("config: pack line %q: %w", ln, err)
		}
		p.Plan = p.Plan.set(strings.TrimSpace(out), items)
	}

	return p, nil
}

// ParsePipeline parses "suffix:letters | suffix:letters ...".
func ParsePipeline(s string) ([]PackItem, error) {
	var items []PackItem
	for _, stage := range strings.Split(s, PipelineSeparator) {
		stageItems, err := parseStage(strings.TrimSpace(stage))
		if err != nil {
			return nil, err
		}
		items = append(items, stageItems...)
	}
	return items, nil
}

// parseStage expands "_normal:rg*b" into three items with G inverted.
func parseStage(stage string) ([]PackItem, error) {
	suffix, letters, ok := strings.Cut(stage, ChannelSeparator)
	if !ok {
		return nil, fmt.Errorf("stage %q: missing %q: %w", stage, ChannelSeparator, ErrConfig)
	}
	suffix = strings.TrimSpace(suffix)
	// Anything after a second separator is ignored.
	letters, _, _ = strings.Cut(strings.TrimSpace(letters), ChannelSeparator)
	if suffix == "" || letters == "" {
		return nil, fmt.Errorf("stage %q: empty suffix or channels: %w", stage, ErrConfig)
	}

	var items []PackItem
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c == InversionSign {
			if len(items) == 0 {
				return nil, fmt.Errorf("stage %q: %q without a channel: %w", stage, InversionSign, ErrConfig)
			}
			items[len(items)-1].Invert = true
			continue
		}
		ch := channelIndex(c)
		if ch < 0 {
			return nil, fmt.Errorf("stage %q: unknown channel %q: %w", stage, c, ErrConfig)
		}
		items = append(items, PackItem{Suffix: suffix, Channel: ch})
	}
	return items, nil
}

func channelIndex(c byte) int {
	for i, l := range channelLetters {
		if c == l || c == l-'a'+'A' {
			return i
		}
	}
	return -1
}

// splitSections groups trimmed, non-comment lines under their [section]
// header. Lines before the first header are dropped.
func splitSections(text string) map[string][]string {
	sections := make(map[string][]string)
	current := ""
	inSection := false
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, CommentSign) {
			continue
		}
		if strings.HasPrefix(ln, "[") && strings.HasSuffix(ln, "]") {
			current = strings.TrimSpace(ln[1 : len(ln)-1])
			inSection = true
			if _, ok := sections[current]; !ok {
				sections[current] = nil
			}
			continue
		}
		if !inSection {
			continue
		}
		sections[current] = append(sections[current], ln)
	}
	return sections
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
