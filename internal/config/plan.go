package config

import (
	"sort"
	"strings"
)

// Channel indices used by PackItem.
const (
	ChannelR = 0
	ChannelG = 1
	ChannelB = 2
	ChannelA = 3
)

var channelLetters = [4]byte{'r', 'g', 'b', 'a'}

// PackItem takes one channel of the band registered under Suffix,
// optionally inverted.
type PackItem struct {
	Suffix  string
	Channel int
	Invert  bool
}

// Item is shorthand for a non-inverted PackItem.
func Item(suffix string, ch int) PackItem {
	return PackItem{Suffix: suffix, Channel: ch}
}

// Inverted is shorthand for an inverted PackItem.
func Inverted(suffix string, ch int) PackItem {
	return PackItem{Suffix: suffix, Channel: ch, Invert: true}
}

func (it PackItem) String() string {
	s := it.Suffix + ":" + string(channelLetters[it.Channel&3])
	if it.Invert {
		s += "*"
	}
	return s
}

// PackEntry describes one output texture. Items are written to the output
// channels in order: R (or L), G, B, A.
type PackEntry struct {
	Suffix string
	Items  []PackItem
}

// PackPlan is the ordered list of output textures.
type PackPlan []PackEntry

// Lookup returns the items planned for an output suffix.
func (p PackPlan) Lookup(suffix string) ([]PackItem, bool) {
	for _, e := range p {
		if e.Suffix == suffix {
			return e.Items, true
		}
	}
	return nil, false
}

// SourceSuffixes returns every source suffix referenced by the plan, sorted.
func (p PackPlan) SourceSuffixes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range p {
		for _, it := range e.Items {
			if !seen[it.Suffix] {
				seen[it.Suffix] = true
				out = append(out, it.Suffix)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy.
func (p PackPlan) Clone() PackPlan {
	if p == nil {
		return nil
	}
	out := make(PackPlan, len(p))
	for i, e := range p {
		out[i] = PackEntry{Suffix: e.Suffix, Items: append([]PackItem(nil), e.Items...)}
	}
	return out
}

// set replaces an existing entry or appends a new one.
func (p PackPlan) set(suffix string, items []PackItem) PackPlan {
	for i := range p {
		if p[i].Suffix == suffix {
			p[i].Items = items
			return p
		}
	}
	return append(p, PackEntry{Suffix: suffix, Items: items})
}

// SuffixMap maps a recognized input suffix (lower-case) to its canonical
// suffix. An empty target means the input suffix is already canonical.
type SuffixMap map[string]string

// Keys returns the input suffixes longest first, so that "_normal" is tried
// before "_n". Equal lengths sort lexically.
func (m SuffixMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Canonical returns the canonical suffix for a matched input suffix.
func (m SuffixMap) Canonical(suffix string) string {
	if mapped := strings.TrimSpace(m[suffix]); mapped != "" {
		return mapped
	}
	return suffix
}

// Clone returns a copy.
func (m SuffixMap) Clone() SuffixMap {
	if m == nil {
		return nil
	}
	out := make(SuffixMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
