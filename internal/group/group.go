// Package group clusters source texture files into material groups by their
// filename suffix.
package group

import (
	"path/filepath"
	"sort"
	"strings"

	"texture-packer/internal/config"
)

// Placeholder stands in for the erased suffix inside a group key.
const Placeholder = "@S@"

// Group is one material: source files sharing a base name and differing
// only by a recognized suffix.
type Group struct {
	// Key is the path relative to the source root, without extension, with
	// the matched suffix replaced by Placeholder.
	Key string
	// Members maps a canonical suffix to its source path.
	Members map[string]string
}

// BaseName returns the key with the placeholder removed.
func (g *Group) BaseName() string {
	return strings.Replace(g.Key, Placeholder, "", 1)
}

// Suffixes returns the member suffixes, sorted.
func (g *Group) Suffixes() []string {
	out := make([]string, 0, len(g.Members))
	for s := range g.Members {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// MatchSuffix returns the first suffix (in the given order) that the
// lower-cased stem ends with, and the byte index where it starts.
// suffixes must already be sorted longest first.
func MatchSuffix(stem string, suffixes []string) (string, int) {
	stem = strings.ToLower(stem)
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(stem, s) {
			return s, len(stem) - len(s)
		}
	}
	return "", -1
}

// Build partitions paths into groups keyed by suffix-erased name.
// It returns the groups and the paths that matched no suffix.
//
// Paths are processed in lexical order. When two files land on the same
// (key, suffix) pair the later one wins.
func Build(paths []string, root string, suffixes config.SuffixMap) (map[string]*Group, []string) {
	keys := suffixes.Keys()
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	groups := make(map[string]*Group)
	var unmatched []string

	for _, p := range sorted {
		base := filepath.Base(p)
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		sf, _ := MatchSuffix(stem, keys)
		if sf == "" {
			unmatched = append(unmatched, p)
			continue
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = base
		}
		rel = strings.TrimSuffix(rel, filepath.Ext(rel))

		// The suffix is always the tail of the stem, so cut it by position.
		at := len(rel) - len(sf)
		key := rel[:at] + Placeholder + rel[at+len(sf):]

		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key, Members: make(map[string]string)}
			groups[key] = g
		}
		g.Members[suffixes.Canonical(sf)] = p
	}

	return groups, unmatched
}

// SortedKeys returns group keys in lexical order.
func SortedKeys(groups map[string]*Group) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
