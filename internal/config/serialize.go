package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Serialize renders c in the config DSL. Parsing the result yields c again.
func Serialize(c Config) string {
	var b strings.Builder

	b.WriteString("[" + SectionSettings + "]\n")
	writeSetting(&b, "src_dir", c.SrcDir)
	writeSetting(&b, "dest_dir", c.DestDir)
	writeSetting(&b, "output_format", c.OutputFormat)
	writeSetting(&b, "naming_scheme", c.NamingScheme)
	writeSetting(&b, "lowercase_names", strconv.FormatBool(c.LowercaseNames))
	writeSetting(&b, "overwrite", strconv.FormatBool(c.Overwrite))
	writeSetting(&b, "workers", strconv.Itoa(c.Workers))

	b.WriteString("\n[" + SectionFilters + "]\n")
	for _, ext := range c.Extensions {
		b.WriteString(ext + "\n")
	}

	b.WriteString("\n[" + SectionSuffixes + "]\n")
	for _, k := range c.SuffixMap.Keys() {
		if v := strings.TrimSpace(c.SuffixMap[k]); v != "" {
			fmt.Fprintf(&b, "%s %s %s\n", k, AssignSign, v)
		} else {
			b.WriteString(k + "\n")
		}
	}

	b.WriteString("\n[" + SectionPack + "]\n")
	for _, e := range c.Plan {
		stages := make([]string, len(e.Items))
		for i, it := range e.Items {
			stages[i] = it.String()
		}
		fmt.Fprintf(&b, "%s %s %s\n", e.Suffix, AssignSign, strings.Join(stages, " "+PipelineSeparator+" "))
	}

	return b.String()
}

// Save writes c to path in the config DSL.
func Save(c Config, path string) error {
	if err := os.WriteFile(path, []byte(Serialize(c)), 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func writeSetting(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s %s %s\n", key, AssignSign, value)
}
