package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one group in the output manifest.
type ManifestEntry struct {
	Group   string   `json:"group"`
	Status  string   `json:"status"`
	Outputs []string `json:"outputs,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (s Status) String() string {
	switch s {
	case StatusPacked:
		return "packed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// WriteManifest writes a JSON report of a run to path.
func WriteManifest(path string, sum Summary) error {
	entries := make([]ManifestEntry, len(sum.Results))
	for i, r := range sum.Results {
		entries[i] = ManifestEntry{
			Group:   r.Group,
			Status:  r.Status.String(),
			Outputs: r.Outputs,
			Missing: r.Missing,
			Error:   r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
