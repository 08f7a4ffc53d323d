package pack

import (
	"os"

	"texture-packer/internal/config"
)

// Validate checks that members supply every source suffix the plan uses and
// that each file still exists. missing is sorted.
func Validate(members map[string]string, plan config.PackPlan) (ok bool, missing []string) {
	for _, s := range plan.SourceSuffixes() {
		path, found := members[s]
		if !found {
			missing = append(missing, s)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, s)
		}
	}
	return len(missing) == 0, missing
}
