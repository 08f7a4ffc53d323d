package main

import (
	"fmt"
	"path/filepath"

	"texture-packer/internal/batch"
	"texture-packer/internal/group"
	"texture-packer/internal/logging"
	"texture-packer/internal/pack"

	"github.com/spf13/cobra"
)

func newGroupsCmd(fv *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List detected material groups without packing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), fv.verbose)
			cfg, err := resolveConfig(cmd, fv, logger)
			if err != nil {
				return err
			}

			srcDir, err := filepath.Abs(cfg.SrcDir)
			if err != nil {
				return err
			}
			exts, _ := batch.SourceExtensions(cfg.Extensions)
			files, err := group.Scan(srcDir, exts)
			if err != nil {
				return err
			}
			groups, unmatched := group.Build(files, srcDir, cfg.SuffixMap)

			out := cmd.OutOrStdout()
			for _, key := range group.SortedKeys(groups) {
				g := groups[key]
				ok, missing := pack.Validate(g.Members, cfg.Plan)
				state := "complete"
				if !ok {
					state = fmt.Sprintf("missing %v", missing)
				}
				fmt.Fprintf(out, "%s (%s)\n", g.BaseName(), state)
				for _, s := range g.Suffixes() {
					rel, _ := filepath.Rel(srcDir, g.Members[s])
					fmt.Fprintf(out, "  %-12s %s\n", s, rel)
				}
			}
			if len(unmatched) > 0 {
				fmt.Fprintf(out, "\nNo suffix match (%d):\n", len(unmatched))
				for _, p := range unmatched {
					fmt.Fprintf(out, "  %s\n", filepath.Base(p))
				}
			}
			fmt.Fprintf(out, "\nGroups: %d, files: %d\n", len(groups), len(files))
			return nil
		},
	}
}
