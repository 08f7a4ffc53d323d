package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"texture-packer/internal/batch"
	"texture-packer/internal/config"
	"texture-packer/internal/logging"
	"texture-packer/internal/preset"
	"texture-packer/internal/texture"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags.
var Version = "dev"

const description = `Batch rename source textures and pack their channels into output
textures with a custom channel layout.

Implemented:
  packing images into texture channels, remapping texture suffixes,
  packing only missing outputs (--overwrite=false), ORM/ORD/Unity/Unreal
  presets, PNG/JPG/BMP/TGA/DDS/WebP output.
Not implemented:
  recursive directory scanning, glob syntax.`

// flagValues holds raw CLI values. Only flags the user actually set are
// applied on top of the config.
type flagValues struct {
	configPath   string
	srcDir       string
	destDir      string
	outputFormat string
	overwrite    bool
	preset       string
	packType     string
	namingScheme string
	lowercase    bool
	workers      int
	verbose      bool

	validate bool
	manifest string
}

func main() {
	var fv flagValues
	root := newRootCmd(&fv)
	if err := fang.Execute(context.Background(), root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fv *flagValues) *cobra.Command {
	root := &cobra.Command{
		Use:          "texpack",
		Short:        "Pack texture channels from loose source files",
		Long:         description,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, fv)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&fv.configPath, "config", "c", "config.txt", "path to config (relative to cwd or absolute)")
	pf.StringVarP(&fv.srcDir, "src", "s", "", "directory with source textures")
	pf.StringVarP(&fv.destDir, "dest", "d", "", "destination directory")
	pf.StringVarP(&fv.outputFormat, "output-format", "o", "", "output format: "+strings.Join(config.OutputFormats, "|"))
	pf.BoolVar(&fv.overwrite, "overwrite", true, "overwrite already existing packed output textures")
	pf.StringVarP(&fv.preset, "preset", "p", "", "use preset packing configuration: "+strings.Join(preset.Names(), "|"))
	pf.StringVar(&fv.packType, "pack-type", "", "alias for --preset (orm|ord)")
	pf.StringVar(&fv.namingScheme, "naming-scheme", "", "naming convention: standard|unreal")
	pf.BoolVar(&fv.lowercase, "lowercase", false, "lower-case output names (standard scheme only)")
	pf.IntVar(&fv.workers, "workers", 0, "number of groups packed in parallel (default: NumCPU)")
	pf.BoolVarP(&fv.verbose, "verbose", "v", false, "enable debug output")

	root.Flags().BoolVar(&fv.validate, "validate", false, "validate that all required textures exist before packing")
	root.Flags().StringVar(&fv.manifest, "manifest", "", "write a JSON report of the run to this path")

	root.AddCommand(newGroupsCmd(fv))
	root.AddCommand(newConfigCmd(fv))
	return root
}

func runPack(cmd *cobra.Command, fv *flagValues) error {
	logger := logging.New(cmd.ErrOrStderr(), fv.verbose)

	cfg, err := resolveConfig(cmd, fv, logger)
	if err != nil {
		return err
	}

	if cfg.Overwrite {
		logger.Warn("OVERWRITE mode: all output textures will be overwritten")
	} else {
		logger.Warn("NO-OVERWRITE mode: existing files will not be overwritten")
	}
	if fv.validate {
		logger.Info("VALIDATION mode: will check for missing textures")
	}

	sum, err := batch.Run(cmd.Context(), batch.Options{
		Config:   cfg,
		Validate: fv.validate,
		Codec:    texture.NewCodec(),
		Confirm:  newPrompt(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Log:      logger,
	})
	if err != nil {
		return err
	}

	logger.Infof("Texture packing complete: %d group(s), %d texture(s) written, %d skipped. Elapsed time: %.1fs",
		sum.Groups, sum.Written, sum.Skipped, sum.Elapsed.Seconds())

	if fv.manifest != "" {
		if err := batch.WriteManifest(fv.manifest, sum); err != nil {
			logger.Warn("Manifest write failed", "err", err)
		} else {
			logger.Info("Manifest", "path", fv.manifest)
		}
	}
	return nil
}

// resolveConfig builds the effective config: defaults, then a preset, then
// the config file, then explicitly set flags. With a preset the config file
// is only read when --config was given.
func resolveConfig(cmd *cobra.Command, fv *flagValues, logger *log.Logger) (config.Config, error) {
	cfg := config.Default()
	flags := cmd.Flags()

	if t := strings.ToLower(fv.packType); t != "" && t != preset.ORM && t != preset.ORD {
		return cfg, fmt.Errorf("texpack: --pack-type %q: want orm or ord", fv.packType)
	}
	name := fv.preset
	if name == "" {
		name = fv.packType
	}
	if name != "" {
		var err error
		cfg, err = preset.Apply(cfg, name)
		if err != nil {
			return cfg, err
		}
		logger.Info("Applying preset " + preset.Describe(name))
	}

	if name == "" || flags.Changed("config") {
		p, err := config.Load(fv.configPath)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			logger.Warn("Config file not loaded, using defaults", "path", fv.configPath)
		case err != nil:
			return cfg, err
		default:
			cfg = cfg.Override(p)
		}
	}

	cfg = cfg.Override(flagPartial(cmd, fv))
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("texpack: %w", err)
	}
	return cfg, nil
}

func flagPartial(cmd *cobra.Command, fv *flagValues) config.Partial {
	flags := cmd.Flags()
	var p config.Partial
	if flags.Changed("src") {
		p.SrcDir = config.String(fv.srcDir)
	}
	if flags.Changed("dest") {
		p.DestDir = config.String(fv.destDir)
	}
	if flags.Changed("output-format") {
		p.OutputFormat = config.String(strings.ToLower(fv.outputFormat))
	}
	if flags.Changed("overwrite") {
		p.Overwrite = config.Bool(fv.overwrite)
	}
	if flags.Changed("naming-scheme") {
		p.NamingScheme = config.String(strings.ToLower(fv.namingScheme))
	}
	if flags.Changed("lowercase") {
		p.LowercaseNames = config.Bool(fv.lowercase)
	}
	if flags.Changed("workers") {
		p.Workers = config.Int(fv.workers)
	}
	return p
}
