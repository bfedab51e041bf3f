package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	count    int
	duration time.Duration
	seed     int64
	verbose  bool
}

func (c *Config) validate() error {
	if c.count < 1 {
		return fmt.Errorf("invalid count (must be at least 1): %d", c.count)
	}
	if c.duration < time.Second {
		return errors.New("duration must be at least 1s")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MAKETEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "solo",
		Short:         "Play a timed make-ten round in the terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return play(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.IntVarP(&cfg.count, "count", "c", 90, "number of puzzles to draw (env: MAKETEN_COUNT)")
	fs.DurationVarP(&cfg.duration, "duration", "d", 180*time.Second, "round length (env: MAKETEN_DURATION)")
	fs.Int64Var(&cfg.seed, "seed", 0, "puzzle seed, 0 for random (env: MAKETEN_SEED)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log each answer (env: MAKETEN_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("solo v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
