package main

import (
	"fmt"

	"github.com/drakos74/svm2cv/infra/config"
	"github.com/drakos74/svm2cv/internal/convert"
	"github.com/drakos74/svm2cv/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree, the root command converting like the convert command.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svm2cv",
		Short: "svm2cv converts libSVM models into OpenCV SVM storage files",
		Long: `svm2cv reads a multi-class model in the libSVM text format, regroups its
support vector coefficients into one-vs-one decision functions and writes
an xml storage file that OpenCV's CvSVM can load.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: runConvert,
	}

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a libSVM model into an OpenCV storage file",
		RunE:  runConvert,
	}

	defaults := convert.DefaultConfig()

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (defaults to infra/config/svm2cv.yaml if present)")
	rootCmd.PersistentFlags().StringP("input", "i", defaults.Input, "libSVM model file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	for _, cmd := range []*cobra.Command{rootCmd, convertCmd} {
		cmd.Flags().StringP("output", "o", defaults.Output, "OpenCV storage file")
		cmd.Flags().StringP("model", "m", defaults.Model, "element name of the svm in the storage file")
		cmd.Flags().String("metrics", "", "write conversion metrics to this node exporter textfile")
	}

	rootCmd.AddCommand(convertCmd, newInspectCmd())
	return rootCmd
}

func loadConfig(cmd *cobra.Command) (convert.Config, error) {
	cfg := convert.DefaultConfig()
	file, _ := cmd.Flags().GetString("config")
	if err := config.Load(convert.Name, file, cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m := metrics.New()
	_, err = convert.New(m).Convert(cfg)
	if cfg.Metrics != "" {
		if mErr := m.WriteTo(cfg.Metrics); mErr != nil {
			log.Warn().Err(mErr).Msg("could not export metrics")
		}
	}
	if err != nil {
		return fmt.Errorf("could not convert '%s': %w", cfg.Input, err)
	}
	return nil
}
