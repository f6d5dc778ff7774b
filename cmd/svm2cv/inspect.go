package main

import (
	"github.com/drakos74/svm2cv/internal/convert"
	"github.com/drakos74/svm2cv/internal/storage/file"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the classes and decision functions of a libSVM model as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			summary, err := convert.Inspect(file.New(cfg.Input))
			if err != nil {
				return err
			}
			b, err := summary.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
