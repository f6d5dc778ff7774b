package convert

import (
	"fmt"

	"github.com/drakos74/svm2cv/internal/opencv"
	"github.com/drakos74/svm2cv/internal/storage"
)

// Name is the key the converter config is loaded under.
const Name = "svm2cv"

// Config defines the input and output of a conversion.
type Config struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	// Model is the element name the svm is stored under.
	Model string `mapstructure:"model"`
	// Metrics is an optional textfile the conversion metrics are written to.
	Metrics string `mapstructure:"metrics"`
}

// DefaultConfig converts svm.model in the working directory into svm.xml.
func DefaultConfig() Config {
	return Config{
		Input:  storage.DefaultInput,
		Output: storage.DefaultOutput,
		Model:  opencv.DefaultModelName,
	}
}

// Validate checks the config before any file is touched.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input file given")
	}
	if c.Output == "" {
		return fmt.Errorf("no output file given")
	}
	if c.Input == c.Output {
		return fmt.Errorf("input and output point to the same file '%s'", c.Input)
	}
	if !opencv.ValidName(c.Model) {
		return fmt.Errorf("invalid model name '%s'", c.Model)
	}
	return nil
}
