package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# voice id to read with (empty picks the first installed voice)
voice: ""
# reading speed, 0.5 to 2.0
rate: 1.0
# voice pitch, 0.5 to 2.0
pitch: 1.0
# playback volume, 0.0 to 1.0
volume: 1.0
# pause between sentences
sentence_break: "550ms"
# ui theme: dark or light
theme: "dark"

# piper synthesis tuning
length_scale: 1.0
noise_scale: 0.5
noise_w: 0.9

# voice model directory (empty uses the data dir)
voices_dir: ""
# pronunciation dictionary path (empty uses the config dir)
dictionary: ""
`

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the lector config file",
	Long:    "\nEdit the lector config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "lector config\nlector config --config path/to/lector.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("Lector", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
