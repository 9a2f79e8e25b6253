// Package main provides the entry point for the Lector CLI application.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lectorapp/lector/document"
	"github.com/lectorapp/lector/speech"
	"github.com/lectorapp/lector/speech/audio"
	"github.com/lectorapp/lector/speech/dict"
	"github.com/lectorapp/lector/speech/prefs"
	"github.com/lectorapp/lector/speech/queue"
	"github.com/lectorapp/lector/speech/synth"
	"github.com/lectorapp/lector/ui"
	"github.com/lectorapp/lector/voices"
)

const appName = "lector"

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	debug      bool
	voiceFlag  string

	rootCmd = &cobra.Command{
		Use:          "lector [FILE]",
		Short:        "Read documents aloud from the terminal",
		Long:         "\nLector reads text and markdown documents aloud, one paragraph at a time,\nusing a local piper voice.",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE:         execute,
	}
)

func execute(_ *cobra.Command, args []string) error {
	segments, err := document.Load(args[0])
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("%s contains nothing to read", args[0])
	}

	dirs, err := resolvePaths()
	if err != nil {
		return err
	}

	dictionary, err := dict.Load(dirs.dictionary)
	if err != nil {
		return err
	}
	library, err := voices.NewLibrary(dirs.voices)
	if err != nil {
		return err
	}
	if library.Len() == 0 {
		return fmt.Errorf("no voices installed under %s; place piper .onnx models there", dirs.voices)
	}

	set := prefs.NewSet(loadPreferences(), viperSaver{})
	store := queue.New()
	store.ReplaceAll(segments)

	engine := synth.NewPiper(dirs.engine, dirs.artifacts, synth.DefaultTimeout)
	player := audio.NewPlayer()

	orch := speech.New(store, set, engine, player, library,
		speech.WithNormalizer(dictionary))

	events := make(chan speech.Snapshot, 64)
	orch.OnChange(func(s speech.Snapshot) {
		// Never block the orchestrator; the UI only needs the latest state.
		select {
		case events <- s:
		default:
		}
	})

	model := ui.NewModel(orch, store.Segments(), events)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// appPaths are the directories and files the application works out of.
type appPaths struct {
	voices     string
	engine     string
	artifacts  string
	dictionary string
}

func resolvePaths() (appPaths, error) {
	scope := gap.NewScope(gap.User, appName)

	configDirs, err := scope.ConfigDirs()
	if err != nil || len(configDirs) == 0 {
		return appPaths{}, errors.New("could not determine configuration directory")
	}
	dataDirs, err := scope.DataDirs()
	if err != nil || len(dataDirs) == 0 {
		return appPaths{}, errors.New("could not determine data directory")
	}
	cacheDir, err := scope.CacheDir()
	if err != nil {
		return appPaths{}, errors.New("could not determine cache directory")
	}

	p := appPaths{
		voices:     filepath.Join(dataDirs[0], "voices"),
		engine:     dataDirs[0],
		artifacts:  filepath.Join(cacheDir, "artifacts"),
		dictionary: filepath.Join(configDirs[0], "lexicon.json"),
	}
	if dir := viper.GetString("voices_dir"); dir != "" {
		p.voices = dir
	}
	if path := viper.GetString("dictionary"); path != "" {
		p.dictionary = path
	}
	return p, nil
}

// setupLog routes logging to a file under the cache dir when --debug is
// set and otherwise keeps the terminal quiet below warnings.
func setupLog() (func() error, error) {
	if !viper.GetBool("debug") {
		log.SetLevel(log.WarnLevel)
		return func() error { return nil }, nil
	}

	scope := gap.NewScope(gap.User, appName)
	dir, err := scope.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine cache directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create cache directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "lector.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open debug log: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.Debug("debug logging enabled", "file", f.Name())
	return f.Close, nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log under the cache directory")
	rootCmd.Flags().StringVarP(&voiceFlag, "voice", "v", "", "voice id to read with")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))

	viper.SetDefault("voices_dir", "")
	viper.SetDefault("dictionary", "")

	rootCmd.AddCommand(configCmd, voicesCmd, exportCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, appName)
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, appName)}, dirs...)
	}
	if c := os.Getenv("LECTOR_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName(appName)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(appName)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], appName+".yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
