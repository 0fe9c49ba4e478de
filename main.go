// Package main provides the espeak-phonemizer command line interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/rhasspy/espeak-phonemizer-go/batch"
	"github.com/rhasspy/espeak-phonemizer-go/phonemizer"
	"github.com/rhasspy/espeak-phonemizer-go/phonemizer/espeak"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile           string
	voice                string
	dataPath             string
	captureMode          string
	phonemeSeparator     string
	wordSeparator        string
	punctuationSeparator string
	keepPunctuation      bool
	keepLanguageFlags    bool
	noStress             bool
	ssml                 bool
	printInput           bool
	outputSeparator      string
	csvMode              bool
	csvDelimiter         string
	debug                bool

	keyword = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"}).
		Render

	paragraph = lipgloss.NewStyle().
			Width(78).
			Padding(0, 0, 0, 2).
			Render

	rootCmd = &cobra.Command{
		Use:   "espeak-phonemizer",
		Short: "Convert text to IPA phonemes with espeak-ng",
		Long: paragraph(
			fmt.Sprintf("\nConvert text on stdin to %s phoneme strings using espeak-ng, one line of phonemes per input line. No audio is produced.", keyword("IPA")),
		),
		Example:          "  echo 'This is a test.' | espeak-phonemizer -v en-us",
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(_ *cobra.Command) error {
	if debug || viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)

	// grab config values from Viper
	if voice == "" {
		voice = viper.GetString("voice")
	}
	if dataPath == "" {
		dataPath = viper.GetString("data_path")
	}
	if captureMode == "" {
		captureMode = viper.GetString("capture")
	}

	if _, err := phonemizer.ParseCaptureMode(captureMode); err != nil {
		return err
	}

	// A whitespace phoneme separator makes word boundaries ambiguous.
	if wordSeparator != " " && strings.TrimSpace(phonemeSeparator) == "" {
		return fmt.Errorf("word separator cannot be used if phoneme separator is whitespace")
	}

	return nil
}

func execute(_ *cobra.Command, _ []string) error {
	cfg, err := phonemizer.LoadConfigFromViper()
	if err != nil {
		return err
	}

	if voice != "" {
		cfg.DefaultVoice = voice
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if captureMode != "" {
		cfg.Capture = captureMode
	}

	if cfg.DefaultVoice == "" {
		return fmt.Errorf("%w: use -v/--voice or set one in the config file", phonemizer.ErrMissingVoice)
	}

	p, err := phonemizer.New(cfg, espeak.New())
	if err != nil {
		return err
	}

	opts := phonemizer.DefaultOptions()
	opts.KeepClauseBreakers = keepPunctuation
	opts.PhonemeSeparator = phonemeSeparator
	opts.WordSeparator = wordSeparator
	opts.KeepLanguageFlags = keepLanguageFlags
	opts.NoStress = noStress
	opts.SSML = ssml
	if punctuationSeparator != "" {
		opts.PunctuationSeparator = punctuationSeparator
	} else {
		opts.PunctuationSeparator = phonemeSeparator
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Info("Reading text from stdin...")
	}

	proc := &batch.Processor{
		Phonemize: func(text string) (string, error) {
			return p.Phonemize(text, opts)
		},
		PrintInput:      printInput,
		OutputSeparator: outputSeparator,
	}

	if csvMode {
		return proc.RunCSV(os.Stdin, os.Stdout, delimiterRune(csvDelimiter))
	}
	return proc.Run(os.Stdin, os.Stdout)
}

// delimiterRune returns the first rune of s, defaulting to '|'.
func delimiterRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '|'
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Local .env files fill gaps in the environment.
	_ = godotenv.Load()

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
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debug messages to the console")
	rootCmd.Flags().StringVarP(&voice, "voice", "v", "", "eSpeak voice to use (e.g. en-us)")
	rootCmd.Flags().StringVar(&dataPath, "data-path", "", "path to espeak-ng data directory")
	rootCmd.Flags().StringVar(&captureMode, "capture", "", "phoneme capture mode (memory/none)")
	rootCmd.Flags().StringVarP(&phonemeSeparator, "phoneme-separator", "p", "", "separator character between phonemes")
	rootCmd.Flags().StringVarP(&wordSeparator, "word-separator", "w", " ", "separator string between words")
	rootCmd.Flags().StringVar(&punctuationSeparator, "punctuation-separator", "", "separator string before kept punctuation (default: phoneme separator)")
	rootCmd.Flags().BoolVar(&keepPunctuation, "keep-punctuation", false, "keep clause-breaking punctuation characters (,;:.!?)")
	rootCmd.Flags().BoolVar(&keepLanguageFlags, "keep-language-flags", false, "keep language-switching flags")
	rootCmd.Flags().BoolVar(&noStress, "no-stress", false, "remove primary/secondary stress markers")
	rootCmd.Flags().BoolVar(&ssml, "ssml", false, "interpret input text as SSML")
	rootCmd.Flags().BoolVar(&printInput, "print-input", false, "print input text before phonemes")
	rootCmd.Flags().StringVar(&outputSeparator, "output-separator", " ", "separator string between input text and phonemes")
	rootCmd.Flags().BoolVar(&csvMode, "csv", false, "input and output is CSV; phonemes are added as a final column")
	rootCmd.Flags().StringVar(&csvDelimiter, "csv-delimiter", "|", "delimiter in CSV input and output")

	// Config bindings
	_ = viper.BindPFlag("voice", rootCmd.Flags().Lookup("voice"))
	_ = viper.BindPFlag("data_path", rootCmd.Flags().Lookup("data-path"))
	_ = viper.BindPFlag("capture", rootCmd.Flags().Lookup("capture"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetDefault("capture", "memory")
	viper.SetDefault("clause_breakers", phonemizer.DefaultClauseBreakers)

	rootCmd.AddCommand(configCmd, idsCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "espeak-phonemizer")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "espeak-phonemizer")}, dirs...)
	}

	if c := os.Getenv("ESPEAK_PHONEMIZER_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("espeak-phonemizer")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("espeak_phonemizer")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "espeak-phonemizer.yml")
	}
}
