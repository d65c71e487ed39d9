package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio = "stdio"
	ModeCLI   = "cli"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10 MiB
	DefaultOCRBinary   = "tesseract"
	DefaultOCRLang     = "eng"

	// Matching defaults
	DefaultFuzzyMaxScore  = 0.6
	DefaultAutoMapMinConf = 0.6
)

// Config holds all configuration for the intake service.
type Config struct {
	// Mode selects the entry point: "stdio" runs the MCP server,
	// "cli" parses a single file and prints the result.
	Mode string

	// FilePath is the file to parse in CLI mode.
	FilePath string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum upload size in bytes

	// OCR configuration
	OCRBinary string
	OCRLang   string

	// Matching configuration
	FuzzyMaxScore  float64
	AutoMapMinConf float64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:           ModeStdio,
		Version:        "1.0.0",
		ServerName:     "nomadly-intake",
		LogLevel:       DefaultLogLevel,
		MaxFileSize:    DefaultMaxFileSize,
		OCRBinary:      DefaultOCRBinary,
		OCRLang:        DefaultOCRLang,
		FuzzyMaxScore:  DefaultFuzzyMaxScore,
		AutoMapMinConf: DefaultAutoMapMinConf,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("NOMADLY")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("file", cfg.FilePath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("ocrbinary", cfg.OCRBinary)
	viper.SetDefault("ocrlang", cfg.OCRLang)
	viper.SetDefault("fuzzymaxscore", cfg.FuzzyMaxScore)
	viper.SetDefault("automapminconf", cfg.AutoMapMinConf)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for the MCP server, 'cli' for one-shot parsing")
	pflag.String("file", cfg.FilePath, "File to parse (cli mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum upload size in bytes")
	pflag.String("ocrbinary", cfg.OCRBinary, "OCR engine binary name or path")
	pflag.String("ocrlang", cfg.OCRLang, "OCR recognition language")
	pflag.Float64("fuzzymaxscore", cfg.FuzzyMaxScore, "Maximum fuzzy-match score (lower is stricter)")
	pflag.Float64("automapminconf", cfg.AutoMapMinConf, "Minimum confidence for automatic field mapping")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("file", pflag.Lookup("file"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("ocrbinary", pflag.Lookup("ocrbinary"))
	_ = viper.BindPFlag("ocrlang", pflag.Lookup("ocrlang"))
	_ = viper.BindPFlag("fuzzymaxscore", pflag.Lookup("fuzzymaxscore"))
	_ = viper.BindPFlag("automapminconf", pflag.Lookup("automapminconf"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nNomadly Intake - parses uploaded files and prefills place metadata\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # MCP stdio server (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=cli --file=places.csv     # parse one file, print JSON\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  NOMADLY_MODE           Run mode\n")
		fmt.Fprintf(os.Stderr, "  NOMADLY_FILE           File to parse (cli mode)\n")
		fmt.Fprintf(os.Stderr, "  NOMADLY_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  NOMADLY_MAXFILESIZE    Maximum upload size\n")
		fmt.Fprintf(os.Stderr, "  NOMADLY_OCRBINARY      OCR engine binary\n")
		fmt.Fprintf(os.Stderr, "  NOMADLY_OCRLANG        OCR recognition language\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.FilePath = viper.GetString("file")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.OCRBinary = viper.GetString("ocrbinary")
	cfg.OCRLang = viper.GetString("ocrlang")
	cfg.FuzzyMaxScore = viper.GetFloat64("fuzzymaxscore")
	cfg.AutoMapMinConf = viper.GetFloat64("automapminconf")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeCLI {
		return errors.New("mode must be either 'stdio' or 'cli'")
	}

	if c.Mode == ModeCLI && c.FilePath == "" {
		return errors.New("cli mode requires --file")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.FuzzyMaxScore <= 0 || c.FuzzyMaxScore > 1 {
		return errors.New("fuzzy max score must be in (0, 1]")
	}

	if c.AutoMapMinConf < 0 || c.AutoMapMinConf > 1 {
		return errors.New("auto-map minimum confidence must be in [0, 1]")
	}

	if c.OCRBinary == "" {
		return errors.New("OCR binary cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, LogLevel: %s, MaxFileSize: %d, OCRBinary: %s, OCRLang: %s}",
		c.Mode, c.LogLevel, c.MaxFileSize, c.OCRBinary, c.OCRLang)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsCLIMode returns true when running as a one-shot CLI.
func (c *Config) IsCLIMode() bool {
	return c.Mode == ModeCLI
}

// IsStdioMode returns true when running as an MCP stdio server.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
