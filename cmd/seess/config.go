package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/seess/internal/command"
)

const defaultConfigPath = ".seess.yaml"

var k = koanf.New(".")

// configSections are the nested tables of the config file
var configSections = []string{"analyze", "serve"}

// analyzeConfig holds the resolved settings of `seess analyze`
type analyzeConfig struct {
	Paths           []string
	Format          string
	Caveats         bool
	Strict          bool
	Jobs            int
	IncludeMinified bool
	IgnoreFile      string
	PrintLines      bool
	Verbose         bool
	Quiet           bool
	UseColors       bool
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set).
	// Flag defaults are not loaded so they cannot shadow file or env values;
	// the getXWithFallback defaults apply instead.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (SEESS_* prefix)
	if err := k.Load(env.Provider("SEESS_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. The first underscore
// after a section name separates the section; every other underscore is a hyphen.
//
//	SEESS_ANALYZE_FORMAT           -> analyze.format
//	SEESS_ANALYZE_INCLUDE_MINIFIED -> analyze.include-minified
//	SEESS_LOG_LEVEL                -> log-level
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "SEESS_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildAnalyzeConfig constructs the analyze settings from koanf state.
// Positional arguments replace the configured paths.
func buildAnalyzeConfig(args []string) analyzeConfig {
	config := analyzeConfig{
		Format:          getStringWithFallback("format", "analyze.format", "text"),
		Caveats:         getBoolWithFallback("caveats", "analyze.caveats", false),
		Strict:          getBoolWithFallback("strict", "analyze.strict", false),
		Jobs:            getIntWithFallback("jobs", "analyze.jobs", 0),
		IncludeMinified: getBoolWithFallback("include-minified", "analyze.include-minified", false),
		IgnoreFile:      getStringWithFallback("ignore-file", "analyze.ignore-file", ".gitignore"),
		PrintLines:      getBoolWithFallback("print-lines", "analyze.print-lines", true),
		Verbose:         getBoolWithFallback("verbose", "verbose", false),
		Quiet:           getBoolWithFallback("quiet", "quiet", false),
		UseColors:       getBoolWithFallback("color", "color", false),
	}

	// 0 = one worker per CPU
	if config.Jobs < 1 {
		config.Jobs = runtime.GOMAXPROCS(0)
	}

	// Handle paths: positional args first, then flag key, then config key
	switch {
	case len(args) > 0:
		config.Paths = args
	case len(k.Strings("paths")) > 0:
		config.Paths = k.Strings("paths")
	case len(k.Strings("analyze.paths")) > 0:
		config.Paths = k.Strings("analyze.paths")
	default:
		config.Paths = []string{"**/*.css"}
	}

	return config
}

// buildServerConfig constructs the HTTP command host settings from koanf state.
func buildServerConfig() command.ServerConfig {
	return command.ServerConfig{
		Addr:         getStringWithFallback("addr", "serve.addr", "127.0.0.1:8787"),
		MaxBodyBytes: int64(getIntWithFallback("max-body-bytes", "serve.max-body-bytes", int(command.DefaultMaxBodyBytes))),
	}
}

// buildLogger creates the structured logger used by long-running commands.
func buildLogger() *slog.Logger {
	level := parseLogLevel(getStringWithFallback("log-level", "log-level", "info"))
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
