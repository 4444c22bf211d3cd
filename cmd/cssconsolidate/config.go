package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssconsolidate.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", nil, func(f *pflag.Flag) (string, interface{}) {
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

	// 2. Environment variables (CSSCONSOLIDATE_* prefix)
	if err := k.Load(env.Provider("CSSCONSOLIDATE_", ".", func(s string) string {
		// CSSCONSOLIDATE_ROOT -> root
		// CSSCONSOLIDATE_RUN_TRANSITIVE -> run.transitive
		// CSSCONSOLIDATE_OUTPUT_FORMAT -> output.format
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSCONSOLIDATE_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig(log *zap.Logger) (cssconsolidate.Config, error) {
	defaults := cssconsolidate.DefaultConfig()

	config := cssconsolidate.Config{
		Root:           getStringWithFallback("root", "root", defaults.Root),
		CSSIncludes:    getStringsWithFallback("css-include", "discovery.css-include", defaults.CSSIncludes),
		MarkupIncludes: getStringsWithFallback("markup-include", "discovery.markup-include", defaults.MarkupIncludes),
		Excludes:       getStringsWithFallback("exclude", "discovery.exclude", defaults.Excludes),
		UseGitignore:   getNegatedBoolWithFallback("no-gitignore", "discovery.gitignore", defaults.UseGitignore),

		DryRun: getBoolWithFallback("dry-run", "run.dry-run", false) ||
			getBoolWithFallback("analyze-only", "run.analyze-only", false),
		Backup:    getNegatedBoolWithFallback("no-backup", "run.backup", defaults.Backup),
		BackupDir: getStringWithFallback("backup-dir", "run.backup-dir", defaults.BackupDir),

		MinProperties:    getIntWithFallback("min-properties", "run.min-properties", defaults.MinProperties),
		Transitive:       getNegatedBoolWithFallback("no-transitive", "run.transitive", defaults.Transitive),
		ExcludedPrefixes: getStringsWithFallback("excluded-prefix", "run.excluded-prefix", defaults.ExcludedPrefixes),
		UtilityPrefixes:  getStringsWithFallback("utility-prefix", "run.utility-prefix", defaults.UtilityPrefixes),
		MergeDuplicates:  getNegatedBoolWithFallback("no-merge-duplicates", "run.merge-duplicates", defaults.MergeDuplicates),
		PruneEmpty:       getNegatedBoolWithFallback("no-prune", "run.prune", defaults.PruneEmpty),

		RemoveUnused: getBoolWithFallback("remove-unused", "unused.remove", false),
		UnusedIgnore: getStringsWithFallback("unused-ignore", "unused.ignore", defaults.UnusedIgnore),

		Logger: log,
	}

	if config.MinProperties < 1 {
		return config, fmt.Errorf("min-properties must be at least 1, got %d", config.MinProperties)
	}

	if path := getStringWithFallback("unused-file", "unused.file", ""); path != "" {
		names, err := cssconsolidate.ReadClassListFile(path)
		if err != nil {
			return config, err
		}
		config.UnusedClasses = names
	}

	return config, nil
}

// outputSettings holds how and where results are written.
type outputSettings struct {
	Format     cssconsolidate.OutputFormat
	Options    cssconsolidate.OutputOptions
	OutputFile string // Console output destination, stdout when empty
	ReportFile string // Detailed report destination, none when empty
	Quiet      bool
}

// buildOutputSettings reads and validates the output configuration.
func buildOutputSettings() (outputSettings, error) {
	name := getStringWithFallback("output-format", "output.format", "")
	if name != "" && !cssconsolidate.ValidOutputFormat(name) {
		return outputSettings{}, fmt.Errorf("unknown output format %q (want issues|summary|full|json|yaml|report)", name)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	return outputSettings{
		Format: cssconsolidate.DetermineOutputFormat(name, quiet),
		Options: cssconsolidate.OutputOptions{
			UseColors:  getBoolWithFallback("color", "color", false),
			PrintLines: getBoolWithFallback("print-lines", "output.print-lines", true),
		},
		OutputFile: getStringWithFallback("output", "output.file", ""),
		ReportFile: getStringWithFallback("report", "output.report", ""),
		Quiet:      quiet,
	}, nil
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

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
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

// getNegatedBoolWithFallback is getBoolWithFallback for --no-* flags whose
// config key holds the positive setting.
func getNegatedBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return !k.Bool(flagKey)
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
