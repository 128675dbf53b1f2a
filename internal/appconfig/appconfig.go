// Package appconfig loads ollamasweep settings from an optional config file
// and OLLAMASWEEP_* environment variables on top of the cobra flag defaults.
package appconfig

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// OLLAMASWEEP_APPTAINER_IMAGE or OLLAMASWEEP_EMBEDDING_OUTPUT_FILE.
const EnvPrefix = "OLLAMASWEEP"

// Viper keys shared by the commands.
const (
	KeyApptainerBinary = "apptainer_binary"
	KeyApptainerImage  = "apptainer_image"
	KeyApptainerFlags  = "apptainer_flags"
	KeyBenchmarkBinary = "benchmark_binary"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyDebug           = "debug"
	KeyProgress        = "progress"

	KeyEmbeddingOutput = "embedding.output_file"
	KeyLoadOutput      = "load.output_file"
	KeyLoadFillMissing = "load.fill_missing"
)

// Defaults match the original benchmark scripts.
const (
	DefaultApptainerBinary = "apptainer"
	DefaultApptainerImage  = "ollama_benchmark.sif"
	DefaultBenchmarkBinary = "ollama-benchmark"
	DefaultEmbeddingOutput = "ollama_embedding_benchmark_results.csv"
	DefaultLoadOutput      = "ollama_load_benchmark_results.csv"
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "console"
)

// Config is the resolved, command-independent part of the settings.
type Config struct {
	ApptainerBinary string `mapstructure:"apptainer_binary"`
	ApptainerImage  string `mapstructure:"apptainer_image"`
	ApptainerFlags  string `mapstructure:"apptainer_flags"`
	BenchmarkBinary string `mapstructure:"benchmark_binary"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`
	Debug           bool   `mapstructure:"debug"`
	Progress        bool   `mapstructure:"progress"`
}

// Setup enables environment overrides on v and, when path is non-empty,
// reads the config file at path. The file format follows its extension
// (toml, yaml, json).
func Setup(v *viper.Viper, path string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file %s: %w", path, err)
	}
	return nil
}

// FromViper resolves Config from v, falling back to the package defaults for
// empty values.
func FromViper(v *viper.Viper) Config {
	cfg := Config{
		ApptainerBinary: v.GetString(KeyApptainerBinary),
		ApptainerImage:  v.GetString(KeyApptainerImage),
		ApptainerFlags:  v.GetString(KeyApptainerFlags),
		BenchmarkBinary: v.GetString(KeyBenchmarkBinary),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		Debug:           v.GetBool(KeyDebug),
		Progress:        v.GetBool(KeyProgress),
	}
	if cfg.ApptainerBinary == "" {
		cfg.ApptainerBinary = DefaultApptainerBinary
	}
	if cfg.ApptainerImage == "" {
		cfg.ApptainerImage = DefaultApptainerImage
	}
	if cfg.BenchmarkBinary == "" {
		cfg.BenchmarkBinary = DefaultBenchmarkBinary
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	return cfg
}

// OutputFile returns the configured output path for key, or def when unset.
func OutputFile(v *viper.Viper, key, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}
