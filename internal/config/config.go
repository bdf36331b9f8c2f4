package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zamm-dev/diary-mvp/internal/models"
	"github.com/zamm-dev/diary-mvp/internal/storage"
	"gopkg.in/yaml.v3"
)

// DirName is the per-project directory holding the diary and its config
const DirName = ".diary"

// Config holds all configuration for the application
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	CLI     CLIConfig     `mapstructure:"cli" yaml:"cli"`
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// EditorConfig holds external editor configuration
type EditorConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
	TempDir string `mapstructure:"temp_dir" yaml:"temp_dir"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// CLIConfig holds CLI-related configuration
type CLIConfig struct {
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	Color        string `mapstructure:"color" yaml:"color"`
}

// LLMConfig holds title suggestion configuration
type LLMConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, "failed to get working directory", err)
	}
	return LoadFrom(workingDir)
}

// LoadFrom loads configuration relative to workingDir
func LoadFrom(workingDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	diaryDir := filepath.Join(workingDir, DirName)
	v.AddConfigPath(diaryDir)

	setDefaults(v)

	// Environment variable support
	v.SetEnvPrefix("DIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath := os.Getenv("DIARY_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, "failed to read config file", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, models.NewDiaryErrorWithCause(models.ErrTypeSystem, "failed to unmarshal config", err)
	}

	// Apply environment variable overrides
	if storagePath := os.Getenv("DIARY_STORAGE_PATH"); storagePath != "" {
		config.Storage.Path = storagePath
	}
	if logLevel := os.Getenv("DIARY_LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}
	if os.Getenv("DIARY_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
		config.CLI.Color = "never"
	}
	if config.LLM.APIKey == "" {
		config.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	expandPaths(&config, workingDir)

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", filepath.Join(DirName, storage.DefaultFileName))

	v.SetDefault("editor.command", "")
	v.SetDefault("editor.temp_dir", filepath.Join(DirName, "tmp"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(DirName, "logs", "diary.log"))

	v.SetDefault("cli.output_format", "table")
	v.SetDefault("cli.color", "auto")

	v.SetDefault("llm.api_key", "")
}

// expandPaths expands ~ and relative paths in configuration
func expandPaths(config *Config, workingDir string) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = workingDir
	}

	config.Storage.Path = expandPath(config.Storage.Path, homeDir, workingDir)
	config.Editor.TempDir = expandPath(config.Editor.TempDir, homeDir, workingDir)
	config.Logging.File = expandPath(config.Logging.File, homeDir, workingDir)
}

// expandPath expands ~ to home directory and resolves relative paths against baseDir
func expandPath(path, homeDir, baseDir string) string {
	if path == "" {
		return path
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		if len(path) == 1 {
			return homeDir
		}
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}
	}

	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}

	return path
}

// EnsureDirectories creates necessary directories for the configuration
func EnsureDirectories(config *Config) error {
	dirs := []string{
		filepath.Dir(config.Storage.Path),
		config.Editor.TempDir,
	}
	if config.Logging.File != "" {
		dirs = append(dirs, filepath.Dir(config.Logging.File))
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to create directory: %s", dir), err)
		}
	}

	return nil
}

// DefaultConfig returns the configuration written by `diary init`
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Path: filepath.Join(DirName, storage.DefaultFileName)},
		Editor:  EditorConfig{TempDir: filepath.Join(DirName, "tmp")},
		Logging: LoggingConfig{Level: "info", File: filepath.Join(DirName, "logs", "diary.log")},
		CLI:     CLIConfig{OutputFormat: "table", Color: "auto"},
	}
}

// WriteDefaultConfig writes a default configuration file into workingDir.
// It reports whether a new file was written.
func WriteDefaultConfig(workingDir string) (bool, error) {
	configPath := ConfigPathIn(workingDir)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil // Config already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return false, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to create diary directory: %s", filepath.Dir(configPath)), err)
	}

	content, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return false, models.NewDiaryErrorWithCause(models.ErrTypeSystem, "failed to render default config", err)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return false, models.NewDiaryErrorWithCause(models.ErrTypeSystem, fmt.Sprintf("failed to write config file: %s", configPath), err)
	}

	return true, nil
}

// ConfigPathIn returns the configuration file used for workingDir
func ConfigPathIn(workingDir string) string {
	if configPath := os.Getenv("DIARY_CONFIG_PATH"); configPath != "" {
		return configPath
	}
	return filepath.Join(workingDir, DirName, "config.yaml")
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return "", models.NewDiaryErrorWithCause(models.ErrTypeSystem, "failed to get working directory", err)
	}
	return ConfigPathIn(workingDir), nil
}
