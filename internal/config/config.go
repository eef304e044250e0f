// Package config loads pathcodec.yaml, the CLI configuration.
//
// Values come from three layers, later ones winning:
//   - DefaultConfig
//   - the YAML file, when it exists
//   - PATHCODEC_* environment variables, with a .env file in the working
//     directory loaded first when present
package config

import (
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pathcodec/internal/gen"
)

const (
	// DefaultFile is the configuration file looked up when no path is given.
	DefaultFile = "pathcodec.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PATHCODEC_"

	// Version is the only configuration version understood.
	Version = "1"
)

// Environment overrides.
const (
	EnvConfig      = EnvPrefix + "CONFIG"
	EnvPackage     = EnvPrefix + "PACKAGE"
	EnvOutputDir   = EnvPrefix + "OUTPUT_DIR"
	EnvKeyedImport = EnvPrefix + "KEYED_IMPORT"
	EnvComments    = EnvPrefix + "COMMENTS"
	EnvLogLevel    = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat   = EnvPrefix + "LOG_FORMAT"
	EnvLogOutputs  = EnvPrefix + "LOG_OUTPUTS"
)

// Config is the root configuration.
type Config struct {
	Version  string         `yaml:"version"`
	Generate GenerateConfig `yaml:"generate"`
	Log      LogConfig      `yaml:"log"`
}

// GenerateConfig drives code generation.
type GenerateConfig struct {
	// Package, when set, overrides the package named by the schema.
	Package     string `yaml:"package"`
	OutputDir   string `yaml:"output_dir"`
	KeyedImport string `yaml:"keyed_import"`
	Comments    bool   `yaml:"comments"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format: console or json
	Format string `yaml:"format"`
	// Outputs: stdout, stderr or file paths
	Outputs []string `yaml:"outputs"`

	Rotation    RotationConfig `yaml:"rotation"`
	Development bool           `yaml:"development"`
}

// RotationConfig controls rotation of file outputs.
type RotationConfig struct {
	Enable     bool   `yaml:"enable"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	g := gen.DefaultGeneratorConfig()

	return &Config{
		Version: Version,
		Generate: GenerateConfig{
			OutputDir:   g.OutputDir,
			KeyedImport: g.KeyedImport,
			Comments:    g.GenerateComments,
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				Filename:   "logs/pathcodec.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads the configuration at path, DefaultFile when path is empty.
// A missing file is not an error; defaults and environment apply.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path == "" {
		path = DefaultFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Generate.Package, EnvPackage)
	setString(&c.Generate.OutputDir, EnvOutputDir)
	setString(&c.Generate.KeyedImport, EnvKeyedImport)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Log.Format, EnvLogFormat)

	if v := os.Getenv(EnvLogOutputs); v != "" {
		c.Log.Outputs = splitList(v)
	}

	if v := os.Getenv(EnvComments); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvComments, err)
		}

		c.Generate.Comments = b
	}

	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// Validate checks the configuration and fills the blanks that have an
// obvious value.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = Version
	}

	if c.Version != Version {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}

	if c.Generate.Package != "" && !token.IsIdentifier(c.Generate.Package) {
		return fmt.Errorf("generate.package %q is not a valid package name", c.Generate.Package)
	}

	if c.Generate.KeyedImport == "" {
		c.Generate.KeyedImport = gen.DefaultKeyedImport
	}

	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "debug", "info", "warn", "warning", "error":
		c.Log.Level = lvl
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "":
		c.Log.Format = "console"
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format: %q", c.Log.Format)
	}

	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}

	if c.Log.Rotation.Enable && c.Log.Rotation.MaxSizeMB <= 0 {
		return fmt.Errorf("log.rotation.max_size_mb must be positive, got %d", c.Log.Rotation.MaxSizeMB)
	}

	return nil
}

// GeneratorConfig maps the generate section onto a gen.GeneratorConfig
// for a schema asking for package pkg.
func (c *Config) GeneratorConfig(pkg string) gen.GeneratorConfig {
	g := gen.DefaultGeneratorConfig()
	g.OutputDir = c.Generate.OutputDir
	g.KeyedImport = c.Generate.KeyedImport
	g.GenerateComments = c.Generate.Comments

	switch {
	case c.Generate.Package != "":
		g.PackageName = c.Generate.Package
	case pkg != "":
		g.PackageName = pkg
	}

	return g
}

// Save writes c to path as YAML.
func Save(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
