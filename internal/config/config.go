package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jgivc/challtable/internal/adapter/mdadapter"
	"github.com/jgivc/challtable/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	DefaultEnvFile = ".env"

	envPrefix = "CHALLTABLE_"
)

type LoaderConfig struct {
	ChallengeFileName string `yaml:"challenge_filename"`
	TestedFileName    string `yaml:"tested_filename"`
}

type ReportConfig struct {
	DirPath        string `yaml:"dir_path"`
	OutputPath     string `yaml:"output_path"`
	OutputFileName string `yaml:"output_filename"` // Empty means the schema default
	Schema         string `yaml:"schema"`
	TestedStyle    string `yaml:"tested_style"`
	HTML           bool   `yaml:"html"`
}

type Config struct {
	LogLevel     string       `yaml:"log_level"`
	Strict       bool         `yaml:"strict"`
	LoaderConfig LoaderConfig `yaml:"loader"`
	ReportConfig ReportConfig `yaml:"report"`
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func (c *Config) SetDefaults() {
	c.LogLevel = LogLevelInfo
	c.Strict = false

	c.LoaderConfig.ChallengeFileName = "challenge.yml"
	c.LoaderConfig.TestedFileName = "tested.yml"

	c.ReportConfig.DirPath = "./"
	c.ReportConfig.OutputPath = "./"
	c.ReportConfig.OutputFileName = ""
	c.ReportConfig.Schema = mdadapter.SchemaMinimal
	c.ReportConfig.TestedStyle = mdadapter.StyleWord.String()
	c.ReportConfig.HTML = false
}

// Load resolves the configuration: defaults, then the config file, then the
// environment (with the dotenv file underneath it), then explicitly set flags.
func Load(fs afero.Fs, flags *Flags, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if flags.ConfigFile != "" {
		if err := cfg.LoadFile(fs, flags.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.LoadEnv(fs, flags.EnvFile, lookup); err != nil {
		return nil, err
	}

	flags.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFile(fs afero.Fs, fileName string) error {
	data, err := afero.ReadFile(fs, fileName)
	if err != nil {
		return fmt.Errorf("cannot read config file: %s: %w", fileName, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("cannot unmarshal config file: %s: %w", fileName, err)
	}

	return nil
}

// LoadEnv applies CHALLTABLE_* variables. Values from the process environment
// win over the ones in envFile. A missing envFile is not an error.
func (c *Config) LoadEnv(fs afero.Fs, envFile string, lookup LookupFunc) error {
	dotenv := map[string]string{}

	if envFile != "" {
		f, err := fs.Open(envFile)
		switch {
		case err == nil:
			dotenv, err = readDotenv(f)
			if err != nil {
				return fmt.Errorf("cannot parse env file: %s: %w", envFile, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return fmt.Errorf("cannot open env file: %s: %w", envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := envPrefix + name
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}

		v, ok := dotenv[key]

		return v, ok
	}

	strVars := map[string]*string{
		"LOG_LEVEL":    &c.LogLevel,
		"CHALL_YML":    &c.LoaderConfig.ChallengeFileName,
		"TESTED_YML":   &c.LoaderConfig.TestedFileName,
		"DIR_PATH":     &c.ReportConfig.DirPath,
		"OUTPUT_PATH":  &c.ReportConfig.OutputPath,
		"OUTPUT_NAME":  &c.ReportConfig.OutputFileName,
		"SCHEMA":       &c.ReportConfig.Schema,
		"TESTED_STYLE": &c.ReportConfig.TestedStyle,
	}
	for name, dst := range strVars {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	boolVars := map[string]*bool{
		"HTML":   &c.ReportConfig.HTML,
		"STRICT": &c.Strict,
	}
	for name, dst := range boolVars {
		v, ok := get(name)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", common.ErrInvalidConfig, envPrefix, name, err)
		}
		*dst = b
	}

	return nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: unknown log level: %q", common.ErrInvalidConfig, c.LogLevel)
	}

	if _, err := mdadapter.SchemaByName(c.ReportConfig.Schema); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if _, err := mdadapter.ParseStyle(c.ReportConfig.TestedStyle); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if c.LoaderConfig.ChallengeFileName == "" || c.LoaderConfig.TestedFileName == "" {
		return fmt.Errorf("%w: challenge and tested file names must not be empty", common.ErrInvalidConfig)
	}

	return nil
}

func readDotenv(f afero.File) (map[string]string, error) {
	defer f.Close()

	return godotenv.Parse(f)
}

type FSAdapterConfig struct {
	ChallengeFileName string
	TestedFileName    string
	Extended          bool // tester, solver and tested_url are required
}

func (c *Config) FSAdapterConfig() *FSAdapterConfig {
	return &FSAdapterConfig{
		ChallengeFileName: c.LoaderConfig.ChallengeFileName,
		TestedFileName:    c.LoaderConfig.TestedFileName,
		Extended:          c.ReportConfig.Schema == mdadapter.SchemaExtended,
	}
}
