package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/domain/ztest"
	"gopkg.in/yaml.v3"
)

// Run modes.
const (
	ModeReport = "report"
	ModeStdio  = "stdio"
	ModeHTTP   = "http"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config defines the analysis configuration.
type Config struct {
	Mode     string         `yaml:"mode"`
	Data     DataConfig     `yaml:"data"`
	DB       DBConfig       `yaml:"db"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
}

type DataConfig struct {
	Path string `yaml:"path"`
}

// DBConfig locates the comparison history. An empty path disables history.
type DBConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// AnalysisConfig controls the z-tests. When Comparisons is empty the
// default sex and age comparisons for State are used.
type AnalysisConfig struct {
	State       string                  `yaml:"state"`
	Alpha       float64                 `yaml:"alpha"`
	Comparisons []comparison.Definition `yaml:"comparisons"`
}

type ReportConfig struct {
	Format string `yaml:"format"`
	TopN   int    `yaml:"top_n"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("MORTALITY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("MORTALITY_MODE"); mode != "" {
		cfg.Mode = mode
	}
	if dataPath := os.Getenv("MORTALITY_DATA_PATH"); dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if dbPath, ok := os.LookupEnv("MORTALITY_DB_PATH"); ok {
		cfg.DB.Path = dbPath
	}
	if host := os.Getenv("MORTALITY_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MORTALITY_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MORTALITY_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if level := os.Getenv("MORTALITY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("MORTALITY_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if alphaStr := os.Getenv("MORTALITY_ALPHA"); alphaStr != "" {
		alpha, err := strconv.ParseFloat(alphaStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MORTALITY_ALPHA: %w", err)
		}
		cfg.Analysis.Alpha = alpha
	}
	if format := os.Getenv("MORTALITY_REPORT_FORMAT"); format != "" {
		cfg.Report.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode: ModeReport,
		Data: DataConfig{
			Path: "Provisional_COVID-19_Deaths_by_Sex_and_Age.csv",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Analysis: AnalysisConfig{
			State: "United States",
			Alpha: ztest.DefaultAlpha,
		},
		Report: ReportConfig{
			Format: FormatText,
			TopN:   10,
		},
	}
}

// Validate checks the configuration for inconsistent values.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeReport, ModeStdio, ModeHTTP:
	default:
		errs = append(errs, fmt.Errorf("mode %q must be one of report, stdio, http", c.Mode))
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		errs = append(errs, errors.New("data.path is required"))
	}
	if !(c.Analysis.Alpha > 0 && c.Analysis.Alpha < 1) {
		errs = append(errs, fmt.Errorf("analysis.alpha %v must be in (0, 1)", c.Analysis.Alpha))
	}
	for i, def := range c.Analysis.Comparisons {
		// 0 defers to analysis.alpha.
		if def.Alpha != 0 && !(def.Alpha > 0 && def.Alpha < 1) {
			errs = append(errs, fmt.Errorf("analysis.comparisons[%d].alpha %v must be in (0, 1)", i, def.Alpha))
		}
	}
	switch c.Report.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("report.format %q must be text or json", c.Report.Format))
	}
	if c.Mode == ModeHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Definitions returns the configured comparisons or the defaults.
func (c Config) Definitions() []comparison.Definition {
	if len(c.Analysis.Comparisons) > 0 {
		return c.Analysis.Comparisons
	}
	return comparison.DefaultDefinitions(c.Analysis.State)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
