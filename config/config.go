package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/andareed/siftly-changepoints/perfapi"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix        = "SIFTLY_"
	DefaultUIBaseURL = "https://evergreen.mongodb.com"
	DefaultPageSize  = 10
)

type APIConfig struct {
	AnalysisBaseURL           string        `yaml:"analysisBaseUrl"`
	ChangePointsByVersionPath string        `yaml:"changePointsByVersionPath"`
	EvergreenBaseURL          string        `yaml:"evergreenBaseUrl"`
	VersionByIDPath           string        `yaml:"versionByIdPath"`
	EvergreenUser             string        `yaml:"evergreenUser"`
	Timeout                   time.Duration `yaml:"timeout"`
	RetryCount                int           `yaml:"retryCount"`

	// Secrets only come from the environment.
	EvergreenAPIKey string `yaml:"-"`
	AnalysisToken   string `yaml:"-"`
}

type Config struct {
	Project   string    `yaml:"project"`
	PageSize  int       `yaml:"pageSize"`
	UIBaseURL string    `yaml:"uiBaseUrl"`
	API       APIConfig `yaml:"api"`
	reader    io.Reader
}

// Default generates default config
func Default() *Config {
	return &Config{
		PageSize:  DefaultPageSize,
		UIBaseURL: DefaultUIBaseURL,
		API: APIConfig{
			ChangePointsByVersionPath: perfapi.DefaultChangePointsByVersionPath,
			EvergreenBaseURL:          perfapi.DefaultEvergreenBaseURL,
			VersionByIDPath:           perfapi.DefaultVersionByIDPath,
			Timeout:                   30 * time.Second,
		},
	}
}

func (cfg *Config) WithReader(r io.Reader) *Config {
	if r != nil {
		cfg.reader = r
	}
	return cfg
}

// Load loads the config in the following sequence:
// Default < Config file < ENV variables
// If there is no config file, then it is skipped
func (cfg *Config) Load() (*Config, error) {
	if cfg.reader != nil {
		tmp, err := cfg.loadFromReader()
		if err != nil {
			return nil, err
		}
		cfg.merge(tmp)
	}
	tmp, err := readFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.merge(tmp)
	return cfg, nil
}

func (cfg *Config) loadFromReader() (*Config, error) {
	decoder := yaml.NewDecoder(cfg.reader)
	decoder.KnownFields(true)
	tmp := &Config{}
	if err := decoder.Decode(tmp); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("can't decode config: %w", err)
	}
	return tmp, nil
}

func readFromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.Project = GetEnv("PROJECT", "")
	cfg.UIBaseURL = GetEnv("UI_BASE_URL", "")
	cfg.API.AnalysisBaseURL = GetEnv("ANALYSIS_URL", "")
	cfg.API.EvergreenBaseURL = GetEnv("EVERGREEN_URL", "")
	cfg.API.EvergreenUser = GetEnv("EVERGREEN_USER", "")
	cfg.API.EvergreenAPIKey = GetEnv("EVERGREEN_API_KEY", "")
	cfg.API.AnalysisToken = GetEnv("ANALYSIS_TOKEN", "")

	if s := GetEnv("PAGE_SIZE", ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid page size: %s", s)
		}
		cfg.PageSize = n
	}
	if s := GetEnv("TIMEOUT", ""); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration value: %s", s)
		}
		cfg.API.Timeout = d
	}
	if s := GetEnv("RETRY_COUNT", ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid retry count: %s", s)
		}
		cfg.API.RetryCount = n
	}
	return cfg, nil
}

// merge merges this config with another config
// if another config has empty values, then original values are not overwritten
func (cfg *Config) merge(config *Config) {
	if config == nil {
		return
	}
	if config.Project != "" {
		cfg.Project = config.Project
	}
	if config.PageSize != 0 {
		cfg.PageSize = config.PageSize
	}
	if config.UIBaseURL != "" {
		cfg.UIBaseURL = config.UIBaseURL
	}

	api, other := &cfg.API, config.API
	if other.AnalysisBaseURL != "" {
		api.AnalysisBaseURL = other.AnalysisBaseURL
	}
	if other.ChangePointsByVersionPath != "" {
		api.ChangePointsByVersionPath = other.ChangePointsByVersionPath
	}
	if other.EvergreenBaseURL != "" {
		api.EvergreenBaseURL = other.EvergreenBaseURL
	}
	if other.VersionByIDPath != "" {
		api.VersionByIDPath = other.VersionByIDPath
	}
	if other.EvergreenUser != "" {
		api.EvergreenUser = other.EvergreenUser
	}
	if other.EvergreenAPIKey != "" {
		api.EvergreenAPIKey = other.EvergreenAPIKey
	}
	if other.AnalysisToken != "" {
		api.AnalysisToken = other.AnalysisToken
	}
	if other.Timeout != 0 {
		api.Timeout = other.Timeout
	}
	if other.RetryCount != 0 {
		api.RetryCount = other.RetryCount
	}
}

// Validate reports every problem at once.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Project == "" {
		errs = append(errs, errors.New("project is not set (--project or SIFTLY_PROJECT)"))
	}
	if cfg.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", cfg.PageSize))
	}
	if cfg.API.AnalysisBaseURL == "" {
		errs = append(errs, errors.New("analysis base url is not set (api.analysisBaseUrl or SIFTLY_ANALYSIS_URL)"))
	}
	if cfg.API.EvergreenBaseURL == "" {
		errs = append(errs, errors.New("evergreen base url is not set"))
	}
	if cfg.API.EvergreenUser != "" && cfg.API.EvergreenAPIKey == "" {
		errs = append(errs, errors.New("evergreenUser is set but SIFTLY_EVERGREEN_API_KEY is not"))
	}
	return errors.Join(errs...)
}

// Client converts the API section into a perfapi config.
func (cfg *Config) Client(debug bool) perfapi.Config {
	c := perfapi.DefaultConfig()
	c.AnalysisBaseURL = cfg.API.AnalysisBaseURL
	c.ChangePointsByVersionPath = cfg.API.ChangePointsByVersionPath
	c.AnalysisToken = cfg.API.AnalysisToken
	c.EvergreenBaseURL = cfg.API.EvergreenBaseURL
	c.VersionByIDPath = cfg.API.VersionByIDPath
	c.EvergreenUser = cfg.API.EvergreenUser
	c.EvergreenAPIKey = cfg.API.EvergreenAPIKey
	c.Timeout = cfg.API.Timeout
	c.RetryCount = cfg.API.RetryCount
	c.Debug = debug
	return c
}

// GetEnv reads SIFTLY_<key>, trimming surrounding space.
func GetEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(envPrefix + key); ok {
		return strings.TrimSpace(val)
	}
	return defaultValue
}
