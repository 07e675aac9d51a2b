package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source names as used in config keys, routes and the source registry.
const (
	SourceAdzuna   = "adzuna"
	SourceJooble   = "jooble"
	SourceMuse     = "muse"
	SourceRemotive = "remotive"
	SourceUSAJobs  = "usajobs"
)

var KnownSources = []string{SourceAdzuna, SourceJooble, SourceMuse, SourceRemotive, SourceUSAJobs}

type SourceConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	PerPage int    `yaml:"per_page,omitempty" json:"per_page,omitempty"`

	// adzuna only
	Country string `yaml:"country,omitempty" json:"country,omitempty"`

	// remotive only
	CacheHours int  `yaml:"cache_hours,omitempty" json:"cache_hours,omitempty"`
	Warm       bool `yaml:"warm,omitempty" json:"warm,omitempty"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		// Sources is the combined-search source order.
		Sources          []string `yaml:"sources" json:"sources"`
		MaxJobsPerSource int      `yaml:"max_jobs_per_source" json:"max_jobs_per_source"`
		DefaultPageSize  int      `yaml:"default_page_size" json:"default_page_size"`
		MaxPageSize      int      `yaml:"max_page_size" json:"max_page_size"`
	} `yaml:"search" json:"search"`

	HTTP struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		UserAgent         string  `yaml:"user_agent" json:"user_agent"`
	} `yaml:"http" json:"http"`

	Retry struct {
		MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`
		BaseDelayMS int `yaml:"base_delay_ms" json:"base_delay_ms"`
	} `yaml:"retry" json:"retry"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"cors" json:"cors"`

	RunLog struct {
		RetentionDays  int `yaml:"retention_days" json:"retention_days"`
		CleanupMinutes int `yaml:"cleanup_minutes" json:"cleanup_minutes"`
	} `yaml:"run_log" json:"run_log"`

	Sources struct {
		Adzuna   SourceConfig `yaml:"adzuna" json:"adzuna"`
		Jooble   SourceConfig `yaml:"jooble" json:"jooble"`
		Muse     SourceConfig `yaml:"muse" json:"muse"`
		Remotive SourceConfig `yaml:"remotive" json:"remotive"`
		USAJobs  SourceConfig `yaml:"usajobs" json:"usajobs"`
	} `yaml:"sources" json:"sources"`
}

// Source returns the per-source block for name.
func (c Config) Source(name string) (SourceConfig, bool) {
	switch name {
	case SourceAdzuna:
		return c.Sources.Adzuna, true
	case SourceJooble:
		return c.Sources.Jooble, true
	case SourceMuse:
		return c.Sources.Muse, true
	case SourceRemotive:
		return c.Sources.Remotive, true
	case SourceUSAJobs:
		return c.Sources.USAJobs, true
	}
	return SourceConfig{}, false
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 4000
	cfg.App.DataDir = "./data"

	cfg.Search.Sources = []string{SourceAdzuna, SourceUSAJobs, SourceRemotive, SourceJooble}
	cfg.Search.MaxJobsPerSource = 1000
	cfg.Search.DefaultPageSize = 20
	cfg.Search.MaxPageSize = 100

	cfg.HTTP.TimeoutSeconds = 20
	cfg.HTTP.RequestsPerSecond = 2
	cfg.HTTP.Burst = 4
	cfg.HTTP.UserAgent = "jobsearch-engine/1.0"

	cfg.Retry.MaxAttempts = 3
	cfg.Retry.BaseDelayMS = 1000

	cfg.CORS.AllowedOrigins = []string{"*"}

	cfg.RunLog.RetentionDays = 14
	cfg.RunLog.CleanupMinutes = 60

	cfg.Sources.Adzuna = SourceConfig{Enabled: true, PerPage: 50, Country: "us"}
	cfg.Sources.Jooble = SourceConfig{Enabled: true, PerPage: 20}
	cfg.Sources.Muse = SourceConfig{Enabled: true, PerPage: 20}
	cfg.Sources.Remotive = SourceConfig{Enabled: true, CacheHours: 6}
	cfg.Sources.USAJobs = SourceConfig{Enabled: true, PerPage: 25}
	return cfg
}

// Load reads a YAML config on top of Default, so omitted keys keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
