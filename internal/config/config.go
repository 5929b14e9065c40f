package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"remoteboard-engine/internal/search"
)

type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Polling struct {
		ScrapeMinutes  int `yaml:"scrape_minutes"`
		EnrichMinutes  int `yaml:"enrich_minutes"`
		CleanupHours   int `yaml:"cleanup_hours"`
		RequestsPerSec int `yaml:"requests_per_sec"`
	} `yaml:"polling"`

	Sources struct {
		RemoteOK       SourceConfig `yaml:"remoteok"`
		Remotive       SourceConfig `yaml:"remotive"`
		WeWorkRemotely SourceConfig `yaml:"weworkremotely"`
	} `yaml:"sources"`

	Filters struct {
		KeywordsAllow []string `yaml:"keywords_allow"`
		KeywordsBlock []string `yaml:"keywords_block"`
		MaxAgeDays    int      `yaml:"max_age_days"`
	} `yaml:"filters"`

	Enrich struct {
		Enabled   bool   `yaml:"enabled"`
		Model     string `yaml:"model"`
		MaxPerRun int    `yaml:"max_per_run"`
	} `yaml:"enrich"`

	Ranking struct {
		ResultLimit int            `yaml:"result_limit"`
		Weights     search.Weights `yaml:"weights"`
	} `yaml:"ranking"`
}

// Default returns the shipped configuration: all three sources enabled,
// ranking weights at their canonical values.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."
	cfg.Polling.ScrapeMinutes = 30
	cfg.Polling.EnrichMinutes = 10
	cfg.Polling.CleanupHours = 24
	cfg.Polling.RequestsPerSec = 1
	cfg.Sources.RemoteOK = SourceConfig{Enabled: true, URL: "https://remoteok.com/api"}
	cfg.Sources.Remotive = SourceConfig{Enabled: true, URL: "https://remotive.com/api/remote-jobs"}
	cfg.Sources.WeWorkRemotely = SourceConfig{Enabled: true, URL: "https://weworkremotely.com/remote-jobs"}
	cfg.Filters.MaxAgeDays = 90
	cfg.Enrich.Model = "gemini-1.5-flash"
	cfg.Enrich.MaxPerRun = 25
	cfg.Ranking.ResultLimit = search.DefaultLimit
	cfg.Ranking.Weights = search.DefaultWeights()
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
