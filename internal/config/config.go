package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

// Config holds all job settings, populated from environment variables and
// an optional YAML profile.
type Config struct {
	CacheDir       string
	OutputDir      string
	HTTPTimeout    time.Duration
	RequestDelay   time.Duration
	NASSAPIKey     string
	LogLevel       string
	LogFormat      string
	PushgatewayURL string

	// TargetStates are the Brazilian UFs swept by the sidra job;
	// CornBeltStates the US states swept by the nass job.
	TargetStates   []string
	CornBeltStates []string
}

// profile is the YAML overlay named by AGRI_PROFILE. Only set fields
// override the environment-derived config.
type profile struct {
	TargetStates   []string `yaml:"target_states"`
	CornBeltStates []string `yaml:"corn_belt_states"`
	OutputDir      string   `yaml:"output_dir"`
	CacheDir       string   `yaml:"cache_dir"`
}

var defaultTargetStates = []string{"MG", "SP", "BA", "ES"}

var defaultCornBeltStates = []string{
	"IA", "IL", "IN", "OH", "NE", "MN", "WI", "MO", "KS", "SD", "ND", "MI",
}

// Load reads configuration from environment variables, applying defaults
// where unset, then layers the optional profile file on top.
func Load() (*Config, error) {
	httpTimeout, err := envDuration("HTTP_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	requestDelay, err := envDuration("REQUEST_DELAY", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CacheDir:       envOrDefault("AGRI_CACHE_DIR", defaultCacheDir()),
		OutputDir:      envOrDefault("AGRI_OUTPUT_DIR", "data"),
		HTTPTimeout:    httpTimeout,
		RequestDelay:   requestDelay,
		NASSAPIKey:     os.Getenv("NASS_API_KEY"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		TargetStates:   append([]string(nil), defaultTargetStates...),
		CornBeltStates: append([]string(nil), defaultCornBeltStates...),
	}

	if path := os.Getenv("AGRI_PROFILE"); path != "" {
		if err := cfg.applyProfile(path); err != nil {
			return nil, err
		}
	}

	for _, uf := range cfg.TargetStates {
		if _, ok := domain.IBGECodeForUF(uf); !ok {
			return nil, fmt.Errorf("unknown target state %q", uf)
		}
	}
	for _, st := range cfg.CornBeltStates {
		if _, ok := domain.FIPSForState(st); !ok {
			return nil, fmt.Errorf("unknown corn belt state %q", st)
		}
	}

	return cfg, nil
}

func (c *Config) applyProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse profile %s: %w", path, err)
	}
	if len(p.TargetStates) > 0 {
		c.TargetStates = p.TargetStates
	}
	if len(p.CornBeltStates) > 0 {
		c.CornBeltStates = p.CornBeltStates
	}
	if p.OutputDir != "" {
		c.OutputDir = p.OutputDir
	}
	if p.CacheDir != "" {
		c.CacheDir = p.CacheDir
	}
	return nil
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agri-feeders"
	}
	return filepath.Join(home, ".agri-feeders")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
