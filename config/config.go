package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FeedsPath    string
	RegistryPath string

	MaxConcurrency     int
	RateLimitMs        int
	MaxRetries         int
	FeedTimeoutSeconds int
	RevalidateSeconds  int

	CacheTTLMinutes int

	// Delivery-status thresholds. The 30-day and 18-month defaults are
	// inherited business assumptions, kept configurable.
	KeyReadyWindowDays   int
	OffPlanHorizonMonths int
}

// Feed describes one remote source document.
type Feed struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Format  string `yaml:"format"`
	Enabled bool   `yaml:"enabled"`
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		FeedsPath:    getEnv("FEEDS_PATH", "./data/feeds.yaml"),
		RegistryPath: getEnv("REGISTRY_PATH", "./data/registry.yaml"),

		MaxConcurrency:     getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:        getEnvInt("RATE_LIMIT_MS", 200),
		MaxRetries:         getEnvInt("MAX_RETRIES", 3),
		FeedTimeoutSeconds: getEnvInt("FEED_TIMEOUT_SECONDS", 30),
		RevalidateSeconds:  getEnvInt("REVALIDATE_SECONDS", 3600),

		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 60),

		KeyReadyWindowDays:   getEnvInt("KEY_READY_WINDOW_DAYS", 30),
		OffPlanHorizonMonths: getEnvInt("OFF_PLAN_HORIZON_MONTHS", 18),
	}
}

// CacheTTL returns the snapshot cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// FeedTimeout returns the per-feed HTTP timeout.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeoutSeconds) * time.Second
}

// RevalidateInterval returns how long a fetched feed document stays valid
// before the client revalidates it over the network.
func (c *Config) RevalidateInterval() time.Duration {
	return time.Duration(c.RevalidateSeconds) * time.Second
}

type feedsFile struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadFeeds reads the feed descriptor list from a YAML file.
func LoadFeeds(path string) ([]Feed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feeds config: read %s: %w", path, err)
	}

	var f feedsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("feeds config: parse %s: %w", path, err)
	}

	for i, feed := range f.Feeds {
		if strings.TrimSpace(feed.Name) == "" {
			return nil, fmt.Errorf("feeds config: feed %d has no name", i)
		}
		if feed.Enabled && strings.TrimSpace(feed.URL) == "" {
			return nil, fmt.Errorf("feeds config: feed %q is enabled but has no url", feed.Name)
		}
	}
	return f.Feeds, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
