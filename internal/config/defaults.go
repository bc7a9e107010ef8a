package config

import "time"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".reader.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:            "http://localhost:8000",
		Port:                  8080,
		DataDir:               ".reader",
		SiteName:              "Neromind",
		SearchLimit:           100,
		RequestTimeoutSeconds: 120,
		CategoryCacheMinutes:  30,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// RequestTimeout returns the backend request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CategoryCacheTTL returns how long the category list is kept before refetching.
func (c *Config) CategoryCacheTTL() time.Duration {
	return time.Duration(c.CategoryCacheMinutes) * time.Minute
}
