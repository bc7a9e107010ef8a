package config

// LogConfig controls the zap logger built by the logging package.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file" koanf:"file"` // empty means console only
	JSON  bool   `yaml:"json" koanf:"json"`
}

// Config is the top-level reader configuration, corresponding to .reader.yml.
type Config struct {
	BackendURL            string    `yaml:"backend_url" koanf:"backend_url"`
	Port                  int       `yaml:"port" koanf:"port"`
	DataDir               string    `yaml:"data_dir" koanf:"data_dir"`
	SiteName              string    `yaml:"site_name" koanf:"site_name"`
	SearchLimit           int       `yaml:"search_limit" koanf:"search_limit"`
	RequestTimeoutSeconds int       `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
	CategoryCacheMinutes  int       `yaml:"category_cache_minutes" koanf:"category_cache_minutes"`
	AllowAllOrigins       bool      `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Log                   LogConfig `yaml:"log" koanf:"log"`
}
