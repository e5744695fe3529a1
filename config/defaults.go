package config

// Default directories and file paths for flowdoc.
const (
	// DefaultConfigDir is the base directory for storing flowdoc artifacts.
	DefaultConfigDir = ".flowdoc"
	// DefaultBlobDir is the default directory for filesystem blobs (HTML exports).
	DefaultBlobDir = DefaultConfigDir + "/files"
	// DefaultSQLiteDSN is the default data source name for SQLite storage.
	DefaultSQLiteDSN = DefaultConfigDir + "/flowdoc.db"
	// DefaultConfigFile is the config file looked up in the working directory.
	DefaultConfigFile = "flowdoc.config.json"
	// DefaultHTTPHost and DefaultHTTPPort are the API server bind defaults.
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 4242
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Driver == "sqlite" && cfg.Storage.DSN == "" {
		cfg.Storage.DSN = DefaultSQLiteDSN
	}
	if cfg.Blob.Driver == "" {
		cfg.Blob.Driver = "filesystem"
	}
	if cfg.Event.Driver == "" {
		cfg.Event.Driver = "memory"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = DefaultHTTPHost
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = DefaultHTTPPort
	}
}
