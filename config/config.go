package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Storage StorageConfig  `json:"storage"`
	Blob    BlobConfig     `json:"blob"`
	Event   EventConfig    `json:"event"`
	HTTP    HTTPConfig     `json:"http"`
	Log     LogConfig      `json:"log"`
	Render  RenderConfig   `json:"render"`
	Tracing *TracingConfig `json:"tracing,omitempty"`
}

type TracingConfig struct {
	ServiceName string `json:"service_name,omitempty"`
	Exporter    string `json:"exporter,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type BlobConfig struct {
	Driver string `json:"driver"`
	Bucket string `json:"bucket"`
	Region string `json:"region,omitempty"`
}

type EventConfig struct {
	Driver string `json:"driver"`
	URL    string `json:"url"`
}

type HTTPConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// RenderConfig carries host attributes spread onto the rendered root element
// and an optional page title for full-page exports.
type RenderConfig struct {
	Attrs map[string]string `json:"attrs,omitempty"`
	Title string            `json:"title,omitempty"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigOrDefault returns the parsed config file, or defaults when the
// file does not exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}
