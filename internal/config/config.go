// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the process needs at startup. Values come from the
// YAML file, then environment overrides, then defaults, in that precedence.
type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	ChannelSecret string `yaml:"channel_secret"`
	ChannelToken  string `yaml:"channel_token"`
	LineAPIBase   string `yaml:"line_api_base"`
	InventoryFile string `yaml:"inventory_file"`
	AuditFile     string `yaml:"audit_file"`
	OTLPEndpoint  string `yaml:"otlp_endpoint"`
	ServiceName   string `yaml:"service_name"`
}

// Load reads the configuration. path may be empty or point at a missing
// file; the file is optional because every field has an env override or a
// default. Credentials are not validated here — serving without them fails
// at startup, but the CLI never needs them.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr:    ":5000",
		LineAPIBase:   "https://api.line.me",
		InventoryFile: "inventory.json",
		AuditFile:     "log.txt",
		ServiceName:   "stockline",
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnv(&cfg.ChannelSecret, "LINE_CHANNEL_SECRET")
	applyEnv(&cfg.ChannelToken, "LINE_CHANNEL_ACCESS_TOKEN")
	applyEnv(&cfg.LineAPIBase, "LINE_API_BASE")
	applyEnv(&cfg.InventoryFile, "STOCKLINE_INVENTORY_FILE")
	applyEnv(&cfg.AuditFile, "STOCKLINE_AUDIT_FILE")
	applyEnv(&cfg.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	applyEnv(&cfg.ServiceName, "SERVICE_NAME")
	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}

	return cfg, nil
}

func applyEnv(field *string, key string) {
	if value := os.Getenv(key); value != "" {
		*field = value
	}
}
