package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"marketdata-normalizer/internal/domain"
)

type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		AppName   string `yaml:"app_name"`
		BodyLimit int    `yaml:"body_limit"` // bytes
	} `yaml:"server"`

	Log struct {
		Filename   string `yaml:"filename"`
		Level      string `yaml:"level"`
		MaxSize    int    `yaml:"max_size"` // megabytes
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"` // days
		Compress   bool   `yaml:"compress"`
		Console    bool   `yaml:"console"`
	} `yaml:"log"`

	Exchange map[string]Exchange `yaml:"exchange"`

	Database struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"database"`
}

type Exchange struct {
	Enabled       bool   `yaml:"enabled"`
	BaseAsset     string `yaml:"base_asset"`
	QuoteCurrency string `yaml:"quote_currency"`
}

var once sync.Once
var config *Config

// GetConfig loads the file named by CONFIG_PATH, or config.yaml, once and
// panics if it cannot be read.
func GetConfig() *Config {
	once.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "config.yaml"
		}
		var err error
		config, err = Load(path)
		if err != nil {
			panic(err)
		}
	})

	return config
}

// Load reads a YAML (or JSON) config file and fills defaults.
func Load(path string) (*Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return Parse(configBytes)
}

func Parse(configBytes []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(configBytes, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset fields and keys exchanges by lower-cased name.
// Two exchange entries that differ only in case are rejected.
func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AppName == "" {
		cfg.Server.AppName = "marketdata-normalizer"
	}
	if cfg.Server.BodyLimit == 0 {
		cfg.Server.BodyLimit = 4 * 1024 * 1024
	}
	if cfg.Log.Filename == "" {
		cfg.Log.Filename = "logs/app.log"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/journal.db"
	}
	if cfg.Exchange == nil {
		cfg.Exchange = map[string]Exchange{
			"virtex": {Enabled: true, BaseAsset: domain.BTC, QuoteCurrency: domain.CAD},
		}
	}

	exchanges := make(map[string]Exchange, len(cfg.Exchange))
	for name, exchange := range cfg.Exchange {
		key := strings.ToLower(name)
		if _, ok := exchanges[key]; ok {
			return fmt.Errorf("cannot parse config: exchange %q is configured more than once", key)
		}
		if exchange.BaseAsset == "" {
			exchange.BaseAsset = domain.BTC
		}
		if exchange.QuoteCurrency == "" {
			exchange.QuoteCurrency = domain.CAD
		}
		exchanges[key] = exchange
	}
	cfg.Exchange = exchanges
	return nil
}

// ExchangeConfig returns the settings of an enabled exchange, ignoring case.
func (cfg *Config) ExchangeConfig(name string) (Exchange, bool) {
	exchange, ok := cfg.Exchange[strings.ToLower(name)]
	if !ok || !exchange.Enabled {
		return Exchange{}, false
	}
	return exchange, true
}
