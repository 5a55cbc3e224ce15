package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

var (
	LogPath     = "./logs/"
	ServerLog   = "server"
	StoreLog    = "store"
	ServiceName = "solana-http-server"
	DefaultPort = 3030
	EnvPrefix   = "SOLANA_SERVER"
)

type RateLimit struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Rps     float64 `json:"rps" mapstructure:"rps"`
	Burst   int     `json:"burst" mapstructure:"burst"`
}

type Config struct {
	Listen      string    `json:"listen" mapstructure:"listen"`
	Port        int       `json:"port" mapstructure:"port"`
	LogPath     string    `json:"log_path" mapstructure:"log_path"`
	LogMaxSize  int       `json:"log_max_size" mapstructure:"log_max_size"`
	CorsOrigins []string  `json:"cors_origins" mapstructure:"cors_origins"`
	RateLimit   RateLimit `json:"rate_limit" mapstructure:"rate_limit"`
	Metrics     bool      `json:"metrics" mapstructure:"metrics"`
	DBUrl       string    `json:"db_url" mapstructure:"db_url"`
	DBScheme    string    `json:"db_scheme" mapstructure:"db_scheme"`
	DBUser      string    `json:"db_user" mapstructure:"db_user"`
	DBPasswd    string    `json:"db_passwd" mapstructure:"db_passwd"`
}

func (cfg *Config) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Listen, cfg.Port)
}

func (cfg *Config) StoreEnabled() bool {
	return cfg.DBUrl != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_path", "")
	v.SetDefault("log_max_size", 100)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 30.0)
	v.SetDefault("rate_limit.burst", 60)
	v.SetDefault("metrics", true)
	v.SetDefault("db_url", "")
	v.SetDefault("db_scheme", "solana")
	v.SetDefault("db_user", "")
	v.SetDefault("db_passwd", "")
}

// Load reads the optional json file at path and applies environment
// overrides. PORT is honoured on its own; everything else uses the
// SOLANA_SERVER_ prefix, e.g. SOLANA_SERVER_RATE_LIMIT_RPS.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT", EnvPrefix+"_PORT"); err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be a valid number, got %d", cfg.Port)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Rps <= 0 || cfg.RateLimit.Burst <= 0) {
		return errors.New("rate limit needs positive rps and burst")
	}
	if cfg.StoreEnabled() && cfg.DBScheme == "" {
		return errors.New("db_scheme is required when db_url is set")
	}
	return nil
}
