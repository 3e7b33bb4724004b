package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	// DBDSN vacío => repos in-memory (modo dev).
	DBDSN string

	LogLevel  string
	LogFormat string
	AppName   string

	// EnforceProtocolWindows=false vuelve al comportamiento legacy (ventanas solo en la UI).
	EnforceProtocolWindows bool
	LocalStateTTL          time.Duration

	OdinBaseURL string
	OdinAPIKey  string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_dsn", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("app_name", "litter-milestones")
	v.SetDefault("enforce_protocol_windows", true)
	v.SetDefault("local_state_ttl", "10m")
	v.SetDefault("odin_base_url", "")
	v.SetDefault("odin_api_key", "")
	v.SetDefault("http_read_timeout", "5s")
	v.SetDefault("http_write_timeout", "10s")
}

// Load lee la config desde variables de entorno (PORT, DB_DSN, LOG_LEVEL, ...).
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Port:                   strings.TrimSpace(v.GetString("port")),
		DBDSN:                  strings.TrimSpace(v.GetString("db_dsn")),
		LogLevel:               v.GetString("log_level"),
		LogFormat:              v.GetString("log_format"),
		AppName:                strings.TrimSpace(v.GetString("app_name")),
		EnforceProtocolWindows: v.GetBool("enforce_protocol_windows"),
		LocalStateTTL:          v.GetDuration("local_state_ttl"),
		OdinBaseURL:            strings.TrimSpace(v.GetString("odin_base_url")),
		OdinAPIKey:             strings.TrimSpace(v.GetString("odin_api_key")),
		ReadTimeout:            v.GetDuration("http_read_timeout"),
		WriteTimeout:           v.GetDuration("http_write_timeout"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LocalStateTTL <= 0 {
		return Config{}, fmt.Errorf("invalid LOCAL_STATE_TTL=%q", v.GetString("local_state_ttl"))
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid http timeouts read=%q write=%q",
			v.GetString("http_read_timeout"), v.GetString("http_write_timeout"))
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// OdinEnabled: con base URL y API key se verifican tokens Bearer; si no, modo dev.
func (c Config) OdinEnabled() bool {
	return c.OdinBaseURL != "" && c.OdinAPIKey != ""
}
