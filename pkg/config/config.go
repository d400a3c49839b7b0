// Package config loads per-service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Well-known loopback defaults, one per service role.
const (
	DefaultAccountAddr = "127.0.0.1:8080"
	DefaultCatalogAddr = "127.0.0.1:8081"
	DefaultSellerAddr  = "127.0.0.1:8082"
	DefaultBuyerAddr   = "127.0.0.1:8083"
)

// Config is the shared configuration surface of the daemons. Fields a given
// daemon does not use keep their defaults.
type Config struct {
	BindAddr    string        `mapstructure:"bind_addr"`
	AccountAddr string        `mapstructure:"account_addr"`
	CatalogAddr string        `mapstructure:"catalog_addr"`
	HealthAddr  string        `mapstructure:"health_addr"`
	LogLevel    string        `mapstructure:"log_level"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
}

// Load reads the config from environment variables under the given prefix
// (e.g. prefix "CATALOGD" reads CATALOGD_BIND_ADDR). bindDefault is the
// daemon's well-known listen address.
func Load(prefix, bindDefault string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()

	v.SetDefault("bind_addr", bindDefault)
	v.SetDefault("account_addr", DefaultAccountAddr)
	v.SetDefault("catalog_addr", DefaultCatalogAddr)
	v.SetDefault("health_addr", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("session_ttl", time.Hour)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
