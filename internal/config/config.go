package config

import (
	"fmt"
	"time"

	"github.com/Behyna/wallet-service/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API         API          `mapstructure:"api"`
	Database    mysql.Config `mapstructure:"database"`
	Idempotency Idempotency  `mapstructure:"idempotency"`
	Metrics     Metrics      `mapstructure:"metrics"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Idempotency struct {
	KeyTTL        time.Duration `mapstructure:"key_ttl"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type Metrics struct {
	CollectInterval time.Duration `mapstructure:"collect_interval"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("idempotency.key_ttl", 24*time.Hour)
	viper.SetDefault("idempotency.purge_interval", time.Hour)
	viper.SetDefault("metrics.collect_interval", 15*time.Second)

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
