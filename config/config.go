package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/wrap"
)

type Config struct {
	BaseConfig
	DatasetURLs DatasetURLs
	ClickHouse  ClickHouse
}

type BaseConfig struct {
	IsProduction bool           `env:"PRODUCTION"`
	Backend      DatasetBackend `env:"DATASET_BACKEND"`
	API          API
}

type API struct {
	Port string `env:"API_PORT"`
}

// DatasetURLs configures the HTTP backend: one CSV export URL per dataset family.
type DatasetURLs struct {
	TimeUse    string `env:"TIMEUSE_DATASET_URL"`
	Travel     string `env:"TRAVEL_DATASET_URL"`
	Trips      string `env:"TRIPS_DATASET_URL"`
	DayPattern string `env:"DAY_PATTERN_DATASET_URL"`
}

// ClickHouse configures the warehouse backend: one all-String table per dataset
// family, mirroring the CSV column contract.
type ClickHouse struct {
	Address         string `env:"CLICKHOUSE_ADDRESS"`
	DatabaseName    string `env:"CLICKHOUSE_DB_NAME"`
	Username        string `env:"CLICKHOUSE_USERNAME"`
	Password        string `env:"CLICKHOUSE_PASSWORD"`
	Debug           bool   `env:"CLICKHOUSE_DEBUG_ENABLED"`
	TimeUseTable    string `env:"CLICKHOUSE_TIMEUSE_TABLE"`
	TravelTable     string `env:"CLICKHOUSE_TRAVEL_TABLE"`
	TripsTable      string `env:"CLICKHOUSE_TRIPS_TABLE"`
	DayPatternTable string `env:"CLICKHOUSE_DAY_PATTERN_TABLE"`
}

type DatasetBackend string

const (
	BackendHTTP       DatasetBackend = "http"
	BackendClickHouse DatasetBackend = "clickhouse"
)

func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	parseOptions := env.Options{RequiredIfNoDef: true}

	var config Config

	if err := env.ParseWithOptions(&config.BaseConfig, parseOptions); err != nil {
		return Config{}, err
	}

	switch config.Backend {
	case BackendHTTP:
		if err := env.ParseWithOptions(&config.DatasetURLs, parseOptions); err != nil {
			return Config{}, err
		}
	case BackendClickHouse:
		if err := env.ParseWithOptions(&config.ClickHouse, parseOptions); err != nil {
			return Config{}, err
		}
	default:
		err := fmt.Errorf("must be one of: '%s', '%s'", BackendHTTP, BackendClickHouse)
		return Config{}, wrap.Errorf(
			err, "unsupported value '%s' for DATASET_BACKEND in env", config.Backend,
		)
	}

	return config, nil
}
