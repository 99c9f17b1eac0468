// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"strings"
)

const (
	CarrierSourceFile     = "file"
	CarrierSourceDatabase = "database"
)

// Config gathers every environment setting the server and the cellsync
// tool read.
type Config struct {
	Port string

	CanonicalDatasetPath  string
	StructuredDatasetPath string
	OverridesPath         string
	CarrierSource         string
	DatasetURL            string

	DBDialect   string
	DBPath      string
	PostgresDSN string
	MySQLDSN    string

	AMQPURL      string
	ResolveQueue string

	JWTSecret       string
	AdminAPIKeyHash string
}

func LoadConfig() Config {
	cfg := Config{
		Port:                  normalizePort(GetEnv("PORT", "8080")),
		CanonicalDatasetPath:  GetEnv("CANONICAL_DATASET_PATH", "cell-data/mcc-mnc.json"),
		StructuredDatasetPath: GetEnv("STRUCTURED_DATASET_PATH", "cell-data/mcc-mnc-converted.json"),
		OverridesPath:         GetEnv("OVERRIDES_PATH", "cell-data/overrides.yaml"),
		CarrierSource:         strings.ToLower(GetEnv("CARRIER_SOURCE", CarrierSourceFile)),
		DatasetURL:            GetEnv("DATASET_URL", "https://mcc-mnc.net/mcc-mnc.csv"),
		DBDialect:             strings.ToLower(GetEnv("DB_DIALECT")),
		DBPath:                GetEnv("DB_PATH", "cellid.db"),
		PostgresDSN:           GetEnv("POSTGRES_DSN"),
		MySQLDSN:              GetEnv("MYSQL_DSN"),
		AMQPURL:               GetEnv("AMQP_URL"),
		ResolveQueue:          GetEnv("RESOLVE_QUEUE", "carrier.resolve"),
		JWTSecret:             GetEnv("JWT_SECRET"),
		AdminAPIKeyHash:       GetEnv("ADMIN_API_KEY_HASH"),
	}
	if cfg.CarrierSource != CarrierSourceDatabase {
		cfg.CarrierSource = CarrierSourceFile
	}
	return cfg
}

// DatabaseConfigured reports whether a database has been selected
// explicitly. The server runs without one unless asked.
func (c Config) DatabaseConfigured() bool {
	return c.DBDialect != "" || c.CarrierSource == CarrierSourceDatabase
}

func normalizePort(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}
