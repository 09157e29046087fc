// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Generation configuration
	// ============================================================
	Seed            uint64  `env:"SEED" envDefault:"42"`
	Players         int     `env:"PLAYERS" envDefault:"4000"`
	HistoryDays     int     `env:"HISTORY_DAYS" envDefault:"180"`
	LookbackDays    int     `env:"LOOKBACK_DAYS" envDefault:"30"`
	ChurnThreshold  int     `env:"CHURN_LABEL_THRESHOLD" envDefault:"14"`
	OutlierFraction float64 `env:"OUTLIER_FRACTION" envDefault:"0.005"`
	MissingFraction float64 `env:"MISSING_FRACTION" envDefault:"0.01"`
	// ReferenceTime is RFC 3339. Empty means now.
	ReferenceTime string `env:"REFERENCE_TIME"`

	// ============================================================
	// Drift cohort configuration
	// ============================================================
	DriftFraction        float64 `env:"DRIFT_FRACTION" envDefault:"0.2"`
	DriftHorizonDays     int     `env:"DRIFT_HORIZON_DAYS" envDefault:"30"`
	DriftSessionFraction float64 `env:"DRIFT_SESSION_FRACTION" envDefault:"0.3"`
	DriftBetFraction     float64 `env:"DRIFT_BET_FRACTION" envDefault:"0.4"`
	DriftDepositFraction float64 `env:"DRIFT_DEPOSIT_FRACTION" envDefault:"0.2"`

	// ============================================================
	// Pipeline configuration
	// ============================================================
	ConfigPath string `env:"CONFIG_PATH" envDefault:"config/pipeline.yaml"`
	OutputDir  string `env:"OUTPUT_DIR" envDefault:"./data"`

	// ============================================================
	// Database configuration (database sink, migrate command)
	// ============================================================
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUsername string `env:"DB_USERNAME"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"churn.db"`
	// DBMaxRetries bounds the connection attempts, as REDIS_MAX_RETRIES does for Redis.
	DBMaxRetries int `env:"DB_MAX_RETRIES" envDefault:"5"`

	// ============================================================
	// Redis configuration (redis sink)
	// ============================================================
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`

	// ============================================================
	// Object storage configuration (s3 sink)
	// ============================================================
	S3Bucket    string `env:"S3_BUCKET"`
	S3Prefix    string `env:"S3_PREFIX" envDefault:"churn-dataset"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	Environment    string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"churn-dataset"`
	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`

	// ============================================================
	// Logging configuration
	// ============================================================
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}
