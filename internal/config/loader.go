// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/generator"
	"github.com/AccelByte/extend-churn-dataset/pkg/storage"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse parses the current environment into a Config without reading .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
//
// ============================================================
// DEVELOPER: Add custom validation logic here.
// ============================================================
// This function is called after environment variables are parsed.
// Sink specific settings (database, redis, s3) are checked by
// ValidateDatabase and friends only when a sink needs them.
// ============================================================
func (c *Config) Validate() error {
	genCfg, err := c.GeneratorConfig(nil)
	if err != nil {
		return err
	}
	if err := genCfg.Validate(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid LOG_FORMAT: %q (must be json or text)", c.LogFormat)
	}

	return nil
}

// ValidateDatabase checks the settings required to open the relational store.
func (c *Config) ValidateDatabase() error {
	if c.DBMaxRetries < 0 {
		return fmt.Errorf("DB_MAX_RETRIES must be non-negative, got %d", c.DBMaxRetries)
	}
	return c.StorageConfig().Validate()
}

// ValidateS3 checks the settings required by the s3 sink.
func (c *Config) ValidateS3() error {
	if c.S3Region == "" {
		return fmt.Errorf("S3_REGION is required")
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
	}
	return nil
}

// ParseReferenceTime parses REFERENCE_TIME. The zero time means now.
func (c *Config) ParseReferenceTime() (time.Time, error) {
	if c.ReferenceTime == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.ReferenceTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid REFERENCE_TIME %q: must be RFC 3339", c.ReferenceTime)
	}
	return t.UTC(), nil
}

// GeneratorConfig maps the environment onto a generator configuration.
// It fails when REFERENCE_TIME is not RFC 3339.
func (c *Config) GeneratorConfig(profile *generator.Profile) (generator.Config, error) {
	reference, err := c.ParseReferenceTime()
	if err != nil {
		return generator.Config{}, err
	}

	return generator.Config{
		Seed:            c.Seed,
		Players:         c.Players,
		HistoryDays:     c.HistoryDays,
		LookbackDays:    c.LookbackDays,
		ChurnThreshold:  c.ChurnThreshold,
		OutlierFraction: c.OutlierFraction,
		MissingFraction: c.MissingFraction,
		Drift: generator.DriftConfig{
			Fraction:        c.DriftFraction,
			HorizonDays:     c.DriftHorizonDays,
			SessionFraction: c.DriftSessionFraction,
			BetFraction:     c.DriftBetFraction,
			DepositFraction: c.DriftDepositFraction,
		},
		ReferenceTime: reference,
		Profile:       profile,
	}, nil
}

// StorageConfig maps the environment onto the relational store settings.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUsername,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SSLMode:    c.DBSSLMode,
		SQLitePath: c.SQLitePath,
		MaxRetries: uint64(max(c.DBMaxRetries, 0)),
	}
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
