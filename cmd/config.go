package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	PersonnelServiceURL string
	StaleThreshold      time.Duration
	MetricsNamespace    string
}

// DSN builds the postgres connection string from the DB_* settings.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
