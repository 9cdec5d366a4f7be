package cmd

import "fmt"

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort                  string
	DBHost                    string
	DBPort                    string
	DBUser                    string
	DBPassword                string
	DBName                    string
	DBSslMode                 string
	GeoServiceURL             string
	KafkaBrokers              string
	KafkaTopic                string
	KafkaConsumerGroup        string
	KafkaBasketConfirmedTopic string
	OutboxBatchSize           int
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
