package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all report settings, populated from environment variables.
type Config struct {
	DataPath        string
	OutputDir       string
	LocationFilter  string
	LeaderboardSize int
	HistogramBins   int

	// CSV column names in the source catalogue.
	TimestampColumn string
	MagnitudeColumn string
	LocationColumn  string

	HTTPAddr        string
	Serve           bool
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing of the finished summary.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	leaderboardSize, err := parsePositiveInt("LEADERBOARD_SIZE", 10)
	if err != nil {
		return nil, err
	}

	histogramBins, err := parsePositiveInt("HISTOGRAM_BINS", 20)
	if err != nil {
		return nil, err
	}

	serve, err := parseBool("SERVE", false)
	if err != nil {
		return nil, err
	}

	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	// An explicitly empty LOCATION_FILTER means "all locations".
	locationFilter := "Ilocos Norte"
	if v, ok := os.LookupEnv("LOCATION_FILTER"); ok {
		locationFilter = v
	}

	cfg := &Config{
		DataPath:        sharedcfg.EnvOrDefault("DATA_PATH", "data/phivolcs_earthquake_data.csv"),
		OutputDir:       sharedcfg.EnvOrDefault("OUTPUT_DIR", "out"),
		LocationFilter:  locationFilter,
		LeaderboardSize: leaderboardSize,
		HistogramBins:   histogramBins,

		TimestampColumn: sharedcfg.EnvOrDefault("CSV_TIMESTAMP_COLUMN", "Date_Time_PH"),
		MagnitudeColumn: sharedcfg.EnvOrDefault("CSV_MAGNITUDE_COLUMN", "Magnitude"),
		LocationColumn:  sharedcfg.EnvOrDefault("CSV_LOCATION_COLUMN", "General_Location"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		Serve:           serve,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "quake-monthly-extremes"),
	}

	if cfg.DataPath == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
