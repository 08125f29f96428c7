package util

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type configValue struct {
	envVarName   string
	required     bool
	errorMessage string
	defaultValue string
	Value        string
}

type Config struct {
	DbConnectionString configValue
	SeqUrl             configValue
	SeqToken           configValue
	Environment        configValue
	ScrapeUserAgent    configValue
	ScrapeDelay        configValue
	ScrapeTimeout      configValue
	ScrapeJobTimeout   configValue
}

func NewConfig() *Config {
	const dbConnectionStringName = "DB_CONNECTION_STRING"
	const seqUrlName = "SEQ_URL"
	const seqTokenName = "SEQ_TOKEN"
	const environmentName = "ENVIRONMENT"
	const scrapeUserAgentName = "SCRAPE_USER_AGENT"
	const scrapeDelayName = "SCRAPE_DELAY_SECONDS"
	const scrapeTimeoutName = "SCRAPE_TIMEOUT_SECONDS"
	const scrapeJobTimeoutName = "SCRAPE_JOB_TIMEOUT_MINUTES"

	return &Config{
		DbConnectionString: configValue{
			envVarName:   dbConnectionStringName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s is set and in DSN format", dbConnectionStringName),
		},
		SeqUrl: configValue{
			envVarName: seqUrlName,
			required:   false,
		},
		SeqToken: configValue{
			envVarName: seqTokenName,
			required:   false,
		},
		Environment: configValue{
			envVarName:   environmentName,
			required:     false,
			defaultValue: "development",
		},
		ScrapeUserAgent: configValue{
			envVarName:   scrapeUserAgentName,
			required:     false,
			defaultValue: "SubastasParserBot/1.0",
		},
		ScrapeDelay: configValue{
			envVarName:   scrapeDelayName,
			required:     false,
			defaultValue: "1.0",
		},
		ScrapeTimeout: configValue{
			envVarName:   scrapeTimeoutName,
			required:     false,
			defaultValue: "30",
		},
		ScrapeJobTimeout: configValue{
			envVarName:   scrapeJobTimeoutName,
			required:     false,
			defaultValue: "30",
		},
	}
}

var config *Config

func GetConfig() *Config {
	if config == nil {
		config = load()
	}

	return config
}

func load() *Config {
	config := NewConfig()

	values := []*configValue{
		&config.DbConnectionString,
		&config.SeqUrl,
		&config.SeqToken,
		&config.Environment,
		&config.ScrapeUserAgent,
		&config.ScrapeDelay,
		&config.ScrapeTimeout,
		&config.ScrapeJobTimeout,
	}

	for _, v := range values {
		if err := populateEnv(v); err != nil {
			log.Fatal(err)
		}
	}

	return config
}

func populateEnv(m *configValue) (err error) {
	v := os.Getenv(m.envVarName)

	if v == "" && m.required {
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}

		return fmt.Errorf("environment variable %s is not set", m.envVarName)
	}

	if v == "" {
		m.Value = m.defaultValue
		return nil
	}

	m.Value = v
	return nil
}

// ScrapeDelayDuration returns the minimum delay between requests to one site.
func (c *Config) ScrapeDelayDuration() time.Duration {
	seconds, err := strconv.ParseFloat(c.ScrapeDelay.Value, 64)
	if err != nil || seconds < 0 {
		seconds = 1.0
	}

	return time.Duration(seconds * float64(time.Second))
}

// ScrapeTimeoutDuration returns the per-request timeout.
func (c *Config) ScrapeTimeoutDuration() time.Duration {
	seconds, err := strconv.Atoi(c.ScrapeTimeout.Value)
	if err != nil || seconds <= 0 {
		seconds = 30
	}

	return time.Duration(seconds) * time.Second
}

// ScrapeJobTimeoutDuration returns the wall-clock budget for a full house scrape.
func (c *Config) ScrapeJobTimeoutDuration() time.Duration {
	minutes, err := strconv.Atoi(c.ScrapeJobTimeout.Value)
	if err != nil || minutes <= 0 {
		minutes = 30
	}

	return time.Duration(minutes) * time.Minute
}
