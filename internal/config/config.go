// Package config loads the backend configuration from the environment, an
// optional .env file and an optional configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrAPIURLMissing = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid = errors.New("environment variable API_URL must be a valid URL")
)

// DatabaseFile is the name of the SQLite database file in the data directory.
const DatabaseFile = "moneybooks.db"

// Config is the configuration of the backend.
type Config struct {
	APIURL           *url.URL
	Port             int
	GinMode          string
	LogFormat        string
	DataDir          string
	CORSAllowOrigins []string
	EnablePprof      bool
	AMQPURL          string
	AMQPExchange     string
}

// raw holds the values as viper reads them.
type raw struct {
	APIURL           string `mapstructure:"api_url"`
	Port             int    `mapstructure:"port"`
	GinMode          string `mapstructure:"gin_mode"`
	LogFormat        string `mapstructure:"log_format"`
	DataDir          string `mapstructure:"data_dir"`
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"`
	EnablePprof      bool   `mapstructure:"enable_pprof"`
	AMQPURL          string `mapstructure:"amqp_url"`
	AMQPExchange     string `mapstructure:"amqp_exchange"`
}

// Load reads the configuration.
//
// Values from the environment take precedence over the file set in
// CONFIG_FILE. A .env file in the working directory is loaded into the
// environment first, without overriding variables that are already set.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()

	// Every key needs a default so that Unmarshal picks up values
	// that are only set in the environment
	v.SetDefault("api_url", "")
	v.SetDefault("port", 8080)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_format", "")
	v.SetDefault("data_dir", "data")
	v.SetDefault("cors_allow_origins", "")
	v.SetDefault("enable_pprof", false)
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "moneybooks")
	v.AutomaticEnv()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if r.APIURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	apiURL, err := url.Parse(r.APIURL)
	if err != nil || apiURL.Scheme == "" || apiURL.Host == "" {
		return Config{}, fmt.Errorf("%w: '%s'", ErrAPIURLInvalid, r.APIURL)
	}

	return Config{
		APIURL:           apiURL,
		Port:             r.Port,
		GinMode:          r.GinMode,
		LogFormat:        r.LogFormat,
		DataDir:          r.DataDir,
		CORSAllowOrigins: strings.Fields(r.CORSAllowOrigins),
		EnablePprof:      r.EnablePprof,
		AMQPURL:          r.AMQPURL,
		AMQPExchange:     r.AMQPExchange,
	}, nil
}

// DatabasePath returns the path of the SQLite database file.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

// Address returns the address the HTTP server listens on.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
