package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	// Start with a copy of the defaults so later overrides never mutate them
	cfg := defaultConfig
	_loaded = &cfg

	configFile := os.Getenv("SOLACE_CONFIG_FILE")
	if configFile == "" {
		configFile = "solace.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file %s: %v, using defaults", configFile, err)
	}

	// Apply environment variable overrides (highest priority)
	ApplyEnvOverrides()
}

// LoadDefault resets the configuration to compiled-in defaults. Intended for tests.
func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, merge YAML values over them
	cfg := defaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// ApplyEnvOverrides overrides loaded configuration from environment variables
func ApplyEnvOverrides() {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}

	if httpHost := os.Getenv("SOLACE_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("SOLACE_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}

	if logLevel := os.Getenv("SOLACE_LOG_LEVEL"); logLevel != "" {
		_loaded.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("SOLACE_LOG_FORMAT"); logFormat != "" {
		_loaded.Common.Log.Format = logFormat
	}

	if jwtSecret := os.Getenv("SOLACE_JWT_SECRET"); jwtSecret != "" {
		_loaded.Common.Auth.JWTSecret = jwtSecret
	}
	if tokenTTL := os.Getenv("SOLACE_TOKEN_TTL_HOURS"); tokenTTL != "" {
		if hours, err := strconv.Atoi(tokenTTL); err == nil {
			_loaded.Common.Auth.TokenTTLHours = hours
		}
	}

	if expiry := os.Getenv("SOLACE_SESSION_EXPIRY_SECONDS"); expiry != "" {
		if seconds, err := strconv.Atoi(expiry); err == nil {
			_loaded.Common.Session.ExpirySeconds = seconds
		}
	}
	if sweep := os.Getenv("SOLACE_SESSION_SWEEP_SECONDS"); sweep != "" {
		if seconds, err := strconv.Atoi(sweep); err == nil {
			_loaded.Common.Session.SweepIntervalSeconds = seconds
		}
	}

	if stageTimeout := os.Getenv("SOLACE_STAGE_TIMEOUT_SECONDS"); stageTimeout != "" {
		if seconds, err := strconv.Atoi(stageTimeout); err == nil {
			_loaded.Common.Pipeline.StageTimeoutSeconds = seconds
		}
	}

	if band := os.Getenv("SOLACE_HEALTH_DEVIATION_BAND"); band != "" {
		if bpm, err := strconv.ParseFloat(band, 64); err == nil {
			_loaded.Common.Health.DeviationBand = bpm
		}
	}
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxRequestSize: 10485760,
		},
		Auth: authConfig{
			JWTSecret:     "default-secret-change-in-production",
			TokenTTLHours: 24,
		},
		Session: sessionConfig{
			ExpirySeconds:        600,
			SweepIntervalSeconds: 60,
		},
		Pipeline: pipelineConfig{
			StageTimeoutSeconds: 10,
		},
		Health: healthConfig{
			DeviationBand: 15,
		},
	},
}

type Common struct {
	Log      logConfig      `yaml:"log"`
	Http     httpConfig     `yaml:"http"`
	Auth     authConfig     `yaml:"auth"`
	Session  sessionConfig  `yaml:"session"`
	Pipeline pipelineConfig `yaml:"pipeline"`
	Health   healthConfig   `yaml:"health"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxRequestSize int64  `yaml:"max_request_size"`
}

type authConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

func (c authConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

type sessionConfig struct {
	ExpirySeconds        int `yaml:"expiry_seconds"`         // inactivity window before a session expires
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"` // how often the background sweep runs
}

func (c sessionConfig) ExpiryWindow() time.Duration {
	return time.Duration(c.ExpirySeconds) * time.Second
}

func (c sessionConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

type pipelineConfig struct {
	StageTimeoutSeconds int `yaml:"stage_timeout_seconds"` // per external-collaborator call
}

func (c pipelineConfig) StageTimeout() time.Duration {
	return time.Duration(c.StageTimeoutSeconds) * time.Second
}

type healthConfig struct {
	DeviationBand float64 `yaml:"deviation_band"` // bpm above/below baseline still considered normal
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Auth() authConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Auth
}

func Session() sessionConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Session
}

func Pipeline() pipelineConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Pipeline
}

func Health() healthConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Health
}
