package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// RenderConfig controls the size and destination of the rendered surface.
// The camera and the market terms are fixed.
type RenderConfig struct {
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
	OutputFile   string  `yaml:"output_file"`
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Render settings
	Render RenderConfig `yaml:"render"`
}

type YAMLConfig struct {
	Port    string        `yaml:"port"`
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
}

// File is the YAML file Load reads from the working directory.
var File = "config.yaml"

// EnvFile is loaded into the environment, without overriding it, before
// any setting is read.
var EnvFile = ".env"

// Load resolves settings from defaults, then the YAML file, then the
// environment.
func Load() *Config {
	// a missing .env is normal outside development
	_ = godotenv.Load(EnvFile)

	cfg := &Config{
		Port: "8080",
		Logging: LoggingConfig{
			LogLevel: "info",
			LogFile:  "surface.log",
		},
		Render: RenderConfig{
			WidthInches:  12,
			HeightInches: 8,
			OutputFile:   "surface.png",
		},
	}

	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		if yamlCfg.Port != "" {
			cfg.Port = yamlCfg.Port
		}
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}
		if yamlCfg.Render.WidthInches > 0 {
			cfg.Render.WidthInches = yamlCfg.Render.WidthInches
		}
		if yamlCfg.Render.HeightInches > 0 {
			cfg.Render.HeightInches = yamlCfg.Render.HeightInches
		}
		if yamlCfg.Render.OutputFile != "" {
			cfg.Render.OutputFile = yamlCfg.Render.OutputFile
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Logging.LogLevel = getEnv("LOG_LEVEL", cfg.Logging.LogLevel)
	cfg.Logging.LogFile = getEnv("LOG_FILE", cfg.Logging.LogFile)
	cfg.Render.WidthInches = getEnvPositiveFloat("RENDER_WIDTH", cfg.Render.WidthInches)
	cfg.Render.HeightInches = getEnvPositiveFloat("RENDER_HEIGHT", cfg.Render.HeightInches)
	cfg.Render.OutputFile = getEnv("RENDER_OUTPUT", cfg.Render.OutputFile)

	return cfg
}

func loadYAMLConfig() *YAMLConfig {
	data, err := os.ReadFile(File)
	if err != nil {
		// Could not read config.yaml - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config.yaml - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPositiveFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
