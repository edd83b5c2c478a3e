package config

import (
	"os"
	"strconv"
	"strings"

	"gomwu/domain/stats"
	"gomwu/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Output   OutputConfig
	Logging  LoggingConfig
}

// AnalysisConfig holds the invocation parameters of one comparison
type AnalysisConfig struct {
	ExcelPath        string `validate:"required"`
	SheetName        string // empty means the first sheet
	GroupColumn      string `validate:"required"`
	ValueColumn      string `validate:"required,nefield=GroupColumn"`
	Group1Name       string `validate:"required"`
	Group2Name       string `validate:"required,nefield=Group1Name"`
	Method           string `validate:"oneof=auto exact asymptotic"`
	EffectSizeMethod string `validate:"oneof=p-inverse rank-z"`
	UseContinuity    bool
}

// OutputConfig holds output naming and artifact toggles
type OutputConfig struct {
	Prefix     string `validate:"required,excludesall=/\\"`
	Dir        string
	Plot       bool
	HTMLReport bool
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// Default returns the configuration of the stock invocation
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			ExcelPath:        "data.xlsx",
			GroupColumn:      "Group",
			ValueColumn:      "Value",
			Group1Name:       "Control",
			Group2Name:       "Treatment",
			Method:           "auto",
			EffectSizeMethod: stats.EffectSizePInverse,
			UseContinuity:    true,
		},
		Output: OutputConfig{
			Prefix: "mannwhitney",
			Dir:    ".",
			Plot:   true,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load reads an optional .env file, overlays environment variables on the
// defaults and validates the result
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	config := Default()
	config.Analysis = loadAnalysisConfig(config.Analysis)
	config.Output = loadOutputConfig(config.Output)
	config.Logging = LoggingConfig{
		Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", config.Logging.Level)),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAnalysisConfig(def AnalysisConfig) AnalysisConfig {
	return AnalysisConfig{
		ExcelPath:        getEnvOrDefault("MWU_EXCEL_PATH", def.ExcelPath),
		SheetName:        getEnvOrDefault("MWU_SHEET", def.SheetName),
		GroupColumn:      getEnvOrDefault("MWU_GROUP_COLUMN", def.GroupColumn),
		ValueColumn:      getEnvOrDefault("MWU_VALUE_COLUMN", def.ValueColumn),
		Group1Name:       getEnvOrDefault("MWU_GROUP1", def.Group1Name),
		Group2Name:       getEnvOrDefault("MWU_GROUP2", def.Group2Name),
		Method:           getEnvOrDefault("MWU_METHOD", def.Method),
		EffectSizeMethod: getEnvOrDefault("MWU_EFFECT_SIZE_METHOD", def.EffectSizeMethod),
		UseContinuity:    getEnvBoolOrDefault("MWU_CONTINUITY", def.UseContinuity),
	}
}

func loadOutputConfig(def OutputConfig) OutputConfig {
	return OutputConfig{
		Prefix:     getEnvOrDefault("MWU_OUTPUT_PREFIX", def.Prefix),
		Dir:        getEnvOrDefault("MWU_OUTPUT_DIR", def.Dir),
		Plot:       getEnvBoolOrDefault("MWU_PLOT", def.Plot),
		HTMLReport: getEnvBoolOrDefault("MWU_HTML_REPORT", def.HTMLReport),
	}
}

var validate = validator.New()

// Validate checks the struct tags and reports the first failing field
func Validate(config *Config) error {
	if config == nil {
		return errors.ConfigInvalid("configuration is nil")
	}
	if err := validate.Struct(config); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.ConfigInvalid(fe.Namespace() + " failed '" + fe.Tag() + "' validation")
		}
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
