// Package config reads the server configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Variables already set in the
// environment win over the file.
//
//	THERMAL_MCP_LOG_LEVEL  "debug" enables per-request logging on stderr
//	THERMAL_PARAMS         JSON object of detection parameter overrides
//	THERMAL_PARAMS_FILE    path to a JSON file of overrides, applied after THERMAL_PARAMS
//
// Tests use testify, as in the numeric packages.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Environment variable names.
const (
	EnvLogLevel   = "THERMAL_MCP_LOG_LEVEL"
	EnvParams     = "THERMAL_PARAMS"
	EnvParamsFile = "THERMAL_PARAMS_FILE"
)

// Config is the resolved server configuration.
type Config struct {
	// Debug enables verbose logging.
	Debug bool

	// Params is the base parameter set every tool call starts from.
	Params params.Set

	// ParamsFile is the override file that was applied, if any.
	ParamsFile string
}

// Load reads the configuration.
//
// envFiles are passed to godotenv; with none given it looks for .env in the
// working directory. A missing file is not an error. Malformed parameter
// overrides are.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Debug:  strings.EqualFold(os.Getenv(EnvLogLevel), "debug"),
		Params: params.Defaults(),
	}

	if raw := strings.TrimSpace(os.Getenv(EnvParams)); raw != "" {
		overrides, err := params.ParseOverrides([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvParams, err)
		}
		cfg.Params = cfg.Params.With(overrides)
	}

	if path := strings.TrimSpace(os.Getenv(EnvParamsFile)); path != "" {
		set, err := LoadParamsFile(cfg.Params, path)
		if err != nil {
			return nil, err
		}
		cfg.Params = set
		cfg.ParamsFile = path
	}

	return cfg, nil
}

// LoadParamsFile applies the overrides in the JSON file at path on top of base.
func LoadParamsFile(base params.Set, path string) (params.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read parameter file: %w", err)
	}
	overrides, err := params.ParseOverrides(data)
	if err != nil {
		return base, fmt.Errorf("parameter file %s: %w", path, err)
	}
	return base.With(overrides), nil
}
