// Package config loads gate configuration from an optional YAML file,
// then applies environment overrides. Precedence, lowest to highest:
// built-in defaults, .casparian.yaml, CASPARIAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/farcloser/casparian/internal/rules"
)

const DefaultPath = ".casparian.yaml"

// Environment toggles. The rule-id style switch is read once here and
// threaded through explicitly; parsers never touch the environment.
const (
	EnvRuleIDStyle      = "CASPARIAN_RULE_ID_STYLE"
	EnvStrictSubprocess = "CASPARIAN_STRICT_SUBPROCESS_ERRORS"
	EnvTestMode         = "CASPARIAN_TEST_MODE"
	EnvMinCoverage      = "CASPARIAN_MIN_COVERAGE"
)

// Config holds the quality-gate settings.
type Config struct {
	// MinCoverage is the coverage threshold in percent. Zero disables
	// the threshold: the coverage gate then reports informationally.
	MinCoverage int `yaml:"min_coverage"`

	// RuleIDStyle is "bare" or "tool".
	RuleIDStyle string `yaml:"rule_id_style"`

	// StrictSubprocessErrors makes a missing tool fail the pipeline
	// instead of producing a non-blocking "tool not found" verdict.
	StrictSubprocessErrors bool `yaml:"strict_subprocess_errors"`

	// TestMode suppresses reads of real coverage files.
	TestMode bool `yaml:"test_mode"`

	// SkipTests skips the pytest gate.
	SkipTests bool `yaml:"skip_tests"`

	// Paths are the default lint/type-check targets when no changed
	// files are in scope.
	Paths []string `yaml:"paths"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MinCoverage: 80,
		RuleIDStyle: "bare",
		Paths:       []string{"src", "tests"},
	}
}

var errInvalidConfig = errors.New("invalid configuration file")

// Load reads the configuration file at path and applies environment
// overrides. A missing file is not an error; defaults apply. path == ""
// means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path is user-chosen
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", errInvalidConfig, path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file, defaults apply.
	default:
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvRuleIDStyle); ok {
		c.RuleIDStyle = v
	}

	if v, ok := os.LookupEnv(EnvStrictSubprocess); ok {
		c.StrictSubprocessErrors = truthy(v)
	}

	if v, ok := os.LookupEnv(EnvTestMode); ok {
		c.TestMode = truthy(v)
	}

	if v, ok := os.LookupEnv(EnvMinCoverage); ok {
		if pct, err := strconv.Atoi(v); err == nil {
			c.MinCoverage = pct
		}
	}
}

// Style resolves the configured rule-id style.
func (c Config) Style() rules.Style {
	return rules.ParseStyle(c.RuleIDStyle)
}

// truthy interprets the usual affirmative spellings.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}

	return false
}
