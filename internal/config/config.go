package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qualityline/qualityline/internal/quality"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultCapacity       = 10
	DefaultHTTPPort       = 8080
	DefaultStreamInterval = 5 * time.Second
	DefaultIDScheme       = "sequential"
	DefaultLogLevel       = "info"
)

// Config is the top-level qualityline configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Criteria CriteriaConfig `yaml:"criteria"`
	Boxes    BoxesConfig    `yaml:"boxes"`
	Shell    ShellConfig    `yaml:"shell"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Alerts   AlertsConfig   `yaml:"alerts"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`
}

// CriteriaConfig holds the acceptance thresholds. Bounds are inclusive.
type CriteriaConfig struct {
	MinWeightG  float64 `yaml:"min_weight_g"`
	MaxWeightG  float64 `yaml:"max_weight_g"`
	MinLengthCm float64 `yaml:"min_length_cm"`
	MaxLengthCm float64 `yaml:"max_length_cm"`

	// Colors is the set of accepted color names.
	Colors []string `yaml:"colors"`

	// ColorAliases maps alternative spellings to canonical names,
	// e.g. azul: blue. Matched case-insensitively.
	ColorAliases map[string]string `yaml:"color_aliases"`
}

// ToCriteria converts the config block into the evaluator's Criteria value.
func (c CriteriaConfig) ToCriteria() quality.Criteria {
	return quality.Criteria{
		MinWeight:    c.MinWeightG,
		MaxWeight:    c.MaxWeightG,
		MinLength:    c.MinLengthCm,
		MaxLength:    c.MaxLengthCm,
		Colors:       c.Colors,
		ColorAliases: c.ColorAliases,
	}
}

// BoxesConfig holds box lifecycle settings.
type BoxesConfig struct {
	// Capacity is the number of pieces a box holds before it is sealed.
	Capacity int `yaml:"capacity"`
}

// ShellConfig holds presentation shell settings.
type ShellConfig struct {
	// IDScheme selects how piece IDs are generated when the operator does
	// not supply one: sequential (P0001, P0002, ...) or uuid.
	IDScheme string `yaml:"id_scheme"`
}

// MonitorConfig configures the optional read-only HTTP monitor surface.
type MonitorConfig struct {
	// Enabled starts the HTTP server when true.
	Enabled bool `yaml:"enabled"`

	// HTTPPort is the port the JSON API, /metrics, and the WebSocket
	// stream listen on.
	HTTPPort int `yaml:"http_port"`

	// StreamInterval controls how often the WebSocket hub broadcasts a
	// fresh report snapshot.
	StreamInterval time.Duration `yaml:"stream_interval"`

	// Auth configures API authentication for the monitor endpoints.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig specifies monitor endpoint authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// Header is the HTTP header carrying the key. Defaults to X-API-Key.
	Header string `yaml:"header"`

	// KeyEnv is the name of the environment variable holding the expected key.
	KeyEnv string `yaml:"key_env"`
}

// Key returns the API key resolved from the environment.
// Returns empty string if KeyEnv is unset or the variable is not found.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name or the default.
func (a AuthConfig) EffectiveHeader() string {
	if a.Header == "" {
		return "X-API-Key"
	}
	return a.Header
}

// AlertsConfig holds all alerting rules and webhook targets.
type AlertsConfig struct {
	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines a threshold-based alert condition over report fields.
type AlertRule struct {
	// Name is the human-readable alert identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "rejected_pct > 20" or
	// "weight_rejections >= 5".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses re-fires for this duration after an alert fires.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// URLEnv is the name of the environment variable holding the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	// yaml merges mappings into a pre-populated map. A file that sets
	// color_aliases must replace the default aliases, not extend them.
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err == nil && raw.Criteria.ColorAliases != nil {
		cfg.Criteria.ColorAliases = raw.Criteria.ColorAliases
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with the factory defaults.
// Running without a config file at all is supported — everything has a default.
func Default() *Config {
	dc := quality.DefaultCriteria()
	return &Config{
		Criteria: CriteriaConfig{
			MinWeightG:   dc.MinWeight,
			MaxWeightG:   dc.MaxWeight,
			MinLengthCm:  dc.MinLength,
			MaxLengthCm:  dc.MaxLength,
			Colors:       dc.Colors,
			ColorAliases: dc.ColorAliases,
		},
		Boxes: BoxesConfig{Capacity: DefaultCapacity},
		Shell: ShellConfig{IDScheme: DefaultIDScheme},
		Monitor: MonitorConfig{
			HTTPPort:       DefaultHTTPPort,
			StreamInterval: DefaultStreamInterval,
		},
		LogLevel: DefaultLogLevel,
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	c := cfg.Criteria
	if c.MinWeightG >= c.MaxWeightG {
		return fmt.Errorf("criteria: min_weight_g %v must be below max_weight_g %v", c.MinWeightG, c.MaxWeightG)
	}
	if c.MinLengthCm >= c.MaxLengthCm {
		return fmt.Errorf("criteria: min_length_cm %v must be below max_length_cm %v", c.MinLengthCm, c.MaxLengthCm)
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("criteria: at least one accepted color is required")
	}
	for alias, target := range c.ColorAliases {
		found := false
		for _, accepted := range c.Colors {
			if target == accepted {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("criteria: alias %q maps to %q, which is not an accepted color", alias, target)
		}
	}

	if cfg.Boxes.Capacity < 1 {
		return fmt.Errorf("boxes: capacity must be at least 1")
	}

	switch cfg.Shell.IDScheme {
	case "sequential", "uuid":
	default:
		return fmt.Errorf("shell: unknown id_scheme %q", cfg.Shell.IDScheme)
	}

	if cfg.Monitor.Enabled {
		if cfg.Monitor.HTTPPort < 1 || cfg.Monitor.HTTPPort > 65535 {
			return fmt.Errorf("monitor: http_port %d out of range", cfg.Monitor.HTTPPort)
		}
		if cfg.Monitor.StreamInterval <= 0 {
			return fmt.Errorf("monitor: stream_interval must be positive")
		}
	}
	switch cfg.Monitor.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("monitor: unknown auth mode %q", cfg.Monitor.Auth.Mode)
	}

	for i, rule := range cfg.Alerts.Rules {
		if rule.Name == "" {
			return fmt.Errorf("alerts: rules[%d]: name is required", i)
		}
		if rule.Condition == "" {
			return fmt.Errorf("alerts: rules[%d] %q: condition is required", i, rule.Name)
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	return nil
}
