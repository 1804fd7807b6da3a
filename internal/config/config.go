package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Endpoints are the URLs of the remote functions, one per domain
type Endpoints struct {
	Auth          string `json:"auth"`
	Projects      string `json:"projects"`
	Measurements  string `json:"measurements"`
	Photos        string `json:"photos"`
	Suppliers     string `json:"suppliers"`
	Admin         string `json:"admin"`
	Assistant     string `json:"assistant"`
	Notifications string `json:"notifications"`
}

// VoiceConfig configures audio capture and speech playback for the assistant
type VoiceConfig struct {
	// Command that writes captured audio to stdout until interrupted
	RecordCommand string `json:"record_command"`

	// Command that speaks the text given as its last argument
	SpeakCommand string `json:"speak_command"`

	Language       string  `json:"language"`
	Rate           float64 `json:"rate"`
	TimeoutSeconds int     `json:"timeout_seconds"`
}

// Config represents the application configuration
type Config struct {
	Endpoints Endpoints `json:"endpoints"`

	// Per-request timeout applied to every remote call
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`

	// Requests per second allowed towards the remote functions
	RateLimit float64 `json:"rate_limit"`
	RateBurst int     `json:"rate_burst"`

	// How long a verified session stays valid
	SessionTTLHours int `json:"session_ttl_hours"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	Voice VoiceConfig `json:"voice"`

	// Admin token is read from the environment only and never saved
	AdminToken string `json:"-"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Endpoints: Endpoints{
			Auth:          "https://functions.poehali.dev/2642096f-c763-42ef-8dc1-67e3acce37b3",
			Projects:      "https://functions.poehali.dev/91a90ccd-9392-4390-8d40-9b2eb3908daa",
			Measurements:  "https://functions.poehali.dev/ca4728a3-6912-416e-89e7-034c6de68e60",
			Photos:        "https://functions.poehali.dev/a4dda58e-d940-416e-a8e8-7bd56869af62",
			Suppliers:     "https://functions.poehali.dev/735f02a5-eb3f-4e4b-b378-7564c92b8e00",
			Admin:         "https://functions.poehali.dev/874af9cd-edd6-471e-b6d4-e68c828e6dca",
			Assistant:     "https://functions.poehali.dev/f540d647-f4c0-4217-84af-9f25ac6a842d",
			Notifications: "",
		},
		RequestTimeoutSeconds: 30,
		RateLimit:             5,
		RateBurst:             5,
		SessionTTLHours:       24 * 7,
		LogLevel:              "info",
		LogFormat:             "color",
		Voice: VoiceConfig{
			RecordCommand:  "arecord -q -f S16_LE -r 16000 -c 1 -t wav",
			SpeakCommand:   "espeak-ng -v ru",
			Language:       "ru-RU",
			Rate:           0.95,
			TimeoutSeconds: 60,
		},
	}
}

// Load loads the configuration from the given file path, then applies a .env
// file from the working directory and REMONT_* environment variables on top.
func Load(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	// A missing .env file is fine
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile loads only the configuration file over the defaults, without
// environment overrides. A missing file yields the defaults.
func ReadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetConfigDir returns the directory holding the configuration and session,
// REMONT_HOME when set and ~/.remont otherwise.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("REMONT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(home, ".remont"), nil
}

// GetConfigPath returns the path of the configuration file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// RequestTimeout is the deadline applied to each remote call
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// VoiceTimeout bounds a whole assistant turn
func (c *Config) VoiceTimeout() time.Duration {
	return time.Duration(c.Voice.TimeoutSeconds) * time.Second
}

// SessionTTL is how long a verified session is kept
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Validate checks the configuration for values that would make every call fail
func (c *Config) Validate() error {
	for _, key := range endpointKeys {
		value, _ := c.Get(key)
		if value == "" {
			continue
		}
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
		}
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request-timeout must be positive")
	}
	if c.Voice.TimeoutSeconds <= 0 {
		return fmt.Errorf("voice.timeout must be positive")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("rate-limit and rate-burst must not be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log-level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "color", "text", "json":
	default:
		return fmt.Errorf("unknown log-format %q", c.LogFormat)
	}
	return nil
}

var endpointKeys = []string{
	"endpoints.auth",
	"endpoints.projects",
	"endpoints.measurements",
	"endpoints.photos",
	"endpoints.suppliers",
	"endpoints.admin",
	"endpoints.assistant",
	"endpoints.notifications",
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(p func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error { *p(c) = v; return nil },
	}
}

func intField(p func(c *Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			*p(c) = n
			return nil
		},
	}
}

func floatField(p func(c *Config) *float64) field {
	return field{
		get: func(c *Config) string { return strconv.FormatFloat(*p(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("expected a number, got %q", v)
			}
			*p(c) = n
			return nil
		},
	}
}

var fields = map[string]field{
	"endpoints.auth":          stringField(func(c *Config) *string { return &c.Endpoints.Auth }),
	"endpoints.projects":      stringField(func(c *Config) *string { return &c.Endpoints.Projects }),
	"endpoints.measurements":  stringField(func(c *Config) *string { return &c.Endpoints.Measurements }),
	"endpoints.photos":        stringField(func(c *Config) *string { return &c.Endpoints.Photos }),
	"endpoints.suppliers":     stringField(func(c *Config) *string { return &c.Endpoints.Suppliers }),
	"endpoints.admin":         stringField(func(c *Config) *string { return &c.Endpoints.Admin }),
	"endpoints.assistant":     stringField(func(c *Config) *string { return &c.Endpoints.Assistant }),
	"endpoints.notifications": stringField(func(c *Config) *string { return &c.Endpoints.Notifications }),
	"request-timeout":         intField(func(c *Config) *int { return &c.RequestTimeoutSeconds }),
	"rate-limit":              floatField(func(c *Config) *float64 { return &c.RateLimit }),
	"rate-burst":              intField(func(c *Config) *int { return &c.RateBurst }),
	"session-ttl-hours":       intField(func(c *Config) *int { return &c.SessionTTLHours }),
	"log-level":               stringField(func(c *Config) *string { return &c.LogLevel }),
	"log-format":              stringField(func(c *Config) *string { return &c.LogFormat }),
	"voice.record-command":    stringField(func(c *Config) *string { return &c.Voice.RecordCommand }),
	"voice.speak-command":     stringField(func(c *Config) *string { return &c.Voice.SpeakCommand }),
	"voice.language":          stringField(func(c *Config) *string { return &c.Voice.Language }),
	"voice.rate":              floatField(func(c *Config) *float64 { return &c.Voice.Rate }),
	"voice.timeout":           intField(func(c *Config) *int { return &c.Voice.TimeoutSeconds }),
}

// Keys lists the configuration keys accepted by Get and Set
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a configuration key as text
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return f.get(c), nil
}

// Set updates a configuration key from text
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// EnvName is the environment variable overriding key, e.g.
// endpoints.projects -> REMONT_ENDPOINTS_PROJECTS
func EnvName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return "REMONT_" + strings.ToUpper(r.Replace(key))
}

func (c *Config) applyEnv() error {
	for _, key := range Keys() {
		if value := os.Getenv(EnvName(key)); value != "" {
			if err := c.Set(key, value); err != nil {
				return fmt.Errorf("invalid %s: %w", EnvName(key), err)
			}
		}
	}
	c.AdminToken = os.Getenv("REMONT_ADMIN_TOKEN")
	return nil
}
