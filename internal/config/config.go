// Package config loads process-wide settings for garderoba from an optional
// YAML file and the environment. Configuration is read once at start-up.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Supported sheet backends.
const (
	BackendSQLite = "sqlite"
	BackendXLSX   = "xlsx"
	BackendMemory = "memory"
)

// Config keys.
const (
	KeyBackend         = "backend"
	KeyDocument        = "document"
	KeyCredentialsFile = "credentials_file"
	KeyCache           = "cache"
	KeyLogFile         = "log_file"
)

const (
	envPrefix       = "GARDEROBA"
	defaultBackend  = BackendSQLite
	defaultDocument = "garderoba.sqlite3"
)

// Validation errors.
var (
	ErrBackendUnknown        = errors.New("unknown backend")
	ErrDocumentEmpty         = errors.New("document must not be empty")
	ErrCredentialsUnreadable = errors.New("credentials file is not readable")
)

// Config holds the sheet store selection and process settings.
type Config struct {
	Backend         string `mapstructure:"backend"`
	Document        string `mapstructure:"document"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Cache           bool   `mapstructure:"cache"`
	LogFile         string `mapstructure:"log_file"`
}

var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendXLSX:   true,
	BackendMemory: true,
}

// New returns a viper instance with defaults and environment bindings set.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, defaultBackend)
	v.SetDefault(KeyDocument, defaultDocument)
	v.SetDefault(KeyCache, false)
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Names used by hosted spreadsheet deployments.
	_ = v.BindEnv(KeyDocument, envPrefix+"_DOCUMENT", "GOOGLE_SHEET_URL")
	_ = v.BindEnv(KeyCredentialsFile, envPrefix+"_CREDENTIALS_FILE", "GOOGLE_CREDENTIALS_FILE")

	return v
}

// Load reads the optional config file into v and returns the validated
// Config. An empty path skips the file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the Config is usable.
func (c Config) Validate() error {
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	if c.Backend != BackendMemory && c.Document == "" {
		return ErrDocumentEmpty
	}
	if c.CredentialsFile != "" {
		f, err := os.Open(c.CredentialsFile)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCredentialsUnreadable, err)
		}
		f.Close()
	}
	return nil
}
