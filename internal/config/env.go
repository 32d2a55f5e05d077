package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the master password is never part of Config - use MasterPassword()
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	DBPath          string        `envconfig:"DB_PATH" default:"kristvault.db"`
	MaxWallets      int           `envconfig:"MAX_WALLETS" default:"128"`
	SyncNode        string        `envconfig:"SYNC_NODE" default:"https://krist.dev"`
	AdvancedFormats bool          `envconfig:"ADVANCED_FORMATS" default:"false"`
	SessionTimeout  time.Duration `envconfig:"SESSION_TIMEOUT" default:"15m"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty       bool          `envconfig:"LOG_PRETTY" default:"false"`
}

// envPrefix is prepended to every variable, e.g. KRISTVAULT_PORT
const envPrefix = "kristvault"

// masterPasswordEnv lets scripts skip the interactive prompt
const masterPasswordEnv = "KRISTVAULT_MASTER_PASSWORD"

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads and validates the configuration without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.MaxWallets <= 0 {
		return nil, errors.New("KRISTVAULT_MAX_WALLETS must be positive")
	}
	if c.DBPath == "" {
		return nil, errors.New("KRISTVAULT_DB_PATH cannot be empty")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// MasterPassword returns the master password from KRISTVAULT_MASTER_PASSWORD,
// or prompts for it in the terminal when the variable is unset.
func MasterPassword(prompt string) (string, error) {
	if password, err := MasterPasswordFromEnv(); err != nil || password != "" {
		return password, err
	}
	return PromptPassword(prompt)
}

// MasterPasswordFromEnv returns KRISTVAULT_MASTER_PASSWORD, or "" when unset.
func MasterPasswordFromEnv() (string, error) {
	password, ok := os.LookupEnv(masterPasswordEnv)
	if !ok {
		return "", nil
	}
	if password == "" {
		return "", fmt.Errorf("%s is set but empty", masterPasswordEnv)
	}
	return password, nil
}

// PromptPassword reads a password in the terminal without echoing it.
// The caller owns the returned value; nothing is kept here.
func PromptPassword(prompt string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("stdin is not a terminal: run interactively or set " + masterPasswordEnv)
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	defer clear(raw)
	if len(raw) == 0 {
		return "", errors.New("password cannot be empty")
	}

	return string(raw), nil
}
