package config

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/homegrid/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-home").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set validates and applies a value for this key to the given Config
	// (in memory only; the caller is responsible for calling Save). An
	// empty value clears the key.
	Set func(cfg *Config, value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "default-home",
		Description: "Home used when --home is not specified",
		Get:         func(cfg *Config) string { return cfg.DefaultHome },
		Set: func(cfg *Config, v string) error {
			if v != "" {
				if err := util.ValidateName("home", v); err != nil {
					return err
				}
			}
			cfg.DefaultHome = v
			return nil
		},
	},
	{
		Name:        "refresh-interval",
		Description: "Seconds between stats refreshes unless a widget overrides it",
		Get: func(cfg *Config) string {
			if cfg.RefreshInterval == 0 {
				return ""
			}
			return strconv.Itoa(cfg.RefreshInterval)
		},
		Set: func(cfg *Config, v string) error {
			if v == "" {
				cfg.RefreshInterval = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("refresh-interval must be a positive number of seconds, got %q", v)
			}
			cfg.RefreshInterval = n
			return nil
		},
	},
	{
		Name:        "database-path",
		Description: "Location of the SQLite database holding layouts and services",
		Get:         func(cfg *Config) string { return cfg.DatabasePath },
		Set: func(cfg *Config, v string) error {
			cfg.DatabasePath = v
			return nil
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
