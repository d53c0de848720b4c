package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aicm-dev/aicm/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known setting keys.
const (
	KeyColor  = "color"
	KeyConfig = "config"
)

// Color modes accepted by the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// known maps each setting key to its validator. A nil validator accepts any value.
var known = map[string]func(string) error{
	KeyColor: func(v string) error {
		switch v {
		case ColorAuto, ColorAlways, ColorNever:
			return nil
		}
		return fmt.Errorf("must be one of %s, %s, %s", ColorAuto, ColorAlways, ColorNever)
	},
	KeyConfig: nil,
}

var v = viper.New()

// Dir returns the path to the user settings directory (~/.aicm/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the settings file (~/.aicm/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the settings directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the settings file and environment.
// Calling it again discards previously loaded values.
func Load() {
	v = viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	v.SetDefault(KeyColor, ColorAuto)

	// Ignore error if the settings file doesn't exist yet.
	_ = v.ReadInConfig()
}

// Keys returns the known setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a setting value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// Set validates and writes a key-value pair, then saves the settings file.
func Set(key, value string) error {
	validate, ok := known[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if validate != nil {
		if err := validate(value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	v.Set(key, value)

	settingsFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		f, err := os.Create(settingsFile)
		if err != nil {
			return fmt.Errorf("creating settings file %s: %w", settingsFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(settingsFile); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

// ConfigPath resolves the project config path: an explicit flag value wins,
// then the AICM_CONFIG environment variable or the config setting, then the
// default file name.
func ConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := Get(KeyConfig); p != "" {
		return p
	}
	return branding.ConfigFile()
}

// ColorMode returns the color setting, falling back to auto for unknown values.
func ColorMode() string {
	switch mode := Get(KeyColor); mode {
	case ColorAlways, ColorNever:
		return mode
	default:
		return ColorAuto
	}
}
