// Package config manages TOML configuration for the input engine: the
// decoder's construction-time constants and the offline builder's
// dictionary parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/glidetype/inputengine/internal/logger"
)

var log = logger.Default("config")

var validate = validator.New()

// Config holds the entire configuration tree.
type Config struct {
	Decoder DecoderConfig `toml:"decoder"`
	Dict    DictConfig    `toml:"dict"`
	Scorer  ScorerConfig  `toml:"scorer"`
}

// DecoderConfig holds the five construction-time constants named in the
// engine's external interfaces.
type DecoderConfig struct {
	ResampleN      int     `toml:"resample_n" validate:"required,gte=4"`
	BandWidth      int     `toml:"band_width" validate:"required,gte=1"`
	GeometricTopN  int     `toml:"geometric_top_n" validate:"required,gte=1"`
	FinalTopN      int     `toml:"final_top_n" validate:"required,gte=1"`
	EndpointRadius float64 `toml:"endpoint_radius" validate:"required,gt=0,lte=1"`
}

// DictConfig holds parameters for the offline dictionary builder.
type DictConfig struct {
	MinWordLength   int `toml:"min_word_length" validate:"gte=1"`
	MaxVocabulary   int `toml:"max_vocabulary" validate:"required,gte=1"`
	MaxSkippedTrack int `toml:"max_skipped_tracked" validate:"gte=0"`
}

// ScorerConfig selects the language-model scorer backend.
type ScorerConfig struct {
	// DBPath, when set, points at a SQLite database of word frequencies
	// (see langmodel.OpenSQLiteScorer) to use in place of the flattened
	// unigram.bin table kbdbuild produces. Empty means "use unigram.bin".
	DBPath string `toml:"db_path"`
}

// DefaultConfig returns a Config with the defaults given throughout the
// engine's specification.
func DefaultConfig() *Config {
	return &Config{
		Decoder: DecoderConfig{
			ResampleN:      64,
			BandWidth:      10,
			GeometricTopN:  50,
			FinalTopN:      3,
			EndpointRadius: 0.12,
		},
		Dict: DictConfig{
			MinWordLength:   2,
			MaxVocabulary:   100000,
			MaxSkippedTrack: 256,
		},
	}
}

// GetConfigDir returns the configuration directory with fallback
// priority: ~/.config, macOS Application Support, then the executable's
// own directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return executableDir()
	}

	primary := filepath.Join(homeDir, ".config", "inputengine")
	if dirWritable(primary) {
		return primary, nil
	}

	macOS := filepath.Join(homeDir, "Library", "Application Support", "inputengine")
	if dirWritable(macOS) {
		return macOS, nil
	}

	return executableDir()
}

// executableDir returns the directory containing the running binary, the
// last fallback in the config search order.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// dirWritable reports whether dirPath exists (creating it if not) and can
// be written to.
func dirWritable(dirPath string) bool {
	if _, err := os.Stat(dirPath); err != nil {
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			return false
		}
	}
	testFile := filepath.Join(dirPath, ".write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(testFile)
	return true
}

// GetDefaultConfigPath returns the default location of config.toml.
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadWithPriority loads configuration in priority order: an explicit
// customConfigPath, then the default per-platform path, then built-in
// defaults if neither is usable.
func LoadWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if fileExists(customConfigPath) {
			cfg, err := Load(customConfigPath)
			if err == nil {
				log.Debugf("loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
			log.Warnf("failed to load custom config %s: %v, trying default path", customConfigPath, err)
		} else {
			log.Warnf("custom config not found at %s, trying default path", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("could not determine default config path: %v, using built-in defaults", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := initConfig(defaultPath)
	if err != nil {
		log.Warnf("failed to load/create config at %s: %v, using built-in defaults", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	return cfg, defaultPath, nil
}

// initConfig loads the config at configPath, creating a default file
// there if none exists yet.
func initConfig(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DefaultConfig(), nil
	}

	if !fileExists(configPath) {
		cfg := DefaultConfig()
		if err := Save(cfg, configPath); err != nil {
			log.Warnf("failed to write default config at %s: %v", configPath, err)
		}
		return cfg, nil
	}

	return Load(configPath)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and validates the TOML file at configPath, falling back to
// partial recovery of whatever sections parse if the file is malformed.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return recoverPartial(configPath)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", configPath, err)
	}
	return cfg, nil
}

// recoverPartial rebuilds a Config from whichever sections of a
// malformed TOML file still parse as maps, leaving the rest at their
// built-in defaults.
func recoverPartial(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		log.Warnf("no valid configuration recovered from %s, using all defaults", configPath)
		return cfg, nil
	}
	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("no valid configuration recovered from %s: %v, using all defaults", configPath, err)
		return cfg, nil
	}

	if section, ok := raw["decoder"].(map[string]any); ok {
		extractDecoderConfig(section, &cfg.Decoder)
	}
	if section, ok := raw["dict"].(map[string]any); ok {
		extractDictConfig(section, &cfg.Dict)
	}
	if section, ok := raw["scorer"].(map[string]any); ok {
		if v, ok := section["db_path"].(string); ok {
			cfg.Scorer.DBPath = v
		}
	}

	if err := validate.Struct(cfg); err != nil {
		log.Warnf("recovered config failed validation, using all defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// sectionInt and sectionFloat64 read a single key out of a decoded TOML
// section, tolerating TOML's int64 decoding, so that recoverPartial can
// keep any individually well-formed field even when its siblings aren't.
func sectionInt(data map[string]any, key string) (int, bool) {
	v, ok := data[key].(int64)
	return int(v), ok
}

func sectionFloat64(data map[string]any, key string) (float64, bool) {
	v, ok := data[key].(float64)
	return v, ok
}

func extractDecoderConfig(data map[string]any, d *DecoderConfig) {
	if v, ok := sectionInt(data, "resample_n"); ok {
		d.ResampleN = v
	}
	if v, ok := sectionInt(data, "band_width"); ok {
		d.BandWidth = v
	}
	if v, ok := sectionInt(data, "geometric_top_n"); ok {
		d.GeometricTopN = v
	}
	if v, ok := sectionInt(data, "final_top_n"); ok {
		d.FinalTopN = v
	}
	if v, ok := sectionFloat64(data, "endpoint_radius"); ok {
		d.EndpointRadius = v
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if v, ok := sectionInt(data, "min_word_length"); ok {
		dict.MinWordLength = v
	}
	if v, ok := sectionInt(data, "max_vocabulary"); ok {
		dict.MaxVocabulary = v
	}
	if v, ok := sectionInt(data, "max_skipped_tracked"); ok {
		dict.MaxSkippedTrack = v
	}
}

// Save writes cfg to configPath as TOML.
func Save(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}

// ToDecoderOptions returns the loaded decoder section as plain values, so
// pkg/config does not import pkg/decoder. The values come back in the
// order resampleN, bandWidth, geometricTopN, finalTopN, endpointRadius,
// which is not the field order of decoder.Options.
func (c *Config) ToDecoderOptions() (resampleN, bandWidth, geometricTopN, finalTopN int, endpointRadius float64) {
	return c.Decoder.ResampleN, c.Decoder.BandWidth, c.Decoder.GeometricTopN, c.Decoder.FinalTopN, c.Decoder.EndpointRadius
}
