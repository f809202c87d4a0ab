// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/bingogen/internal/bridge"
	"github.com/jeranaias/bingogen/internal/grid"
	"github.com/jeranaias/bingogen/internal/util"
)

// CurrentVersion is written into new configuration files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete bingogen configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Export  ExportConfig  `toml:"export" json:"export"`
	Bridge  BridgeConfig  `toml:"bridge" json:"bridge"`
	Board   BoardConfig   `toml:"board" json:"board"`
	Goals   GoalsConfig   `toml:"goals" json:"goals"`
	History HistoryConfig `toml:"history" json:"history"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// ExportConfig controls where board files are written.
type ExportConfig struct {
	// Dir is the export directory. Empty means "export" next to the binary.
	Dir string `toml:"dir" json:"dir"`
	// CreateOnStart creates Dir at startup if it is missing. The export
	// engine itself never creates it.
	CreateOnStart bool `toml:"create_on_start" json:"create_on_start"`
}

// BridgeConfig sizes the UI/worker mailboxes.
type BridgeConfig struct {
	// Capacity is the per-direction queue limit under the "abort" policy.
	Capacity int `toml:"capacity" json:"capacity"`
	// OnOverflow is "abort" (bounded, panics when full) or "grow" (unbounded).
	OnOverflow string `toml:"on_overflow" json:"on_overflow"`
}

// BoardConfig holds board defaults.
type BoardConfig struct {
	// DefaultSize is the side length selected at startup (3-9).
	DefaultSize int `toml:"default_size" json:"default_size"`
}

// GoalsConfig points at the goal pool used by randomize.
type GoalsConfig struct {
	// PoolPath is a YAML list or a plain text file with one goal per line.
	PoolPath string `toml:"pool_path" json:"pool_path"`
	// Watch reloads the pool when the file changes.
	Watch bool `toml:"watch" json:"watch"`
}

// HistoryConfig controls the export ledger.
type HistoryConfig struct {
	Enabled      bool   `toml:"enabled" json:"enabled"`
	DatabasePath string `toml:"database_path" json:"database_path"`
	// Limit is the number of rows shown by the exports page and CLI.
	Limit int `toml:"limit" json:"limit"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// ToastSeconds is how long non-error notifications stay on screen.
	ToastSeconds int `toml:"toast_seconds" json:"toast_seconds"`
	// ExportsPerSecond throttles export key presses.
	ExportsPerSecond float64 `toml:"exports_per_second" json:"exports_per_second"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// File receives logs while the TUI owns the terminal. Empty means
	// bingogen.log in the config directory.
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Export: ExportConfig{
			CreateOnStart: true,
		},
		Bridge: BridgeConfig{
			Capacity:   bridge.DefaultCapacity,
			OnOverflow: bridge.OverflowAbort.String(),
		},
		Board: BoardConfig{
			DefaultSize: int(grid.DefaultSize),
		},
		Goals: GoalsConfig{
			Watch: true,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "~/.bingogen/history.db",
			Limit:        50,
		},
		UI: UIConfig{
			Theme:            "auto",
			ToastSeconds:     3,
			ExportsPerSecond: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATHS
// =============================================================================

// ConfigDir returns the configuration directory: $BINGOGEN_HOME if set,
// otherwise ~/.bingogen.
func ConfigDir() (string, error) {
	if dir := os.Getenv("BINGOGEN_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".bingogen"), nil
}

// ConfigPathTOML returns the path to config.toml.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to config.json.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ExportDir resolves the export directory.
func (c *Config) ExportDir() string {
	if c.Export.Dir == "" {
		return filepath.Join(util.ExecutableDir(), "export")
	}
	return util.ExpandHome(c.Export.Dir)
}

// HistoryPath resolves the ledger database path.
func (c *Config) HistoryPath() string {
	return util.ExpandHome(c.History.DatabasePath)
}

// GoalsPath resolves the goal pool path. Empty means no pool.
func (c *Config) GoalsPath() string {
	return util.ExpandHome(c.Goals.PoolPath)
}

// LogPath resolves the TUI log file.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return util.ExpandHome(c.Log.File)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "bingogen.log"
	}
	return filepath.Join(dir, "bingogen.log")
}

// BridgeOptions converts the bridge section for bridge.CreatePair.
func (c *Config) BridgeOptions() bridge.Options {
	policy, err := bridge.ParseOverflowPolicy(c.Bridge.OnOverflow)
	if err != nil {
		policy = bridge.OverflowAbort
	}
	return bridge.Options{Capacity: c.Bridge.Capacity, OnOverflow: policy}
}

// BoardSize returns the configured default size, or grid.DefaultSize when it
// is out of range.
func (c *Config) BoardSize() grid.Size {
	s := grid.Size(c.Board.DefaultSize)
	if !s.Valid() {
		return grid.DefaultSize
	}
	return s
}

// SlogLevel parses Log.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads config.toml, falling back to config.json, then to defaults.
// Environment overrides are applied last. A file that fails to parse is
// reported alongside the defaults.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil && fileExists(tomlPath) {
		cfg, err := LoadFromPath(tomlPath)
		if err == nil {
			return cfg, nil
		}
		loadErr = err
	}

	if loadErr == nil {
		if jsonPath, err := ConfigPathJSON(); err == nil && fileExists(jsonPath) {
			cfg, err := LoadFromPath(jsonPath)
			if err == nil {
				return cfg, nil
			}
			loadErr = err
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		// Env overrides produced an invalid config; keep pure defaults.
		return Default(), errors.Join(loadErr, fmt.Errorf("invalid config: %w", err))
	}
	return cfg, loadErr
}

// LoadFromPath loads a TOML or JSON file by extension, applies env
// overrides, and validates the result.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes cfg to the default TOML location.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with a short header.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# bingogen configuration file\n")
	buf.WriteString("# Environment variables (BINGOGEN_*) override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileMkdir(path, []byte(buf.String()), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileMkdir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns ValidateErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Bridge.Capacity < 1 {
		errs = append(errs, ValidationError{
			Field:   "bridge.capacity",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Bridge.Capacity),
		})
	}
	if _, err := bridge.ParseOverflowPolicy(c.Bridge.OnOverflow); err != nil {
		errs = append(errs, ValidationError{
			Field:   "bridge.on_overflow",
			Message: fmt.Sprintf("invalid policy '%s', must be one of: abort, grow", c.Bridge.OnOverflow),
		})
	}

	if !grid.Size(c.Board.DefaultSize).Valid() {
		errs = append(errs, ValidationError{
			Field:   "board.default_size",
			Message: fmt.Sprintf("must be between %d and %d, got %d", grid.MinSize, grid.MaxSize, c.Board.DefaultSize),
		})
	}

	if c.History.Enabled && c.History.DatabasePath == "" {
		errs = append(errs, ValidationError{
			Field:   "history.database_path",
			Message: "required when history is enabled",
		})
	}
	if c.History.Limit < 1 {
		errs = append(errs, ValidationError{
			Field:   "history.limit",
			Message: fmt.Sprintf("must be at least 1, got %d", c.History.Limit),
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.ToastSeconds < 1 || c.UI.ToastSeconds > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.toast_seconds",
			Message: fmt.Sprintf("must be between 1 and 60, got %d", c.UI.ToastSeconds),
		})
	}
	if c.UI.ExportsPerSecond <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.exports_per_second",
			Message: "must be positive",
		})
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty string fields that have a default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Bridge.OnOverflow == "" {
		c.Bridge.OnOverflow = d.Bridge.OnOverflow
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - BINGOGEN_EXPORT_DIR: overrides export.dir
//   - BINGOGEN_BOARD_SIZE: overrides board.default_size
//   - BINGOGEN_GOALS: overrides goals.pool_path
//   - BINGOGEN_HISTORY: "0"/"false" disables the export ledger
//   - BINGOGEN_HISTORY_DB: overrides history.database_path
//   - BINGOGEN_BRIDGE_CAPACITY: overrides bridge.capacity
//   - BINGOGEN_BRIDGE_OVERFLOW: overrides bridge.on_overflow
//   - BINGOGEN_THEME: overrides ui.theme
//   - BINGOGEN_LOG_LEVEL: overrides log.level
//   - BINGOGEN_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("BINGOGEN_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if size := os.Getenv("BINGOGEN_BOARD_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Board.DefaultSize = n
		}
	}
	if pool := os.Getenv("BINGOGEN_GOALS"); pool != "" {
		c.Goals.PoolPath = pool
	}
	if history := os.Getenv("BINGOGEN_HISTORY"); history != "" {
		c.History.Enabled = parseBool(history)
	}
	if db := os.Getenv("BINGOGEN_HISTORY_DB"); db != "" {
		c.History.DatabasePath = db
	}
	if capacity := os.Getenv("BINGOGEN_BRIDGE_CAPACITY"); capacity != "" {
		if n, err := strconv.Atoi(capacity); err == nil {
			c.Bridge.Capacity = n
		}
	}
	if policy := os.Getenv("BINGOGEN_BRIDGE_OVERFLOW"); policy != "" {
		c.Bridge.OnOverflow = policy
	}
	if theme := os.Getenv("BINGOGEN_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if level := os.Getenv("BINGOGEN_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if file := os.Getenv("BINGOGEN_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its TOML key path, e.g. "bridge.capacity".
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by its TOML key path. String values are parsed into
// the field's type.
func (c *Config) Set(key string, value any) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if field.Kind() == reflect.Struct {
		return fmt.Errorf("cannot set section: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tomlName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tomlName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return tag
}

// setFieldValue sets a reflect.Value from a value with type conversion.
func setFieldValue(field reflect.Value, value any) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns every leaf key in dot notation, in declaration order.
func GetAllKeys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + tomlName(f)
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			slog.Warn("config load failed, using defaults", "error", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
