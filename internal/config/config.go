package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// MinDelay and MaxDelay bound the refresh delay: anything faster turns
// the monitor into a busy loop, anything slower reads as a hang.
const (
	MinDelay = 100 * time.Millisecond
	MaxDelay = 10 * time.Second
)

type Config struct {
	Delay             time.Duration     `mapstructure:"delay"`
	SortKey           string            `mapstructure:"sort_key"`
	SortDescending    bool              `mapstructure:"sort_descending"`
	TreeView          bool              `mapstructure:"tree_view"`
	HideKernelThreads bool              `mapstructure:"hide_kernel_threads"`
	ShowFullCommand   bool              `mapstructure:"show_full_command"`
	ASCIIGraphics     bool              `mapstructure:"ascii_graphics"`
	Mouse             bool              `mapstructure:"mouse"`
	ReadOnly          bool              `mapstructure:"readonly"`
	GracefulTimeout   time.Duration     `mapstructure:"graceful_timeout"`
	DefaultEditor     string            `mapstructure:"default_editor"`
	Protected         []string          `mapstructure:"protected"`
	Aliases           map[string]string `mapstructure:"aliases"`
}

func Path() string {
	return filepath.Join(xdg.ConfigHome, "ptop", "config.toml")
}

func dir() string {
	return filepath.Dir(Path())
}

// Load reads the managed config file, creating it with defaults on
// first run. A broken file falls back to defaults with the error
// returned for the caller to report.
func Load() (*Config, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			_ = Reset()
		} else {
			return configFromDefaults(), err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return configFromDefaults(), err
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize repairs values a hand-edited file may have broken rather
// than failing the whole load.
func (c *Config) normalize() {
	if c.Delay < MinDelay {
		c.Delay = MinDelay
	}
	if c.Delay > MaxDelay {
		c.Delay = MaxDelay
	}
	c.SortKey = strings.ToLower(strings.TrimSpace(c.SortKey))
	if !slices.Contains(sortKeyOptions, c.SortKey) {
		c.SortKey = "cpu"
	}
	if c.GracefulTimeout <= 0 {
		c.GracefulTimeout = 5 * time.Second
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(dir(), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("toml")

	for _, f := range Schema {
		val, _ := GetValue(cfg, f.Key)
		if f.Kind == Duration {
			v.Set(f.Key, val.(time.Duration).String())
			continue
		}
		v.Set(f.Key, val)
	}

	return v.WriteConfigAs(Path())
}

func Reset() error {
	return Save(configFromDefaults())
}

func configFromDefaults() *Config {
	cfg := defaultConfig
	cfg.Protected = slices.Clone(defaultProtected)
	cfg.Aliases = map[string]string{}
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir())
	v.SetEnvPrefix("PTOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Durations are stored as strings so the file stays readable; the
	// decode hook turns them back on Unmarshal.
	for _, f := range Schema {
		if f.Kind == Duration {
			if d, ok := f.Default.(time.Duration); ok {
				v.SetDefault(f.Key, d.String())
				continue
			}
		}
		v.SetDefault(f.Key, f.Default)
	}
	return v
}

// fieldIndex maps mapstructure tags to Config struct field positions,
// built once on first use.
var fieldIndex = sync.OnceValue(func() map[string]int {
	index := make(map[string]int)
	t := reflect.TypeFor[Config]()
	for i := range t.NumField() {
		if tag := t.Field(i).Tag.Get("mapstructure"); tag != "" {
			index[tag] = i
		}
	}
	return index
})

func fieldByKey(cfg *Config, key string) (reflect.Value, bool) {
	i, ok := fieldIndex()[key]
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(cfg).Elem().Field(i), true
}

func GetValue(cfg *Config, key string) (any, error) {
	fv, ok := fieldByKey(cfg, key)
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return fv.Interface(), nil
}

func SetValue(cfg *Config, key string, val any) error {
	fv, ok := fieldByKey(cfg, key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	rv := reflect.ValueOf(val)
	if !rv.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("type mismatch for %s: got %T, want %s", key, val, fv.Type())
	}
	fv.Set(rv)
	return nil
}

func (c *Config) IsProtected(name string) bool {
	return slices.ContainsFunc(c.Protected, func(p string) bool {
		return strings.EqualFold(p, name)
	})
}

func (c *Config) ResolveAlias(input string) string {
	if target, ok := c.Aliases[input]; ok {
		return target
	}
	return input
}
