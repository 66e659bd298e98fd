// Package config provides a Viper-backed view of the SchoolDesk configuration.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is read access to the configuration tree or one of its sections.
type Config interface {
	Unmarshal(target any) error
	Get(key string) any
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	IsSet(key string) bool
	Sub(key string) Config
}

// Compile-time interface guard.
var _ Config = (*ViperConfig)(nil)

// ViperConfig wraps a Viper instance to implement Config.
type ViperConfig struct {
	v *viper.Viper
}

// New creates a Config backed by the given Viper instance.
func New(v *viper.Viper) *ViperConfig {
	if v == nil {
		v = viper.New()
	}
	return &ViperConfig{v: v}
}

func (c *ViperConfig) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

func (c *ViperConfig) Get(key string) any {
	return c.v.Get(key)
}

func (c *ViperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *ViperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *ViperConfig) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *ViperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// Sub returns the section under key. Values are resolved leaf by leaf first,
// so defaults and environment overrides survive even when the config file
// only sets part of the section. A missing section yields an empty Config.
func (c *ViperConfig) Sub(key string) Config {
	section := lookup(c.v.AllSettings(), strings.Split(strings.ToLower(key), "."))
	sub := viper.New()
	if section != nil {
		_ = sub.MergeConfigMap(section)
	}
	return New(sub)
}

// Viper returns the underlying Viper instance for direct access.
func (c *ViperConfig) Viper() *viper.Viper {
	return c.v
}

func lookup(m map[string]any, path []string) map[string]any {
	for _, p := range path {
		next, ok := m[p].(map[string]any)
		if !ok {
			return nil
		}
		m = next
	}
	return m
}
