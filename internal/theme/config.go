package theme

import "time"

// Config is the "theme" section of the SchoolDesk configuration.
type Config struct {
	StorageKey string       `mapstructure:"storage_key"`
	Remote     RemoteConfig `mapstructure:"remote"`
}

// RemoteConfig points at an upstream SchoolDesk theme API. An empty URL
// disables remote sync.
type RemoteConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a remote is configured.
func (r RemoteConfig) Enabled() bool {
	return r.URL != ""
}
