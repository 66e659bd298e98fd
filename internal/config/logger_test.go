package config

import (
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantErr   bool
		wantLevel zapcore.Level
	}{
		{name: "defaults", wantLevel: zapcore.InfoLevel},
		{name: "debug json", level: "debug", format: "json", wantLevel: zapcore.DebugLevel},
		{name: "warn console", level: "warn", format: "console", wantLevel: zapcore.WarnLevel},
		{name: "invalid level", level: "banana", format: "json", wantErr: true},
		{name: "invalid format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("logging.level", tt.level)
			v.Set("logging.format", tt.format)

			logger, err := NewLogger(New(v))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %s not enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level below %s unexpectedly enabled", tt.wantLevel)
			}
		})
	}
}
