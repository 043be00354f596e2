package logger

import (
	"testing"

	"learning_center_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		mode, level string
		want        string
	}{
		{"debug", "", "debug"},
		{"release", "", "info"},
		{"release", "warn", "warn"},
		{"debug", "error", "error"},
		{"release", "verbose", "info"},
	}
	for _, tc := range cases {
		cfg := &config.Config{}
		cfg.Server.Mode = tc.mode
		cfg.Log.Level = tc.level
		assert.Equal(t, tc.want, LevelFor(cfg).String(), "mode=%s level=%s", tc.mode, tc.level)
	}
}

func TestSetLevelIsShared(t *testing.T) {
	defer SetLevel(Level())
	SetLevel(zap.WarnLevel)
	assert.Equal(t, zap.WarnLevel, Level())
}
