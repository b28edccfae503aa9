package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/deppfellow/storefront/internal/config"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	testCases := []struct {
		level zerolog.Level
		want  int
	}{
		{zerolog.TraceLevel, 6},
		{zerolog.DebugLevel, 5},
		{zerolog.InfoLevel, 4},
		{zerolog.WarnLevel, 3},
		{zerolog.ErrorLevel, 2},
		{zerolog.Disabled, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.level.String(), func(t *testing.T) {
			if got := GetPgxTraceLogLevel(tc.level); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestNewLoggerService_WithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	service := NewLoggerService(cfg)
	if service.GetApplication() != nil {
		t.Error("expected no New Relic application without a license key")
	}

	// Shutdown must be safe on a disabled service.
	service.Shutdown()
}

func TestNilLoggerService(t *testing.T) {
	var service *LoggerService
	if service.GetApplication() != nil {
		t.Error("expected nil application from nil service")
	}
	service.Shutdown()
}

func TestNewLoggerWithService_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	logger := NewLoggerWithService(cfg, nil)
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", logger.GetLevel())
	}
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	base := zerolog.Nop()
	got := WithTraceContext(base, nil)
	if got.GetLevel() != base.GetLevel() {
		t.Error("expected logger to be returned unchanged")
	}
}
