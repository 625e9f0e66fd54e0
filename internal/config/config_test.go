package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")

	config, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, config.Database.Driver)
	assert.Equal(t, 8080, config.App.Port)
	assert.Equal(t, slog.LevelInfo, config.App.LogLevel)
	assert.Equal(t, time.Local, config.App.Timezone)
	assert.Empty(t, config.App.AllowedOrigins)
	assert.False(t, config.App.SeedDemoData)
	assert.Equal(t, time.Hour, config.JWT.AccessExpiration)
	assert.Equal(t, 24*time.Hour, config.Cron.CarryoverInterval)
	assert.Equal(t, "config/holidays.yaml", config.Calendar.HolidaysFile)

	assert.Equal(t, 9*time.Hour, config.Shift.Start)
	assert.Equal(t, 18*time.Hour, config.Shift.End)
	assert.Equal(t, 15*time.Minute, config.Shift.Grace)
	assert.Equal(t, 480, config.Shift.StandardWorkMinutes)
	assert.Equal(t, 240, config.Shift.HalfDayMinutes)
	assert.Equal(t, 20, config.Leave.DefaultAnnualLeaveDays)
	assert.Equal(t, 5, config.Leave.MaxCarryoverDays)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "root")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_TIMEZONE", "Europe/Istanbul")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SHIFT_START", "08:30")
	t.Setenv("SHIFT_GRACE_MINUTES", "10")
	t.Setenv("MAX_CARRYOVER_DAYS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "Europe/Istanbul", config.App.Timezone.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.App.AllowedOrigins)
	assert.Equal(t, 8*time.Hour+30*time.Minute, config.Shift.Start)
	assert.Equal(t, 10*time.Minute, config.Shift.Grace)
	assert.Equal(t, 3, config.Leave.MaxCarryoverDays)
	assert.Equal(t, slog.LevelDebug, config.App.LogLevel)
	assert.Equal(t, "postgres://postgres:root@db:5432/staffy?sslmode=disable", config.DatabaseURL())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"STORAGE_DRIVER": "memory"}},
		{"postgres without password", map[string]string{"JWT_SECRET_KEY": "s"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo", "JWT_SECRET_KEY": "s"}},
		{"bad shift clock", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET_KEY": "s", "SHIFT_START": "9am"}},
		{"shift ends before it starts", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET_KEY": "s", "SHIFT_END": "08:00"}},
		{"bad port", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET_KEY": "s", "APP_PORT": "http"}},
		{"bad timezone", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET_KEY": "s", "APP_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"STORAGE_DRIVER", "JWT_SECRET_KEY", "DB_PASSWORD"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
