package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"168h", 168 * time.Hour, false},
		{"xd", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.True(t, cfg.Auth.ProtectAdminRoutes)
	assert.Equal(t, "memory", cfg.Notification.QueueDriver)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.StatsCacheTTL())
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoad_RejectsUnknownQueueDriver(t *testing.T) {
	t.Setenv("NOTIFY_QUEUE_DRIVER", "kafka")

	_, err := Load()
	assert.Error(t, err)
}

func TestSMTPConfig_Configured(t *testing.T) {
	assert.False(t, SMTPConfig{User: "mailer"}.Configured())
	assert.True(t, SMTPConfig{User: "mailer", Password: "pw"}.Configured())
	assert.Equal(t, "smtp.example.com:465", SMTPConfig{Host: "smtp.example.com", Port: 465}.Addr())
}
