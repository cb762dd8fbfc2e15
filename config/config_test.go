package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careops/config"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults without auth",
			mutate: func(*config.Config) {},
		},
		{
			name: "auth without secrets",
			mutate: func(c *config.Config) {
				c.App.RequireAuth = true
			},
			wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required",
		},
		{
			name: "auth with shared secret",
			mutate: func(c *config.Config) {
				c.App.RequireAuth = true
				c.JWT.AccessSecret = "same"
				c.JWT.RefreshSecret = "same"
			},
			wantErr: "must differ",
		},
		{
			name: "auth with distinct secrets",
			mutate: func(c *config.Config) {
				c.App.RequireAuth = true
				c.JWT.AccessSecret = "access"
				c.JWT.RefreshSecret = "refresh"
			},
		},
		{
			name: "limiter with zero window",
			mutate: func(c *config.Config) {
				c.App.RateLimiter.Enable = true
				c.App.RateLimiter.MaxRequests = 10
			},
			wantErr: "must be positive",
		},
		{
			name: "kafka without brokers",
			mutate: func(c *config.Config) {
				c.Kafka.Enable = true
			},
			wantErr: "KAFKA_BROKERS is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	assert.True(t, cfg.IsDevelopment())

	cfg.Server.Env = "production"
	assert.False(t, cfg.IsDevelopment())
}
