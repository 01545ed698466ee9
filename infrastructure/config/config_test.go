package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "STORE_DRIVER", "TABLE_NAME", "DYNAMODB_TABLE", "JWT_SECRET",
		"SESSION_TTL_MINUTES", "LOGIN_URL", "ALLOWED_ORIGINS", "SESSION_COOKIE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "reflections", cfg.DynamoDBTable)
	assert.Equal(t, "session", cfg.SessionCookie)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/login", cfg.LoginURL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_ProductionDefaultsToDynamoDB(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StoreDriverDynamoDB, cfg.StoreDriver)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "unknown driver",
			cfg:     Config{StoreDriver: "postgres", SessionTTL: time.Hour},
			wantErr: "STORE_DRIVER",
		},
		{
			name:    "production memory store",
			cfg:     Config{Environment: "production", StoreDriver: StoreDriverMemory, JWTSecret: "x", SessionTTL: time.Hour},
			wantErr: "must be dynamodb",
		},
		{
			name:    "dynamodb without table",
			cfg:     Config{StoreDriver: StoreDriverDynamoDB, SessionTTL: time.Hour},
			wantErr: "DYNAMODB_TABLE",
		},
		{
			name:    "non positive session ttl",
			cfg:     Config{StoreDriver: StoreDriverMemory},
			wantErr: "SESSION_TTL_MINUTES",
		},
		{
			name: "valid development",
			cfg:  Config{Environment: "development", StoreDriver: StoreDriverMemory, SessionTTL: time.Hour},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("ALLOWED_ORIGINS", nil))
}
