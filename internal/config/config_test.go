package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "STORE_DRIVER", "BCRYPT_COST", "TOKEN_TTL", "SEED_SAMPLE", "ADMIN_EMAILS"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, ModeOffline, c.Mode)
	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, 8*time.Hour, c.TokenTTL)
	assert.True(t, c.SeedSample)
	assert.Empty(t, c.AdminEmails)
	assert.Equal(t, c.CORSOriginsOffline, c.CORSOrigins())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("SEED_SAMPLE", "no")
	t.Setenv("ADMIN_EMAILS", " Boss@Example.com , ops@example.com,")

	c := FromEnv()
	assert.Equal(t, ModeOnline, c.Mode)
	assert.Equal(t, "mongo", c.StoreDriver)
	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, 15*time.Minute, c.TokenTTL)
	assert.False(t, c.SeedSample)
	assert.Equal(t, []string{"Boss@Example.com", "ops@example.com"}, c.AdminEmails)
	assert.True(t, c.IsAdmin("boss@example.com"))
	assert.False(t, c.IsAdmin("someone@example.com"))
	assert.Equal(t, c.CORSOriginsOnline, c.CORSOrigins())
}
