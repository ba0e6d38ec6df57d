package configs

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", "postgres", "mysql", "sqlite"} {
		d, err := Dialector(ENV{DBDriver: driver, DBPath: "ace.db"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d, driver)
	}

	_, err := Dialector(ENV{DBDriver: "oracle"})
	assert.EqualError(t, err, `unsupported DB_DRIVER "oracle"`)
}

func TestDSNs(t *testing.T) {
	env := ENV{DBHost: "db.internal", DBPort: "5432", DBUser: "ace", DBPassword: "s3cret", DBName: "parts", DBSSLMode: "require"}

	assert.Equal(t, "host=db.internal user=ace password=s3cret dbname=parts port=5432 sslmode=require TimeZone=UTC", PostgresDSN(env))

	env.DBPort = "3306"
	dsn := MySQLDSN(env)
	assert.Contains(t, dsn, "ace:s3cret@tcp(db.internal:3306)/parts")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CURRENCY_SYMBOL", "")
	t.Setenv("APP_ENV", "")

	env := LoadEnv()
	assert.Equal(t, 20, env.RateLimitRPS)
	assert.Equal(t, "postgres", env.DBDriver)
	assert.Equal(t, "₹", env.CurrencySymbol)
	assert.False(t, env.IsProduction())
}

func TestGenerateJWTSecret(t *testing.T) {
	secret, err := GenerateJWTSecret()
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
}
