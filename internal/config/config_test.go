package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("STORE_AUTO_MIGRATE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 50, cfg.Catalog.CandidateLimit)
	assert.Equal(t, 8, cfg.Catalog.MaxProducts)
	assert.Equal(t, 3, cfg.Catalog.MaxGuides)
	assert.Equal(t, 5, cfg.Catalog.FallbackResults)
	assert.Equal(t, 6, cfg.Agent.MaxIterations)
	assert.Equal(t, 3.0, cfg.Ranking.WeightMaintenance)
	assert.Equal(t, 0.5, cfg.Ranking.Bonus)
	assert.False(t, cfg.LLM.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Store.AutoMigrate)
}

func TestLoad_GeminiKeyEnablesLLM(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AGENT_MAX_ITERATIONS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Agent.MaxIterations)
}

func TestLoad_AutoMigrateFlag(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	t.Setenv("STORE_AUTO_MIGRATE", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Store.AutoMigrate)

	t.Setenv("STORE_AUTO_MIGRATE", "sometimes")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Store.AutoMigrate)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongodb")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsFallbackResultsBelowOne(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	for _, v := range []string{"0", "-3"} {
		t.Setenv("CATALOG_FALLBACK_RESULTS", v)
		_, err := Load()
		assert.ErrorContains(t, err, "CATALOG_FALLBACK_RESULTS", v)
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{Store: StoreConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "plants", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=plants sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.Store.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.GetPostgreSQLDSN())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b "))
	assert.Empty(t, SplitList(""))
}
