package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPostgresConfigDSN_UsesResolvedValuesNotEnv(t *testing.T) {
	// Credentials resolved at config-load time (e.g. from Secrets Manager)
	// must win even when the environment says otherwise.
	t.Setenv("POSTGRES_USER", "env_user")
	t.Setenv("POSTGRES_PASSWORD", "env_pass")
	t.Setenv("POSTGRES_DB", "env_db")

	cfg := PostgresConfig{
		User:     "vault_user",
		Password: "vault_pass",
		Name:     "shopwithkylie",
		Host:     "db.internal",
		Port:     "5433",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "user=vault_user")
	assert.Contains(t, dsn, "password=vault_pass")
	assert.Contains(t, dsn, "dbname=shopwithkylie")
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "env_user")
	assert.NotContains(t, dsn, "env_pass")
}

func TestPostgresConfigDSN_Defaults(t *testing.T) {
	cfg := PostgresConfig{User: "u", Password: "p", Name: "shop"}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectPostgres_RejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  PostgresConfig
	}{
		{"missing user", PostgresConfig{Password: "p", Name: "shop"}},
		{"missing password", PostgresConfig{User: "u", Name: "shop"}},
		{"missing db name", PostgresConfig{User: "u", Password: "p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := ConnectPostgres(zap.NewNop(), tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, db)
		})
	}
}
