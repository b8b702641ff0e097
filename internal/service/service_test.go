package service

import (
	"testing"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Codename{},
		&model.Set{},
		&model.Card{},
		&model.Question{},
		&model.Attempt{},
		&model.Response{},
		&model.Upload{},
	))
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.GrantSecret = "test-grant-secret"
	cfg.Auth.JWTSecret = "test-jwt-secret"
	cfg.Auth.AllowOwnerlessAdmin = true
	return cfg
}
