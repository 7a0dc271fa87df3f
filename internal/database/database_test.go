package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	require.True(t, IsUniqueViolation(dup, ""))
	require.True(t, IsUniqueViolation(fmt.Errorf("create user: %w", dup), "users_username_key"))
	require.False(t, IsUniqueViolation(dup, "users_email_key"))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	require.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{
		"migrations/00001_create_users.sql",
		"migrations/00002_create_favorite_locations.sql",
	}, names)

	for _, name := range names {
		body, err := fs.ReadFile(migrations, name)
		require.NoError(t, err)
		require.Contains(t, string(body), "-- +goose Up")
		require.Contains(t, string(body), "-- +goose Down")
	}
}

func TestEnsureSchemaRequiresPool(t *testing.T) {
	t.Parallel()

	var db *DB
	require.Error(t, db.EnsureSchema(context.Background()))
	require.Error(t, (&DB{}).EnsureSchema(context.Background()))
}
