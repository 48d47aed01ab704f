package pg_test

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsuite/planguard/pkg/pg"
)

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{})
		assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
		assert.False(t, pg.Config{}.Enabled())
	})

	t.Run("unparsable connection string", func(t *testing.T) {
		t.Parallel()

		_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
		require.Error(t, err)
		assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
	})
}

func TestMigrate_InvalidInput(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, nil, pg.Config{}, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsNotProvided)

	err = pg.Migrate(context.Background(), nil, fstest.MapFS{}, pg.Config{}, nil)
	assert.ErrorIs(t, err, pg.ErrFailedToApplyMigrations)
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("load tenant: %w", pgx.ErrNoRows)
	duplicate := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, pg.IsNotFoundError(notFound))
	assert.False(t, pg.IsNotFoundError(duplicate))
	assert.False(t, pg.IsNotFoundError(nil))

	assert.True(t, pg.IsDuplicateKeyError(duplicate))
	assert.False(t, pg.IsDuplicateKeyError(check))

	assert.True(t, pg.IsCheckViolationError(check))
	assert.False(t, pg.IsCheckViolationError(notFound))
}
