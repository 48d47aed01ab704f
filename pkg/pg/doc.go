// Package pg opens the Postgres pool that holds tenant records and applies
// the schema migrations embedded in the binary.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// Connect retries with linear backoff. Migrate uses goose and routes its
// output through the service logger. IsNotFoundError and friends classify
// pgx errors so that repositories can map them onto domain errors.
package pg
