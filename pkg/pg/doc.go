// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// configured from environment variables, goose schema migrations, and a
// health probe for readiness endpoints.
//
// Connect retries with a growing delay so a service restarting during a
// database failover eventually comes up instead of crash-looping. Migrate
// bridges the pgx pool to database/sql because goose only speaks the
// standard library interface.
//
// Usage:
//
//	cfg := config.MustLoad[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
package pg
