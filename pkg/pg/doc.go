// Package pg connects the PostgreSQL backend used by checks.PostgresUnique
// and checks.PostgresExists.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg, config.WithPrefix("SCHEMAKIT_")); err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// The pool is sized for async checks: every checkAsync node of a request
// issues one query and they run concurrently.
package pg
