// Package redis connects the Redis backend used by checks.RedisAbsent and
// checks.RedisPresent.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg, config.WithPrefix("SCHEMAKIT_")); err != nil {
//	    return err
//	}
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	    reg.RegisterAsync("redis_absent", checks.RedisAbsent(client, "taken"))
//	}
//
// Connect retries the initial ping, so the service can start alongside Redis
// in the same compose file. Errors wrap the sentinels of this package with
// errors.Join.
package redis
