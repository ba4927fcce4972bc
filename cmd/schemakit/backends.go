package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/checks"
	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/httpserver"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/mongo"
	"github.com/dmitrymomot/schemakit/pkg/pg"
	"github.com/dmitrymomot/schemakit/pkg/redis"
	"github.com/dmitrymomot/schemakit/pkg/schemafile"
)

var errBackendNotConfigured = errors.New("backend lookups configured without a connection URL")

// backends holds the connections that back registered async checks.
type backends struct {
	probes  map[string]httpserver.Probe
	closers []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// connectBackends connects every configured store and registers one async
// check per configured lookup:
//
//	SCHEMAKIT_REDIS_SETS=usernames         redis_absent:usernames, redis_present:usernames
//	SCHEMAKIT_PG_COLUMNS=auth.users.email  pg_unique:auth.users.email, pg_exists:auth.users.email
//	SCHEMAKIT_MONGODB_FIELDS=posts.slug    mongo_unique:posts.slug
//
// Stores without a connection URL are skipped.
func connectBackends(ctx context.Context, a *app, reg *schemafile.Registry) (_ *backends, err error) {
	b := &backends{probes: map[string]httpserver.Probe{}}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	opts := []checks.Option{checks.WithLogger(a.log)}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg, config.WithPrefix(envPrefix)); err != nil {
		return nil, err
	}
	switch {
	case redisCfg.Enabled():
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.probes["redis"] = redis.Healthcheck(client)
		for _, set := range a.cfg.RedisSets {
			reg.RegisterAsync("redis_absent:"+set, checks.RedisAbsent(client, set, opts...))
			reg.RegisterAsync("redis_present:"+set, checks.RedisPresent(client, set, opts...))
		}
		a.log.Info("redis checks registered", logger.Component("backends"), "sets", a.cfg.RedisSets)
	case len(a.cfg.RedisSets) > 0:
		return nil, fmt.Errorf("%w: %sREDIS_SETS needs %sREDIS_URL", errBackendNotConfigured, envPrefix, envPrefix)
	}

	var pgCfg pg.Config
	if err := config.Load(&pgCfg, config.WithPrefix(envPrefix)); err != nil {
		return nil, err
	}
	switch {
	case pgCfg.Enabled():
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		b.probes["postgres"] = pg.Healthcheck(pool)
		for _, ref := range a.cfg.PGColumns {
			table, column, ok := cutLast(ref, ".")
			if !ok {
				return nil, fmt.Errorf("postgres lookup %q: want table.column", ref)
			}
			unique, err := checks.PostgresUnique(pool, table, column, opts...)
			if err != nil {
				return nil, err
			}
			exists, err := checks.PostgresExists(pool, table, column, opts...)
			if err != nil {
				return nil, err
			}
			reg.RegisterAsync("pg_unique:"+ref, unique)
			reg.RegisterAsync("pg_exists:"+ref, exists)
		}
		a.log.Info("postgres checks registered", logger.Component("backends"), "columns", a.cfg.PGColumns)
	case len(a.cfg.PGColumns) > 0:
		return nil, fmt.Errorf("%w: %sPG_COLUMNS needs %sPG_CONN_URL", errBackendNotConfigured, envPrefix, envPrefix)
	}

	var mongoCfg mongo.Config
	if err := config.Load(&mongoCfg, config.WithPrefix(envPrefix)); err != nil {
		return nil, err
	}
	switch {
	case mongoCfg.Enabled():
		db, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		b.probes["mongodb"] = mongo.Healthcheck(db)
		for _, ref := range a.cfg.MongoFields {
			coll, field, ok := strings.Cut(ref, ".")
			if !ok || coll == "" || field == "" {
				return nil, fmt.Errorf("mongodb lookup %q: want collection.field", ref)
			}
			reg.RegisterAsync("mongo_unique:"+ref, checks.MongoUnique(db.Collection(coll), field, opts...))
		}
		a.log.Info("mongodb checks registered", logger.Component("backends"), "fields", a.cfg.MongoFields)
	case len(a.cfg.MongoFields) > 0:
		return nil, fmt.Errorf("%w: %sMONGODB_FIELDS needs %sMONGODB_URL", errBackendNotConfigured, envPrefix, envPrefix)
	}

	return b, nil
}

func cutLast(s, sep string) (before, after string, ok bool) {
	i := strings.LastIndex(s, sep)
	if i <= 0 || i == len(s)-len(sep) {
		return "", "", false
	}
	return s[:i], s[i+len(sep):], true
}
