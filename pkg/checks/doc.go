// Package checks provides async predicates backed by Redis, PostgreSQL and
// MongoDB, ready to be bound to validator.Schema.ValidateAsync or registered
// by name in a schemafile.Registry.
//
//	reg.RegisterAsync("username_free", checks.RedisAbsent(rdb, "usernames"))
//
//	unique, err := checks.PostgresUnique(pool, "users", "email")
//	if err != nil {
//	    return err
//	}
//	reg.RegisterAsync("email_unique", unique)
//
// Only strings, numbers and booleans are looked up; other values pass, since
// type and presence are reported by the synchronous checks. Backend errors are
// logged through WithLogger and reported with a generic message so
// infrastructure details never reach the client. A canceled context is
// returned as is.
package checks
