package checks

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// RowQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresUnique passes when no row of table has column equal to the value.
// table may be schema qualified ("auth.users"). Identifiers are checked and
// quoted once, when the predicate is built.
func PostgresUnique(db RowQuerier, table, column string, opts ...Option) (validator.AsyncPredicate, error) {
	query, err := existsQuery(table, column)
	if err != nil {
		return nil, err
	}
	return postgresExists(db, query, table+"."+column, false, newOptions(DefaultTakenMessage, opts)), nil
}

// PostgresExists passes when some row of table has column equal to the value.
// Use it for foreign references such as a submitted country code.
func PostgresExists(db RowQuerier, table, column string, opts ...Option) (validator.AsyncPredicate, error) {
	query, err := existsQuery(table, column)
	if err != nil {
		return nil, err
	}
	return postgresExists(db, query, table+"."+column, true, newOptions(DefaultNotFoundMessage, opts)), nil
}

func postgresExists(db RowQuerier, query, name string, want bool, o options) validator.AsyncPredicate {
	return func(ctx context.Context, value any) error {
		v, ok := scalar(value)
		if !ok {
			return nil
		}
		var exists bool
		if err := db.QueryRow(ctx, query, v).Scan(&exists); err != nil {
			return o.backendFailed(ctx, "postgres:"+name, err)
		}
		if exists != want {
			return errors.New(o.message)
		}
		return nil
	}
}

func existsQuery(table, column string) (string, error) {
	tableIdent := pgx.Identifier(strings.Split(table, "."))
	if len(tableIdent) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}
	for _, part := range append(tableIdent, column) {
		if !identRegex.MatchString(part) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, part)
		}
	}
	return fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		tableIdent.Sanitize(), pgx.Identifier{column}.Sanitize(),
	), nil
}
