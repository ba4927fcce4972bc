package validator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func failAfter(d time.Duration, msg string) validator.AsyncPredicate {
	return func(ctx context.Context, _ any) error {
		select {
		case <-time.After(d):
			return errors.New(msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func TestValidateAsync_PathOrder(t *testing.T) {
	t.Parallel()

	// The slowest predicate belongs to the first property; results must still
	// follow schema order.
	schema := validator.Schema{
		Type: kind.Object,
		Properties: []validator.Property{
			validator.Prop("username", validator.Schema{Type: kind.String, ValidateAsync: failAfter(40*time.Millisecond, "Username is taken")}),
			validator.Prop("email", validator.Schema{Type: kind.String, ValidateAsync: failAfter(0, "Email is taken")}),
			validator.Prop("slug", validator.Schema{Type: kind.String, ValidateAsync: failAfter(20*time.Millisecond, "Slug is taken")}),
		},
	}

	start := time.Now()
	res := validator.ValidateAsync(context.Background(), map[string]any{"username": "a", "email": "b", "slug": "c"}, schema)
	elapsed := time.Since(start)

	require.Len(t, res.Errors, 3)
	assert.Equal(t, []string{"username", "email", "slug"}, res.Errors.Paths())
	for _, e := range res.Errors {
		assert.Equal(t, validator.TypeAsyncCustom, e.Type)
	}
	assert.Less(t, elapsed, 55*time.Millisecond, "predicates run concurrently")
}

func TestValidateAsync_ParentBeforeChildren(t *testing.T) {
	t.Parallel()

	schema := validator.Schema{
		Type:          kind.Object,
		ValidateAsync: failAfter(10*time.Millisecond, "root failed"),
		Properties: []validator.Property{
			validator.Prop("child", validator.Schema{ValidateAsync: failAfter(0, "child failed")}),
		},
	}
	res := validator.ValidateAsync(context.Background(), map[string]any{"child": 1}, schema)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "", res.Errors[0].Path)
	assert.Equal(t, "child", res.Errors[1].Path)
}

func TestValidateAsync_OnlyAfterSyncChecksPass(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	check := func(context.Context, any) error {
		calls.Add(1)
		return nil
	}

	schema := validator.Schema{
		Type: kind.Object,
		Properties: []validator.Property{
			validator.Prop("short", validator.Schema{Type: kind.String, MinLength: kind.Ptr(5), ValidateAsync: check}),
			validator.Prop("wrongType", validator.Schema{Type: kind.Number, ValidateAsync: check}),
			validator.Prop("missing", validator.Schema{Required: true, ValidateAsync: check}),
			validator.Prop("ok", validator.Schema{Type: kind.String, ValidateAsync: check}),
		},
	}

	res := validator.ValidateAsync(context.Background(), map[string]any{"short": "abc", "wrongType": "x", "ok": "fine"}, schema)
	assert.Len(t, res.Errors, 3)
	assert.Equal(t, int32(1), calls.Load(), "only the node that passed its sync checks is checked")
}

func TestValidateAsync_SyncErrorsComeFirst(t *testing.T) {
	t.Parallel()

	schema := validator.Schema{
		Type: kind.Object,
		Properties: []validator.Property{
			validator.Prop("email", validator.Schema{Type: kind.String, ValidateAsync: failAfter(0, "Email is taken")}),
			validator.Prop("name", validator.Schema{Type: kind.String, Required: true}),
		},
	}

	res := validator.ValidateAsync(context.Background(), map[string]any{"email": "a@b.co"}, schema)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, validator.TypeRequired, res.Errors[0].Type)
	assert.Equal(t, validator.TypeAsyncCustom, res.Errors[1].Type)
}

func TestValidateAsync_AbortEarly(t *testing.T) {
	t.Parallel()

	t.Run("sync failure skips async phase", func(t *testing.T) {
		var calls atomic.Int32
		schema := validator.Schema{
			Type: kind.Object,
			Properties: []validator.Property{
				validator.Prop("a", validator.Schema{Type: kind.String, ValidateAsync: func(context.Context, any) error {
					calls.Add(1)
					return nil
				}}),
				validator.Prop("b", validator.Schema{Required: true}),
			},
		}
		res := validator.ValidateAsync(context.Background(), map[string]any{"a": "x"}, schema, validator.AbortEarly(true))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.TypeRequired, res.Errors[0].Type)
		assert.Zero(t, calls.Load())
	})

	t.Run("keeps first async failure but awaits all", func(t *testing.T) {
		var finished atomic.Int32
		slow := func(ctx context.Context, v any) error {
			time.Sleep(20 * time.Millisecond)
			finished.Add(1)
			return errors.New("slow failed")
		}
		fast := func(ctx context.Context, v any) error {
			finished.Add(1)
			return errors.New("fast failed")
		}
		schema := validator.Schema{
			Type: kind.Object,
			Properties: []validator.Property{
				validator.Prop("first", validator.Schema{ValidateAsync: slow}),
				validator.Prop("second", validator.Schema{ValidateAsync: fast}),
			},
		}

		res := validator.ValidateAsync(context.Background(), map[string]any{"first": 1, "second": 2}, schema, validator.AbortEarly(true))
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "first", res.Errors[0].Path)
		assert.Equal(t, "slow failed", res.Errors[0].Message)
		assert.Equal(t, int32(2), finished.Load())
	})
}

func TestValidateAsync_Panic(t *testing.T) {
	t.Parallel()

	schema := validator.Schema{ValidateAsync: func(context.Context, any) error {
		panic(errors.New("lookup crashed"))
	}}
	res := validator.ValidateAsync(context.Background(), "x", schema)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, validator.TypeAsyncCustom, res.Errors[0].Type)
	assert.Equal(t, "lookup crashed", res.Errors[0].Message)
}

func TestValidateAsync_ReceivesNormalizedValue(t *testing.T) {
	t.Parallel()

	var seen any
	schema := validator.Schema{Type: kind.String, Trim: true, Default: "  fallback ", ValidateAsync: func(_ context.Context, v any) error {
		seen = v
		return nil
	}}
	res := validator.ValidateAsync(context.Background(), kind.Absent, schema)
	require.True(t, res.Valid)
	assert.Equal(t, "fallback", seen)
	assert.Equal(t, "fallback", res.Value)
}

func TestValidateAsync_ArrayItems(t *testing.T) {
	t.Parallel()

	schema := validator.Schema{
		Type: kind.Array,
		Items: &validator.Schema{Type: kind.Number, ValidateAsync: func(_ context.Context, v any) error {
			if v.(int) == 2 {
				return errors.New("two is not allowed")
			}
			return nil
		}},
	}
	res := validator.ValidateAsync(context.Background(), []any{1, 2, 3}, schema)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "[1]", res.Errors[0].Path)
}
