package validator

import (
	"context"
	"slices"

	"github.com/dmitrymomot/schemakit/pkg/async"
)

// ValidateAsync runs the synchronous pass and then every eligible async predicate.
//
// A node is eligible when it declares ValidateAsync and recorded no error of
// its own during the synchronous pass. All eligible predicates run concurrently
// and are joined before their errors are appended, in schema visit order. With
// AbortEarly only the first async failure is kept; predicates that already
// started are still awaited.
func ValidateAsync(ctx context.Context, value any, schema Schema, opts ...Option) Result {
	w := &walker{opts: Resolve(opts...), collectAsync: true}
	out := w.node("", value, &schema)
	if w.halted() || len(w.tasks) == 0 {
		return w.result(out)
	}

	slices.SortFunc(w.tasks, func(a, b asyncTask) int { return a.seq - b.seq })

	futures := make([]*async.Future[struct{}], len(w.tasks))
	for i, task := range w.tasks {
		fn := task.schema.ValidateAsync
		futures[i] = async.Async(ctx, task.value, func(ctx context.Context, v any) (struct{}, error) {
			return struct{}{}, fn(ctx, v)
		})
	}

	for i, settled := range async.AllSettled(futures...) {
		if settled.Err == nil {
			continue
		}
		task := w.tasks[i]
		if w.fail(task.path, task.schema, TypeAsyncCustom, errMessage(settled.Err), nil) {
			break
		}
	}

	return w.result(out)
}
