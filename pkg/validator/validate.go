package validator

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/schemakit/pkg/kind"
)

// Result is the outcome of a validation run. Value carries injected defaults
// and trimmed strings even when Valid is false.
type Result struct {
	Valid  bool             `json:"valid"`
	Value  any              `json:"value"`
	Errors ValidationErrors `json:"errors"`
}

// Err returns the errors as an error, or nil when the value is valid.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// Validate checks value against schema. Use kind.Absent for a missing root value.
// The input is never mutated; objects and arrays are copied into Result.Value.
func Validate(value any, schema Schema, opts ...Option) Result {
	w := &walker{opts: Resolve(opts...)}
	out := w.node("", value, &schema)
	return w.result(out)
}

// asyncTask is an async predicate that became eligible during the sync pass.
type asyncTask struct {
	seq    int
	path   string
	value  any
	schema *Schema
}

type walker struct {
	opts Options
	errs ValidationErrors

	collectAsync bool
	seq          int
	tasks        []asyncTask
}

func (w *walker) result(value any) Result {
	return Result{
		Valid:  len(w.errs) == 0,
		Value:  value,
		Errors: w.errs,
	}
}

// halted reports whether abort-early mode already recorded its single error.
func (w *walker) halted() bool {
	return w.opts.AbortEarly && len(w.errs) > 0
}

// fail records an error and reports whether the walk must stop.
func (w *walker) fail(path string, s *Schema, t ErrorType, msg string, params map[string]any) bool {
	w.errs = append(w.errs, ValidationError{
		Path:    path,
		Message: s.message(t, msg),
		Type:    t,
		Params:  params,
	})
	return w.halted()
}

func (w *walker) node(path string, v any, s *Schema) any {
	if w.halted() {
		return v
	}
	seq := w.seq
	w.seq++
	before := len(w.errs)

	if kind.IsAbsent(v) {
		switch {
		case s.Default != nil:
			v = s.defaultValue()
		case s.Required:
			w.fail(path, s, TypeRequired, "Value is required", nil)
			return v
		default:
			return v
		}
	}

	k := kind.Of(v)
	if !s.Type.Has(k) {
		w.fail(path, s, TypeType, fmt.Sprintf("Expected type '%s'", s.Type), map[string]any{"expected": s.Type.String(), "actual": k.String()})
		return v
	}

	switch k {
	case kind.String:
		v = w.checkString(path, v.(string), s)
	case kind.Number:
		w.checkNumber(path, v, s)
	case kind.Object:
		v = w.checkObject(path, v.(map[string]any), s)
	case kind.Array:
		v = w.checkArray(path, v, s)
	}
	if w.halted() {
		return v
	}

	if len(s.Enum) > 0 && !inEnum(v, s.Enum) {
		if w.fail(path, s, TypeEnum, "Must be one of: "+joinValues(s.Enum), map[string]any{"values": s.Enum}) {
			return v
		}
	}

	if s.Validate != nil {
		if err := callPredicate(s.Validate, v); err != nil {
			if w.fail(path, s, TypeCustom, errMessage(err), nil) {
				return v
			}
		}
	}

	if w.collectAsync && s.ValidateAsync != nil && !failedAt(w.errs[before:], path) {
		w.tasks = append(w.tasks, asyncTask{seq: seq, path: path, value: v, schema: s})
	}

	return v
}

func (w *walker) checkString(path, str string, s *Schema) string {
	if s.Trim {
		str = strings.TrimSpace(str)
	}

	n := utf8.RuneCountInString(str)
	if s.MinLength != nil && n < *s.MinLength {
		msg := fmt.Sprintf("Must be at least %d characters long", *s.MinLength)
		if w.fail(path, s, TypeMinLength, msg, map[string]any{"min": *s.MinLength}) {
			return str
		}
	}
	if s.MaxLength != nil && n > *s.MaxLength {
		msg := fmt.Sprintf("Must be at most %d characters long", *s.MaxLength)
		if w.fail(path, s, TypeMaxLength, msg, map[string]any{"max": *s.MaxLength}) {
			return str
		}
	}
	if s.Pattern != nil && !s.Pattern.MatchString(str) {
		if w.fail(path, s, TypePattern, "Does not match the required pattern", map[string]any{"pattern": s.Pattern.String()}) {
			return str
		}
	}
	for _, f := range s.Formats {
		canonical, ok := ParseFormat(string(f))
		if !ok {
			if w.fail(path, s, TypeFormat, fmt.Sprintf("Unknown format '%s'", f), map[string]any{"format": string(f)}) {
				return str
			}
			continue
		}
		if fc := formats[canonical]; !fc.check(str) {
			if w.fail(path, s, ErrorType(canonical), fc.message, nil) {
				return str
			}
		}
	}
	return str
}

func (w *walker) checkNumber(path string, v any, s *Schema) {
	f, _ := kind.Float(v)

	if s.Integer && !kind.IsInteger(f) {
		if w.fail(path, s, TypeInteger, "Must be an integer", nil) {
			return
		}
	}
	if s.Min != nil && f < *s.Min {
		if w.fail(path, s, TypeMin, "Must be at least "+formatFloat(*s.Min), map[string]any{"min": *s.Min}) {
			return
		}
	}
	if s.Max != nil && f > *s.Max {
		w.fail(path, s, TypeMax, "Must be at most "+formatFloat(*s.Max), map[string]any{"max": *s.Max})
	}
}

func (w *walker) checkObject(path string, obj map[string]any, s *Schema) map[string]any {
	if len(s.Properties) == 0 {
		return obj
	}

	// Undeclared keys are carried over unexamined
	out := maps.Clone(obj)
	for i := range s.Properties {
		if w.halted() {
			break
		}
		prop := &s.Properties[i]
		child, ok := obj[prop.Name]
		if !ok {
			child = kind.Absent
		}
		res := w.node(joinPath(path, prop.Name), child, &prop.Schema)
		if !kind.IsAbsent(res) {
			out[prop.Name] = res
		}
	}
	return out
}

func (w *walker) checkArray(path string, v any, s *Schema) any {
	items, _ := kind.Slice(v)

	if s.MinItems != nil && len(items) < *s.MinItems {
		msg := fmt.Sprintf("Must contain at least %d items", *s.MinItems)
		if w.fail(path, s, TypeMinItems, msg, map[string]any{"min": *s.MinItems}) {
			return v
		}
	}
	if s.MaxItems != nil && len(items) > *s.MaxItems {
		msg := fmt.Sprintf("Must contain at most %d items", *s.MaxItems)
		if w.fail(path, s, TypeMaxItems, msg, map[string]any{"max": *s.MaxItems}) {
			return v
		}
	}
	if s.Items == nil {
		return v
	}

	for i := range items {
		if w.halted() {
			break
		}
		items[i] = w.node(path+"["+strconv.Itoa(i)+"]", items[i], s.Items)
	}
	return items
}

// callPredicate is the single point where a panicking predicate is turned into an error.
func callPredicate(p Predicate, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return p(v)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errors.New(fmt.Sprint(r))
}

func errMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Invalid value"
}

func failedAt(errs ValidationErrors, path string) bool {
	for _, e := range errs {
		if e.Path == path {
			return true
		}
	}
	return false
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func inEnum(v any, values []any) bool {
	f, isNum := kind.Float(v)
	for _, candidate := range values {
		if isNum {
			if cf, ok := kind.Float(candidate); ok && cf == f {
				return true
			}
			continue
		}
		if reflect.DeepEqual(v, candidate) {
			return true
		}
	}
	return false
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
