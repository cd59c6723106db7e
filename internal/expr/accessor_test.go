package expr

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jacoelho/jaccs/internal/dots"
)

func jsonObject() map[string]any {
	return map[string]any{
		"key":      "value",
		"sequence": []any{1.0, 2.0, 3.0},
		"mapping": map[string]any{
			"key":      "value",
			"sequence": []any{4.0, 5.0, 6.0},
		},
	}
}

func jsonList() []any {
	return []any{
		"value",
		[]any{1.0, 2.0, 3.0},
		map[string]any{"key": "value"},
	}
}

func TestAccessOnObject(t *testing.T) {
	t.Parallel()

	obj := jsonObject()

	tests := []struct {
		expr string
		want any
	}{
		{expr: "_", want: obj},
		{expr: "_.key", want: "value"},
		{expr: "_.sequence[0]", want: 1.0},
		{expr: "_.mapping.key", want: "value"},
		{expr: "_.mapping.sequence[-1]", want: 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, err := Access(obj, tt.expr)
			if err != nil {
				t.Fatalf("Access(%q) error = %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Access(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestAccessOnList(t *testing.T) {
	t.Parallel()

	list := jsonList()

	tests := []struct {
		expr string
		want any
	}{
		{expr: "_", want: list},
		{expr: "_[0]", want: "value"},
		{expr: "_[1][-1]", want: 3.0},
		{expr: "_[2].key", want: "value"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			got, err := Access(list, tt.expr)
			if err != nil {
				t.Fatalf("Access(%q) error = %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Access(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestAccessorRootFastPath(t *testing.T) {
	t.Parallel()

	accessor, err := NewAccessor("_")
	if err != nil {
		t.Fatalf("NewAccessor() error = %v", err)
	}

	values := []any{nil, 1.0, "text", true, jsonObject(), jsonList()}
	for _, v := range values {
		got, err := accessor.Evaluate(v)
		if err != nil {
			t.Fatalf("Evaluate(%v) error = %v", v, err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Fatalf("Evaluate(%v) = %v, want the root", v, got)
		}
	}

	obj := jsonObject()
	got, _ := accessor.Evaluate(obj)
	if reflect.ValueOf(got).Pointer() != reflect.ValueOf(obj).Pointer() {
		t.Fatalf("Evaluate() returned a copy of the root")
	}
}

func TestAccessorDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		root    any
		opts    []Option
		want    any
		wantErr error
	}{
		{
			name: "missing_key_defaulted",
			expr: "_.a.c",
			root: map[string]any{"a": map[string]any{"b": 1.0}},
			opts: []Option{WithDefault(2.0)},
			want: 2.0,
		},
		{
			name: "present_key_ignores_default",
			expr: "_.a.b",
			root: map[string]any{"a": map[string]any{"b": 1.0}},
			opts: []Option{WithDefault(2.0)},
			want: 1.0,
		},
		{
			name: "out_of_range_defaulted",
			expr: "_.sequence[99]",
			root: jsonObject(),
			opts: []Option{WithDefault("default")},
			want: "default",
		},
		{
			name: "nil_default",
			expr: "_.missing",
			root: jsonObject(),
			opts: []Option{WithDefault(nil)},
			want: nil,
		},
		{
			name: "jsonpath_defaulted",
			expr: "$.missing",
			root: jsonObject(),
			opts: []Option{WithDefault("default")},
			want: "default",
		},
		{
			name:    "missing_key_propagates",
			expr:    "_.missing",
			root:    jsonObject(),
			wantErr: dots.ErrMissingKey,
		},
		{
			name:    "out_of_range_propagates",
			expr:    "_.sequence[99]",
			root:    map[string]any{"sequence": []any{1.0, 2.0, 3.0}},
			wantErr: dots.ErrIndexOutOfRange,
		},
		{
			name:    "unsupported_never_defaulted",
			expr:    "_.sequence.nope",
			root:    jsonObject(),
			opts:    []Option{WithDefault("default")},
			wantErr: dots.ErrUnsupportedAccess,
		},
		{
			name:    "scalar_access_never_defaulted",
			expr:    "_.key[0]",
			root:    jsonObject(),
			opts:    []Option{WithDefault("default")},
			wantErr: dots.ErrUnsupportedAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accessor, err := NewAccessor(tt.expr, tt.opts...)
			if err != nil {
				t.Fatalf("NewAccessor(%q) error = %v", tt.expr, err)
			}

			got, err := accessor.Evaluate(tt.root)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewAccessorMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewAccessor("_.a[", WithDefault("default"))
	if !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("NewAccessor() error = %v, want ErrMalformedExpression", err)
	}
}

func TestNewAccessorFromExpression(t *testing.T) {
	t.Parallel()

	compiled := MustCompile("_.mapping.key")
	accessor, err := NewAccessor(compiled)
	if err != nil {
		t.Fatalf("NewAccessor() error = %v", err)
	}

	got, err := accessor.Evaluate(jsonObject())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got != "value" {
		t.Fatalf("Evaluate() = %v, want value", got)
	}
	if accessor.String() != "_.mapping.key" {
		t.Fatalf("String() = %q, want %q", accessor.String(), "_.mapping.key")
	}
}

func TestAccessorConcurrentUse(t *testing.T) {
	t.Parallel()

	accessor, err := NewAccessor("_.mapping.sequence[1]")
	if err != nil {
		t.Fatalf("NewAccessor() error = %v", err)
	}
	root := jsonObject()

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			got, err := accessor.Evaluate(root)
			if err == nil && got != 5.0 {
				err = errors.New("unexpected value")
			}
			errs <- err
		}()
	}
	for range 8 {
		if err := <-errs; err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
	}
}
