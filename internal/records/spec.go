package records

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jacoelho/jaccs/internal/expr"
)

var (
	// ErrInvalidConfig indicates a specification entry has the wrong shape.
	ErrInvalidConfig = errors.New("invalid field configuration")

	// ErrEmptySpec indicates a specification without fields.
	ErrEmptySpec = errors.New("specification has no fields")
)

// Config describes how to extract one field.
type Config struct {
	Expression string
	UseDefault bool
	Default    any
}

// Accessor builds the expression accessor for this entry.
func (c Config) Accessor() (*expr.Accessor, error) {
	var opts []expr.Option
	if c.UseDefault {
		opts = append(opts, expr.WithDefault(c.Default))
	}
	return expr.NewAccessor(c.Expression, opts...)
}

// UnmarshalYAML accepts a bare expression string or a mapping with the keys
// expr, use_default and default.
func (c *Config) UnmarshalYAML(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c.decode(raw)
}

// UnmarshalJSON accepts the same shapes as UnmarshalYAML.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c.decode(raw)
}

func (c *Config) decode(raw any) error {
	switch current := raw.(type) {
	case string:
		*c = Config{Expression: current}
		return nil
	case map[string]any:
		var decoded Config
		for key, value := range current {
			switch key {
			case "expr":
				text, ok := value.(string)
				if !ok {
					return fmt.Errorf("%w: expr must be a string, got %T", ErrInvalidConfig, value)
				}
				decoded.Expression = text
			case "use_default":
				flag, ok := value.(bool)
				if !ok {
					return fmt.Errorf("%w: use_default must be a boolean, got %T", ErrInvalidConfig, value)
				}
				decoded.UseDefault = flag
			case "default":
				decoded.Default = value
			default:
				return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
			}
		}
		if decoded.Expression == "" {
			return fmt.Errorf("%w: expr is required", ErrInvalidConfig)
		}
		*c = decoded
		return nil
	default:
		return fmt.Errorf("%w: expected string or mapping, got %T", ErrInvalidConfig, raw)
	}
}

// Spec maps output field names to their extraction config.
type Spec map[string]Config

// Fields returns the field names in sorted order.
func (s Spec) Fields() []string {
	return slices.Sorted(maps.Keys(s))
}

// LoadSpec decodes a specification document. JSON documents are accepted
// since JSON is valid YAML.
func LoadSpec(r io.Reader) (Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read specification: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode specification: %w", err)
	}

	if len(raw) == 0 {
		return nil, ErrEmptySpec
	}

	spec := make(Spec, len(raw))
	for name, value := range raw {
		var config Config
		if err := config.decode(value); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		spec[name] = config
	}

	return spec, nil
}
