package llm

import (
	"fmt"
	"slices"
)

// Kind is the closed set of value shapes a Schema can describe.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Property is a named member of an object schema. Order is preserved.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema constrains a model's JSON output.
type Schema struct {
	Kind        Kind
	Description string
	Nullable    bool
	Enum        []string
	Items       *Schema
	Properties  []Property
	Required    []string
}

// String describes a string value.
func String(description string) *Schema {
	return &Schema{Kind: KindString, Description: description}
}

// Enum describes a string restricted to values.
func Enum(description string, values ...string) *Schema {
	return &Schema{Kind: KindString, Description: description, Enum: values}
}

// Boolean describes a boolean value.
func Boolean(description string) *Schema {
	return &Schema{Kind: KindBoolean, Description: description}
}

// Array describes a list of items.
func Array(description string, items *Schema) *Schema {
	return &Schema{Kind: KindArray, Description: description, Items: items}
}

// Object describes an object with ordered properties.
func Object(description string, props ...Property) *Schema {
	return &Schema{Kind: KindObject, Description: description, Properties: props}
}

// Prop is shorthand for a Property.
func Prop(name string, s *Schema) Property {
	return Property{Name: name, Schema: s}
}

// OrNull returns a nullable copy of s.
func (s *Schema) OrNull() *Schema {
	c := *s
	c.Nullable = true
	return &c
}

// Require marks names as required and returns s.
func (s *Schema) Require(names ...string) *Schema {
	s.Required = append(s.Required, names...)
	return s
}

// Validate checks a value decoded by encoding/json into an any against s.
// Unknown object members are allowed.
func (s *Schema) Validate(v any) error {
	return s.validate("$", v)
}

func (s *Schema) validate(path string, v any) error {
	if v == nil {
		if s.Nullable {
			return nil
		}
		return fmt.Errorf("%s: null not allowed", path)
	}

	switch s.Kind {
	case KindString:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%s: expected string, got %T", path, v)
		}
		if len(s.Enum) > 0 && !slices.Contains(s.Enum, str) {
			return fmt.Errorf("%s: %q not in %v", path, str, s.Enum)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %T", path, v)
		}
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array, got %T", path, v)
		}
		if s.Items == nil {
			return nil
		}
		for i, item := range arr {
			if err := s.Items.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object, got %T", path, v)
		}
		for _, name := range s.Required {
			if _, ok := obj[name]; !ok {
				return fmt.Errorf("%s: missing required %q", path, name)
			}
		}
		for _, p := range s.Properties {
			val, ok := obj[p.Name]
			if !ok {
				continue
			}
			if err := p.Schema.validate(path+"."+p.Name, val); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%s: unknown schema kind %v", path, s.Kind)
	}
	return nil
}
