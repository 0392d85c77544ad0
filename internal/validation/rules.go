package validation

import (
	"fmt"
	"strings"
)

// Rule inspects a payload and returns nil or a *CustomValidationError.
type Rule func(p Payload) error

// Chain is an ordered list of rules.
type Chain []Rule

// Validate runs the rules in order and stops at the first failure.
func (c Chain) Validate(p Payload) error {
	for _, rule := range c {
		if err := rule(p); err != nil {
			return err
		}
	}
	return nil
}

// Numeric names a field that must hold an integer greater than zero.
type Numeric struct {
	Field   string
	Message string
}

// List names a field that must hold a non-empty list of objects.
//
// Items are checked element by element; their Message may contain a
// single %d verb that receives the element index.
type List struct {
	Field   string
	Message string
	Items   []Numeric
}

// Enum names a field whose value must be one of Allowed.
type Enum struct {
	Field   string
	Message string
	Allowed []string
}

// Schema is the data-driven rule set of one resource payload.
//
// Rules compile in this order: required, text, numeric, lists, enums, then
// any extra Rules.
type Schema struct {
	// Resource is the display name used in messages ("Dish", "Order").
	Resource string

	Required []string
	Text     []string
	Positive []Numeric
	Lists    []List
	Enums    []Enum

	// Rules run after everything above.
	Rules []Rule
}

// Chain compiles the schema into an ordered rule chain.
func (s Schema) Chain() Chain {
	chain := make(Chain, 0, len(s.Required)+len(s.Text)+len(s.Positive)+len(s.Lists)+len(s.Enums)+len(s.Rules))

	for _, field := range s.Required {
		chain = append(chain, Required(s.Resource, field))
	}
	for _, field := range s.Text {
		chain = append(chain, NonEmptyText(s.Resource, field))
	}
	for _, n := range s.Positive {
		chain = append(chain, PositiveInteger(n.Field, n.Message))
	}
	for _, l := range s.Lists {
		chain = append(chain, NonEmptyList(l.Field, l.Message, l.Items...))
	}
	for _, e := range s.Enums {
		chain = append(chain, OneOf(e.Field, e.Message, e.Allowed...))
	}
	chain = append(chain, s.Rules...)

	return chain
}

// Validate runs the compiled chain against p.
func (s Schema) Validate(p Payload) error {
	return s.Chain().Validate(p)
}

func missingMessage(resource, field string) string {
	return fmt.Sprintf("%s must include a %s", resource, field)
}

// Required fails when field is absent or falsy.
func Required(resource, field string) Rule {
	return func(p Payload) error {
		if v, _ := p.Get(field); !Truthy(v) {
			return &CustomValidationError{Field: field, Message: missingMessage(resource, field)}
		}
		return nil
	}
}

// NonEmptyText fails when field is present but is not a non-empty string.
func NonEmptyText(resource, field string) Rule {
	return func(p Payload) error {
		v, ok := p.Get(field)
		if !ok {
			return nil
		}
		if s, isString := v.(string); !isString || s == "" {
			return &CustomValidationError{Field: field, Message: missingMessage(resource, field)}
		}
		return nil
	}
}

// PositiveInteger fails when field is not an integral number greater than zero.
func PositiveInteger(field, message string) Rule {
	return func(p Payload) error {
		v, _ := p.Get(field)
		if n, ok := integer(v); !ok || n <= 0 {
			return &CustomValidationError{Field: field, Message: message}
		}
		return nil
	}
}

// NonEmptyList fails when field is not a list or is empty, then checks
// every element against items.
func NonEmptyList(field, message string, items ...Numeric) Rule {
	return func(p Payload) error {
		v, _ := p.Get(field)
		list, ok := v.([]any)
		if !ok || len(list) == 0 {
			return &CustomValidationError{Field: field, Message: message}
		}

		for i, raw := range list {
			item, _ := asPayload(raw)
			for _, n := range items {
				value, _ := item.Get(n.Field)
				if q, ok := integer(value); !ok || q <= 0 {
					return &CustomValidationError{
						Field:   fmt.Sprintf("%s[%d].%s", field, i, n.Field),
						Message: fmt.Sprintf(n.Message, i),
					}
				}
			}
		}
		return nil
	}
}

// OneOf fails when field is not one of the allowed strings.
func OneOf(field, message string, allowed ...string) Rule {
	tag := "required,oneof=" + strings.Join(allowed, " ")
	return func(p Payload) error {
		s, ok := p[field].(string)
		if !ok || validate.Var(s, tag) != nil {
			return &CustomValidationError{Field: field, Message: message}
		}
		return nil
	}
}

// Not fails when field holds exactly the string value.
func Not(field, value, message string) Rule {
	return func(p Payload) error {
		if s, ok := p[field].(string); ok && s == value {
			return &CustomValidationError{Field: field, Message: message}
		}
		return nil
	}
}
