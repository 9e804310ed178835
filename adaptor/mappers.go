package adaptor

import (
	"fmt"
	"maps"
	"slices"
)

// Default maps a rule without parameters to true, the value plugins expect for
// marker rules such as required or email. Parameters are passed through otherwise.
func Default(r Rule) (any, error) {
	if len(r.Parameters) == 0 {
		return true, nil
	}
	return map[string]string(r.Parameters), nil
}

// Passthrough hands the parameters to the plugin unchanged.
func Passthrough(r Rule) (any, error) {
	return map[string]string(r.Parameters), nil
}

// SingleValue unwraps the only parameter of a rule.
// Zero or several parameters are a configuration error.
func SingleValue(r Rule) (any, error) {
	if len(r.Parameters) != 1 {
		return nil, fmt.Errorf("%w: rule %q on field %q expects exactly one parameter, got %d %v",
			ErrConfiguration, r.Name, r.Field, len(r.Parameters), slices.Sorted(maps.Keys(r.Parameters)))
	}
	for _, v := range r.Parameters {
		return v, nil
	}
	return nil, nil
}

// MinMax returns the [min, max] pair of a rule. A missing bound is nil.
// A rule with neither bound is a configuration error.
func MinMax(r Rule) (any, error) {
	var lower, upper any
	minValue, hasMin := Bound(r, "min")
	if hasMin {
		lower = minValue
	}
	maxValue, hasMax := Bound(r, "max")
	if hasMax {
		upper = maxValue
	}
	if !hasMin && !hasMax {
		return nil, fmt.Errorf("%w: rule %q on field %q expects a min or max parameter",
			ErrConfiguration, r.Name, r.Field)
	}
	return []any{lower, upper}, nil
}

// Parameter returns a required parameter or a configuration error naming it.
func Parameter(r Rule, name string) (string, error) {
	v, ok := r.Parameters[name]
	if !ok {
		return "", fmt.Errorf("%w: rule %q on field %q is missing parameter %q",
			ErrConfiguration, r.Name, r.Field, name)
	}
	return v, nil
}

// Bound returns a range bound of a rule. An empty value counts as a missing bound.
func Bound(r Rule, name string) (string, bool) {
	v, ok := r.Parameters[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
