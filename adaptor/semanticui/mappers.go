package semanticui

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/uval/adaptor"
)

func ruleName(r adaptor.Rule) (any, error) {
	return r.Name, nil
}

func constant(typ string) adaptor.ParameterMapper {
	return func(adaptor.Rule) (any, error) {
		return typ, nil
	}
}

// bracketed renders typ[value] from parameter param. An empty param takes
// the rule's only parameter.
func bracketed(typ, param string) adaptor.ParameterMapper {
	return func(r adaptor.Rule) (any, error) {
		var (
			v   any
			err error
		)
		if param == "" {
			v, err = adaptor.SingleValue(r)
		} else {
			v, err = adaptor.Parameter(r, param)
		}
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("%s[%v]", typ, v), nil
	}
}

// integerRange renders integer[min..max]. The form behaviour has no open
// ranges, so both bounds are required.
func integerRange(r adaptor.Rule) (any, error) {
	lower, hasMin := adaptor.Bound(r, "min")
	upper, hasMax := adaptor.Bound(r, "max")
	if !hasMin || !hasMax {
		return nil, fmt.Errorf("%w: rule %q on field %q expects both min and max parameters",
			adaptor.ErrConfiguration, r.Name, r.Field)
	}
	return "integer[" + lower + ".." + upper + "]", nil
}

func regExp(r adaptor.Rule) (any, error) {
	pattern, err := adaptor.Parameter(r, "pattern")
	if err != nil {
		return nil, err
	}
	return "regExp[/" + pattern + "/]", nil
}

// match references the other field by identifier. A "*." placeholder prefix
// is replaced with the model prefix of the current field.
func match(r adaptor.Rule) (any, error) {
	other, err := adaptor.Parameter(r, "other")
	if err != nil {
		return nil, err
	}
	if rest, ok := strings.CutPrefix(other, "*."); ok {
		other = r.Field[:strings.LastIndex(r.Field, ".")+1] + rest
	}
	return "match[" + other + "]", nil
}
